package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/credvault/credvault/internal/service"
	"github.com/credvault/credvault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser_ReturnsOwnProfile(t *testing.T) {
	auth := &mockAuthService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, int64(1), userID)
			return models.User{UserID: 1, Username: "alice", PasswordHash: "bcrypt-hash"}, nil
		},
	}
	router := newTestHandler(t, auth, nil, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/user", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
	assert.NotContains(t, rec.Body.String(), "bcrypt-hash")
}

func TestUpdateUser_Success(t *testing.T) {
	auth := &mockAuthService{
		updateUserFn: func(_ context.Context, userID int64, request models.UpdateUserRequest) (models.User, error) {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, "Alice Liddell", request.Fullname)
			return models.User{UserID: 1, Username: "alice", Fullname: "Alice Liddell"}, nil
		},
	}
	router := newTestHandler(t, auth, nil, nil).Init()

	body := jsonBody(t, models.UpdateUserRequest{Fullname: "Alice Liddell"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPatch, "/api/user", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alice Liddell", updated.Fullname)
}

func TestUpdateUser_NothingToChange(t *testing.T) {
	auth := &mockAuthService{
		updateUserFn: func(_ context.Context, _ int64, _ models.UpdateUserRequest) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}
	router := newTestHandler(t, auth, nil, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodPatch, "/api/user", "{}"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUser_ClearsRefreshCookie(t *testing.T) {
	var deleted int64
	auth := &mockAuthService{
		deleteUserFn: func(_ context.Context, userID int64) error {
			deleted = userID
			return nil
		},
	}
	router := newTestHandler(t, auth, nil, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodDelete, "/api/user", ""))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(1), deleted)

	cookie := refreshCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestChangePassword_Success(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, userID int64, request models.ChangePasswordRequest) error {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, "old-secret", request.OldPassword)
			assert.Equal(t, "new-secret", request.NewPassword)
			return nil
		},
	}
	router := newTestHandler(t, auth, nil, nil).Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "old-secret", NewPassword: "new-secret"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPost, "/api/user/change-password", body))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, _ int64, _ models.ChangePasswordRequest) error {
			return service.ErrWrongPassword
		},
	}
	router := newTestHandler(t, auth, nil, nil).Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new-secret"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPost, "/api/user/change-password", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
