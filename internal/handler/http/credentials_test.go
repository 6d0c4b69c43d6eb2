package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/credvault/credvault/internal/service"
	"github.com/credvault/credvault/internal/store"
	"github.com/credvault/credvault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorizedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer access.jwt")
	return req
}

func TestCreateCredential_Success(t *testing.T) {
	credentials := &mockCredentialService{
		createFn: func(_ context.Context, ownerID int64, request models.CredentialRequest) (*models.Credential, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, "github", request.PlatformTitle)
			return &models.Credential{CredentialID: 100, PlatformID: 10, Username: "alice", PlatformTitle: "github"}, nil
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	body := jsonBody(t, models.CredentialRequest{PlatformTitle: "github", Username: "alice", Password: "s3cret"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPost, "/api/credentials/", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Credential
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(100), created.CredentialID)
	assert.False(t, created.HasSecret())
}

func TestCreateCredential_MissingLoginIdentifier(t *testing.T) {
	credentials := &mockCredentialService{
		createFn: func(_ context.Context, _ int64, _ models.CredentialRequest) (*models.Credential, error) {
			return nil, service.ErrMissingLoginIdentifier
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	body := jsonBody(t, models.CredentialRequest{PlatformTitle: "github", Password: "s3cret"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPost, "/api/credentials/", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCredentials_PlatformQuery(t *testing.T) {
	credentials := &mockCredentialService{
		listFn: func(_ context.Context, ownerID int64, platformTitle string) ([]models.Credential, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, "github", platformTitle)
			return []models.Credential{{CredentialID: 100, PlatformTitle: "github"}}, nil
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/credentials/?platform=github", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Credential
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
}

func TestListCredentials_UnknownPlatformIsEmptyArray(t *testing.T) {
	credentials := &mockCredentialService{
		listFn: func(_ context.Context, _ int64, _ string) ([]models.Credential, error) {
			return []models.Credential{}, nil
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/credentials/?platform=unknown", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetCredential_NotFound(t *testing.T) {
	credentials := &mockCredentialService{
		getFn: func(_ context.Context, _, _ int64) (*models.Credential, error) {
			return nil, store.ErrCredentialNotFound
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/credentials/404", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCredential_InvalidID(t *testing.T) {
	router := newTestHandler(t, nil, nil, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/credentials/not-a-number", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCredential_Success(t *testing.T) {
	credentials := &mockCredentialService{
		updateFn: func(_ context.Context, ownerID, credentialID int64, request models.CredentialRequest) (*models.Credential, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, int64(100), credentialID)
			assert.Equal(t, "bob", request.Username)
			return &models.Credential{CredentialID: 100, Username: "bob"}, nil
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	body := jsonBody(t, models.CredentialRequest{Username: "bob"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPut, "/api/credentials/100", body))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteCredential_Success(t *testing.T) {
	var deleted int64
	credentials := &mockCredentialService{
		deleteFn: func(_ context.Context, _, credentialID int64) error {
			deleted = credentialID
			return nil
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodDelete, "/api/credentials/100", ""))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(100), deleted)
}

func TestRevealCredential_ReturnsPassword(t *testing.T) {
	credentials := &mockCredentialService{
		revealFn: func(_ context.Context, ownerID, credentialID int64) (string, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, int64(100), credentialID)
			return "plaintext-password", nil
		},
	}
	router := newTestHandler(t, nil, credentials, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/credentials/100/reveal", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.RevealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "plaintext-password", response.Password)
}

func TestRevealCredential_RequiresAuth(t *testing.T) {
	router := newTestHandler(t, nil, nil, nil).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/credentials/100/reveal", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
