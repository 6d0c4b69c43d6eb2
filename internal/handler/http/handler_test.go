package http

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/service"
	"github.com/credvault/credvault/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case; unset methods fall back
// to permissive defaults so tests only spell out what they care about.
type mockAuthService struct {
	registerFn       func(ctx context.Context, request models.RegisterRequest) (models.SessionResponse, error)
	loginFn          func(ctx context.Context, request models.LoginRequest) (models.SessionResponse, error)
	refreshFn        func(ctx context.Context, refreshToken string) (models.SessionResponse, error)
	logoutFn         func(ctx context.Context, userID int64) error
	verifyFn         func(ctx context.Context, tokenString string) (models.Token, error)
	changePasswordFn func(ctx context.Context, userID int64, request models.ChangePasswordRequest) error
	getUserFn        func(ctx context.Context, userID int64) (models.User, error)
	updateUserFn     func(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error)
	deleteUserFn     func(ctx context.Context, userID int64) error
}

func (m *mockAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.SessionResponse, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, request)
	}
	return models.SessionResponse{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest) (models.SessionResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, request)
	}
	return models.SessionResponse{}, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (models.SessionResponse, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return models.SessionResponse{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, userID int64) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) VerifyAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, tokenString)
	}
	return stubTokenForUser(1), nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, request)
	}
	return nil
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) UpdateUser(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, userID, request)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) DeleteUser(ctx context.Context, userID int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

// mockCredentialService implements service.CredentialService for unit tests.
type mockCredentialService struct {
	createFn func(ctx context.Context, ownerID int64, request models.CredentialRequest) (*models.Credential, error)
	listFn   func(ctx context.Context, ownerID int64, platformTitle string) ([]models.Credential, error)
	getFn    func(ctx context.Context, ownerID, credentialID int64) (*models.Credential, error)
	updateFn func(ctx context.Context, ownerID, credentialID int64, request models.CredentialRequest) (*models.Credential, error)
	deleteFn func(ctx context.Context, ownerID, credentialID int64) error
	revealFn func(ctx context.Context, ownerID, credentialID int64) (string, error)
}

func (m *mockCredentialService) Create(ctx context.Context, ownerID int64, request models.CredentialRequest) (*models.Credential, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, request)
	}
	return &models.Credential{}, nil
}

func (m *mockCredentialService) List(ctx context.Context, ownerID int64, platformTitle string) ([]models.Credential, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, platformTitle)
	}
	return []models.Credential{}, nil
}

func (m *mockCredentialService) Get(ctx context.Context, ownerID, credentialID int64) (*models.Credential, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, credentialID)
	}
	return &models.Credential{CredentialID: credentialID}, nil
}

func (m *mockCredentialService) Update(ctx context.Context, ownerID, credentialID int64, request models.CredentialRequest) (*models.Credential, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, ownerID, credentialID, request)
	}
	return &models.Credential{CredentialID: credentialID}, nil
}

func (m *mockCredentialService) Delete(ctx context.Context, ownerID, credentialID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, credentialID)
	}
	return nil
}

func (m *mockCredentialService) Reveal(ctx context.Context, ownerID, credentialID int64) (string, error) {
	if m.revealFn != nil {
		return m.revealFn(ctx, ownerID, credentialID)
	}
	return "", nil
}

// mockPlatformService implements service.PlatformService for unit tests.
type mockPlatformService struct {
	createFn func(ctx context.Context, ownerID int64, request models.PlatformRequest) (models.Platform, error)
	listFn   func(ctx context.Context, ownerID int64, title string) ([]models.Platform, error)
	getFn    func(ctx context.Context, ownerID, platformID int64) (models.Platform, error)
	updateFn func(ctx context.Context, ownerID, platformID int64, request models.PlatformRequest) (models.Platform, error)
	deleteFn func(ctx context.Context, ownerID, platformID int64) error
}

func (m *mockPlatformService) Create(ctx context.Context, ownerID int64, request models.PlatformRequest) (models.Platform, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, request)
	}
	return models.Platform{}, nil
}

func (m *mockPlatformService) List(ctx context.Context, ownerID int64, title string) ([]models.Platform, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, title)
	}
	return []models.Platform{}, nil
}

func (m *mockPlatformService) Get(ctx context.Context, ownerID, platformID int64) (models.Platform, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, platformID)
	}
	return models.Platform{PlatformID: platformID}, nil
}

func (m *mockPlatformService) Update(ctx context.Context, ownerID, platformID int64, request models.PlatformRequest) (models.Platform, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, ownerID, platformID, request)
	}
	return models.Platform{PlatformID: platformID}, nil
}

func (m *mockPlatformService) Delete(ctx context.Context, ownerID, platformID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, platformID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// stubTokenForUser returns a models.Token whose subject resolves to userID.
func stubTokenForUser(userID int64) models.Token {
	return models.Token{
		RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.FormatInt(userID, 10)},
		UserID:           userID,
	}
}

// newTestHandler builds a Handler over the given service mocks. Nil mocks are
// replaced with permissive defaults.
func newTestHandler(t *testing.T, auth *mockAuthService, credentials *mockCredentialService, platforms *mockPlatformService) *Handler {
	t.Helper()
	if auth == nil {
		auth = &mockAuthService{}
	}
	if credentials == nil {
		credentials = &mockCredentialService{}
	}
	if platforms == nil {
		platforms = &mockPlatformService{}
	}
	svcs := &service.Services{
		AuthService:       auth,
		CredentialService: credentials,
		PlatformService:   platforms,
	}
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
