package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/credvault/credvault/internal/config"
	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/store"
	"github.com/credvault/credvault/internal/utils"
	"github.com/credvault/credvault/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, password verification and the dual-token session
// lifecycle: short-lived access tokens plus a single persisted refresh token
// per user, each signed with its own HMAC key so one kind can never pass for
// the other.
type authService struct {
	// userRepository is the data-access layer for accounts and sessions.
	userRepository store.UserRepository

	// accessSignKey signs and verifies access tokens.
	accessSignKey string

	// refreshSignKey signs and verifies refresh tokens. Must differ from
	// accessSignKey.
	refreshSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessDuration controls the lifetime of access tokens.
	accessDuration time.Duration

	// refreshDuration controls the lifetime of refresh tokens.
	refreshDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		accessSignKey:   cfg.AccessTokenSignKey,
		refreshSignKey:  cfg.RefreshTokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		logger:          logger,
	}
}

// Register creates a new account and immediately opens a session for it, so
// a fresh client holds a working token pair without a second round trip.
//
// Returns:
//   - ErrInvalidDataProvided on an empty password.
//   - ErrMissingAccountLogin when neither username nor email is given.
//   - store.ErrUserAlreadyExists (wrapped) on a login collision.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	if request.Password == "" {
		return models.SessionResponse{}, ErrInvalidDataProvided
	}
	if request.Username == "" && request.Email == "" {
		return models.SessionResponse{}, ErrMissingAccountLogin
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("failed to hash password")
		return models.SessionResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     request.Username,
		Email:        request.Email,
		Fullname:     request.Fullname,
		PasswordHash: passwordHash,
	}

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Str("username", request.Username).Msg("user creation ended with error")
		return models.SessionResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.openSession(ctx, registered)
}

// Login verifies the password of an account addressed by username or email
// and opens a fresh session, superseding any previous one.
//
// A missing account and a wrong password are both reported as
// ErrWrongPassword so the response does not reveal which logins exist.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	if request.Password == "" {
		return models.SessionResponse{}, ErrInvalidDataProvided
	}
	if request.Username == "" && request.Email == "" {
		return models.SessionResponse{}, ErrMissingAccountLogin
	}

	found, err := a.userRepository.FindUserByLogin(ctx, request.Username, request.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.SessionResponse{}, ErrWrongPassword
		}

		log.Err(err).Str("func", "authService.Login").Str("username", request.Username).Msg("user search by login failed")
		return models.SessionResponse{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.CheckPassword(request.Password, found.PasswordHash) {
		log.Warn().Str("func", "authService.Login").Int64("user_id", found.UserID).Msg("wrong password")
		return models.SessionResponse{}, ErrWrongPassword
	}

	return a.openSession(ctx, found)
}

// Refresh rotates the presented refresh token into a new token pair.
//
// The token must verify against the refresh signing key, and it must still
// equal the persisted token of its subject. The persistence swap is a
// conditional update, so of two concurrent refreshes with the same token at
// most one succeeds; the loser gets ErrAuthenticationFailed.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseJWTToken(refreshToken, a.refreshSignKey, a.tokenIssuer)
	if err != nil {
		return models.SessionResponse{}, ErrTokenIsExpiredOrInvalid
	}

	userID, err := parsed.GetUserID()
	if err != nil {
		return models.SessionResponse{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.SessionResponse{}, ErrAuthenticationFailed
		}

		log.Err(err).Str("func", "authService.Refresh").Int64("user_id", userID).Msg("user search by id failed")
		return models.SessionResponse{}, fmt.Errorf("user search by id failed: %w", err)
	}

	pair, err := a.issueTokenPair(user.UserID)
	if err != nil {
		return models.SessionResponse{}, err
	}

	if err := a.userRepository.RotateRefreshToken(ctx, user.UserID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, store.ErrRefreshTokenMismatch) {
			log.Warn().Str("func", "authService.Refresh").Int64("user_id", user.UserID).Msg("refresh token was superseded or revoked")
			return models.SessionResponse{}, ErrAuthenticationFailed
		}

		log.Err(err).Str("func", "authService.Refresh").Int64("user_id", user.UserID).Msg("refresh token rotation failed")
		return models.SessionResponse{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	return models.SessionResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the user's session. Logging out twice is not an error.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrAuthenticationFailed
		}

		log.Err(err).Str("func", "authService.Logout").Int64("user_id", userID).Msg("failed to clear refresh token")
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// VerifyAccessToken validates a raw access token string against the access
// signing key and the configured issuer.
//
// Any validation failure (expired, wrong issuer, wrong key, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so callers do not need to inspect
// low-level JWT errors. A refresh token presented here fails the signature
// check because the keys differ.
func (a *authService) VerifyAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.accessSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ChangePassword verifies the old password before hashing and storing the
// new one.
func (a *authService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if request.OldPassword == "" || request.NewPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrAuthenticationFailed
		}

		log.Err(err).Str("func", "authService.ChangePassword").Int64("user_id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.CheckPassword(request.OldPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	newHash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "authService.ChangePassword").Int64("user_id", userID).Msg("failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		log.Err(err).Str("func", "authService.ChangePassword").Int64("user_id", userID).Msg("failed to store new password hash")
		return fmt.Errorf("failed to store new password hash: %w", err)
	}

	return nil
}

// GetUser returns the public profile of an account.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// UpdateUser applies the non-empty profile fields of request and returns the
// updated account.
func (a *authService) UpdateUser(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" && request.Email == "" && request.Fullname == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	updated, err := a.userRepository.UpdateUser(ctx, models.User{
		UserID:   userID,
		Username: request.Username,
		Email:    request.Email,
		Fullname: request.Fullname,
	})
	if err != nil {
		log.Err(err).Str("func", "authService.UpdateUser").Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updated, nil
}

// DeleteUser removes the account with every platform and credential it owns.
func (a *authService) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "authService.DeleteUser").Int64("user_id", userID).Msg("account deletion failed")
		return fmt.Errorf("account deletion failed: %w", err)
	}

	return nil
}

// openSession issues a fresh token pair for user and persists the refresh
// half unconditionally, replacing any previous session.
func (a *authService) openSession(ctx context.Context, user models.User) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	pair, err := a.issueTokenPair(user.UserID)
	if err != nil {
		return models.SessionResponse{}, err
	}

	if err := a.userRepository.SetRefreshToken(ctx, user.UserID, pair.RefreshToken); err != nil {
		log.Err(err).Str("func", "authService.openSession").Int64("user_id", user.UserID).Msg("failed to persist refresh token")
		return models.SessionResponse{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return models.SessionResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// issueTokenPair signs an access and a refresh token for userID, each with
// its own key and lifetime.
func (a *authService) issueTokenPair(userID int64) (models.TokenPair, error) {
	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.accessDuration, a.accessSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.refreshDuration, a.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:  accessToken.String(),
		RefreshToken: refreshToken.String(),
	}, nil
}
