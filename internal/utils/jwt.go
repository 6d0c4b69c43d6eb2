package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/credvault/credvault/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT with the given parameters.
//
// The token carries the standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// The same helper mints both access and refresh tokens; the caller decides
// which signing key and which lifetime to pass. Returns an error if any
// parameter is empty or zero, or if signing fails.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT string and extracts its
// claims: signature against signKey, issuer against tokenIssuer, expiry, and
// subject presence (converted to an int64 user ID).
//
// Errors from the jwt library are wrapped, not swallowed, so callers can
// distinguish an expired token (errors.Is(err, jwt.ErrTokenExpired)) from a
// malformed one or a bad signature.
func ValidateAndParseJWTToken(tokenString, signKey, tokenIssuer string) (models.Token, error) {
	parsedToken := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsedToken, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	parsedToken.Token = token
	parsedToken.SignedString = tokenString
	parsedToken.UserID = userID

	return *parsedToken, nil
}
