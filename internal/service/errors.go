package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrAuthenticationFailed    = errors.New("authentication failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrMissingLoginIdentifier = errors.New("credential must carry a username or an email")
	ErrMissingAccountLogin    = errors.New("account must carry a username or an email")
)
