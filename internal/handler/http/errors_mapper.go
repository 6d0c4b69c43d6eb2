package http

import (
	"errors"
	"net/http"

	"github.com/credvault/credvault/internal/crypto"
	"github.com/credvault/credvault/internal/service"
	"github.com/credvault/credvault/internal/store"
	"github.com/credvault/credvault/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrMissingAccountLogin:     http.StatusBadRequest,
	service.ErrMissingLoginIdentifier:  http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrAuthenticationFailed:    http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	models.ErrIncompleteSecret: http.StatusInternalServerError,

	store.ErrUserAlreadyExists:     http.StatusConflict,
	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrPlatformAlreadyExists: http.StatusConflict,
	store.ErrPlatformNotFound:      http.StatusNotFound,
	store.ErrCredentialNotFound:    http.StatusNotFound,
	store.ErrRefreshTokenMismatch:  http.StatusUnauthorized,

	crypto.ErrEncryptionFailed: http.StatusInternalServerError,
	crypto.ErrDecryptionFailed: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err onto an HTTP status via the error-status table. The
// response body carries only the generic status text for 5xx results so that
// internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
