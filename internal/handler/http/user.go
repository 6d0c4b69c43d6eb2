package http

import (
	"encoding/json"
	"net/http"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/utils"
	"github.com/credvault/credvault/models"
)

// getUser returns the authenticated user's own profile. Accounts are never
// addressable by foreign callers, so there is no lookup by arbitrary id.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.AuthService.UpdateUser(ctx, userID, request)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("account deletion failed")
		writeError(w, err)
		return
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, userID, request); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password change failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
