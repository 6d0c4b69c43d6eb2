package http

import (
	"encoding/json"
	"net/http"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/utils"
	"github.com/credvault/credvault/models"
)

// refreshCookieName is the HTTP-only cookie carrying the refresh token for
// browser clients. Non-browser clients may send the token in the request body
// instead; the cookie takes precedence when both are present.
const refreshCookieName = "refresh_token"

// refreshCookiePath limits the cookie to the user endpoints, so it is never
// attached to credential or platform requests.
const refreshCookiePath = "/api/user"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.Register(ctx, request)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, session.RefreshToken)
	utils.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		log.Err(err).Msg("user login failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", session.User.UserID).Msg("user successfully logged in")

	h.setRefreshCookie(w, session.RefreshToken)
	utils.WriteJSON(w, session, http.StatusOK)
}

// refreshToken rotates the presented refresh token into a fresh token pair.
// The token is taken from the session cookie when present, otherwise from the
// request body.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	presented := h.refreshTokenFromRequest(r)
	if presented == "" {
		log.Err(ErrNoRefreshToken).Send()
		http.Error(w, ErrNoRefreshToken.Error(), http.StatusUnauthorized)
		return
	}

	session, err := h.services.AuthService.Refresh(ctx, presented)
	if err != nil {
		log.Err(err).Msg("refresh token rotation rejected")
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, session.RefreshToken)
	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("logout failed")
		writeError(w, err)
		return
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// refreshTokenFromRequest reads the refresh token from the session cookie or,
// failing that, from a JSON body.
func (h *Handler) refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var request models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return ""
	}

	return request.RefreshToken
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
