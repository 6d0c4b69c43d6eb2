package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/utils"
	"github.com/credvault/credvault/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	credential, err := h.services.CredentialService.Create(ctx, ownerID, request)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("credential creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, credential, http.StatusCreated)
}

// listCredentials returns the owner's credentials, optionally narrowed by the
// "platform" query parameter. An unknown platform yields an empty listing.
func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	credentials, err := h.services.CredentialService.List(ctx, ownerID, r.URL.Query().Get("platform"))
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("credential listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, credentials, http.StatusOK)
}

func (h *Handler) getCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, credentialID, ok := h.credentialRequestIDs(w, r)
	if !ok {
		return
	}

	credential, err := h.services.CredentialService.Get(ctx, ownerID, credentialID)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("credential lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, credential, http.StatusOK)
}

func (h *Handler) updateCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, credentialID, ok := h.credentialRequestIDs(w, r)
	if !ok {
		return
	}

	var request models.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	credential, err := h.services.CredentialService.Update(ctx, ownerID, credentialID, request)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("credential update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, credential, http.StatusOK)
}

func (h *Handler) deleteCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, credentialID, ok := h.credentialRequestIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.CredentialService.Delete(ctx, ownerID, credentialID); err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("credential deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// revealCredential is the single endpoint that returns a plaintext password.
func (h *Handler) revealCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, credentialID, ok := h.credentialRequestIDs(w, r)
	if !ok {
		return
	}

	password, err := h.services.CredentialService.Reveal(ctx, ownerID, credentialID)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("credential reveal failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.RevealResponse{Password: password}, http.StatusOK)
}

// credentialRequestIDs extracts the authenticated owner and the credential id
// from the request, writing the error response itself when either is missing.
func (h *Handler) credentialRequestIDs(w http.ResponseWriter, r *http.Request) (ownerID, credentialID int64, ok bool) {
	ownerID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, 0, false
	}

	credentialID, err := strconv.ParseInt(chi.URLParam(r, "credentialID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid credential id", http.StatusBadRequest)
		return 0, 0, false
	}

	return ownerID, credentialID, true
}
