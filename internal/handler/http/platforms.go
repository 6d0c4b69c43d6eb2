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

func (h *Handler) createPlatform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.PlatformRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	platform, err := h.services.PlatformService.Create(ctx, ownerID, request)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("platform creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, platform, http.StatusCreated)
}

func (h *Handler) listPlatforms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	platforms, err := h.services.PlatformService.List(ctx, ownerID, r.URL.Query().Get("title"))
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("platform listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, platforms, http.StatusOK)
}

func (h *Handler) getPlatform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, platformID, ok := h.platformRequestIDs(w, r)
	if !ok {
		return
	}

	platform, err := h.services.PlatformService.Get(ctx, ownerID, platformID)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("platform lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, platform, http.StatusOK)
}

func (h *Handler) updatePlatform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, platformID, ok := h.platformRequestIDs(w, r)
	if !ok {
		return
	}

	var request models.PlatformRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	platform, err := h.services.PlatformService.Update(ctx, ownerID, platformID, request)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("platform update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, platform, http.StatusOK)
}

// deletePlatform removes a platform and every credential filed under it.
func (h *Handler) deletePlatform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, platformID, ok := h.platformRequestIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.PlatformService.Delete(ctx, ownerID, platformID); err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("platform deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) platformRequestIDs(w http.ResponseWriter, r *http.Request) (ownerID, platformID int64, ok bool) {
	ownerID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, 0, false
	}

	platformID, err := strconv.ParseInt(chi.URLParam(r, "platformID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid platform id", http.StatusBadRequest)
		return 0, 0, false
	}

	return ownerID, platformID, true
}
