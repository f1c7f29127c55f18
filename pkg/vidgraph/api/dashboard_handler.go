package api

import (
	"net/http"
)

// GetChannelStats reports the actor's channel aggregates.
func (h *Handler) GetChannelStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetChannelStats(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats, "Channel stats fetched successfully")
}

// ListChannelVideos lists every video the actor's channel has, published
// or not.
func (h *Handler) ListChannelVideos(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	videos, err := h.service.ListChannelVideos(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, videos, "Channel videos fetched successfully")
}
