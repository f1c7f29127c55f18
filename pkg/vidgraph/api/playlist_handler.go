package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

type playlistBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlaylist creates an empty playlist owned by the actor.
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body playlistBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid request body: %v", err))
		return
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), vidgraph.CreatePlaylistRequest{
		Name:        body.Name,
		Description: body.Description,
		Actor:       actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, playlist, "Playlist created successfully")
}

// GetPlaylist retrieves a playlist with its member videos resolved.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.service.GetPlaylist(r.Context(), chi.URLParam(r, "playlistID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, playlist, "Playlist fetched successfully")
}

// ListUserPlaylists lists a user's playlists.
func (h *Handler) ListUserPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.service.ListUserPlaylists(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, playlists, "Playlists fetched successfully")
}

// UpdatePlaylist replaces a playlist's name and description.
func (h *Handler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body playlistBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid request body: %v", err))
		return
	}

	playlist, err := h.service.UpdatePlaylist(r.Context(), vidgraph.UpdatePlaylistRequest{
		PlaylistID:  chi.URLParam(r, "playlistID"),
		Name:        body.Name,
		Description: body.Description,
		Actor:       actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist removes a playlist.
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePlaylist(r.Context(), chi.URLParam(r, "playlistID"), actor); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, nil, "Playlist deleted successfully")
}

// AddVideoToPlaylist appends a video to a playlist.
func (h *Handler) AddVideoToPlaylist(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	playlist, err := h.service.AddVideoToPlaylist(r.Context(), vidgraph.PlaylistVideoRequest{
		PlaylistID: chi.URLParam(r, "playlistID"),
		VideoID:    chi.URLParam(r, "videoID"),
		Actor:      actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist removes a video from a playlist.
func (h *Handler) RemoveVideoFromPlaylist(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	playlist, err := h.service.RemoveVideoFromPlaylist(r.Context(), vidgraph.PlaylistVideoRequest{
		PlaylistID: chi.URLParam(r, "playlistID"),
		VideoID:    chi.URLParam(r, "videoID"),
		Actor:      actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, playlist, "Video removed from playlist successfully")
}
