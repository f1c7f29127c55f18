package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

type commentBody struct {
	Content string `json:"content"`
}

// ListVideoComments lists a video's comments as joined views.
func (h *Handler) ListVideoComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListVideoComments(r.Context(), vidgraph.ListVideoCommentsRequest{
		VideoID: chi.URLParam(r, "videoID"),
		Page:    parsePage(r),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comments, "Comments fetched successfully")
}

// AddComment creates a comment on a video.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body commentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid request body: %v", err))
		return
	}

	comment, err := h.service.AddComment(r.Context(), vidgraph.AddCommentRequest{
		VideoID: chi.URLParam(r, "videoID"),
		Content: body.Content,
		Actor:   actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment replaces a comment's content.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body commentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid request body: %v", err))
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), vidgraph.UpdateCommentRequest{
		CommentID: chi.URLParam(r, "commentID"),
		Content:   body.Content,
		Actor:     actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment removes a comment and returns the deleted row.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	comment, err := h.service.DeleteComment(r.Context(), vidgraph.DeleteCommentRequest{
		CommentID: chi.URLParam(r, "commentID"),
		Actor:     actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comment, "Comment deleted successfully")
}
