package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

func toggleMessage(state vidgraph.ToggleState, created, removed string) string {
	if state == vidgraph.ToggleCreated {
		return created
	}
	return removed
}

// ToggleVideoLike flips the actor's like on a video.
func (h *Handler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.service.ToggleVideoLike(r.Context(), chi.URLParam(r, "videoID"), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result, toggleMessage(result.State, "Liked successfully", "Like removed successfully"))
}

// ToggleCommentLike flips the actor's like on a comment.
func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.service.ToggleCommentLike(r.Context(), chi.URLParam(r, "commentID"), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result, toggleMessage(result.State, "Liked successfully", "Like removed successfully"))
}

// ToggleTweetLike flips the actor's like on a tweet.
func (h *Handler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.service.ToggleTweetLike(r.Context(), chi.URLParam(r, "tweetID"), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result, toggleMessage(result.State, "Liked successfully", "Like removed successfully"))
}

// ListLikedVideos lists the videos the actor has liked.
func (h *Handler) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	videos, err := h.service.ListLikedVideos(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, videos, "Liked videos fetched successfully")
}

// ToggleSubscription flips the actor's subscription to a channel.
func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.service.ToggleSubscription(r.Context(), chi.URLParam(r, "channelID"), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result, toggleMessage(result.State, "Subscribed successfully", "Unsubscribed successfully"))
}

// ListChannelSubscribers lists a channel's subscribers.
func (h *Handler) ListChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.service.ListChannelSubscribers(r.Context(), chi.URLParam(r, "channelID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// ListSubscribedChannels lists the channels a user subscribes to.
func (h *Handler) ListSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.service.ListSubscribedChannels(r.Context(), chi.URLParam(r, "subscriberID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
