package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

type tweetBody struct {
	Content string `json:"content"`
}

// CreateTweet creates a tweet for the actor.
func (h *Handler) CreateTweet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body tweetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid request body: %v", err))
		return
	}

	tweet, err := h.service.CreateTweet(r.Context(), vidgraph.CreateTweetRequest{
		Content: body.Content,
		Actor:   actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListUserTweets lists a user's tweets.
func (h *Handler) ListUserTweets(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.service.ListUserTweets(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tweets, "Tweets fetched successfully")
}

// UpdateTweet replaces a tweet's content.
func (h *Handler) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body tweetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid request body: %v", err))
		return
	}

	tweet, err := h.service.UpdateTweet(r.Context(), vidgraph.UpdateTweetRequest{
		TweetID: chi.URLParam(r, "tweetID"),
		Content: body.Content,
		Actor:   actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet removes a tweet.
func (h *Handler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTweet(r.Context(), chi.URLParam(r, "tweetID"), actor); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, nil, "Tweet deleted successfully")
}
