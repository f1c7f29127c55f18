// Package api exposes the vidgraph service over HTTP using chi. Every
// route except the healthcheck sits behind JWT verification; the subject
// claim of the verified token is the acting user for ownership checks.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

// Handler handles HTTP requests against the vidgraph service
type Handler struct {
	service   vidgraph.Service
	tokenAuth *jwtauth.JWTAuth
}

// NewHandler creates a handler signing-key-bound to jwtSecret.
func NewHandler(service vidgraph.Service, jwtSecret string) *Handler {
	return &Handler{
		service:   service,
		tokenAuth: jwtauth.New("HS256", []byte(jwtSecret), nil),
	}
}

// TokenAuth exposes the verifier for token issuance in tests and tooling.
func (h *Handler) TokenAuth() *jwtauth.JWTAuth {
	return h.tokenAuth
}

// Routes returns the full route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthcheck", h.Healthcheck)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.ListVideos)
			r.Post("/", h.PublishVideo)
			r.Get("/{videoID}", h.GetVideo)
			r.Patch("/{videoID}", h.UpdateVideo)
			r.Delete("/{videoID}", h.DeleteVideo)
			r.Patch("/toggle/publish/{videoID}", h.TogglePublishStatus)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{videoID}", h.ListVideoComments)
			r.Post("/{videoID}", h.AddComment)
			r.Patch("/c/{commentID}", h.UpdateComment)
			r.Delete("/c/{commentID}", h.DeleteComment)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Post("/toggle/v/{videoID}", h.ToggleVideoLike)
			r.Post("/toggle/c/{commentID}", h.ToggleCommentLike)
			r.Post("/toggle/t/{tweetID}", h.ToggleTweetLike)
			r.Get("/videos", h.ListLikedVideos)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/c/{channelID}", h.ToggleSubscription)
			r.Get("/c/{channelID}", h.ListChannelSubscribers)
			r.Get("/u/{subscriberID}", h.ListSubscribedChannels)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Post("/", h.CreatePlaylist)
			r.Get("/{playlistID}", h.GetPlaylist)
			r.Patch("/{playlistID}", h.UpdatePlaylist)
			r.Delete("/{playlistID}", h.DeletePlaylist)
			r.Patch("/add/{videoID}/{playlistID}", h.AddVideoToPlaylist)
			r.Patch("/remove/{videoID}/{playlistID}", h.RemoveVideoFromPlaylist)
			r.Get("/user/{userID}", h.ListUserPlaylists)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Post("/", h.CreateTweet)
			r.Get("/user/{userID}", h.ListUserTweets)
			r.Patch("/{tweetID}", h.UpdateTweet)
			r.Delete("/{tweetID}", h.DeleteTweet)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", h.GetChannelStats)
			r.Get("/videos", h.ListChannelVideos)
		})
	})

	return r
}

// Healthcheck reports liveness.
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Status:  http.StatusOK,
		Data:    "OK",
		Message: "Everything is O.K",
	})
}
