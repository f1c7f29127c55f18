package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
	"github.com/vidgraph/vidgraph/pkg/vidgraph/repo/memory"
	memorystorage "github.com/vidgraph/vidgraph/pkg/vidgraph/storage/memory"
)

const testSecret = "test-signing-secret"

// setupHandlerTest wires a handler to an in-memory service and returns
// the shared repository for seeding.
func setupHandlerTest(t *testing.T) (*Handler, vidgraph.Service, vidgraph.Repository) {
	t.Helper()

	repo := memory.New()
	store := memorystorage.New()

	service, err := vidgraph.New(
		vidgraph.WithRepository(repo),
		vidgraph.WithBlobStore(store),
		vidgraph.WithEventSink(vidgraph.NewNoopEventSink()),
	)
	require.NoError(t, err)

	return NewHandler(service, testSecret), service, repo
}

func seedHandlerUser(t *testing.T, repo vidgraph.Repository, username string) *vidgraph.User {
	t.Helper()

	now := time.Now().UTC()
	user := &vidgraph.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		FullName:  "Test " + username,
		Password:  "hashed-secret",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func bearerToken(t *testing.T, h *Handler, subject uuid.UUID) string {
	t.Helper()

	_, tokenString, err := h.TokenAuth().Encode(map[string]interface{}{
		"sub": subject.String(),
	})
	require.NoError(t, err)
	return "Bearer " + tokenString
}

func TestHealthcheckIsOpen(t *testing.T) {
	handler, _, _ := setupHandlerTest(t)
	router := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Everything is O.K")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler, _, _ := setupHandlerTest(t)
	router := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/videos/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndGetTweet(t *testing.T) {
	handler, _, repo := setupHandlerTest(t)
	router := handler.Routes()
	author := seedHandlerUser(t, repo, "author")
	token := bearerToken(t, handler, author.ID)

	body, err := json.Marshal(map[string]string{"content": "hello graph"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/tweets/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			ID      string `json:"id"`
			Content string `json:"content"`
			OwnerID string `json:"owner_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "hello graph", resp.Data.Content)
	assert.Equal(t, author.ID.String(), resp.Data.OwnerID)

	req = httptest.NewRequest(http.MethodGet, "/tweets/user/"+author.ID.String(), nil)
	req.Header.Set("Authorization", token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello graph")
	assert.NotContains(t, w.Body.String(), "hashed-secret")
}

func TestErrorStatusMapping(t *testing.T) {
	handler, _, repo := setupHandlerTest(t)
	router := handler.Routes()
	actor := seedHandlerUser(t, repo, "actor")
	token := bearerToken(t, handler, actor.ID)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{
			name:   "malformed id",
			method: http.MethodGet,
			target: "/videos/not-a-uuid",
			want:   http.StatusBadRequest,
		},
		{
			name:   "missing video",
			method: http.MethodGet,
			target: "/videos/" + uuid.NewString(),
			want:   http.StatusNotFound,
		},
		{
			name:   "blank tweet content",
			method: http.MethodPost,
			target: "/tweets/",
			body:   `{"content":"   "}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "missing playlist",
			method: http.MethodGet,
			target: "/playlists/" + uuid.NewString(),
			want:   http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, bytes.NewReader([]byte(tt.body)))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			req.Header.Set("Authorization", token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestToggleSubscriptionMessages(t *testing.T) {
	handler, _, repo := setupHandlerTest(t)
	router := handler.Routes()
	subscriber := seedHandlerUser(t, repo, "subscriber")
	channel := seedHandlerUser(t, repo, "channel")
	token := bearerToken(t, handler, subscriber.ID)

	toggle := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/subscriptions/c/"+channel.ID.String(), nil)
		req.Header.Set("Authorization", token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := toggle()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Subscribed successfully")

	w = toggle()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unsubscribed successfully")
}

func TestDuplicatePlaylistAddConflicts(t *testing.T) {
	handler, service, repo := setupHandlerTest(t)
	router := handler.Routes()
	owner := seedHandlerUser(t, repo, "owner")
	token := bearerToken(t, handler, owner.ID)

	ctx := context.Background()
	playlist, err := service.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
		Name:        "watch later",
		Description: "queue",
		Actor:       owner.ID,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	video := &vidgraph.Video{
		ID:          uuid.New(),
		Title:       "clip",
		Description: "d",
		OwnerID:     owner.ID,
		VideoFile:   "mem://videos/clip",
		Thumbnail:   "mem://thumbs/clip",
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateVideo(ctx, video))

	add := func() *httptest.ResponseRecorder {
		target := "/playlists/add/" + video.ID.String() + "/" + playlist.ID.String()
		req := httptest.NewRequest(http.MethodPatch, target, nil)
		req.Header.Set("Authorization", token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, add().Code)
	assert.Equal(t, http.StatusConflict, add().Code)
}
