package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
	"github.com/vidgraph/vidgraph/pkg/vidgraph/repo/memory"
)

func newLike(target vidgraph.LikeTarget, actor uuid.UUID) *vidgraph.Like {
	now := time.Now().UTC()
	return &vidgraph.Like{
		ID:        uuid.New(),
		Target:    target,
		LikedBy:   actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestLikeUniquePair(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	target := vidgraph.LikeTarget{Kind: vidgraph.TargetVideo, ID: uuid.New()}
	actor := uuid.New()

	require.NoError(t, repo.CreateLike(ctx, newLike(target, actor)))

	t.Run("duplicate pair conflicts", func(t *testing.T) {
		err := repo.CreateLike(ctx, newLike(target, actor))
		assert.ErrorIs(t, err, vidgraph.ErrConflict)
	})

	t.Run("same target different actor is fine", func(t *testing.T) {
		assert.NoError(t, repo.CreateLike(ctx, newLike(target, uuid.New())))
	})

	t.Run("same actor different kind is fine", func(t *testing.T) {
		other := vidgraph.LikeTarget{Kind: vidgraph.TargetComment, ID: target.ID}
		assert.NoError(t, repo.CreateLike(ctx, newLike(other, actor)))
	})

	t.Run("pair frees up after delete", func(t *testing.T) {
		existing, err := repo.FindLike(ctx, target, actor)
		require.NoError(t, err)
		require.NoError(t, repo.DeleteLike(ctx, existing.ID))

		assert.NoError(t, repo.CreateLike(ctx, newLike(target, actor)))
	})
}

func TestSubscriptionUniquePair(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	channel := uuid.New()
	subscriber := uuid.New()

	mk := func() *vidgraph.Subscription {
		now := time.Now().UTC()
		return &vidgraph.Subscription{
			ID:         uuid.New(),
			ChannelID:  channel,
			Subscriber: subscriber,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	require.NoError(t, repo.CreateSubscription(ctx, mk()))
	assert.ErrorIs(t, repo.CreateSubscription(ctx, mk()), vidgraph.ErrConflict)

	count, err := repo.CountSubscribersByChannel(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPlaylistMembershipUpdates(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	now := time.Now().UTC()
	playlist := &vidgraph.Playlist{
		ID:          uuid.New(),
		Name:        "p",
		Description: "d",
		OwnerID:     uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreatePlaylist(ctx, playlist))

	videoA := uuid.New()
	videoB := uuid.New()

	t.Run("add returns updated row", func(t *testing.T) {
		updated, err := repo.AddPlaylistVideo(ctx, playlist.ID, videoA)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{videoA}, updated.VideoIDs)

		updated, err = repo.AddPlaylistVideo(ctx, playlist.ID, videoB)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{videoA, videoB}, updated.VideoIDs)
	})

	t.Run("duplicate add rejected atomically", func(t *testing.T) {
		_, err := repo.AddPlaylistVideo(ctx, playlist.ID, videoA)
		assert.ErrorIs(t, err, vidgraph.ErrConflict)
	})

	t.Run("remove missing member", func(t *testing.T) {
		_, err := repo.RemovePlaylistVideo(ctx, playlist.ID, uuid.New())
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})

	t.Run("remove keeps remaining order", func(t *testing.T) {
		updated, err := repo.RemovePlaylistVideo(ctx, playlist.ID, videoA)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{videoB}, updated.VideoIDs)
	})

	t.Run("missing playlist", func(t *testing.T) {
		_, err := repo.AddPlaylistVideo(ctx, uuid.New(), videoA)
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})
}

func TestCopyOutIsolation(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	now := time.Now().UTC()
	video := &vidgraph.Video{
		ID:          uuid.New(),
		Title:       "original",
		Description: "desc",
		OwnerID:     uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateVideo(ctx, video))

	// Mutating a returned row must not leak into the store.
	got, err := repo.GetVideo(ctx, video.ID)
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := repo.GetVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)

	// Slice fields are cloned too, not aliased.
	watched := uuid.New()
	user := &vidgraph.User{
		ID:           uuid.New(),
		Username:     "viewer",
		Email:        "viewer@example.com",
		FullName:     "Viewer",
		Password:     "x",
		WatchHistory: []uuid.UUID{watched},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	user.WatchHistory[0] = uuid.New()

	stored, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.WatchHistory, 1)
	assert.Equal(t, watched, stored.WatchHistory[0], "store keeps its own copy of the input slice")

	stored.WatchHistory[0] = uuid.New()
	again2, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, watched, again2.WatchHistory[0], "reads hand out independent copies")
}

func TestBatchGets(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	now := time.Now().UTC()
	user := &vidgraph.User{
		ID:        uuid.New(),
		Username:  "u",
		Email:     "u@example.com",
		FullName:  "U",
		Password:  "x",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	users, err := repo.GetUsersByIDs(ctx, []uuid.UUID{user.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, users, 1, "missing ids are absent, not errors")
	assert.Equal(t, user.Username, users[user.ID].Username)

	videos, err := repo.GetVideosByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, videos)
}
