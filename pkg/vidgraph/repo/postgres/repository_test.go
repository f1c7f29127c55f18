package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

func testPlaylist(owner uuid.UUID) *vidgraph.Playlist {
	now := time.Now().UTC()
	return &vidgraph.Playlist{
		ID:          uuid.New(),
		Name:        "Test Playlist",
		Description: "Test Description",
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func testLike(target vidgraph.LikeTarget, actor uuid.UUID) *vidgraph.Like {
	now := time.Now().UTC()
	return &vidgraph.Like{
		ID:        uuid.New(),
		Target:    target,
		LikedBy:   actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresRepository_CreatePlaylist(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewWithPool(db.Pool)
		ctx := context.Background()

		// VideoIDs left nil on purpose: the column is NOT NULL and the
		// membership guards must see an empty array, not SQL NULL.
		playlist := testPlaylist(uuid.New())
		err := repo.CreatePlaylist(ctx, playlist)
		require.NoError(t, err)

		retrieved, err := repo.GetPlaylist(ctx, playlist.ID)
		require.NoError(t, err)
		assert.Equal(t, playlist.ID, retrieved.ID)
		assert.Equal(t, playlist.Name, retrieved.Name)
		assert.Equal(t, playlist.Description, retrieved.Description)
		assert.Equal(t, playlist.OwnerID, retrieved.OwnerID)
		assert.Empty(t, retrieved.VideoIDs)

		// The first add must succeed against the fresh empty array.
		videoID := uuid.New()
		updated, err := repo.AddPlaylistVideo(ctx, playlist.ID, videoID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{videoID}, updated.VideoIDs)
	})
}

func TestPostgresRepository_PlaylistMembership(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewWithPool(db.Pool)
		ctx := context.Background()

		playlist := testPlaylist(uuid.New())
		require.NoError(t, repo.CreatePlaylist(ctx, playlist))

		videoA := uuid.New()
		videoB := uuid.New()
		videoC := uuid.New()
		for _, id := range []uuid.UUID{videoA, videoB, videoC} {
			_, err := repo.AddPlaylistVideo(ctx, playlist.ID, id)
			require.NoError(t, err)
		}

		t.Run("duplicate add", func(t *testing.T) {
			_, err := repo.AddPlaylistVideo(ctx, playlist.ID, videoA)
			assert.ErrorIs(t, err, vidgraph.ErrVideoInPlaylist)
			assert.ErrorIs(t, err, vidgraph.ErrConflict)
		})

		t.Run("remove keeps order", func(t *testing.T) {
			updated, err := repo.RemovePlaylistVideo(ctx, playlist.ID, videoB)
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{videoA, videoC}, updated.VideoIDs)
		})

		t.Run("remove non-member", func(t *testing.T) {
			_, err := repo.RemovePlaylistVideo(ctx, playlist.ID, videoB)
			assert.ErrorIs(t, err, vidgraph.ErrVideoNotInPlaylist)
			assert.ErrorIs(t, err, vidgraph.ErrNotFound)
		})

		t.Run("missing playlist", func(t *testing.T) {
			_, err := repo.AddPlaylistVideo(ctx, uuid.New(), videoA)
			assert.ErrorIs(t, err, vidgraph.ErrPlaylistNotFound)
		})
	})
}

func TestPostgresRepository_CreateUserNilWatchHistory(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewWithPool(db.Pool)
		ctx := context.Background()

		now := time.Now().UTC()
		user := &vidgraph.User{
			ID:        uuid.New(),
			Username:  "viewer",
			Email:     "viewer@example.com",
			FullName:  "Viewer",
			Password:  "x",
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, repo.CreateUser(ctx, user))

		retrieved, err := repo.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, retrieved.WatchHistory)
	})
}

func TestPostgresRepository_LikeUniquePair(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewWithPool(db.Pool)
		ctx := context.Background()

		target := vidgraph.LikeTarget{Kind: vidgraph.TargetVideo, ID: uuid.New()}
		actor := uuid.New()

		require.NoError(t, repo.CreateLike(ctx, testLike(target, actor)))

		// The unique constraint translates to a conflict, not a raw pg error.
		err := repo.CreateLike(ctx, testLike(target, actor))
		assert.ErrorIs(t, err, vidgraph.ErrConflict)

		// Same pair under a different target kind is a distinct row.
		other := vidgraph.LikeTarget{Kind: vidgraph.TargetComment, ID: target.ID}
		require.NoError(t, repo.CreateLike(ctx, testLike(other, actor)))

		found, err := repo.FindLike(ctx, target, actor)
		require.NoError(t, err)
		assert.Equal(t, target, found.Target)

		require.NoError(t, repo.DeleteLike(ctx, found.ID))
		_, err = repo.FindLike(ctx, target, actor)
		assert.ErrorIs(t, err, vidgraph.ErrLikeNotFound)
	})
}

func TestPostgresRepository_SubscriptionUniquePair(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewWithPool(db.Pool)
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
	})
}

func TestPostgresRepository_NotFoundTranslation(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewWithPool(db.Pool)
		ctx := context.Background()

		_, err := repo.GetVideo(ctx, uuid.New())
		assert.ErrorIs(t, err, vidgraph.ErrVideoNotFound)

		_, err = repo.GetPlaylist(ctx, uuid.New())
		assert.ErrorIs(t, err, vidgraph.ErrPlaylistNotFound)

		assert.ErrorIs(t, repo.DeleteVideo(ctx, uuid.New()), vidgraph.ErrNotFound)
		assert.ErrorIs(t, repo.DeletePlaylist(ctx, uuid.New()), vidgraph.ErrNotFound)
	})
}
