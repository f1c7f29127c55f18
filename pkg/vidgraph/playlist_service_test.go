package vidgraph_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

func TestCreatePlaylist(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := seedUser(t, env.repo, "curator")

	t.Run("creates empty playlist", func(t *testing.T) {
		playlist, err := env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
			Name:        "Roadtrip",
			Description: "Long drives",
			Actor:       owner.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Roadtrip", playlist.Name)
		assert.Equal(t, owner.ID, playlist.OwnerID)
		assert.Empty(t, playlist.VideoIDs)
	})

	t.Run("requires name and description", func(t *testing.T) {
		_, err := env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
			Name:  "",
			Actor: owner.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrInvalidArgument)

		_, err = env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
			Name:        "No description",
			Description: "  ",
			Actor:       owner.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrInvalidArgument)
	})
}

func TestPlaylistMembership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := seedUser(t, env.repo, "curator")
	videoA := seedVideo(t, env.repo, owner.ID)
	videoB := seedVideo(t, env.repo, owner.ID)
	videoC := seedVideo(t, env.repo, owner.ID)

	playlist, err := env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
		Name:        "Mix",
		Description: "All kinds",
		Actor:       owner.ID,
	})
	require.NoError(t, err)

	add := func(videoID uuid.UUID) (*vidgraph.Playlist, error) {
		return env.svc.AddVideoToPlaylist(ctx, vidgraph.PlaylistVideoRequest{
			PlaylistID: playlist.ID.String(),
			VideoID:    videoID.String(),
			Actor:      owner.ID,
		})
	}

	t.Run("appends keep insertion order", func(t *testing.T) {
		for _, v := range []uuid.UUID{videoA.ID, videoB.ID, videoC.ID} {
			_, err := add(v)
			require.NoError(t, err)
		}

		view, err := env.svc.GetPlaylist(ctx, playlist.ID.String())
		require.NoError(t, err)
		require.Len(t, view.Videos, 3)
		assert.Equal(t, videoA.ID, view.Videos[0].ID)
		assert.Equal(t, videoB.ID, view.Videos[1].ID)
		assert.Equal(t, videoC.ID, view.Videos[2].ID)
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		_, err := add(videoB.ID)
		assert.ErrorIs(t, err, vidgraph.ErrConflict)
	})

	t.Run("remove preserves remaining order", func(t *testing.T) {
		updated, err := env.svc.RemoveVideoFromPlaylist(ctx, vidgraph.PlaylistVideoRequest{
			PlaylistID: playlist.ID.String(),
			VideoID:    videoB.ID.String(),
			Actor:      owner.ID,
		})
		require.NoError(t, err)
		require.Len(t, updated.VideoIDs, 2)
		assert.Equal(t, videoA.ID, updated.VideoIDs[0])
		assert.Equal(t, videoC.ID, updated.VideoIDs[1])
	})

	t.Run("removing a non-member is not found", func(t *testing.T) {
		_, err := env.svc.RemoveVideoFromPlaylist(ctx, vidgraph.PlaylistVideoRequest{
			PlaylistID: playlist.ID.String(),
			VideoID:    videoB.ID.String(),
			Actor:      owner.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})

	t.Run("adding a missing video is not found", func(t *testing.T) {
		_, err := env.svc.AddVideoToPlaylist(ctx, vidgraph.PlaylistVideoRequest{
			PlaylistID: playlist.ID.String(),
			VideoID:    uuid.NewString(),
			Actor:      owner.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})
}

func TestPlaylistOwnership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := seedUser(t, env.repo, "curator")
	intruder := seedUser(t, env.repo, "intruder")
	video := seedVideo(t, env.repo, owner.ID)

	playlist, err := env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
		Name:        "Private",
		Description: "Mine",
		Actor:       owner.ID,
	})
	require.NoError(t, err)

	t.Run("non-owner mutations read as not found", func(t *testing.T) {
		_, err := env.svc.UpdatePlaylist(ctx, vidgraph.UpdatePlaylistRequest{
			PlaylistID:  playlist.ID.String(),
			Name:        "Stolen",
			Description: "Not yours",
			Actor:       intruder.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)

		_, err = env.svc.AddVideoToPlaylist(ctx, vidgraph.PlaylistVideoRequest{
			PlaylistID: playlist.ID.String(),
			VideoID:    video.ID.String(),
			Actor:      intruder.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)

		err = env.svc.DeletePlaylist(ctx, playlist.ID.String(), intruder.ID)
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})

	t.Run("reads are open", func(t *testing.T) {
		view, err := env.svc.GetPlaylist(ctx, playlist.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Private", view.Name)
		require.NotNil(t, view.Owner)
		assert.Equal(t, "curator", view.Owner.Username)
	})
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := seedUser(t, env.repo, "curator")

	playlist, err := env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
		Name:        "Before",
		Description: "Old words",
		Actor:       owner.ID,
	})
	require.NoError(t, err)

	t.Run("update requires both fields", func(t *testing.T) {
		_, err := env.svc.UpdatePlaylist(ctx, vidgraph.UpdatePlaylistRequest{
			PlaylistID:  playlist.ID.String(),
			Name:        "After",
			Description: "",
			Actor:       owner.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrInvalidArgument)
	})

	t.Run("update replaces both fields", func(t *testing.T) {
		updated, err := env.svc.UpdatePlaylist(ctx, vidgraph.UpdatePlaylistRequest{
			PlaylistID:  playlist.ID.String(),
			Name:        "After",
			Description: "New words",
			Actor:       owner.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Name)
		assert.Equal(t, "New words", updated.Description)
	})

	t.Run("delete removes the playlist", func(t *testing.T) {
		require.NoError(t, env.svc.DeletePlaylist(ctx, playlist.ID.String(), owner.ID))

		_, err := env.svc.GetPlaylist(ctx, playlist.ID.String())
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})
}

func TestListUserPlaylists(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := seedUser(t, env.repo, "curator")
	other := seedUser(t, env.repo, "other")

	for _, name := range []string{"One", "Two"} {
		_, err := env.svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
			Name:        name,
			Description: "List " + name,
			Actor:       owner.ID,
		})
		require.NoError(t, err)
	}

	views, err := env.svc.ListUserPlaylists(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = env.svc.ListUserPlaylists(ctx, other.ID.String())
	require.NoError(t, err)
	assert.Empty(t, views)
}
