package vidgraph_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

func TestCreateTweet(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	author := seedUser(t, env.repo, "author")

	t.Run("returns response-ready view", func(t *testing.T) {
		view, err := env.svc.CreateTweet(ctx, vidgraph.CreateTweetRequest{
			Content: "  hello world  ",
			Actor:   author.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "hello world", view.Content)
		require.NotNil(t, view.Owner)
		assert.Equal(t, "author", view.Owner.Username)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := env.svc.CreateTweet(ctx, vidgraph.CreateTweetRequest{
			Content: "\t\n",
			Actor:   author.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrInvalidArgument)
	})
}

func TestListUserTweets(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	author := seedUser(t, env.repo, "author")
	for _, content := range []string{"first", "second", "third"} {
		_, err := env.svc.CreateTweet(ctx, vidgraph.CreateTweetRequest{Content: content, Actor: author.ID})
		require.NoError(t, err)
	}

	views, err := env.svc.ListUserTweets(ctx, author.ID.String())
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "first", views[0].Content)
	assert.Equal(t, "third", views[2].Content)

	_, err = env.svc.ListUserTweets(ctx, "not-an-id")
	assert.ErrorIs(t, err, vidgraph.ErrInvalidArgument)
}

func TestUpdateAndDeleteTweet(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	author := seedUser(t, env.repo, "author")
	stranger := seedUser(t, env.repo, "stranger")

	view, err := env.svc.CreateTweet(ctx, vidgraph.CreateTweetRequest{Content: "draft", Actor: author.ID})
	require.NoError(t, err)

	t.Run("non-owner update reads as not found", func(t *testing.T) {
		_, err := env.svc.UpdateTweet(ctx, vidgraph.UpdateTweetRequest{
			TweetID: view.ID.String(),
			Content: "stolen",
			Actor:   stranger.ID,
		})
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})

	t.Run("owner updates content", func(t *testing.T) {
		updated, err := env.svc.UpdateTweet(ctx, vidgraph.UpdateTweetRequest{
			TweetID: view.ID.String(),
			Content: "final",
			Actor:   author.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Content)
	})

	t.Run("non-owner delete reads as not found", func(t *testing.T) {
		err := env.svc.DeleteTweet(ctx, view.ID.String(), stranger.ID)
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, env.svc.DeleteTweet(ctx, view.ID.String(), author.ID))

		views, err := env.svc.ListUserTweets(ctx, author.ID.String())
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("missing tweet", func(t *testing.T) {
		err := env.svc.DeleteTweet(ctx, uuid.NewString(), author.ID)
		assert.ErrorIs(t, err, vidgraph.ErrNotFound)
	})
}
