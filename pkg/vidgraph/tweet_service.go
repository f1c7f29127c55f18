package vidgraph

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateTweet creates a tweet and returns it with the owner already
// resolved, so the caller gets a response-ready view.
func (s *service) CreateTweet(ctx context.Context, req CreateTweetRequest) (*TweetView, error) {
	content, err := requireText("content", req.Content)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tweet := &Tweet{
		ID:        uuid.New(),
		Content:   content,
		OwnerID:   req.Actor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	callCtx, cancel := s.callCtx(ctx)
	err = s.repo.CreateTweet(callCtx, tweet)
	cancel()
	if err != nil {
		return nil, &EntityError{Entity: "tweet", ID: tweet.ID, Op: "create", Err: s.classify(callCtx, err)}
	}

	return s.tweetView(ctx, tweet)
}

// ListUserTweets returns a user's tweets with owners resolved.
func (s *service) ListUserTweets(ctx context.Context, userID string) ([]*TweetView, error) {
	owner, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	tweets, err := s.repo.ListTweetsByOwner(callCtx, owner)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	owners, err := s.resolveOwners(ctx, []uuid.UUID{owner})
	if err != nil {
		return nil, err
	}

	views := make([]*TweetView, 0, len(tweets))
	for _, t := range tweets {
		views = append(views, &TweetView{
			Tweet: *t,
			Owner: publicUser(owners[t.OwnerID]),
		})
	}
	return views, nil
}

// UpdateTweet replaces a tweet's content for its owner.
func (s *service) UpdateTweet(ctx context.Context, req UpdateTweetRequest) (*TweetView, error) {
	tweetID, err := parseID("tweet", req.TweetID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	tweet, err := s.repo.GetTweet(callCtx, tweetID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	if tweet.OwnerID != req.Actor {
		return nil, ErrTweetNotFound
	}

	content, err := requireText("content", req.Content)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now().UTC()

	callCtx, cancel = s.callCtx(ctx)
	err = s.repo.UpdateTweet(callCtx, tweet)
	cancel()
	if err != nil {
		return nil, &EntityError{Entity: "tweet", ID: tweetID, Op: "update", Err: s.classify(callCtx, err)}
	}

	return s.tweetView(ctx, tweet)
}

// DeleteTweet removes the actor's tweet.
func (s *service) DeleteTweet(ctx context.Context, tweetID string, actor uuid.UUID) error {
	id, err := parseID("tweet", tweetID)
	if err != nil {
		return err
	}

	callCtx, cancel := s.callCtx(ctx)
	tweet, err := s.repo.GetTweet(callCtx, id)
	cancel()
	if err != nil {
		return s.classify(callCtx, err)
	}
	if tweet.OwnerID != actor {
		return ErrTweetNotFound
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.DeleteTweet(callCtx, id); err != nil {
		return &EntityError{Entity: "tweet", ID: id, Op: "delete", Err: s.classify(callCtx, err)}
	}
	return nil
}

func (s *service) tweetView(ctx context.Context, tweet *Tweet) (*TweetView, error) {
	owners, err := s.resolveOwners(ctx, []uuid.UUID{tweet.OwnerID})
	if err != nil {
		return nil, err
	}
	return &TweetView{
		Tweet: *tweet,
		Owner: publicUser(owners[tweet.OwnerID]),
	}, nil
}
