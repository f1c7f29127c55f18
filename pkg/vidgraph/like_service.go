package vidgraph

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// The like toggle is strictly a presence flip: find the relation for
// (target, actor), delete it when present, create it when absent. The
// repository's unique (target, actor) constraint keeps concurrent flips
// from ever producing a second row; the flip itself is not linearized.

// ToggleVideoLike flips the actor's like on a video.
func (s *service) ToggleVideoLike(ctx context.Context, videoID string, actor uuid.UUID) (*ToggleResult, error) {
	return s.toggleLike(ctx, TargetVideo, videoID, actor)
}

// ToggleCommentLike flips the actor's like on a comment.
func (s *service) ToggleCommentLike(ctx context.Context, commentID string, actor uuid.UUID) (*ToggleResult, error) {
	return s.toggleLike(ctx, TargetComment, commentID, actor)
}

// ToggleTweetLike flips the actor's like on a tweet.
func (s *service) ToggleTweetLike(ctx context.Context, tweetID string, actor uuid.UUID) (*ToggleResult, error) {
	return s.toggleLike(ctx, TargetTweet, tweetID, actor)
}

func (s *service) toggleLike(ctx context.Context, kind TargetKind, rawID string, actor uuid.UUID) (*ToggleResult, error) {
	targetID, err := parseID(string(kind), rawID)
	if err != nil {
		return nil, err
	}
	target := LikeTarget{Kind: kind, ID: targetID}

	callCtx, cancel := s.callCtx(ctx)
	existing, err := s.repo.FindLike(callCtx, target, actor)
	cancel()
	if err != nil && !errors.Is(err, ErrLikeNotFound) {
		return nil, s.classify(callCtx, err)
	}

	if existing != nil {
		callCtx, cancel := s.callCtx(ctx)
		defer cancel()
		if err := s.repo.DeleteLike(callCtx, existing.ID); err != nil {
			return nil, &EntityError{Entity: "like", ID: existing.ID, Op: "delete", Err: s.classify(callCtx, err)}
		}
		s.fireToggle(ctx, "like", ToggleRemoved)
		return &ToggleResult{State: ToggleRemoved}, nil
	}

	now := time.Now().UTC()
	like := &Like{
		ID:        uuid.New(),
		Target:    target,
		LikedBy:   actor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.CreateLike(callCtx, like); err != nil {
		return nil, &EntityError{Entity: "like", ID: like.ID, Op: "create", Err: s.classify(callCtx, err)}
	}
	s.fireToggle(ctx, "like", ToggleCreated)
	return &ToggleResult{State: ToggleCreated, Like: like}, nil
}

// ListLikedVideos returns every video the actor liked, with the video row
// embedded. A like whose video vanished keeps its row with a nil video.
func (s *service) ListLikedVideos(ctx context.Context, actor uuid.UUID) ([]*LikedVideoView, error) {
	callCtx, cancel := s.callCtx(ctx)
	likes, err := s.repo.ListLikesByActor(callCtx, actor, TargetVideo)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	videoIDs := make([]uuid.UUID, 0, len(likes))
	for _, l := range likes {
		videoIDs = append(videoIDs, l.Target.ID)
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	videos, err := s.repo.GetVideosByIDs(callCtx, videoIDs)
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	views := make([]*LikedVideoView, 0, len(likes))
	for _, l := range likes {
		views = append(views, &LikedVideoView{
			Like:  *l,
			Video: videos[l.Target.ID],
		})
	}
	return views, nil
}

func (s *service) fireToggle(ctx context.Context, relation string, state ToggleState) {
	if s.events == nil {
		return
	}
	if err := s.events.RelationToggled(ctx, relation, state); err != nil {
		logSinkFailure(relation, err)
	}
}
