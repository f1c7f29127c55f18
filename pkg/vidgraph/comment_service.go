package vidgraph

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListVideoComments returns a video's comments as joined views: owner
// resolved to the public projection, video resolved to the minimal
// reference. Pagination runs after both hops.
func (s *service) ListVideoComments(ctx context.Context, req ListVideoCommentsRequest) ([]*CommentView, error) {
	videoID, err := parseID("video", req.VideoID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	comments, err := s.repo.ListCommentsByVideo(callCtx, videoID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	ownerIDs := make([]uuid.UUID, 0, len(comments))
	videoIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ownerIDs = append(ownerIDs, c.OwnerID)
		videoIDs = append(videoIDs, c.VideoID)
	}
	owners, err := s.resolveOwners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	callCtx, cancel = s.callCtx(ctx)
	videos, err := s.repo.GetVideosByIDs(callCtx, videoIDs)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	views := make([]*CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &CommentView{
			Comment: *c,
			Owner:   publicUser(owners[c.OwnerID]),
			Video:   videoRef(videos[c.VideoID]),
		})
	}

	return paginate(views, req.Page), nil
}

// AddComment creates a comment on an existing video for the actor.
func (s *service) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	videoID, err := parseID("video", req.VideoID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	_, err = s.repo.GetVideo(callCtx, videoID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	content, err := requireText("content", req.Content)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &Comment{
		ID:        uuid.New(),
		Content:   content,
		VideoID:   videoID,
		OwnerID:   req.Actor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.CreateComment(callCtx, comment); err != nil {
		return nil, &EntityError{Entity: "comment", ID: comment.ID, Op: "create", Err: s.classify(callCtx, err)}
	}
	return comment, nil
}

// UpdateComment replaces a comment's content. Only the owner sees the
// comment as mutable; for anyone else it does not exist.
func (s *service) UpdateComment(ctx context.Context, req UpdateCommentRequest) (*Comment, error) {
	commentID, err := parseID("comment", req.CommentID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	comment, err := s.repo.GetComment(callCtx, commentID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	if comment.OwnerID != req.Actor {
		return nil, ErrCommentNotFound
	}

	content, err := requireText("content", req.Content)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.UpdateComment(callCtx, comment); err != nil {
		return nil, &EntityError{Entity: "comment", ID: commentID, Op: "update", Err: s.classify(callCtx, err)}
	}
	return comment, nil
}

// DeleteComment removes a comment and returns the deleted row.
func (s *service) DeleteComment(ctx context.Context, req DeleteCommentRequest) (*Comment, error) {
	commentID, err := parseID("comment", req.CommentID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	comment, err := s.repo.GetComment(callCtx, commentID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	if comment.OwnerID != req.Actor {
		return nil, ErrCommentNotFound
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.DeleteComment(callCtx, commentID); err != nil {
		return nil, &EntityError{Entity: "comment", ID: commentID, Op: "delete", Err: s.classify(callCtx, err)}
	}
	return comment, nil
}
