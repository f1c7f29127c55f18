package vidgraph

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// The video operations form the asset lifecycle coordinator: they bind
// the entity's blob-locator fields to the blob store across create,
// update and delete. The invariant is that an entity row never points at
// a blob that was not durably stored first, and a blob the row stopped
// pointing at is deleted only after the replacement exists.

// ListVideos scans videos with optional owner, text and published
// filters, sorts when a sortable field is named, joins owners, then
// paginates.
func (s *service) ListVideos(ctx context.Context, req ListVideosRequest) ([]*VideoView, error) {
	filter := VideoFilter{Query: req.Query, PublishedOnly: true}
	if req.OwnerID != "" {
		owner, err := parseID("user", req.OwnerID)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = owner
	}

	callCtx, cancel := s.callCtx(ctx)
	videos, err := s.repo.ListVideos(callCtx, filter)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	sortVideos(videos, req.SortBy, req.SortAsc)

	views, err := s.videoViews(ctx, videos)
	if err != nil {
		return nil, err
	}
	return paginate(views, req.Page), nil
}

// PublishVideo uploads the staged video file, then the staged thumbnail,
// and only after both are durably stored writes the entity row. A failed
// upload aborts before any row is written; both staged files are removed
// from the local filesystem regardless of outcome. A video blob already
// uploaded when the thumbnail upload fails stays behind in the blob
// store; the gap is reported, not hidden. When the row write itself
// fails, both uploaded blobs are deleted best-effort.
func (s *service) PublishVideo(ctx context.Context, req PublishVideoRequest) (*Video, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", req.Description)
	if err != nil {
		return nil, err
	}
	if req.VideoFile == nil {
		return nil, InvalidArgf("video file is required")
	}
	if req.Thumbnail == nil {
		return nil, InvalidArgf("thumbnail is required")
	}

	videoInfo, err := s.uploadStaged(ctx, req.Actor, req.VideoFile)
	if err != nil {
		// The thumbnail never reached the store; its staged copy must
		// still go.
		if rmErr := req.Thumbnail.Remove(); rmErr != nil {
			slog.Warn("failed to remove staged file", "field", req.Thumbnail.Field, "error", rmErr)
		}
		return nil, err
	}

	thumbInfo, err := s.uploadStaged(ctx, req.Actor, req.Thumbnail)
	if err != nil {
		slog.Warn("video blob orphaned after thumbnail upload failure", "locator", videoInfo.Locator)
		return nil, err
	}

	now := time.Now().UTC()
	video := &Video{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		VideoFile:   videoInfo.Locator,
		Thumbnail:   thumbInfo.Locator,
		Duration:    videoInfo.Duration,
		IsPublished: true,
		OwnerID:     req.Actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.repo.CreateVideo(callCtx, video); err != nil {
		// Both blobs are durable but no row points at them; roll them
		// back best-effort rather than orphaning them silently.
		for _, locator := range []string{videoInfo.Locator, thumbInfo.Locator} {
			if rbErr := s.deleteBlob(ctx, locator); rbErr != nil {
				slog.Warn("failed to roll back uploaded blob", "locator", locator, "error", rbErr)
			}
		}
		return nil, &EntityError{Entity: "video", ID: video.ID, Op: "create", Err: s.classify(callCtx, err)}
	}

	if err := s.events.VideoPublished(ctx, video); err != nil {
		logSinkFailure("video published", err)
	}
	return video, nil
}

// GetVideo returns a single video with its owner resolved.
func (s *service) GetVideo(ctx context.Context, videoID string) (*VideoView, error) {
	id, err := parseID("video", videoID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	video, err := s.repo.GetVideo(callCtx, id)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	owners, err := s.resolveOwners(ctx, []uuid.UUID{video.OwnerID})
	if err != nil {
		return nil, err
	}

	return &VideoView{
		Video: *video,
		Owner: publicUser(owners[video.OwnerID]),
	}, nil
}

// UpdateVideo replaces title, description and thumbnail. The old
// thumbnail is deleted from the blob store only after the new one is
// durably stored, so there is never a window with no valid thumbnail. On
// upload failure the row and the old blob are untouched.
func (s *service) UpdateVideo(ctx context.Context, req UpdateVideoRequest) (*Video, error) {
	id, err := parseID("video", req.VideoID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	video, err := s.repo.GetVideo(callCtx, id)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	title, err := requireText("title", req.Title)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", req.Description)
	if err != nil {
		return nil, err
	}
	if req.Thumbnail == nil {
		return nil, InvalidArgf("thumbnail is required")
	}

	oldThumbnail := video.Thumbnail

	thumbInfo, err := s.uploadStaged(ctx, video.OwnerID, req.Thumbnail)
	if err != nil {
		return nil, err
	}

	if oldThumbnail != "" {
		if err := s.deleteBlob(ctx, oldThumbnail); err != nil {
			slog.Warn("failed to delete replaced thumbnail", "locator", oldThumbnail, "error", err)
		}
	}

	video.Title = title
	video.Description = description
	video.Thumbnail = thumbInfo.Locator
	video.UpdatedAt = time.Now().UTC()

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.UpdateVideo(callCtx, video); err != nil {
		return nil, &EntityError{Entity: "video", ID: id, Op: "update", Err: s.classify(callCtx, err)}
	}
	return video, nil
}

// DeleteVideo removes the entity row after issuing blob store deletes for
// both locator fields. Blob deletes are best-effort: a failure is logged
// and never blocks the row delete, trading possible orphaned blobs for
// never keeping a dangling entity record.
func (s *service) DeleteVideo(ctx context.Context, videoID string) error {
	id, err := parseID("video", videoID)
	if err != nil {
		return err
	}

	callCtx, cancel := s.callCtx(ctx)
	video, err := s.repo.GetVideo(callCtx, id)
	cancel()
	if err != nil {
		return s.classify(callCtx, err)
	}

	for _, locator := range []string{video.VideoFile, video.Thumbnail} {
		if locator == "" {
			continue
		}
		if err := s.deleteBlob(ctx, locator); err != nil {
			slog.Warn("failed to delete video blob", "video_id", id, "locator", locator, "error", err)
		}
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.DeleteVideo(callCtx, id); err != nil {
		return &EntityError{Entity: "video", ID: id, Op: "delete", Err: s.classify(callCtx, err)}
	}

	if err := s.events.VideoDeleted(ctx, id); err != nil {
		logSinkFailure("video deleted", err)
	}
	return nil
}

// TogglePublishStatus flips IsPublished. Pure entity field update, the
// blob store is not involved.
func (s *service) TogglePublishStatus(ctx context.Context, videoID string) (*Video, error) {
	id, err := parseID("video", videoID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	video, err := s.repo.GetVideo(callCtx, id)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = time.Now().UTC()

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.UpdateVideo(callCtx, video); err != nil {
		return nil, &EntityError{Entity: "video", ID: id, Op: "update", Err: s.classify(callCtx, err)}
	}
	return video, nil
}

// uploadStaged pushes one staged file to the blob store. The local temp
// file is removed once the attempt finished, on success and on failure
// alike. Upload failures, including a missing blob store, surface as
// UploadFailed; a deadline expiry surfaces as Timeout.
func (s *service) uploadStaged(ctx context.Context, owner uuid.UUID, staged *StagedFile) (*BlobInfo, error) {
	defer func() {
		if err := staged.Remove(); err != nil {
			slog.Warn("failed to remove staged file", "field", staged.Field, "error", err)
		}
	}()

	if s.blobs == nil {
		return nil, &UploadError{Field: staged.Field, Err: errNoBlobStore}
	}

	file, err := staged.Open()
	if err != nil {
		return nil, &UploadError{Field: staged.Field, Err: err}
	}
	defer file.Close()

	key := path.Join(owner.String(), uuid.New().String()+filepath.Ext(staged.Path))

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	info, err := s.blobs.Upload(callCtx, key, file)
	if err != nil {
		if classified := s.classify(callCtx, err); classified != err {
			return nil, classified
		}
		return nil, &UploadError{Field: staged.Field, Err: err}
	}
	return info, nil
}

// deleteBlob issues a bounded blob store delete for a locator.
func (s *service) deleteBlob(ctx context.Context, locator string) error {
	if s.blobs == nil {
		return errNoBlobStore
	}
	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.blobs.Delete(callCtx, locator); err != nil {
		return &StorageError{Op: "delete", Locator: locator, Err: err}
	}
	return nil
}
