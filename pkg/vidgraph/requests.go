package vidgraph

import "github.com/google/uuid"

// Request DTOs. Identifier fields supplied by the client arrive as raw
// strings and are parsed by the validation layer; Actor is the principal
// id the auth middleware already established.

// Page carries pagination inputs. Zero values fall back to page 1 with 10
// entries.
type Page struct {
	Number int
	Size   int
}

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = defaultPageNumber
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	return p
}

// ListVideoCommentsRequest lists a video's comments as joined views.
type ListVideoCommentsRequest struct {
	VideoID string
	Page    Page
}

// AddCommentRequest creates a comment on a video.
type AddCommentRequest struct {
	VideoID string
	Content string
	Actor   uuid.UUID
}

// UpdateCommentRequest replaces a comment's content.
type UpdateCommentRequest struct {
	CommentID string
	Content   string
	Actor     uuid.UUID
}

// DeleteCommentRequest removes a comment.
type DeleteCommentRequest struct {
	CommentID string
	Actor     uuid.UUID
}

// CreatePlaylistRequest creates an empty playlist for the actor.
type CreatePlaylistRequest struct {
	Name        string
	Description string
	Actor       uuid.UUID
}

// UpdatePlaylistRequest replaces a playlist's name and description. Both
// fields are required; there is no partial-field form.
type UpdatePlaylistRequest struct {
	PlaylistID  string
	Name        string
	Description string
	Actor       uuid.UUID
}

// PlaylistVideoRequest adds or removes one video of a playlist.
type PlaylistVideoRequest struct {
	PlaylistID string
	VideoID    string
	Actor      uuid.UUID
}

// CreateTweetRequest creates a tweet for the actor.
type CreateTweetRequest struct {
	Content string
	Actor   uuid.UUID
}

// UpdateTweetRequest replaces a tweet's content.
type UpdateTweetRequest struct {
	TweetID string
	Content string
	Actor   uuid.UUID
}

// ListVideosRequest scans videos with optional owner filter, text query
// and sort, paginated after the owner join.
type ListVideosRequest struct {
	OwnerID string // optional; empty means all owners
	Query   string
	SortBy  string
	SortAsc bool
	Page    Page
}

// PublishVideoRequest creates a video from two locally staged files. Both
// files are consumed: they are removed from the local filesystem whether
// or not their upload succeeds.
type PublishVideoRequest struct {
	Title       string
	Description string
	VideoFile   *StagedFile
	Thumbnail   *StagedFile
	Actor       uuid.UUID
}

// UpdateVideoRequest replaces a video's title, description and thumbnail.
// The old thumbnail is deleted from the blob store only after the new one
// is durably stored.
type UpdateVideoRequest struct {
	VideoID     string
	Title       string
	Description string
	Thumbnail   *StagedFile
}
