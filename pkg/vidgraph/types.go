package vidgraph

import (
	"time"

	"github.com/google/uuid"
)

// TargetKind identifies the entity kind a Like points at.
type TargetKind string

// Like target kinds.
const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// LikeTarget is the polymorphic reference a Like carries. Exactly one
// (Kind, ID) pair identifies the liked entity; the union keeps the
// mutual-exclusivity invariant structural instead of modeling three
// nullable references.
type LikeTarget struct {
	Kind TargetKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// User is a platform account. Password and RefreshToken are credential
// fields owned by the auth subsystem; they are stored but never leave the
// core in a joined view.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	Avatar       string      `json:"avatar"`
	CoverImage   string      `json:"cover_image,omitempty"`
	Password     string      `json:"-"`
	RefreshToken string      `json:"-"`
	WatchHistory []uuid.UUID `json:"watch_history,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Video is a published media entity. VideoFile and Thumbnail are blob
// locators owned by the asset lifecycle coordinator.
type Video struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"video_file"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"is_published"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Comment is a text reply attached to a video.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	VideoID   uuid.UUID `json:"video_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tweet is a standalone text post.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like is a per-actor presence row. At most one Like exists per
// (Target, LikedBy) pair; the repository enforces the constraint.
type Like struct {
	ID        uuid.UUID  `json:"id"`
	Target    LikeTarget `json:"target"`
	LikedBy   uuid.UUID  `json:"liked_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subscription links a subscriber to a channel (both users). At most one
// row exists per (Channel, Subscriber) pair.
type Subscription struct {
	ID         uuid.UUID `json:"id"`
	ChannelID  uuid.UUID `json:"channel_id"`
	Subscriber uuid.UUID `json:"subscriber_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Playlist is an ordered, duplicate-free sequence of video ids.
type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	VideoIDs    []uuid.UUID `json:"video_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PublicUser is the owner projection embedded in joined views. It is the
// allow-list: credential fields, watch history and internal timestamps
// never appear here regardless of what the underlying row holds.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Avatar   string    `json:"avatar"`
}

// VideoRef is the minimal video projection embedded by the comment view's
// second hop. Restricted to an explicit field allow-list.
type VideoRef struct {
	ID          uuid.UUID `json:"id"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// CommentView is a comment with its owner and video references resolved.
// A dangling reference leaves the embedded value nil rather than failing
// the row.
type CommentView struct {
	Comment
	Owner *PublicUser `json:"owner,omitempty"`
	Video *VideoRef   `json:"video,omitempty"`
}

// VideoView is a video with its owner resolved.
type VideoView struct {
	Video
	Owner *PublicUser `json:"owner,omitempty"`
}

// TweetView is a tweet with its owner resolved.
type TweetView struct {
	Tweet
	Owner *PublicUser `json:"owner,omitempty"`
}

// PlaylistView is a playlist with its owner and member videos resolved.
type PlaylistView struct {
	Playlist
	Owner  *PublicUser `json:"owner,omitempty"`
	Videos []*Video    `json:"videos"`
}

// SubscriberView is a subscription row with the subscriber resolved.
type SubscriberView struct {
	Subscription
	Subscriber *PublicUser `json:"subscriber,omitempty"`
}

// ChannelView is a subscription row with the channel resolved.
type ChannelView struct {
	Subscription
	Channel *PublicUser `json:"channel,omitempty"`
}

// LikedVideoView is a like row with its video resolved.
type LikedVideoView struct {
	Like
	Video *Video `json:"video,omitempty"`
}

// ChannelStats is the dashboard aggregate for a channel.
type ChannelStats struct {
	VideoCount      int64 `json:"video_count"`
	SubscriberCount int64 `json:"subscriber_count"`
	TotalViews      int64 `json:"total_views"`
}

// ToggleState reports which side of a presence flip a toggle landed on.
type ToggleState string

// Toggle outcomes.
const (
	ToggleCreated ToggleState = "created"
	ToggleRemoved ToggleState = "removed"
)

// ToggleResult is the outcome of a like or subscription toggle. Like is
// set only when State is ToggleCreated on a like toggle; subscription
// toggles always return an empty payload.
type ToggleResult struct {
	State ToggleState `json:"state"`
	Like  *Like       `json:"like,omitempty"`
}

// BlobInfo describes an uploaded blob: the opaque locator the store
// assigned plus metadata derived during upload.
type BlobInfo struct {
	Locator  string
	Size     int64
	Duration float64
}
