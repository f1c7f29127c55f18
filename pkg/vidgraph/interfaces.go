package vidgraph

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository is the entity store: independently addressable documents per
// entity type with point lookups, filtered scans, inserts, field updates
// and deletes. Every method is individually atomic; the service never
// assumes a transaction spanning two calls.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)

	// Videos
	CreateVideo(ctx context.Context, video *Video) error
	GetVideo(ctx context.Context, id uuid.UUID) (*Video, error)
	GetVideosByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Video, error)
	UpdateVideo(ctx context.Context, video *Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	ListVideos(ctx context.Context, filter VideoFilter) ([]*Video, error)
	CountVideosByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Comments
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
	ListCommentsByVideo(ctx context.Context, videoID uuid.UUID) ([]*Comment, error)

	// Tweets
	CreateTweet(ctx context.Context, tweet *Tweet) error
	GetTweet(ctx context.Context, id uuid.UUID) (*Tweet, error)
	UpdateTweet(ctx context.Context, tweet *Tweet) error
	DeleteTweet(ctx context.Context, id uuid.UUID) error
	ListTweetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Tweet, error)

	// Likes. CreateLike fails with ErrConflict when a row for the same
	// (target, actor) pair already exists: the unique-pair constraint is
	// the store's, not the caller's.
	FindLike(ctx context.Context, target LikeTarget, likedBy uuid.UUID) (*Like, error)
	CreateLike(ctx context.Context, like *Like) error
	DeleteLike(ctx context.Context, id uuid.UUID) error
	ListLikesByActor(ctx context.Context, likedBy uuid.UUID, kind TargetKind) ([]*Like, error)

	// Subscriptions, same unique-pair contract as likes.
	FindSubscription(ctx context.Context, channelID, subscriber uuid.UUID) (*Subscription, error)
	CreateSubscription(ctx context.Context, sub *Subscription) error
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
	ListSubscriptionsByChannel(ctx context.Context, channelID uuid.UUID) ([]*Subscription, error)
	ListSubscriptionsBySubscriber(ctx context.Context, subscriber uuid.UUID) ([]*Subscription, error)
	CountSubscribersByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)

	// Playlists. AddPlaylistVideo and RemovePlaylistVideo are conditional
	// array updates executed in a single atomic step: they fail with
	// ErrVideoInPlaylist / ErrVideoNotInPlaylist instead of racing a
	// separate membership check, and preserve the order of the remaining
	// members.
	CreatePlaylist(ctx context.Context, playlist *Playlist) error
	GetPlaylist(ctx context.Context, id uuid.UUID) (*Playlist, error)
	UpdatePlaylistInfo(ctx context.Context, id uuid.UUID, name, description string) (*Playlist, error)
	DeletePlaylist(ctx context.Context, id uuid.UUID) error
	ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Playlist, error)
	AddPlaylistVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*Playlist, error)
	RemovePlaylistVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*Playlist, error)
}

// VideoFilter narrows a video scan. Zero values mean "no filter"; results
// come back in insertion order, sorting is the join engine's concern.
type VideoFilter struct {
	OwnerID       uuid.UUID // uuid.Nil matches all owners
	Query         string    // substring match on title or description
	PublishedOnly bool
}

// BlobStore is the binary-object store: upload yields an opaque locator
// plus derived metadata, delete is by locator. Callers treat delete as
// best-effort during rollback and cleanup paths.
type BlobStore interface {
	Upload(ctx context.Context, objectKey string, r io.Reader) (*BlobInfo, error)
	Download(ctx context.Context, locator string) (io.ReadCloser, error)
	Delete(ctx context.Context, locator string) error
}

// EventSink receives notifications after successful mutations. Sink errors
// are logged and never fail the operation that fired them.
type EventSink interface {
	VideoPublished(ctx context.Context, video *Video) error
	VideoDeleted(ctx context.Context, id uuid.UUID) error
	RelationToggled(ctx context.Context, relation string, state ToggleState) error
}
