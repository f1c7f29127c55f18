package vidgraph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Failure kinds. Every error the service returns unwraps to exactly one of
// these, so callers classify with errors.Is.
var (
	// ErrInvalidArgument indicates a malformed identifier or a missing or
	// blank required field. Always a client fault.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a referenced entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate-membership client fault.
	ErrConflict = errors.New("conflict")

	// ErrUploadFailed indicates a blob store upload failed.
	ErrUploadFailed = errors.New("upload failed")

	// ErrTimeout indicates an external-store call exceeded its deadline.
	ErrTimeout = errors.New("timeout")
)

// Per-entity absence errors, returned by repositories.
var (
	ErrUserNotFound         = NotFound("user")
	ErrVideoNotFound        = NotFound("video")
	ErrCommentNotFound      = NotFound("comment")
	ErrTweetNotFound        = NotFound("tweet")
	ErrLikeNotFound         = NotFound("like")
	ErrSubscriptionNotFound = NotFound("subscription")
	ErrPlaylistNotFound     = NotFound("playlist")
)

// Membership errors.
var (
	ErrVideoInPlaylist    = Conflict("video already in playlist")
	ErrVideoNotInPlaylist = &Error{Kind: ErrNotFound, Msg: "video not found in playlist"}
)

// Error attaches a human-readable message to one of the failure kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// InvalidArgf builds an ErrInvalidArgument failure.
func InvalidArgf(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound failure naming the missing entity kind.
func NotFound(kind string) error {
	return &Error{Kind: ErrNotFound, Msg: kind + " not found"}
}

// Conflict builds an ErrConflict failure.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

// UploadError wraps a blob store upload failure with the field it was
// uploading.
type UploadError struct {
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.Field, e.Err)
}

func (e *UploadError) Unwrap() error { return ErrUploadFailed }

// StorageError wraps a blob store interaction failure for a known locator.
type StorageError struct {
	Op      string
	Locator string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Locator, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// EntityError wraps a repository failure with the operation and entity id.
type EntityError struct {
	Entity string
	ID     uuid.UUID
	Op     string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %s failed for %s: %v", e.Entity, e.Op, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }
