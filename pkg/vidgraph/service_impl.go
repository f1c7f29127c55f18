package vidgraph

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// service implements the Service interface.
type service struct {
	repo        Repository
	blobs       BlobStore
	events      EventSink
	callTimeout time.Duration
}

// Option configures the service.
type Option func(*service)

// WithRepository sets the entity store driver.
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repo = repo
	}
}

// WithBlobStore sets the binary-object store client.
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobs = store
	}
}

// WithEventSink sets the mutation event sink.
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.events = sink
	}
}

// WithCallTimeout bounds each external store call. Zero disables the
// bound.
func WithCallTimeout(d time.Duration) Option {
	return func(s *service) {
		s.callTimeout = d
	}
}

const defaultCallTimeout = 10 * time.Second

// New creates a service instance with the given options. A repository is
// required; a blob store only for the video lifecycle operations.
func New(options ...Option) (Service, error) {
	s := &service{
		events:      NewNoopEventSink(),
		callTimeout: defaultCallTimeout,
	}

	for _, option := range options {
		option(s)
	}

	if s.repo == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// callCtx derives the bounded context every external call runs under.
func (s *service) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

// classify maps an external-call failure onto the error taxonomy. Deadline
// expiry becomes Timeout; everything else passes through so NotFound and
// Conflict keep their classification.
func (s *service) classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: ErrTimeout, Msg: "store call timed out"}
	}
	return err
}
