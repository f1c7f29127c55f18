package vidgraph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

var errNoBlobStore = errors.New("no blob store configured")

func logSinkFailure(event string, err error) {
	slog.Warn("event sink failed", "event", event, "error", err)
}

// NoopEventSink discards all events.
type NoopEventSink struct{}

// NewNoopEventSink creates an event sink that ignores everything.
func NewNoopEventSink() *NoopEventSink { return &NoopEventSink{} }

func (NoopEventSink) VideoPublished(ctx context.Context, video *Video) error { return nil }

func (NoopEventSink) VideoDeleted(ctx context.Context, id uuid.UUID) error { return nil }

func (NoopEventSink) RelationToggled(ctx context.Context, relation string, state ToggleState) error {
	return nil
}

// LogEventSink writes each event to a structured logger.
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates an event sink logging through logger, or the
// default logger when nil.
func NewLogEventSink(logger *slog.Logger) *LogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) VideoPublished(ctx context.Context, video *Video) error {
	s.logger.InfoContext(ctx, "video published", "video_id", video.ID, "owner_id", video.OwnerID, "duration", video.Duration)
	return nil
}

func (s *LogEventSink) VideoDeleted(ctx context.Context, id uuid.UUID) error {
	s.logger.InfoContext(ctx, "video deleted", "video_id", id)
	return nil
}

func (s *LogEventSink) RelationToggled(ctx context.Context, relation string, state ToggleState) error {
	s.logger.InfoContext(ctx, "relation toggled", "relation", relation, "state", state)
	return nil
}
