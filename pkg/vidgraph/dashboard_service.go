package vidgraph

import (
	"context"

	"github.com/google/uuid"
)

// GetChannelStats aggregates the dashboard counters for a channel: how
// many videos it published, how many subscribers it has, and the summed
// view counter across its videos.
func (s *service) GetChannelStats(ctx context.Context, channel uuid.UUID) (*ChannelStats, error) {
	callCtx, cancel := s.callCtx(ctx)
	videoCount, err := s.repo.CountVideosByOwner(callCtx, channel)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	callCtx, cancel = s.callCtx(ctx)
	subscriberCount, err := s.repo.CountSubscribersByChannel(callCtx, channel)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	totalViews, err := s.repo.SumViewsByOwner(callCtx, channel)
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	return &ChannelStats{
		VideoCount:      videoCount,
		SubscriberCount: subscriberCount,
		TotalViews:      totalViews,
	}, nil
}

// ListChannelVideos returns every video owned by the channel, published or
// not, with the owner resolved.
func (s *service) ListChannelVideos(ctx context.Context, channel uuid.UUID) ([]*VideoView, error) {
	callCtx, cancel := s.callCtx(ctx)
	videos, err := s.repo.ListVideos(callCtx, VideoFilter{OwnerID: channel})
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	return s.videoViews(ctx, videos)
}
