package vidgraph

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ToggleSubscription flips the subscriber's subscription to a channel.
// Both outcomes return an empty payload. Nothing stops a user from
// subscribing to themselves; the store accepts the pair.
func (s *service) ToggleSubscription(ctx context.Context, channelID string, subscriber uuid.UUID) (*ToggleResult, error) {
	channel, err := parseID("channel", channelID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	existing, err := s.repo.FindSubscription(callCtx, channel, subscriber)
	cancel()
	if err != nil && !errors.Is(err, ErrSubscriptionNotFound) {
		return nil, s.classify(callCtx, err)
	}

	if existing != nil {
		callCtx, cancel := s.callCtx(ctx)
		defer cancel()
		if err := s.repo.DeleteSubscription(callCtx, existing.ID); err != nil {
			return nil, &EntityError{Entity: "subscription", ID: existing.ID, Op: "delete", Err: s.classify(callCtx, err)}
		}
		s.fireToggle(ctx, "subscription", ToggleRemoved)
		return &ToggleResult{State: ToggleRemoved}, nil
	}

	now := time.Now().UTC()
	sub := &Subscription{
		ID:         uuid.New(),
		ChannelID:  channel,
		Subscriber: subscriber,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	if err := s.repo.CreateSubscription(callCtx, sub); err != nil {
		return nil, &EntityError{Entity: "subscription", ID: sub.ID, Op: "create", Err: s.classify(callCtx, err)}
	}
	s.fireToggle(ctx, "subscription", ToggleCreated)
	return &ToggleResult{State: ToggleCreated}, nil
}

// ListChannelSubscribers returns a channel's subscription rows with each
// subscriber resolved to the public projection.
func (s *service) ListChannelSubscribers(ctx context.Context, channelID string) ([]*SubscriberView, error) {
	channel, err := parseID("channel", channelID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	subs, err := s.repo.ListSubscriptionsByChannel(callCtx, channel)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.Subscriber)
	}
	users, err := s.resolveOwners(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*SubscriberView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, &SubscriberView{
			Subscription: *sub,
			Subscriber:   publicUser(users[sub.Subscriber]),
		})
	}
	return views, nil
}

// ListSubscribedChannels returns the channels a user subscribed to, each
// resolved to the public projection.
func (s *service) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*ChannelView, error) {
	subscriber, err := parseID("subscriber", subscriberID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	subs, err := s.repo.ListSubscriptionsBySubscriber(callCtx, subscriber)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ChannelID)
	}
	users, err := s.resolveOwners(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*ChannelView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, &ChannelView{
			Subscription: *sub,
			Channel:      publicUser(users[sub.ChannelID]),
		})
	}
	return views, nil
}
