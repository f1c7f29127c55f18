// Package memory implements vidgraph.Repository with in-process maps.
// Scans return rows in insertion order, which is the order the join
// engine paginates over; the unique-pair constraints for likes and
// subscriptions are enforced with secondary key maps under the same lock
// that guards the insert.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

// Repository is an in-memory implementation of vidgraph.Repository.
type Repository struct {
	mu sync.RWMutex

	users map[uuid.UUID]*vidgraph.User

	videos     map[uuid.UUID]*vidgraph.Video
	videoOrder []uuid.UUID

	comments     map[uuid.UUID]*vidgraph.Comment
	commentOrder []uuid.UUID

	tweets     map[uuid.UUID]*vidgraph.Tweet
	tweetOrder []uuid.UUID

	likes      map[uuid.UUID]*vidgraph.Like
	likeByPair map[string]uuid.UUID
	likeOrder  []uuid.UUID

	subs      map[uuid.UUID]*vidgraph.Subscription
	subByPair map[string]uuid.UUID
	subOrder  []uuid.UUID

	playlists     map[uuid.UUID]*vidgraph.Playlist
	playlistOrder []uuid.UUID
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		users:      make(map[uuid.UUID]*vidgraph.User),
		videos:     make(map[uuid.UUID]*vidgraph.Video),
		comments:   make(map[uuid.UUID]*vidgraph.Comment),
		tweets:     make(map[uuid.UUID]*vidgraph.Tweet),
		likes:      make(map[uuid.UUID]*vidgraph.Like),
		likeByPair: make(map[string]uuid.UUID),
		subs:       make(map[uuid.UUID]*vidgraph.Subscription),
		subByPair:  make(map[string]uuid.UUID),
		playlists:  make(map[uuid.UUID]*vidgraph.Playlist),
	}
}

func likePairKey(target vidgraph.LikeTarget, likedBy uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", target.Kind, target.ID, likedBy)
}

func subPairKey(channelID, subscriber uuid.UUID) string {
	return fmt.Sprintf("%s:%s", channelID, subscriber)
}

func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// Users

func cloneUser(u *vidgraph.User) *vidgraph.User {
	userCopy := *u
	userCopy.WatchHistory = append([]uuid.UUID(nil), u.WatchHistory...)
	return &userCopy
}

func (r *Repository) CreateUser(ctx context.Context, user *vidgraph.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*vidgraph.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, vidgraph.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *Repository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*vidgraph.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[uuid.UUID]*vidgraph.User, len(ids))
	for _, id := range ids {
		if user, exists := r.users[id]; exists {
			result[id] = cloneUser(user)
		}
	}
	return result, nil
}

// Videos

func (r *Repository) CreateVideo(ctx context.Context, video *vidgraph.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	videoCopy := *video
	r.videos[video.ID] = &videoCopy
	r.videoOrder = append(r.videoOrder, video.ID)
	return nil
}

func (r *Repository) GetVideo(ctx context.Context, id uuid.UUID) (*vidgraph.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.videos[id]
	if !exists {
		return nil, vidgraph.ErrVideoNotFound
	}
	videoCopy := *video
	return &videoCopy, nil
}

func (r *Repository) GetVideosByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*vidgraph.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[uuid.UUID]*vidgraph.Video, len(ids))
	for _, id := range ids {
		if video, exists := r.videos[id]; exists {
			videoCopy := *video
			result[id] = &videoCopy
		}
	}
	return result, nil
}

func (r *Repository) UpdateVideo(ctx context.Context, video *vidgraph.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.videos[video.ID]; !exists {
		return vidgraph.ErrVideoNotFound
	}
	videoCopy := *video
	r.videos[video.ID] = &videoCopy
	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.videos[id]; !exists {
		return vidgraph.ErrVideoNotFound
	}
	delete(r.videos, id)
	r.videoOrder = removeID(r.videoOrder, id)
	return nil
}

func (r *Repository) ListVideos(ctx context.Context, filter vidgraph.VideoFilter) ([]*vidgraph.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	var result []*vidgraph.Video
	for _, id := range r.videoOrder {
		video := r.videos[id]
		if filter.OwnerID != uuid.Nil && video.OwnerID != filter.OwnerID {
			continue
		}
		if filter.PublishedOnly && !video.IsPublished {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(video.Title), query) &&
			!strings.Contains(strings.ToLower(video.Description), query) {
			continue
		}
		videoCopy := *video
		result = append(result, &videoCopy)
	}
	return result, nil
}

func (r *Repository) CountVideosByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, video := range r.videos {
		if video.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *Repository) SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, video := range r.videos {
		if video.OwnerID == ownerID {
			total += video.Views
		}
	}
	return total, nil
}

// Comments

func (r *Repository) CreateComment(ctx context.Context, comment *vidgraph.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	commentCopy := *comment
	r.comments[comment.ID] = &commentCopy
	r.commentOrder = append(r.commentOrder, comment.ID)
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*vidgraph.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, exists := r.comments[id]
	if !exists {
		return nil, vidgraph.ErrCommentNotFound
	}
	commentCopy := *comment
	return &commentCopy, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *vidgraph.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[comment.ID]; !exists {
		return vidgraph.ErrCommentNotFound
	}
	commentCopy := *comment
	r.comments[comment.ID] = &commentCopy
	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[id]; !exists {
		return vidgraph.ErrCommentNotFound
	}
	delete(r.comments, id)
	r.commentOrder = removeID(r.commentOrder, id)
	return nil
}

func (r *Repository) ListCommentsByVideo(ctx context.Context, videoID uuid.UUID) ([]*vidgraph.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*vidgraph.Comment
	for _, id := range r.commentOrder {
		comment := r.comments[id]
		if comment.VideoID != videoID {
			continue
		}
		commentCopy := *comment
		result = append(result, &commentCopy)
	}
	return result, nil
}

// Tweets

func (r *Repository) CreateTweet(ctx context.Context, tweet *vidgraph.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tweetCopy := *tweet
	r.tweets[tweet.ID] = &tweetCopy
	r.tweetOrder = append(r.tweetOrder, tweet.ID)
	return nil
}

func (r *Repository) GetTweet(ctx context.Context, id uuid.UUID) (*vidgraph.Tweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tweet, exists := r.tweets[id]
	if !exists {
		return nil, vidgraph.ErrTweetNotFound
	}
	tweetCopy := *tweet
	return &tweetCopy, nil
}

func (r *Repository) UpdateTweet(ctx context.Context, tweet *vidgraph.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tweets[tweet.ID]; !exists {
		return vidgraph.ErrTweetNotFound
	}
	tweetCopy := *tweet
	r.tweets[tweet.ID] = &tweetCopy
	return nil
}

func (r *Repository) DeleteTweet(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tweets[id]; !exists {
		return vidgraph.ErrTweetNotFound
	}
	delete(r.tweets, id)
	r.tweetOrder = removeID(r.tweetOrder, id)
	return nil
}

func (r *Repository) ListTweetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*vidgraph.Tweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*vidgraph.Tweet
	for _, id := range r.tweetOrder {
		tweet := r.tweets[id]
		if tweet.OwnerID != ownerID {
			continue
		}
		tweetCopy := *tweet
		result = append(result, &tweetCopy)
	}
	return result, nil
}

// Likes

func (r *Repository) FindLike(ctx context.Context, target vidgraph.LikeTarget, likedBy uuid.UUID) (*vidgraph.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.likeByPair[likePairKey(target, likedBy)]
	if !exists {
		return nil, vidgraph.ErrLikeNotFound
	}
	likeCopy := *r.likes[id]
	return &likeCopy, nil
}

func (r *Repository) CreateLike(ctx context.Context, like *vidgraph.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likePairKey(like.Target, like.LikedBy)
	if _, exists := r.likeByPair[key]; exists {
		return vidgraph.Conflict("like already exists")
	}
	likeCopy := *like
	r.likes[like.ID] = &likeCopy
	r.likeByPair[key] = like.ID
	r.likeOrder = append(r.likeOrder, like.ID)
	return nil
}

func (r *Repository) DeleteLike(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	like, exists := r.likes[id]
	if !exists {
		return vidgraph.ErrLikeNotFound
	}
	delete(r.likeByPair, likePairKey(like.Target, like.LikedBy))
	delete(r.likes, id)
	r.likeOrder = removeID(r.likeOrder, id)
	return nil
}

func (r *Repository) ListLikesByActor(ctx context.Context, likedBy uuid.UUID, kind vidgraph.TargetKind) ([]*vidgraph.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*vidgraph.Like
	for _, id := range r.likeOrder {
		like := r.likes[id]
		if like.LikedBy != likedBy || like.Target.Kind != kind {
			continue
		}
		likeCopy := *like
		result = append(result, &likeCopy)
	}
	return result, nil
}

// Subscriptions

func (r *Repository) FindSubscription(ctx context.Context, channelID, subscriber uuid.UUID) (*vidgraph.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.subByPair[subPairKey(channelID, subscriber)]
	if !exists {
		return nil, vidgraph.ErrSubscriptionNotFound
	}
	subCopy := *r.subs[id]
	return &subCopy, nil
}

func (r *Repository) CreateSubscription(ctx context.Context, sub *vidgraph.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subPairKey(sub.ChannelID, sub.Subscriber)
	if _, exists := r.subByPair[key]; exists {
		return vidgraph.Conflict("subscription already exists")
	}
	subCopy := *sub
	r.subs[sub.ID] = &subCopy
	r.subByPair[key] = sub.ID
	r.subOrder = append(r.subOrder, sub.ID)
	return nil
}

func (r *Repository) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.subs[id]
	if !exists {
		return vidgraph.ErrSubscriptionNotFound
	}
	delete(r.subByPair, subPairKey(sub.ChannelID, sub.Subscriber))
	delete(r.subs, id)
	r.subOrder = removeID(r.subOrder, id)
	return nil
}

func (r *Repository) ListSubscriptionsByChannel(ctx context.Context, channelID uuid.UUID) ([]*vidgraph.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*vidgraph.Subscription
	for _, id := range r.subOrder {
		sub := r.subs[id]
		if sub.ChannelID != channelID {
			continue
		}
		subCopy := *sub
		result = append(result, &subCopy)
	}
	return result, nil
}

func (r *Repository) ListSubscriptionsBySubscriber(ctx context.Context, subscriber uuid.UUID) ([]*vidgraph.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*vidgraph.Subscription
	for _, id := range r.subOrder {
		sub := r.subs[id]
		if sub.Subscriber != subscriber {
			continue
		}
		subCopy := *sub
		result = append(result, &subCopy)
	}
	return result, nil
}

func (r *Repository) CountSubscribersByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, sub := range r.subs {
		if sub.ChannelID == channelID {
			count++
		}
	}
	return count, nil
}

// Playlists

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *vidgraph.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlistCopy := clonePlaylist(playlist)
	r.playlists[playlist.ID] = playlistCopy
	r.playlistOrder = append(r.playlistOrder, playlist.ID)
	return nil
}

func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*vidgraph.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playlist, exists := r.playlists[id]
	if !exists {
		return nil, vidgraph.ErrPlaylistNotFound
	}
	return clonePlaylist(playlist), nil
}

func (r *Repository) UpdatePlaylistInfo(ctx context.Context, id uuid.UUID, name, description string) (*vidgraph.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, exists := r.playlists[id]
	if !exists {
		return nil, vidgraph.ErrPlaylistNotFound
	}
	playlist.Name = name
	playlist.Description = description
	playlist.UpdatedAt = time.Now().UTC()
	return clonePlaylist(playlist), nil
}

func (r *Repository) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.playlists[id]; !exists {
		return vidgraph.ErrPlaylistNotFound
	}
	delete(r.playlists, id)
	r.playlistOrder = removeID(r.playlistOrder, id)
	return nil
}

func (r *Repository) ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*vidgraph.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*vidgraph.Playlist
	for _, id := range r.playlistOrder {
		playlist := r.playlists[id]
		if playlist.OwnerID != ownerID {
			continue
		}
		result = append(result, clonePlaylist(playlist))
	}
	return result, nil
}

// AddPlaylistVideo appends under the write lock so the membership check
// and the append are one atomic step.
func (r *Repository) AddPlaylistVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*vidgraph.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, exists := r.playlists[playlistID]
	if !exists {
		return nil, vidgraph.ErrPlaylistNotFound
	}
	for _, id := range playlist.VideoIDs {
		if id == videoID {
			return nil, vidgraph.ErrVideoInPlaylist
		}
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	playlist.UpdatedAt = time.Now().UTC()
	return clonePlaylist(playlist), nil
}

// RemovePlaylistVideo removes the single matching entry, keeping the
// order of the remaining members.
func (r *Repository) RemovePlaylistVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*vidgraph.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, exists := r.playlists[playlistID]
	if !exists {
		return nil, vidgraph.ErrPlaylistNotFound
	}
	for i, id := range playlist.VideoIDs {
		if id == videoID {
			playlist.VideoIDs = append(playlist.VideoIDs[:i], playlist.VideoIDs[i+1:]...)
			playlist.UpdatedAt = time.Now().UTC()
			return clonePlaylist(playlist), nil
		}
	}
	return nil, vidgraph.ErrVideoNotInPlaylist
}

func clonePlaylist(p *vidgraph.Playlist) *vidgraph.Playlist {
	playlistCopy := *p
	playlistCopy.VideoIDs = append([]uuid.UUID(nil), p.VideoIDs...)
	return &playlistCopy
}
