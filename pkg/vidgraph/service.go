package vidgraph

import (
	"context"

	"github.com/google/uuid"
)

// Service is the data-access core: the relational join and mutation layer
// over the entity store plus the asset lifecycle coordination against the
// blob store. Operations map 1:1 to the resource actions the transport
// layer exposes; every operation validates identifier shape before the
// first store access.
type Service interface {
	// Comments
	ListVideoComments(ctx context.Context, req ListVideoCommentsRequest) ([]*CommentView, error)
	AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, req DeleteCommentRequest) (*Comment, error)

	// Likes
	ToggleVideoLike(ctx context.Context, videoID string, actor uuid.UUID) (*ToggleResult, error)
	ToggleCommentLike(ctx context.Context, commentID string, actor uuid.UUID) (*ToggleResult, error)
	ToggleTweetLike(ctx context.Context, tweetID string, actor uuid.UUID) (*ToggleResult, error)
	ListLikedVideos(ctx context.Context, actor uuid.UUID) ([]*LikedVideoView, error)

	// Playlists
	CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*Playlist, error)
	GetPlaylist(ctx context.Context, playlistID string) (*PlaylistView, error)
	ListUserPlaylists(ctx context.Context, userID string) ([]*PlaylistView, error)
	UpdatePlaylist(ctx context.Context, req UpdatePlaylistRequest) (*Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID string, actor uuid.UUID) error
	AddVideoToPlaylist(ctx context.Context, req PlaylistVideoRequest) (*Playlist, error)
	RemoveVideoFromPlaylist(ctx context.Context, req PlaylistVideoRequest) (*Playlist, error)

	// Subscriptions
	ToggleSubscription(ctx context.Context, channelID string, subscriber uuid.UUID) (*ToggleResult, error)
	ListChannelSubscribers(ctx context.Context, channelID string) ([]*SubscriberView, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*ChannelView, error)

	// Dashboard
	GetChannelStats(ctx context.Context, channel uuid.UUID) (*ChannelStats, error)
	ListChannelVideos(ctx context.Context, channel uuid.UUID) ([]*VideoView, error)

	// Tweets
	CreateTweet(ctx context.Context, req CreateTweetRequest) (*TweetView, error)
	ListUserTweets(ctx context.Context, userID string) ([]*TweetView, error)
	UpdateTweet(ctx context.Context, req UpdateTweetRequest) (*TweetView, error)
	DeleteTweet(ctx context.Context, tweetID string, actor uuid.UUID) error

	// Videos
	ListVideos(ctx context.Context, req ListVideosRequest) ([]*VideoView, error)
	PublishVideo(ctx context.Context, req PublishVideoRequest) (*Video, error)
	GetVideo(ctx context.Context, videoID string) (*VideoView, error)
	UpdateVideo(ctx context.Context, req UpdateVideoRequest) (*Video, error)
	DeleteVideo(ctx context.Context, videoID string) error
	TogglePublishStatus(ctx context.Context, videoID string) (*Video, error)
}
