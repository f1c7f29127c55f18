// Command demo walks the vidgraph service end to end against an
// in-memory repository (or Postgres when VIDGRAPH_PG_* is set): it seeds
// two users, publishes a video from staged files, comments, likes,
// subscribes and builds a playlist, printing each result.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
	memoryrepo "github.com/vidgraph/vidgraph/pkg/vidgraph/repo/memory"
	pgrepo "github.com/vidgraph/vidgraph/pkg/vidgraph/repo/postgres"
	memorystorage "github.com/vidgraph/vidgraph/pkg/vidgraph/storage/memory"
)

type DbConfig struct {
	Enabled  bool   `env:"VIDGRAPH_PG_ENABLED" env-default:"false"`
	Port     uint16 `env:"VIDGRAPH_PG_PORT" env-default:"5432"`
	Host     string `env:"VIDGRAPH_PG_HOST" env-default:"localhost"`
	Name     string `env:"VIDGRAPH_PG_NAME" env-default:"vidgraph_db"`
	User     string `env:"VIDGRAPH_PG_USER" env-default:"vidgraph"`
	Password string `env:"VIDGRAPH_PG_PASSWORD" env-default:"pwd"`
}

func (c DbConfig) toDatabaseUrl() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

func buildRepository(ctx context.Context, config DbConfig) (vidgraph.Repository, error) {
	if !config.Enabled {
		return memoryrepo.New(), nil
	}
	pool, err := pgxpool.New(ctx, config.toDatabaseUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pgrepo.NewWithPool(pool), nil
}

func stage(content, field string) (*vidgraph.StagedFile, error) {
	tmp, err := os.CreateTemp("", "vidgraph-demo-*")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	return &vidgraph.StagedFile{Field: field, Path: tmp.Name()}, nil
}

func main() {
	ctx := context.Background()

	var config DbConfig
	cleanenv.ReadEnv(&config)

	repo, err := buildRepository(ctx, config)
	if err != nil {
		slog.Error("Failed to build repository", "err", err)
		os.Exit(-1)
	}

	svc, err := vidgraph.New(
		vidgraph.WithRepository(repo),
		vidgraph.WithBlobStore(memorystorage.New(memorystorage.WithDurationProbe(func(string, []byte) float64 { return 42.5 }))),
		vidgraph.WithEventSink(vidgraph.NewLogEventSink(nil)),
	)
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(-1)
	}

	now := time.Now().UTC()
	creator := &vidgraph.User{
		ID: uuid.New(), Username: "creator", Email: "creator@example.com",
		FullName: "Demo Creator", Password: "secret", CreatedAt: now, UpdatedAt: now,
	}
	viewer := &vidgraph.User{
		ID: uuid.New(), Username: "viewer", Email: "viewer@example.com",
		FullName: "Demo Viewer", Password: "secret", CreatedAt: now, UpdatedAt: now,
	}
	for _, u := range []*vidgraph.User{creator, viewer} {
		if err := repo.CreateUser(ctx, u); err != nil {
			slog.Error("Failed to seed user", "username", u.Username, "err", err)
			os.Exit(-1)
		}
	}

	videoFile, err := stage("demo video payload", "videoFile")
	if err != nil {
		slog.Error("Failed to stage video file", "err", err)
		os.Exit(-1)
	}
	thumbnail, err := stage("demo thumbnail payload", "thumbnail")
	if err != nil {
		slog.Error("Failed to stage thumbnail", "err", err)
		os.Exit(-1)
	}

	video, err := svc.PublishVideo(ctx, vidgraph.PublishVideoRequest{
		Title:       "First upload",
		Description: "A demo clip",
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Actor:       creator.ID,
	})
	if err != nil {
		slog.Error("Failed to publish video", "err", err)
		os.Exit(-1)
	}
	slog.Info("Published video", "id", video.ID, "duration", video.Duration, "file", video.VideoFile)

	comment, err := svc.AddComment(ctx, vidgraph.AddCommentRequest{
		VideoID: video.ID.String(),
		Content: "Great first upload!",
		Actor:   viewer.ID,
	})
	if err != nil {
		slog.Error("Failed to add comment", "err", err)
		os.Exit(-1)
	}
	slog.Info("Added comment", "id", comment.ID)

	like, err := svc.ToggleVideoLike(ctx, video.ID.String(), viewer.ID)
	if err != nil {
		slog.Error("Failed to toggle like", "err", err)
		os.Exit(-1)
	}
	slog.Info("Toggled like", "state", like.State)

	sub, err := svc.ToggleSubscription(ctx, creator.ID.String(), viewer.ID)
	if err != nil {
		slog.Error("Failed to toggle subscription", "err", err)
		os.Exit(-1)
	}
	slog.Info("Toggled subscription", "state", sub.State)

	playlist, err := svc.CreatePlaylist(ctx, vidgraph.CreatePlaylistRequest{
		Name:        "Favorites",
		Description: "Videos worth rewatching",
		Actor:       viewer.ID,
	})
	if err != nil {
		slog.Error("Failed to create playlist", "err", err)
		os.Exit(-1)
	}
	if _, err := svc.AddVideoToPlaylist(ctx, vidgraph.PlaylistVideoRequest{
		PlaylistID: playlist.ID.String(),
		VideoID:    video.ID.String(),
		Actor:      viewer.ID,
	}); err != nil {
		slog.Error("Failed to add video to playlist", "err", err)
		os.Exit(-1)
	}
	slog.Info("Built playlist", "id", playlist.ID)

	stats, err := svc.GetChannelStats(ctx, creator.ID)
	if err != nil {
		slog.Error("Failed to get channel stats", "err", err)
		os.Exit(-1)
	}
	slog.Info("Channel stats", "videos", stats.VideoCount, "subscribers", stats.SubscriberCount, "views", stats.TotalViews)
}
