// Package postgres implements vidgraph.Repository on PostgreSQL via pgx.
//
// The unique-pair invariants for likes and subscriptions are enforced by
// unique indexes, and playlist membership changes run as conditional
// array updates, so the read-modify-write races of a naive
// find-then-write sequence cannot produce duplicate rows or duplicate
// members.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

// DBTX allows using either a connection pool or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements vidgraph.Repository using PostgreSQL.
type Repository struct {
	db DBTX
}

// New creates a PostgreSQL repository.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a PostgreSQL repository over a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) wrapError(op string, notFound error, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "likes") {
			return vidgraph.Conflict("like already exists")
		}
		if strings.Contains(pgErr.ConstraintName, "subscriptions") {
			return vidgraph.Conflict("subscription already exists")
		}
		return vidgraph.Conflict("duplicate entry")
	}
	return fmt.Errorf("database error in %s: %w", op, err)
}

// Users

func (r *Repository) CreateUser(ctx context.Context, user *vidgraph.User) error {
	query := `
		INSERT INTO users (
			id, username, email, full_name, avatar, cover_image,
			password, refresh_token, watch_history, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	// Same NOT NULL array column contract as playlists.video_ids.
	watchHistory := user.WatchHistory
	if watchHistory == nil {
		watchHistory = []uuid.UUID{}
	}
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.Avatar,
		user.CoverImage, user.Password, user.RefreshToken, watchHistory,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return r.wrapError("create user", vidgraph.ErrUserNotFound, err)
	}
	return nil
}

const userColumns = `id, username, email, full_name, avatar, cover_image,
	password, refresh_token, watch_history, created_at, updated_at`

func scanUser(row pgx.Row) (*vidgraph.User, error) {
	var u vidgraph.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar,
		&u.CoverImage, &u.Password, &u.RefreshToken, &u.WatchHistory,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*vidgraph.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, r.wrapError("get user", vidgraph.ErrUserNotFound, err)
	}
	return user, nil
}

func (r *Repository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*vidgraph.User, error) {
	result := make(map[uuid.UUID]*vidgraph.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, r.wrapError("get users", vidgraph.ErrUserNotFound, err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, r.wrapError("get users", vidgraph.ErrUserNotFound, err)
		}
		result[user.ID] = user
	}
	return result, rows.Err()
}

// Videos

const videoColumns = `id, title, description, video_file, thumbnail,
	duration, views, is_published, owner_id, created_at, updated_at`

func scanVideo(row pgx.Row) (*vidgraph.Video, error) {
	var v vidgraph.Video
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.VideoFile, &v.Thumbnail,
		&v.Duration, &v.Views, &v.IsPublished, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) CreateVideo(ctx context.Context, video *vidgraph.Video) error {
	query := `
		INSERT INTO videos (
			id, title, description, video_file, thumbnail, duration,
			views, is_published, owner_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		video.ID, video.Title, video.Description, video.VideoFile,
		video.Thumbnail, video.Duration, video.Views, video.IsPublished,
		video.OwnerID, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		return r.wrapError("create video", vidgraph.ErrVideoNotFound, err)
	}
	return nil
}

func (r *Repository) GetVideo(ctx context.Context, id uuid.UUID) (*vidgraph.Video, error) {
	row := r.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	video, err := scanVideo(row)
	if err != nil {
		return nil, r.wrapError("get video", vidgraph.ErrVideoNotFound, err)
	}
	return video, nil
}

func (r *Repository) GetVideosByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*vidgraph.Video, error) {
	result := make(map[uuid.UUID]*vidgraph.Video, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, r.wrapError("get videos", vidgraph.ErrVideoNotFound, err)
	}
	defer rows.Close()

	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, r.wrapError("get videos", vidgraph.ErrVideoNotFound, err)
		}
		result[video.ID] = video
	}
	return result, rows.Err()
}

func (r *Repository) UpdateVideo(ctx context.Context, video *vidgraph.Video) error {
	query := `
		UPDATE videos SET
			title = $2, description = $3, video_file = $4, thumbnail = $5,
			duration = $6, views = $7, is_published = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		video.ID, video.Title, video.Description, video.VideoFile,
		video.Thumbnail, video.Duration, video.Views, video.IsPublished,
		video.UpdatedAt)
	if err != nil {
		return r.wrapError("update video", vidgraph.ErrVideoNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrVideoNotFound
	}
	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return r.wrapError("delete video", vidgraph.ErrVideoNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrVideoNotFound
	}
	return nil
}

func (r *Repository) ListVideos(ctx context.Context, filter vidgraph.VideoFilter) ([]*vidgraph.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE 1=1`
	args := []interface{}{}

	if filter.OwnerID != uuid.Nil {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.PublishedOnly {
		query += " AND is_published"
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.wrapError("list videos", vidgraph.ErrVideoNotFound, err)
	}
	defer rows.Close()

	var result []*vidgraph.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, r.wrapError("list videos", vidgraph.ErrVideoNotFound, err)
		}
		result = append(result, video)
	}
	return result, rows.Err()
}

func (r *Repository) CountVideosByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, r.wrapError("count videos", vidgraph.ErrVideoNotFound, err)
	}
	return count, nil
}

func (r *Repository) SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return 0, r.wrapError("sum views", vidgraph.ErrVideoNotFound, err)
	}
	return total, nil
}

// Comments

const commentColumns = `id, content, video_id, owner_id, created_at, updated_at`

func scanComment(row pgx.Row) (*vidgraph.Comment, error) {
	var c vidgraph.Comment
	err := row.Scan(&c.ID, &c.Content, &c.VideoID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *vidgraph.Comment) error {
	query := `
		INSERT INTO comments (id, content, video_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		comment.ID, comment.Content, comment.VideoID, comment.OwnerID,
		comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return r.wrapError("create comment", vidgraph.ErrCommentNotFound, err)
	}
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*vidgraph.Comment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	comment, err := scanComment(row)
	if err != nil {
		return nil, r.wrapError("get comment", vidgraph.ErrCommentNotFound, err)
	}
	return comment, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *vidgraph.Comment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return r.wrapError("update comment", vidgraph.ErrCommentNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return r.wrapError("delete comment", vidgraph.ErrCommentNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) ListCommentsByVideo(ctx context.Context, videoID uuid.UUID) ([]*vidgraph.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE video_id = $1 ORDER BY created_at`, videoID)
	if err != nil {
		return nil, r.wrapError("list comments", vidgraph.ErrCommentNotFound, err)
	}
	defer rows.Close()

	var result []*vidgraph.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, r.wrapError("list comments", vidgraph.ErrCommentNotFound, err)
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}

// Tweets

const tweetColumns = `id, content, owner_id, created_at, updated_at`

func scanTweet(row pgx.Row) (*vidgraph.Tweet, error) {
	var t vidgraph.Tweet
	err := row.Scan(&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) CreateTweet(ctx context.Context, tweet *vidgraph.Tweet) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tweets (id, content, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		tweet.ID, tweet.Content, tweet.OwnerID, tweet.CreatedAt, tweet.UpdatedAt)
	if err != nil {
		return r.wrapError("create tweet", vidgraph.ErrTweetNotFound, err)
	}
	return nil
}

func (r *Repository) GetTweet(ctx context.Context, id uuid.UUID) (*vidgraph.Tweet, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, id)
	tweet, err := scanTweet(row)
	if err != nil {
		return nil, r.wrapError("get tweet", vidgraph.ErrTweetNotFound, err)
	}
	return tweet, nil
}

func (r *Repository) UpdateTweet(ctx context.Context, tweet *vidgraph.Tweet) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tweets SET content = $2, updated_at = $3 WHERE id = $1`,
		tweet.ID, tweet.Content, tweet.UpdatedAt)
	if err != nil {
		return r.wrapError("update tweet", vidgraph.ErrTweetNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrTweetNotFound
	}
	return nil
}

func (r *Repository) DeleteTweet(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return r.wrapError("delete tweet", vidgraph.ErrTweetNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrTweetNotFound
	}
	return nil
}

func (r *Repository) ListTweetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*vidgraph.Tweet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, r.wrapError("list tweets", vidgraph.ErrTweetNotFound, err)
	}
	defer rows.Close()

	var result []*vidgraph.Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, r.wrapError("list tweets", vidgraph.ErrTweetNotFound, err)
		}
		result = append(result, tweet)
	}
	return result, rows.Err()
}

// Likes

const likeColumns = `id, target_kind, target_id, liked_by, created_at, updated_at`

func scanLike(row pgx.Row) (*vidgraph.Like, error) {
	var l vidgraph.Like
	err := row.Scan(&l.ID, &l.Target.Kind, &l.Target.ID, &l.LikedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) FindLike(ctx context.Context, target vidgraph.LikeTarget, likedBy uuid.UUID) (*vidgraph.Like, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+likeColumns+` FROM likes WHERE target_kind = $1 AND target_id = $2 AND liked_by = $3`,
		target.Kind, target.ID, likedBy)
	like, err := scanLike(row)
	if err != nil {
		return nil, r.wrapError("find like", vidgraph.ErrLikeNotFound, err)
	}
	return like, nil
}

func (r *Repository) CreateLike(ctx context.Context, like *vidgraph.Like) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO likes (id, target_kind, target_id, liked_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		like.ID, like.Target.Kind, like.Target.ID, like.LikedBy, like.CreatedAt, like.UpdatedAt)
	if err != nil {
		return r.wrapError("create like", vidgraph.ErrLikeNotFound, err)
	}
	return nil
}

func (r *Repository) DeleteLike(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return r.wrapError("delete like", vidgraph.ErrLikeNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrLikeNotFound
	}
	return nil
}

func (r *Repository) ListLikesByActor(ctx context.Context, likedBy uuid.UUID, kind vidgraph.TargetKind) ([]*vidgraph.Like, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+likeColumns+` FROM likes WHERE liked_by = $1 AND target_kind = $2 ORDER BY created_at`,
		likedBy, kind)
	if err != nil {
		return nil, r.wrapError("list likes", vidgraph.ErrLikeNotFound, err)
	}
	defer rows.Close()

	var result []*vidgraph.Like
	for rows.Next() {
		like, err := scanLike(rows)
		if err != nil {
			return nil, r.wrapError("list likes", vidgraph.ErrLikeNotFound, err)
		}
		result = append(result, like)
	}
	return result, rows.Err()
}

// Subscriptions

const subscriptionColumns = `id, channel_id, subscriber_id, created_at, updated_at`

func scanSubscription(row pgx.Row) (*vidgraph.Subscription, error) {
	var s vidgraph.Subscription
	err := row.Scan(&s.ID, &s.ChannelID, &s.Subscriber, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) FindSubscription(ctx context.Context, channelID, subscriber uuid.UUID) (*vidgraph.Subscription, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2`,
		channelID, subscriber)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, r.wrapError("find subscription", vidgraph.ErrSubscriptionNotFound, err)
	}
	return sub, nil
}

func (r *Repository) CreateSubscription(ctx context.Context, sub *vidgraph.Subscription) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subscriptions (id, channel_id, subscriber_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.ChannelID, sub.Subscriber, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return r.wrapError("create subscription", vidgraph.ErrSubscriptionNotFound, err)
	}
	return nil
}

func (r *Repository) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return r.wrapError("delete subscription", vidgraph.ErrSubscriptionNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrSubscriptionNotFound
	}
	return nil
}

func (r *Repository) ListSubscriptionsByChannel(ctx context.Context, channelID uuid.UUID) ([]*vidgraph.Subscription, error) {
	return r.listSubscriptions(ctx, `channel_id`, channelID)
}

func (r *Repository) ListSubscriptionsBySubscriber(ctx context.Context, subscriber uuid.UUID) ([]*vidgraph.Subscription, error) {
	return r.listSubscriptions(ctx, `subscriber_id`, subscriber)
}

func (r *Repository) listSubscriptions(ctx context.Context, column string, id uuid.UUID) ([]*vidgraph.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE `+column+` = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, r.wrapError("list subscriptions", vidgraph.ErrSubscriptionNotFound, err)
	}
	defer rows.Close()

	var result []*vidgraph.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, r.wrapError("list subscriptions", vidgraph.ErrSubscriptionNotFound, err)
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (r *Repository) CountSubscribersByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID).Scan(&count)
	if err != nil {
		return 0, r.wrapError("count subscribers", vidgraph.ErrSubscriptionNotFound, err)
	}
	return count, nil
}

// Playlists

const playlistColumns = `id, name, description, owner_id, video_ids, created_at, updated_at`

func scanPlaylist(row pgx.Row) (*vidgraph.Playlist, error) {
	var p vidgraph.Playlist
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.VideoIDs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *vidgraph.Playlist) error {
	// A nil slice would encode as SQL NULL, violating the NOT NULL column
	// and poisoning the ANY() membership guards.
	videoIDs := playlist.VideoIDs
	if videoIDs == nil {
		videoIDs = []uuid.UUID{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO playlists (id, name, description, owner_id, video_ids, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		playlist.ID, playlist.Name, playlist.Description, playlist.OwnerID,
		videoIDs, playlist.CreatedAt, playlist.UpdatedAt)
	if err != nil {
		return r.wrapError("create playlist", vidgraph.ErrPlaylistNotFound, err)
	}
	return nil
}

func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*vidgraph.Playlist, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id)
	playlist, err := scanPlaylist(row)
	if err != nil {
		return nil, r.wrapError("get playlist", vidgraph.ErrPlaylistNotFound, err)
	}
	return playlist, nil
}

func (r *Repository) UpdatePlaylistInfo(ctx context.Context, id uuid.UUID, name, description string) (*vidgraph.Playlist, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE playlists SET name = $2, description = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+playlistColumns,
		id, name, description)
	playlist, err := scanPlaylist(row)
	if err != nil {
		return nil, r.wrapError("update playlist", vidgraph.ErrPlaylistNotFound, err)
	}
	return playlist, nil
}

func (r *Repository) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return r.wrapError("delete playlist", vidgraph.ErrPlaylistNotFound, err)
	}
	if tag.RowsAffected() == 0 {
		return vidgraph.ErrPlaylistNotFound
	}
	return nil
}

func (r *Repository) ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*vidgraph.Playlist, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, r.wrapError("list playlists", vidgraph.ErrPlaylistNotFound, err)
	}
	defer rows.Close()

	var result []*vidgraph.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, r.wrapError("list playlists", vidgraph.ErrPlaylistNotFound, err)
		}
		result = append(result, playlist)
	}
	return result, rows.Err()
}

// AddPlaylistVideo appends in one conditional statement: the WHERE clause
// rejects the append when the video is already a member, so two
// concurrent adds cannot both slip past a separate membership check.
func (r *Repository) AddPlaylistVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*vidgraph.Playlist, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE playlists
		 SET video_ids = array_append(video_ids, $2), updated_at = now()
		 WHERE id = $1 AND NOT ($2 = ANY(video_ids))
		 RETURNING `+playlistColumns,
		playlistID, videoID)
	playlist, err := scanPlaylist(row)
	if err == nil {
		return playlist, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, r.wrapError("add playlist video", vidgraph.ErrPlaylistNotFound, err)
	}

	// Zero rows: either the playlist is gone or the video is already a
	// member. Disambiguate with a point lookup.
	if _, err := r.GetPlaylist(ctx, playlistID); err != nil {
		return nil, err
	}
	return nil, vidgraph.ErrVideoInPlaylist
}

// RemovePlaylistVideo removes the member in one conditional statement,
// preserving the order of the remaining entries.
func (r *Repository) RemovePlaylistVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*vidgraph.Playlist, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE playlists
		 SET video_ids = array_remove(video_ids, $2), updated_at = now()
		 WHERE id = $1 AND $2 = ANY(video_ids)
		 RETURNING `+playlistColumns,
		playlistID, videoID)
	playlist, err := scanPlaylist(row)
	if err == nil {
		return playlist, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, r.wrapError("remove playlist video", vidgraph.ErrPlaylistNotFound, err)
	}

	if _, err := r.GetPlaylist(ctx, playlistID); err != nil {
		return nil, err
	}
	return nil, vidgraph.ErrVideoNotInPlaylist
}
