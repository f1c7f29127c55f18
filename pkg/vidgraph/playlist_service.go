package vidgraph

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreatePlaylist creates an empty playlist owned by the actor.
func (s *service) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*Playlist, error) {
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", req.Description)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	playlist := &Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     req.Actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.repo.CreatePlaylist(callCtx, playlist); err != nil {
		return nil, &EntityError{Entity: "playlist", ID: playlist.ID, Op: "create", Err: s.classify(callCtx, err)}
	}
	return playlist, nil
}

// GetPlaylist returns a playlist with its owner and member videos
// resolved. Member order is the stored order.
func (s *service) GetPlaylist(ctx context.Context, playlistID string) (*PlaylistView, error) {
	id, err := parseID("playlist", playlistID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	playlist, err := s.repo.GetPlaylist(callCtx, id)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	view, err := s.playlistView(ctx, playlist)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListUserPlaylists returns a user's playlists as joined views.
func (s *service) ListUserPlaylists(ctx context.Context, userID string) ([]*PlaylistView, error) {
	owner, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	playlists, err := s.repo.ListPlaylistsByOwner(callCtx, owner)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	views := make([]*PlaylistView, 0, len(playlists))
	for _, p := range playlists {
		view, err := s.playlistView(ctx, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdatePlaylist replaces name and description. Both fields are required;
// the repository writes only those two fields.
func (s *service) UpdatePlaylist(ctx context.Context, req UpdatePlaylistRequest) (*Playlist, error) {
	id, err := parseID("playlist", req.PlaylistID)
	if err != nil {
		return nil, err
	}

	playlist, err := s.ownedPlaylist(ctx, id, req.Actor)
	if err != nil {
		return nil, err
	}

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", req.Description)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	updated, err := s.repo.UpdatePlaylistInfo(callCtx, playlist.ID, name, description)
	if err != nil {
		return nil, &EntityError{Entity: "playlist", ID: id, Op: "update", Err: s.classify(callCtx, err)}
	}
	return updated, nil
}

// DeletePlaylist removes the actor's playlist.
func (s *service) DeletePlaylist(ctx context.Context, playlistID string, actor uuid.UUID) error {
	id, err := parseID("playlist", playlistID)
	if err != nil {
		return err
	}

	if _, err := s.ownedPlaylist(ctx, id, actor); err != nil {
		return err
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.repo.DeletePlaylist(callCtx, id); err != nil {
		return &EntityError{Entity: "playlist", ID: id, Op: "delete", Err: s.classify(callCtx, err)}
	}
	return nil
}

// AddVideoToPlaylist appends a video at the end of the member list. The
// append is a single conditional update in the store, so a concurrent
// duplicate add cannot slip past the membership check.
func (s *service) AddVideoToPlaylist(ctx context.Context, req PlaylistVideoRequest) (*Playlist, error) {
	playlistID, err := parseID("playlist", req.PlaylistID)
	if err != nil {
		return nil, err
	}
	videoID, err := parseID("video", req.VideoID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedPlaylist(ctx, playlistID, req.Actor); err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	_, err = s.repo.GetVideo(callCtx, videoID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	playlist, err := s.repo.AddPlaylistVideo(callCtx, playlistID, videoID)
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	return playlist, nil
}

// RemoveVideoFromPlaylist removes the single matching member, preserving
// the relative order of the rest.
func (s *service) RemoveVideoFromPlaylist(ctx context.Context, req PlaylistVideoRequest) (*Playlist, error) {
	playlistID, err := parseID("playlist", req.PlaylistID)
	if err != nil {
		return nil, err
	}
	videoID, err := parseID("video", req.VideoID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedPlaylist(ctx, playlistID, req.Actor); err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	_, err = s.repo.GetVideo(callCtx, videoID)
	cancel()
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	callCtx, cancel = s.callCtx(ctx)
	defer cancel()
	playlist, err := s.repo.RemovePlaylistVideo(callCtx, playlistID, videoID)
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	return playlist, nil
}

// ownedPlaylist loads a playlist and hides it from non-owners.
func (s *service) ownedPlaylist(ctx context.Context, id, actor uuid.UUID) (*Playlist, error) {
	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	playlist, err := s.repo.GetPlaylist(callCtx, id)
	if err != nil {
		return nil, s.classify(callCtx, err)
	}
	if playlist.OwnerID != actor {
		return nil, ErrPlaylistNotFound
	}
	return playlist, nil
}

// playlistView joins the owner projection and the member video rows,
// keeping stored member order and skipping dangling ids.
func (s *service) playlistView(ctx context.Context, playlist *Playlist) (*PlaylistView, error) {
	owners, err := s.resolveOwners(ctx, []uuid.UUID{playlist.OwnerID})
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()
	videos, err := s.repo.GetVideosByIDs(callCtx, playlist.VideoIDs)
	if err != nil {
		return nil, s.classify(callCtx, err)
	}

	members := make([]*Video, 0, len(playlist.VideoIDs))
	for _, id := range playlist.VideoIDs {
		if v, ok := videos[id]; ok {
			members = append(members, v)
		}
	}

	return &PlaylistView{
		Playlist: *playlist,
		Owner:    publicUser(owners[playlist.OwnerID]),
		Videos:   members,
	}, nil
}
