package vidgraph

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// The join helpers materialize foreign-key references into embedded
// sub-documents at read time. Joins never mutate underlying rows; a
// dangling reference leaves the embedded value nil instead of failing the
// batch. Pagination is always applied after the joins, sorting before
// pagination.

// publicUser projects a user row onto the public allow-list.
func publicUser(u *User) *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// videoRef projects a video row onto the minimal embedded allow-list.
func videoRef(v *Video) *VideoRef {
	if v == nil {
		return nil
	}
	return &VideoRef{
		ID:          v.ID,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		OwnerID:     v.OwnerID,
	}
}

// resolveOwners batch-loads the users referenced by ids and returns them
// keyed by id. Missing users are simply absent from the map.
func (s *service) resolveOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*User{}, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()
	users, err := s.repo.GetUsersByIDs(ctx, unique)
	if err != nil {
		return nil, s.classify(ctx, err)
	}
	return users, nil
}

// paginate returns the page window over rows: skip size*(number-1), then
// cap at size entries.
func paginate[T any](rows []T, page Page) []T {
	page = page.normalize()
	skip := page.Size * (page.Number - 1)
	if skip >= len(rows) {
		return nil
	}
	rows = rows[skip:]
	if len(rows) > page.Size {
		rows = rows[:page.Size]
	}
	return rows
}

// sortVideos orders rows by a requested field before pagination. An
// unknown or empty field leaves scan order unchanged.
func sortVideos(rows []*Video, field string, asc bool) {
	var less func(a, b *Video) bool
	switch field {
	case "created_at", "createdAt":
		less = func(a, b *Video) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "views":
		less = func(a, b *Video) bool { return a.Views < b.Views }
	case "duration":
		less = func(a, b *Video) bool { return a.Duration < b.Duration }
	case "title":
		less = func(a, b *Video) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	default:
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

// videoViews joins each video's owner as a PublicUser.
func (s *service) videoViews(ctx context.Context, videos []*Video) ([]*VideoView, error) {
	ownerIDs := make([]uuid.UUID, 0, len(videos))
	for _, v := range videos {
		ownerIDs = append(ownerIDs, v.OwnerID)
	}
	owners, err := s.resolveOwners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, &VideoView{
			Video: *v,
			Owner: publicUser(owners[v.OwnerID]),
		})
	}
	return views, nil
}
