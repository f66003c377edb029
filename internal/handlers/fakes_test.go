package handlers_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"showlog/internal/models"
)

// In-memory doubles for the storage and session layers so the router can
// be exercised end to end without postgres or redis.

type memSessions struct {
	tokens map[string]string
	nextID int
}

func newMemSessions() *memSessions {
	return &memSessions{tokens: make(map[string]string)}
}

func (s *memSessions) Create(_ context.Context, userID string) (string, error) {
	s.nextID++
	token := fmt.Sprintf("tok-%d", s.nextID)
	s.tokens[token] = userID
	return token, nil
}

func (s *memSessions) Lookup(_ context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", fmt.Errorf("session not found")
	}
	return userID, nil
}

func (s *memSessions) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email || u.Nickname == user.Nickname {
			return models.ErrDuplicateEntry
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memUserRepo) GetByNickname(_ context.Context, nickname string) (*models.User, error) {
	for _, u := range r.users {
		if u.Nickname == nickname {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

type memListRepo struct {
	lists  map[int]*models.List
	items  map[int]*models.ListItem
	nextID int
}

func newMemListRepo() *memListRepo {
	return &memListRepo{
		lists: make(map[int]*models.List),
		items: make(map[int]*models.ListItem),
	}
}

func (r *memListRepo) Create(_ context.Context, userID, name string, isPublic bool) (*models.List, error) {
	r.nextID++
	list := &models.List{
		ID:        r.nextID,
		UserID:    userID,
		Name:      name,
		IsPublic:  isPublic,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.lists[list.ID] = list
	cp := *list
	return &cp, nil
}

func (r *memListRepo) GetByID(_ context.Context, id int) (*models.List, error) {
	if l, ok := r.lists[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r *memListRepo) Update(_ context.Context, list *models.List) error {
	if _, ok := r.lists[list.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *list
	r.lists[list.ID] = &cp
	return nil
}

func (r *memListRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.lists[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.lists, id)
	for itemID, item := range r.items {
		if item.ListID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *memListRepo) ListByUser(_ context.Context, userID string, includePrivate bool) ([]models.List, error) {
	var out []models.List
	for _, l := range r.lists {
		if l.UserID == userID && (l.IsPublic || includePrivate) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memListRepo) InsertItem(_ context.Context, listID, mediaID int) (*models.ListItem, error) {
	if _, ok := r.lists[listID]; !ok {
		return nil, models.ErrNotFound
	}
	max := 0
	for _, item := range r.items {
		if item.ListID == listID {
			if item.MediaID == mediaID {
				return nil, models.ErrDuplicateEntry
			}
			if item.Position > max {
				max = item.Position
			}
		}
	}
	r.nextID++
	item := &models.ListItem{
		ID:       r.nextID,
		ListID:   listID,
		MediaID:  mediaID,
		Position: max + 1,
		Status:   models.StatusPlanned,
		AddedAt:  time.Now(),
	}
	r.items[item.ID] = item
	cp := *item
	return &cp, nil
}

func (r *memListRepo) DeleteItemByMedia(_ context.Context, listID, mediaID int) (bool, error) {
	for id, item := range r.items {
		if item.ListID == listID && item.MediaID == mediaID {
			delete(r.items, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *memListRepo) GetItem(_ context.Context, itemID int) (*models.ListItem, error) {
	if item, ok := r.items[itemID]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r *memListRepo) MoveItem(_ context.Context, itemID, targetListID int) (*models.ListItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	max := 0
	for _, other := range r.items {
		if other.ListID == targetListID {
			if other.MediaID == item.MediaID {
				return nil, models.ErrDuplicateEntry
			}
			if other.Position > max {
				max = other.Position
			}
		}
	}
	item.ListID = targetListID
	item.Position = max + 1
	cp := *item
	return &cp, nil
}

func (r *memListRepo) ReorderItems(_ context.Context, listID int, orderedIDs []int) error {
	for i, id := range orderedIDs {
		if item, ok := r.items[id]; ok && item.ListID == listID {
			item.Position = i + 1
		}
	}
	return nil
}

func (r *memListRepo) ItemsByList(_ context.Context, listID int) ([]models.ListItemWithMedia, error) {
	var out []models.ListItemWithMedia
	for _, item := range r.items {
		if item.ListID == listID {
			out = append(out, models.ListItemWithMedia{ListItem: *item})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memListRepo) UpdateItemStatus(_ context.Context, itemID int, status models.WatchStatus) (*models.ListItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	item.Status = status
	cp := *item
	return &cp, nil
}

type memMediaRepo struct {
	media  map[int]*models.Media
	nextID int
}

func newMemMediaRepo() *memMediaRepo {
	return &memMediaRepo{media: make(map[int]*models.Media)}
}

func (r *memMediaRepo) Create(_ context.Context, media *models.Media) error {
	if media.TMDBID != nil {
		for _, m := range r.media {
			if m.TMDBID != nil && *m.TMDBID == *media.TMDBID {
				return models.ErrDuplicateEntry
			}
		}
	}
	r.nextID++
	media.ID = r.nextID
	media.CreatedAt = time.Now()
	media.UpdatedAt = media.CreatedAt
	cp := *media
	r.media[media.ID] = &cp
	return nil
}

func (r *memMediaRepo) GetByID(_ context.Context, id int) (*models.Media, error) {
	if m, ok := r.media[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r *memMediaRepo) GetByTMDBID(_ context.Context, tmdbID int, mediaType models.MediaType) (*models.Media, error) {
	for _, m := range r.media {
		if m.TMDBID != nil && *m.TMDBID == tmdbID && m.MediaType == mediaType {
			cp := *m
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memMediaRepo) Update(_ context.Context, media *models.Media) error {
	if _, ok := r.media[media.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *media
	cp.UpdatedAt = time.Now()
	r.media[media.ID] = &cp
	return nil
}

func (r *memMediaRepo) ListStale(_ context.Context, olderThan time.Time, limit int) ([]models.Media, error) {
	var out []models.Media
	for _, m := range r.media {
		if m.UpdatedAt.Before(olderThan) && len(out) < limit {
			out = append(out, *m)
		}
	}
	return out, nil
}

type memEpisodeRepo struct {
	episodes map[string]*models.WatchedEpisode
	nextID   int
}

func newMemEpisodeRepo() *memEpisodeRepo {
	return &memEpisodeRepo{episodes: make(map[string]*models.WatchedEpisode)}
}

func epKey(userID string, mediaID, season, episode int) string {
	return fmt.Sprintf("%s/%d/%d/%d", userID, mediaID, season, episode)
}

func (r *memEpisodeRepo) Upsert(_ context.Context, userID string, mediaID, season, episode int) (*models.WatchedEpisode, error) {
	key := epKey(userID, mediaID, season, episode)
	if ep, ok := r.episodes[key]; ok {
		cp := *ep
		return &cp, nil
	}
	r.nextID++
	ep := &models.WatchedEpisode{
		ID:            r.nextID,
		UserID:        userID,
		MediaID:       mediaID,
		SeasonNumber:  season,
		EpisodeNumber: episode,
		WatchedAt:     time.Now(),
	}
	r.episodes[key] = ep
	cp := *ep
	return &cp, nil
}

func (r *memEpisodeRepo) Delete(_ context.Context, userID string, mediaID, season, episode int) (bool, error) {
	key := epKey(userID, mediaID, season, episode)
	if _, ok := r.episodes[key]; ok {
		delete(r.episodes, key)
		return true, nil
	}
	return false, nil
}

func (r *memEpisodeRepo) ListByShow(_ context.Context, userID string, mediaID int) ([]models.WatchedEpisode, error) {
	var out []models.WatchedEpisode
	for _, ep := range r.episodes {
		if ep.UserID == userID && ep.MediaID == mediaID {
			out = append(out, *ep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonNumber != out[j].SeasonNumber {
			return out[i].SeasonNumber < out[j].SeasonNumber
		}
		return out[i].EpisodeNumber < out[j].EpisodeNumber
	})
	return out, nil
}

func (r *memEpisodeRepo) ListByUser(_ context.Context, userID string, limit int) ([]models.WatchedEpisode, error) {
	var out []models.WatchedEpisode
	for _, ep := range r.episodes {
		if ep.UserID == userID {
			out = append(out, *ep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WatchedAt.After(out[j].WatchedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memEpisodeRepo) CountByShow(_ context.Context, userID string, mediaID int) (int, error) {
	count := 0
	for _, ep := range r.episodes {
		if ep.UserID == userID && ep.MediaID == mediaID {
			count++
		}
	}
	return count, nil
}

func (r *memEpisodeRepo) Exists(_ context.Context, userID string, mediaID, season, episode int) (bool, error) {
	_, ok := r.episodes[epKey(userID, mediaID, season, episode)]
	return ok, nil
}

type memProfileRepo struct {
	profiles map[string]*models.PublicProfile
	nextID   int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*models.PublicProfile)}
}

func (r *memProfileRepo) Create(_ context.Context, userID string) (*models.PublicProfile, error) {
	if _, ok := r.profiles[userID]; ok {
		return nil, models.ErrDuplicateEntry
	}
	r.nextID++
	profile := &models.PublicProfile{
		ID:                  r.nextID,
		UserID:              userID,
		IsVisible:           true,
		ShowWatchedEpisodes: true,
		ShowLists:           true,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	r.profiles[userID] = profile
	cp := *profile
	return &cp, nil
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID string) (*models.PublicProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r *memProfileRepo) GetByNickname(ctx context.Context, nickname string) (*models.PublicProfile, error) {
	return nil, models.ErrNotFound
}

func (r *memProfileRepo) Update(_ context.Context, profile *models.PublicProfile) error {
	if _, ok := r.profiles[profile.UserID]; !ok {
		return models.ErrNotFound
	}
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

type memMetadataClient struct {
	movies map[int]*models.TMDBMovieDetails
	shows  map[int]*models.TMDBTVDetails
}

func newMemMetadataClient() *memMetadataClient {
	return &memMetadataClient{
		movies: make(map[int]*models.TMDBMovieDetails),
		shows:  make(map[int]*models.TMDBTVDetails),
	}
}

func (c *memMetadataClient) SearchMovies(_ context.Context, query string) (*models.TMDBSearchResponse, error) {
	resp := &models.TMDBSearchResponse{}
	for _, m := range c.movies {
		resp.Results = append(resp.Results, models.TMDBResult{ID: m.ID, Title: m.Title})
	}
	resp.TotalResults = len(resp.Results)
	return resp, nil
}

func (c *memMetadataClient) SearchTVShows(_ context.Context, query string) (*models.TMDBSearchResponse, error) {
	resp := &models.TMDBSearchResponse{}
	for _, s := range c.shows {
		resp.Results = append(resp.Results, models.TMDBResult{ID: s.ID, Name: s.Name})
	}
	resp.TotalResults = len(resp.Results)
	return resp, nil
}

func (c *memMetadataClient) GetMovieDetails(_ context.Context, tmdbID int) (*models.TMDBMovieDetails, error) {
	if m, ok := c.movies[tmdbID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, fmt.Errorf("movie %d not found", tmdbID)
}

func (c *memMetadataClient) GetTVDetails(_ context.Context, tmdbID int) (*models.TMDBTVDetails, error) {
	if s, ok := c.shows[tmdbID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, fmt.Errorf("tv show %d not found", tmdbID)
}

func (c *memMetadataClient) GetMovieCredits(_ context.Context, tmdbID int) (*models.TMDBCredits, error) {
	return &models.TMDBCredits{ID: tmdbID}, nil
}

func (c *memMetadataClient) GetTVCredits(_ context.Context, tmdbID int) (*models.TMDBCredits, error) {
	return &models.TMDBCredits{ID: tmdbID}, nil
}
