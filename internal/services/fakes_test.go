package services_test

import (
	"context"
	"sort"
	"time"

	"showlog/internal/models"
)

// In-memory repository fakes mirroring the storage constraints the real
// Postgres schema enforces: unique (list, media) pairs, unique watched
// episode quadruples, unique user handles, one profile per user.

type fakeListRepo struct {
	lists      map[int]*models.List
	items      map[int]*models.ListItem
	media      *fakeMediaRepo
	nextListID int
	nextItemID int
}

func newFakeListRepo(media *fakeMediaRepo) *fakeListRepo {
	return &fakeListRepo{
		lists: make(map[int]*models.List),
		items: make(map[int]*models.ListItem),
		media: media,
	}
}

func (r *fakeListRepo) Create(_ context.Context, userID, name string, isPublic bool) (*models.List, error) {
	r.nextListID++
	list := &models.List{
		ID:        r.nextListID,
		UserID:    userID,
		Name:      name,
		IsPublic:  isPublic,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.lists[list.ID] = list
	copied := *list
	return &copied, nil
}

func (r *fakeListRepo) GetByID(_ context.Context, id int) (*models.List, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *list
	return &copied, nil
}

func (r *fakeListRepo) Update(_ context.Context, list *models.List) error {
	if _, ok := r.lists[list.ID]; !ok {
		return models.ErrNotFound
	}
	copied := *list
	copied.UpdatedAt = time.Now()
	r.lists[list.ID] = &copied
	return nil
}

func (r *fakeListRepo) Delete(_ context.Context, id int) error {
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

func (r *fakeListRepo) ListByUser(_ context.Context, userID string, includePrivate bool) ([]models.List, error) {
	var lists []models.List
	for _, list := range r.lists {
		if list.UserID != userID {
			continue
		}
		if !includePrivate && !list.IsPublic {
			continue
		}
		lists = append(lists, *list)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID > lists[j].ID })
	return lists, nil
}

func (r *fakeListRepo) InsertItem(_ context.Context, listID, mediaID int) (*models.ListItem, error) {
	if _, ok := r.lists[listID]; !ok {
		return nil, models.ErrNotFound
	}
	for _, item := range r.items {
		if item.ListID == listID && item.MediaID == mediaID {
			return nil, models.ErrDuplicateEntry
		}
	}
	r.nextItemID++
	item := &models.ListItem{
		ID:       r.nextItemID,
		ListID:   listID,
		MediaID:  mediaID,
		Position: r.maxPosition(listID) + 1,
		Status:   models.StatusPlanned,
		AddedAt:  time.Now(),
	}
	r.items[item.ID] = item
	copied := *item
	return &copied, nil
}

func (r *fakeListRepo) DeleteItemByMedia(_ context.Context, listID, mediaID int) (bool, error) {
	for itemID, item := range r.items {
		if item.ListID == listID && item.MediaID == mediaID {
			delete(r.items, itemID)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeListRepo) GetItem(_ context.Context, itemID int) (*models.ListItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeListRepo) MoveItem(_ context.Context, itemID, targetListID int) (*models.ListItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if _, ok := r.lists[targetListID]; !ok {
		return nil, models.ErrNotFound
	}
	for _, other := range r.items {
		if other.ID != itemID && other.ListID == targetListID && other.MediaID == item.MediaID {
			return nil, models.ErrDuplicateEntry
		}
	}
	item.Position = r.maxPosition(targetListID) + 1
	item.ListID = targetListID
	copied := *item
	return &copied, nil
}

func (r *fakeListRepo) ReorderItems(_ context.Context, listID int, orderedIDs []int) error {
	for i, itemID := range orderedIDs {
		if item, ok := r.items[itemID]; ok && item.ListID == listID {
			item.Position = i + 1
		}
	}
	return nil
}

func (r *fakeListRepo) ItemsByList(_ context.Context, listID int) ([]models.ListItemWithMedia, error) {
	var items []models.ListItemWithMedia
	for _, item := range r.items {
		if item.ListID != listID {
			continue
		}
		withMedia := models.ListItemWithMedia{ListItem: *item}
		if r.media != nil {
			if m, ok := r.media.rows[item.MediaID]; ok {
				withMedia.Media = *m
			}
		}
		items = append(items, withMedia)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (r *fakeListRepo) UpdateItemStatus(_ context.Context, itemID int, status models.WatchStatus) (*models.ListItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	item.Status = status
	copied := *item
	return &copied, nil
}

func (r *fakeListRepo) maxPosition(listID int) int {
	max := 0
	for _, item := range r.items {
		if item.ListID == listID && item.Position > max {
			max = item.Position
		}
	}
	return max
}

type fakeMediaRepo struct {
	rows   map[int]*models.Media
	nextID int
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{rows: make(map[int]*models.Media)}
}

// add seeds a catalog entry directly, bypassing the service.
func (r *fakeMediaRepo) add(media models.Media) *models.Media {
	r.nextID++
	media.ID = r.nextID
	media.CreatedAt = time.Now()
	media.UpdatedAt = time.Now()
	r.rows[media.ID] = &media
	return &media
}

func (r *fakeMediaRepo) Create(_ context.Context, media *models.Media) error {
	if media.TMDBID != nil {
		for _, row := range r.rows {
			if row.TMDBID != nil && *row.TMDBID == *media.TMDBID {
				return models.ErrDuplicateEntry
			}
		}
	}
	r.nextID++
	media.ID = r.nextID
	media.CreatedAt = time.Now()
	media.UpdatedAt = time.Now()
	copied := *media
	r.rows[media.ID] = &copied
	return nil
}

func (r *fakeMediaRepo) GetByID(_ context.Context, id int) (*models.Media, error) {
	media, ok := r.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *media
	return &copied, nil
}

func (r *fakeMediaRepo) GetByTMDBID(_ context.Context, tmdbID int, mediaType models.MediaType) (*models.Media, error) {
	for _, media := range r.rows {
		if media.TMDBID != nil && *media.TMDBID == tmdbID && media.MediaType == mediaType {
			copied := *media
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeMediaRepo) Update(_ context.Context, media *models.Media) error {
	if _, ok := r.rows[media.ID]; !ok {
		return models.ErrNotFound
	}
	copied := *media
	copied.UpdatedAt = time.Now()
	r.rows[media.ID] = &copied
	return nil
}

func (r *fakeMediaRepo) ListStale(_ context.Context, olderThan time.Time, limit int) ([]models.Media, error) {
	var stale []models.Media
	for _, media := range r.rows {
		if media.TMDBID != nil && media.UpdatedAt.Before(olderThan) {
			stale = append(stale, *media)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].UpdatedAt.Before(stale[j].UpdatedAt) })
	if len(stale) > limit {
		stale = stale[:limit]
	}
	return stale, nil
}

type episodeKey struct {
	userID  string
	mediaID int
	season  int
	episode int
}

type fakeEpisodeRepo struct {
	rows   map[episodeKey]*models.WatchedEpisode
	nextID int
}

func newFakeEpisodeRepo() *fakeEpisodeRepo {
	return &fakeEpisodeRepo{rows: make(map[episodeKey]*models.WatchedEpisode)}
}

func (r *fakeEpisodeRepo) Upsert(_ context.Context, userID string, mediaID, season, episode int) (*models.WatchedEpisode, error) {
	key := episodeKey{userID, mediaID, season, episode}
	if existing, ok := r.rows[key]; ok {
		copied := *existing
		return &copied, nil
	}
	r.nextID++
	we := &models.WatchedEpisode{
		ID:            r.nextID,
		UserID:        userID,
		MediaID:       mediaID,
		SeasonNumber:  season,
		EpisodeNumber: episode,
		WatchedAt:     time.Now(),
	}
	r.rows[key] = we
	copied := *we
	return &copied, nil
}

func (r *fakeEpisodeRepo) Delete(_ context.Context, userID string, mediaID, season, episode int) (bool, error) {
	key := episodeKey{userID, mediaID, season, episode}
	if _, ok := r.rows[key]; !ok {
		return false, nil
	}
	delete(r.rows, key)
	return true, nil
}

func (r *fakeEpisodeRepo) ListByShow(_ context.Context, userID string, mediaID int) ([]models.WatchedEpisode, error) {
	var episodes []models.WatchedEpisode
	for _, we := range r.rows {
		if we.UserID == userID && we.MediaID == mediaID {
			episodes = append(episodes, *we)
		}
	}
	sort.Slice(episodes, func(i, j int) bool {
		if episodes[i].SeasonNumber != episodes[j].SeasonNumber {
			return episodes[i].SeasonNumber < episodes[j].SeasonNumber
		}
		return episodes[i].EpisodeNumber < episodes[j].EpisodeNumber
	})
	return episodes, nil
}

func (r *fakeEpisodeRepo) ListByUser(_ context.Context, userID string, limit int) ([]models.WatchedEpisode, error) {
	var episodes []models.WatchedEpisode
	for _, we := range r.rows {
		if we.UserID == userID {
			episodes = append(episodes, *we)
		}
	}
	sort.Slice(episodes, func(i, j int) bool { return episodes[i].ID > episodes[j].ID })
	if len(episodes) > limit {
		episodes = episodes[:limit]
	}
	return episodes, nil
}

func (r *fakeEpisodeRepo) CountByShow(_ context.Context, userID string, mediaID int) (int, error) {
	count := 0
	for _, we := range r.rows {
		if we.UserID == userID && we.MediaID == mediaID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEpisodeRepo) Exists(_ context.Context, userID string, mediaID, season, episode int) (bool, error) {
	_, ok := r.rows[episodeKey{userID, mediaID, season, episode}]
	return ok, nil
}

type fakeUserRepo struct {
	rows map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.rows {
		if existing.Username == user.Username || existing.Email == user.Email || existing.Nickname == user.Nickname {
			return models.ErrDuplicateEntry
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	r.rows[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.rows {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) GetByNickname(_ context.Context, nickname string) (*models.User, error) {
	for _, user := range r.rows {
		if user.Nickname == nickname {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeProfileRepo struct {
	rows   map[string]*models.PublicProfile
	nextID int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: make(map[string]*models.PublicProfile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, userID string) (*models.PublicProfile, error) {
	if _, ok := r.rows[userID]; ok {
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
	r.rows[userID] = profile
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.PublicProfile, error) {
	profile, ok := r.rows[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) GetByNickname(_ context.Context, _ string) (*models.PublicProfile, error) {
	return nil, models.ErrNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *models.PublicProfile) error {
	if _, ok := r.rows[profile.UserID]; !ok {
		return models.ErrNotFound
	}
	copied := *profile
	copied.UpdatedAt = time.Now()
	r.rows[profile.UserID] = &copied
	return nil
}

type fakeMetadataClient struct {
	movies      map[int]*models.TMDBMovieDetails
	shows       map[int]*models.TMDBTVDetails
	searchHits  []models.TMDBResult
	detailCalls int
}

func newFakeMetadataClient() *fakeMetadataClient {
	return &fakeMetadataClient{
		movies: make(map[int]*models.TMDBMovieDetails),
		shows:  make(map[int]*models.TMDBTVDetails),
	}
}

func (c *fakeMetadataClient) SearchMovies(_ context.Context, _ string) (*models.TMDBSearchResponse, error) {
	return &models.TMDBSearchResponse{Results: c.searchHits, TotalResults: len(c.searchHits)}, nil
}

func (c *fakeMetadataClient) SearchTVShows(_ context.Context, _ string) (*models.TMDBSearchResponse, error) {
	return &models.TMDBSearchResponse{Results: c.searchHits, TotalResults: len(c.searchHits)}, nil
}

func (c *fakeMetadataClient) GetMovieDetails(_ context.Context, tmdbID int) (*models.TMDBMovieDetails, error) {
	c.detailCalls++
	details, ok := c.movies[tmdbID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return details, nil
}

func (c *fakeMetadataClient) GetTVDetails(_ context.Context, tmdbID int) (*models.TMDBTVDetails, error) {
	c.detailCalls++
	details, ok := c.shows[tmdbID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return details, nil
}

func (c *fakeMetadataClient) GetMovieCredits(_ context.Context, tmdbID int) (*models.TMDBCredits, error) {
	return &models.TMDBCredits{ID: tmdbID}, nil
}

func (c *fakeMetadataClient) GetTVCredits(_ context.Context, tmdbID int) (*models.TMDBCredits, error) {
	return &models.TMDBCredits{ID: tmdbID}, nil
}
