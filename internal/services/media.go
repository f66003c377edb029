package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"showlog/internal/models"
	"showlog/internal/repository"
)

// MetadataClient is the slice of the TMDb client the media service
// needs. Enrichment failures never abort the surrounding operation;
// callers fall back to the stored record.
type MetadataClient interface {
	SearchMovies(ctx context.Context, query string) (*models.TMDBSearchResponse, error)
	SearchTVShows(ctx context.Context, query string) (*models.TMDBSearchResponse, error)
	GetMovieDetails(ctx context.Context, tmdbID int) (*models.TMDBMovieDetails, error)
	GetTVDetails(ctx context.Context, tmdbID int) (*models.TMDBTVDetails, error)
	GetMovieCredits(ctx context.Context, tmdbID int) (*models.TMDBCredits, error)
	GetTVCredits(ctx context.Context, tmdbID int) (*models.TMDBCredits, error)
}

// MediaService manages catalog entries and keeps their metadata in sync
// with TMDb.
type MediaService struct {
	media  repository.MediaRepository
	tmdb   MetadataClient
	logger *logrus.Logger
}

func NewMediaService(media repository.MediaRepository, tmdb MetadataClient, logger *logrus.Logger) *MediaService {
	return &MediaService{media: media, tmdb: tmdb, logger: logger}
}

func (s *MediaService) GetByID(ctx context.Context, id int) (*models.Media, error) {
	return s.media.GetByID(ctx, id)
}

// GetOrCreateFromTMDB returns the existing catalog entry for the TMDb id
// or fetches its metadata and creates one.
func (s *MediaService) GetOrCreateFromTMDB(ctx context.Context, tmdbID int, mediaType models.MediaType) (*models.Media, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("invalid media type: %s", mediaType)
	}

	existing, err := s.media.GetByTMDBID(ctx, tmdbID, mediaType)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	media, err := s.fetch(ctx, tmdbID, mediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch TMDb metadata: %w", err)
	}

	if err := s.media.Create(ctx, media); err != nil {
		// Lost a race with a concurrent create for the same TMDb id.
		if errors.Is(err, models.ErrDuplicateEntry) {
			return s.media.GetByTMDBID(ctx, tmdbID, mediaType)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"media_id":   media.ID,
		"tmdb_id":    tmdbID,
		"media_type": mediaType,
	}).Info("Media created from TMDb")
	return media, nil
}

// Refresh re-fetches metadata for a catalog entry. Identity (id, tmdb
// id, type) never changes; only descriptive columns are rewritten.
func (s *MediaService) Refresh(ctx context.Context, media *models.Media) error {
	if media.TMDBID == nil {
		return fmt.Errorf("media %d has no TMDb id to refresh from", media.ID)
	}

	fresh, err := s.fetch(ctx, *media.TMDBID, media.MediaType)
	if err != nil {
		return fmt.Errorf("failed to fetch TMDb metadata: %w", err)
	}

	fresh.ID = media.ID
	if err := s.media.Update(ctx, fresh); err != nil {
		return err
	}
	*media = *fresh
	return nil
}

// RefreshStale refreshes catalog entries not updated since the cutoff,
// oldest first. Individual failures are logged and skipped so one bad
// entry cannot stall the batch. Returns the number refreshed.
func (s *MediaService) RefreshStale(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	stale, err := s.media.ListStale(ctx, olderThan, limit)
	if err != nil {
		return 0, err
	}

	var refreshed int
	for i := range stale {
		if err := s.Refresh(ctx, &stale[i]); err != nil {
			s.logger.WithError(err).WithField("media_id", stale[i].ID).Warn("Failed to refresh media")
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// Credits fetches cast and crew for a catalog entry with a TMDb id.
func (s *MediaService) Credits(ctx context.Context, media *models.Media) (*models.TMDBCredits, error) {
	if media.TMDBID == nil {
		return nil, fmt.Errorf("media %d has no TMDb id", media.ID)
	}
	if media.MediaType == models.MediaTypeMovie {
		return s.tmdb.GetMovieCredits(ctx, *media.TMDBID)
	}
	return s.tmdb.GetTVCredits(ctx, *media.TMDBID)
}

// Search passes a query through to TMDb for the given media type.
func (s *MediaService) Search(ctx context.Context, mediaType models.MediaType, query string) (*models.TMDBSearchResponse, error) {
	switch mediaType {
	case models.MediaTypeMovie:
		return s.tmdb.SearchMovies(ctx, query)
	case models.MediaTypeTVShow:
		return s.tmdb.SearchTVShows(ctx, query)
	default:
		return nil, fmt.Errorf("invalid media type: %s", mediaType)
	}
}

func (s *MediaService) fetch(ctx context.Context, tmdbID int, mediaType models.MediaType) (*models.Media, error) {
	if mediaType == models.MediaTypeMovie {
		details, err := s.tmdb.GetMovieDetails(ctx, tmdbID)
		if err != nil {
			return nil, err
		}
		return movieToMedia(details), nil
	}

	details, err := s.tmdb.GetTVDetails(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	return tvToMedia(details), nil
}

func movieToMedia(d *models.TMDBMovieDetails) *models.Media {
	media := &models.Media{
		TMDBID:           &d.ID,
		MediaType:        models.MediaTypeMovie,
		Title:            d.Title,
		OriginalTitle:    d.OriginalTitle,
		Overview:         optional(d.Overview),
		PosterPath:       optional(d.PosterPath),
		BackdropPath:     optional(d.BackdropPath),
		ReleaseDate:      optional(d.ReleaseDate),
		Popularity:       d.Popularity,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		OriginalLanguage: d.OriginalLanguage,
		Budget:           d.Budget,
		Revenue:          d.Revenue,
	}
	if d.Runtime > 0 {
		media.Runtime = &d.Runtime
	}
	return media
}

func tvToMedia(d *models.TMDBTVDetails) *models.Media {
	media := &models.Media{
		TMDBID:           &d.ID,
		MediaType:        models.MediaTypeTVShow,
		Title:            d.Name,
		OriginalTitle:    d.OriginalName,
		Overview:         optional(d.Overview),
		PosterPath:       optional(d.PosterPath),
		BackdropPath:     optional(d.BackdropPath),
		ReleaseDate:      optional(d.FirstAirDate),
		Popularity:       d.Popularity,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		OriginalLanguage: d.OriginalLanguage,
		NumberOfSeasons:  d.NumberOfSeasons,
		NumberOfEpisodes: d.NumberOfEpisodes,
		ShowStatus:       optional(d.Status),
		FirstAirDate:     optional(d.FirstAirDate),
		LastAirDate:      optional(d.LastAirDate),
	}
	if len(d.EpisodeRunTime) > 0 {
		media.EpisodeRunTime = &d.EpisodeRunTime[0]
	}
	return media
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
