package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"showlog/internal/models"
	"showlog/internal/repository"
)

// EpisodeService tracks which episodes of a show a user has watched.
type EpisodeService struct {
	episodes repository.EpisodeRepository
	media    repository.MediaRepository
	logger   *logrus.Logger
}

func NewEpisodeService(episodes repository.EpisodeRepository, media repository.MediaRepository, logger *logrus.Logger) *EpisodeService {
	return &EpisodeService{episodes: episodes, media: media, logger: logger}
}

// MarkEpisodeWatched records a watched episode with get-or-create
// semantics: marking the same (user, show, season, episode) twice
// returns the existing record.
func (s *EpisodeService) MarkEpisodeWatched(ctx context.Context, userID string, mediaID, season, episode int) (*models.WatchedEpisode, error) {
	if _, err := s.show(ctx, mediaID); err != nil {
		return nil, err
	}

	we, err := s.episodes.Upsert(ctx, userID, mediaID, season, episode)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"media_id": mediaID,
		"season":   season,
		"episode":  episode,
	}).Info("Episode marked watched")
	return we, nil
}

// UnmarkEpisodeWatched deletes the record if present and reports whether
// anything was deleted.
func (s *EpisodeService) UnmarkEpisodeWatched(ctx context.Context, userID string, mediaID, season, episode int) (bool, error) {
	if _, err := s.show(ctx, mediaID); err != nil {
		return false, err
	}
	return s.episodes.Delete(ctx, userID, mediaID, season, episode)
}

// GetWatchedEpisodes returns the user's watched episodes for a show,
// ordered by (season, episode) ascending.
func (s *EpisodeService) GetWatchedEpisodes(ctx context.Context, userID string, mediaID int) ([]models.WatchedEpisode, error) {
	if _, err := s.show(ctx, mediaID); err != nil {
		return nil, err
	}
	return s.episodes.ListByShow(ctx, userID, mediaID)
}

// GetWatchProgress reports watched count against the show's total
// episode count. The percentage is integer-truncated and unclamped:
// stale metadata can push it past 100 until the refresher updates the
// show.
func (s *EpisodeService) GetWatchProgress(ctx context.Context, userID string, mediaID int) (*models.WatchProgress, error) {
	show, err := s.show(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	watched, err := s.episodes.CountByShow(ctx, userID, mediaID)
	if err != nil {
		return nil, err
	}

	progress := &models.WatchProgress{
		WatchedEpisodes: watched,
		TotalEpisodes:   show.NumberOfEpisodes,
	}
	if show.NumberOfEpisodes > 0 {
		progress.ProgressPercentage = watched * 100 / show.NumberOfEpisodes
	}
	return progress, nil
}

func (s *EpisodeService) IsEpisodeWatched(ctx context.Context, userID string, mediaID, season, episode int) (bool, error) {
	return s.episodes.Exists(ctx, userID, mediaID, season, episode)
}

func (s *EpisodeService) show(ctx context.Context, mediaID int) (*models.Media, error) {
	media, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if media.MediaType != models.MediaTypeTVShow {
		return nil, models.ErrInvalidMedia
	}
	return media, nil
}
