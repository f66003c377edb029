package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"showlog/internal/models"
)

type EpisodeRepository interface {
	Upsert(ctx context.Context, userID string, mediaID, season, episode int) (*models.WatchedEpisode, error)
	Delete(ctx context.Context, userID string, mediaID, season, episode int) (bool, error)
	ListByShow(ctx context.Context, userID string, mediaID int) ([]models.WatchedEpisode, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.WatchedEpisode, error)
	CountByShow(ctx context.Context, userID string, mediaID int) (int, error)
	Exists(ctx context.Context, userID string, mediaID, season, episode int) (bool, error)
}

type episodeRepository struct {
	db *pgxpool.Pool
}

func NewEpisodeRepository(db *pgxpool.Pool) EpisodeRepository {
	return &episodeRepository{db: db}
}

const episodeColumns = `id, user_id, media_id, season_number, episode_number, watched_at`

// Upsert implements get-or-create: marking an already-watched episode
// returns the existing row without error or duplication.
func (r *episodeRepository) Upsert(ctx context.Context, userID string, mediaID, season, episode int) (*models.WatchedEpisode, error) {
	insert := `
	INSERT INTO watched_episodes (user_id, media_id, season_number, episode_number)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, media_id, season_number, episode_number) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, userID, mediaID, season, episode); err != nil {
		return nil, fmt.Errorf("failed to record watched episode: %w", mapError(err))
	}

	query := `
	SELECT ` + episodeColumns + `
	FROM watched_episodes
	WHERE user_id = $1 AND media_id = $2 AND season_number = $3 AND episode_number = $4
	`
	var we models.WatchedEpisode
	err := r.db.QueryRow(ctx, query, userID, mediaID, season, episode).Scan(
		&we.ID, &we.UserID, &we.MediaID, &we.SeasonNumber, &we.EpisodeNumber, &we.WatchedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &we, nil
}

func (r *episodeRepository) Delete(ctx context.Context, userID string, mediaID, season, episode int) (bool, error) {
	query := `
	DELETE FROM watched_episodes
	WHERE user_id = $1 AND media_id = $2 AND season_number = $3 AND episode_number = $4
	`
	tag, err := r.db.Exec(ctx, query, userID, mediaID, season, episode)
	if err != nil {
		return false, fmt.Errorf("failed to delete watched episode: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *episodeRepository) ListByShow(ctx context.Context, userID string, mediaID int) ([]models.WatchedEpisode, error) {
	query := `
	SELECT ` + episodeColumns + `
	FROM watched_episodes
	WHERE user_id = $1 AND media_id = $2
	ORDER BY season_number ASC, episode_number ASC
	`
	rows, err := r.db.Query(ctx, query, userID, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched episodes: %w", err)
	}
	defer rows.Close()

	var episodes []models.WatchedEpisode
	for rows.Next() {
		var we models.WatchedEpisode
		if err := rows.Scan(&we.ID, &we.UserID, &we.MediaID, &we.SeasonNumber, &we.EpisodeNumber, &we.WatchedAt); err != nil {
			return nil, err
		}
		episodes = append(episodes, we)
	}
	return episodes, rows.Err()
}

// ListByUser returns the user's watch history across all shows, most
// recent first, for the public profile page.
func (r *episodeRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.WatchedEpisode, error) {
	query := `
	SELECT ` + episodeColumns + `
	FROM watched_episodes
	WHERE user_id = $1
	ORDER BY watched_at DESC
	LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	var episodes []models.WatchedEpisode
	for rows.Next() {
		var we models.WatchedEpisode
		if err := rows.Scan(&we.ID, &we.UserID, &we.MediaID, &we.SeasonNumber, &we.EpisodeNumber, &we.WatchedAt); err != nil {
			return nil, err
		}
		episodes = append(episodes, we)
	}
	return episodes, rows.Err()
}

func (r *episodeRepository) CountByShow(ctx context.Context, userID string, mediaID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM watched_episodes WHERE user_id = $1 AND media_id = $2`,
		userID, mediaID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count watched episodes: %w", err)
	}
	return count, nil
}

func (r *episodeRepository) Exists(ctx context.Context, userID string, mediaID, season, episode int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
	SELECT EXISTS (
		SELECT 1 FROM watched_episodes
		WHERE user_id = $1 AND media_id = $2 AND season_number = $3 AND episode_number = $4
	)`, userID, mediaID, season, episode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check watched episode: %w", err)
	}
	return exists, nil
}
