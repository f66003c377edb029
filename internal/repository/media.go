package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"showlog/internal/models"
)

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id int) (*models.Media, error)
	GetByTMDBID(ctx context.Context, tmdbID int, mediaType models.MediaType) (*models.Media, error)
	Update(ctx context.Context, media *models.Media) error
	ListStale(ctx context.Context, olderThan time.Time, limit int) ([]models.Media, error)
}

type mediaRepository struct {
	db *pgxpool.Pool
}

func NewMediaRepository(db *pgxpool.Pool) MediaRepository {
	return &mediaRepository{db: db}
}

const mediaColumns = `
	id, tmdb_id, media_type, title, original_title, overview,
	poster_path, backdrop_path, release_date, popularity, vote_average,
	vote_count, original_language, runtime, budget, revenue,
	number_of_seasons, number_of_episodes, episode_run_time, show_status,
	first_air_date, last_air_date, created_at, updated_at`

func scanMedia(row pgx.Row) (*models.Media, error) {
	var m models.Media
	err := row.Scan(
		&m.ID, &m.TMDBID, &m.MediaType, &m.Title, &m.OriginalTitle, &m.Overview,
		&m.PosterPath, &m.BackdropPath, &m.ReleaseDate, &m.Popularity, &m.VoteAverage,
		&m.VoteCount, &m.OriginalLanguage, &m.Runtime, &m.Budget, &m.Revenue,
		&m.NumberOfSeasons, &m.NumberOfEpisodes, &m.EpisodeRunTime, &m.ShowStatus,
		&m.FirstAirDate, &m.LastAirDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	query := `
	INSERT INTO media (
		tmdb_id, media_type, title, original_title, overview,
		poster_path, backdrop_path, release_date, popularity, vote_average,
		vote_count, original_language, runtime, budget, revenue,
		number_of_seasons, number_of_episodes, episode_run_time, show_status,
		first_air_date, last_air_date
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		media.TMDBID, media.MediaType, media.Title, media.OriginalTitle, media.Overview,
		media.PosterPath, media.BackdropPath, media.ReleaseDate, media.Popularity, media.VoteAverage,
		media.VoteCount, media.OriginalLanguage, media.Runtime, media.Budget, media.Revenue,
		media.NumberOfSeasons, media.NumberOfEpisodes, media.EpisodeRunTime, media.ShowStatus,
		media.FirstAirDate, media.LastAirDate,
	).Scan(&media.ID, &media.CreatedAt, &media.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create media: %w", mapError(err))
	}
	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id int) (*models.Media, error) {
	query := `SELECT` + mediaColumns + ` FROM media WHERE id = $1`
	return scanMedia(r.db.QueryRow(ctx, query, id))
}

func (r *mediaRepository) GetByTMDBID(ctx context.Context, tmdbID int, mediaType models.MediaType) (*models.Media, error) {
	query := `SELECT` + mediaColumns + ` FROM media WHERE tmdb_id = $1 AND media_type = $2`
	return scanMedia(r.db.QueryRow(ctx, query, tmdbID, mediaType))
}

// Update rewrites the refreshable metadata columns. Identity columns
// (id, tmdb_id, media_type) are never touched.
func (r *mediaRepository) Update(ctx context.Context, media *models.Media) error {
	query := `
	UPDATE media SET
		title = $2, original_title = $3, overview = $4, poster_path = $5,
		backdrop_path = $6, release_date = $7, popularity = $8,
		vote_average = $9, vote_count = $10, original_language = $11,
		runtime = $12, budget = $13, revenue = $14, number_of_seasons = $15,
		number_of_episodes = $16, episode_run_time = $17, show_status = $18,
		first_air_date = $19, last_air_date = $20, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		media.ID, media.Title, media.OriginalTitle, media.Overview, media.PosterPath,
		media.BackdropPath, media.ReleaseDate, media.Popularity,
		media.VoteAverage, media.VoteCount, media.OriginalLanguage,
		media.Runtime, media.Budget, media.Revenue, media.NumberOfSeasons,
		media.NumberOfEpisodes, media.EpisodeRunTime, media.ShowStatus,
		media.FirstAirDate, media.LastAirDate,
	).Scan(&media.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", mapError(err))
	}
	return nil
}

func (r *mediaRepository) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]models.Media, error) {
	query := `SELECT` + mediaColumns + `
	FROM media
	WHERE tmdb_id IS NOT NULL AND updated_at < $1
	ORDER BY updated_at ASC
	LIMIT $2`

	rows, err := r.db.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale media: %w", err)
	}
	defer rows.Close()

	var media []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		media = append(media, *m)
	}
	return media, rows.Err()
}
