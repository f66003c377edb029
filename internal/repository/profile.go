package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"showlog/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, userID string) (*models.PublicProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.PublicProfile, error)
	GetByNickname(ctx context.Context, nickname string) (*models.PublicProfile, error)
	Update(ctx context.Context, profile *models.PublicProfile) error
}

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, bio, avatar_url, is_visible, show_watched_episodes, show_lists, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, userID string) (*models.PublicProfile, error) {
	query := `
	INSERT INTO public_profiles (user_id)
	VALUES ($1)
	RETURNING ` + profileColumns

	var p models.PublicProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.AvatarURL, &p.IsVisible,
		&p.ShowWatchedEpisodes, &p.ShowLists, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", mapError(err))
	}
	return &p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.PublicProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM public_profiles WHERE user_id = $1`
	return r.scan(ctx, query, userID)
}

func (r *profileRepository) GetByNickname(ctx context.Context, nickname string) (*models.PublicProfile, error) {
	query := `
	SELECT p.id, p.user_id, p.bio, p.avatar_url, p.is_visible,
		p.show_watched_episodes, p.show_lists, p.created_at, p.updated_at
	FROM public_profiles p
	JOIN users u ON u.id = p.user_id
	WHERE u.nickname = $1
	`
	return r.scan(ctx, query, nickname)
}

func (r *profileRepository) Update(ctx context.Context, profile *models.PublicProfile) error {
	query := `
	UPDATE public_profiles SET
		bio = $2, avatar_url = $3, is_visible = $4,
		show_watched_episodes = $5, show_lists = $6, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		profile.ID, profile.Bio, profile.AvatarURL, profile.IsVisible,
		profile.ShowWatchedEpisodes, profile.ShowLists,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", mapError(err))
	}
	return nil
}

func (r *profileRepository) scan(ctx context.Context, query string, arg any) (*models.PublicProfile, error) {
	var p models.PublicProfile
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.AvatarURL, &p.IsVisible,
		&p.ShowWatchedEpisodes, &p.ShowLists, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
