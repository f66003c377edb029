package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"showlog/internal/models"
)

type ListRepository interface {
	Create(ctx context.Context, userID, name string, isPublic bool) (*models.List, error)
	GetByID(ctx context.Context, id int) (*models.List, error)
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, id int) error
	ListByUser(ctx context.Context, userID string, includePrivate bool) ([]models.List, error)

	InsertItem(ctx context.Context, listID, mediaID int) (*models.ListItem, error)
	DeleteItemByMedia(ctx context.Context, listID, mediaID int) (bool, error)
	GetItem(ctx context.Context, itemID int) (*models.ListItem, error)
	MoveItem(ctx context.Context, itemID, targetListID int) (*models.ListItem, error)
	ReorderItems(ctx context.Context, listID int, orderedIDs []int) error
	ItemsByList(ctx context.Context, listID int) ([]models.ListItemWithMedia, error)
	UpdateItemStatus(ctx context.Context, itemID int, status models.WatchStatus) (*models.ListItem, error)
}

type listRepository struct {
	db *pgxpool.Pool
}

func NewListRepository(db *pgxpool.Pool) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, userID, name string, isPublic bool) (*models.List, error) {
	query := `
	INSERT INTO lists (user_id, name, is_public)
	VALUES ($1, $2, $3)
	RETURNING id, user_id, name, is_public, created_at, updated_at
	`
	var list models.List
	err := r.db.QueryRow(ctx, query, userID, name, isPublic).Scan(
		&list.ID, &list.UserID, &list.Name, &list.IsPublic, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", mapError(err))
	}
	return &list, nil
}

func (r *listRepository) GetByID(ctx context.Context, id int) (*models.List, error) {
	query := `SELECT id, user_id, name, is_public, created_at, updated_at FROM lists WHERE id = $1`

	var list models.List
	err := r.db.QueryRow(ctx, query, id).Scan(
		&list.ID, &list.UserID, &list.Name, &list.IsPublic, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &list, nil
}

func (r *listRepository) Update(ctx context.Context, list *models.List) error {
	query := `
	UPDATE lists SET name = $2, is_public = $3, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, list.ID, list.Name, list.IsPublic).Scan(&list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", mapError(err))
	}
	return nil
}

// Delete removes the list; list_items go with it via ON DELETE CASCADE.
func (r *listRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *listRepository) ListByUser(ctx context.Context, userID string, includePrivate bool) ([]models.List, error) {
	query := `
	SELECT id, user_id, name, is_public, created_at, updated_at
	FROM lists
	WHERE user_id = $1 AND (is_public OR $2)
	ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID, includePrivate)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var list models.List
		if err := rows.Scan(&list.ID, &list.UserID, &list.Name, &list.IsPublic, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

const itemColumns = `id, list_id, media_id, position, status, added_at`

func scanItem(row pgx.Row) (*models.ListItem, error) {
	var item models.ListItem
	err := row.Scan(&item.ID, &item.ListID, &item.MediaID, &item.Position, &item.Status, &item.AddedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &item, nil
}

// InsertItem appends media to the end of a list. The list row is locked
// for the duration of the transaction so two concurrent inserts into the
// same list cannot compute the same trailing position. A second insert of
// the same media trips the (list_id, media_id) unique constraint and
// surfaces as ErrDuplicateEntry.
func (r *listRepository) InsertItem(ctx context.Context, listID, mediaID int) (*models.ListItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockList(ctx, tx, listID); err != nil {
		return nil, err
	}

	query := `
	INSERT INTO list_items (list_id, media_id, position, status)
	VALUES (
		$1, $2,
		(SELECT COALESCE(MAX(position), 0) + 1 FROM list_items WHERE list_id = $1),
		$3
	)
	RETURNING ` + itemColumns

	item, err := scanItem(tx.QueryRow(ctx, query, listID, mediaID, models.StatusPlanned))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit insert: %w", err)
	}
	return item, nil
}

func (r *listRepository) DeleteItemByMedia(ctx context.Context, listID, mediaID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM list_items WHERE list_id = $1 AND media_id = $2`, listID, mediaID)
	if err != nil {
		return false, fmt.Errorf("failed to delete list item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *listRepository) GetItem(ctx context.Context, itemID int) (*models.ListItem, error) {
	query := `SELECT ` + itemColumns + ` FROM list_items WHERE id = $1`
	return scanItem(r.db.QueryRow(ctx, query, itemID))
}

// MoveItem re-parents the item to the target list with a fresh trailing
// position. Runs in one transaction: either the item ends up in the
// target list or nothing changes.
func (r *listRepository) MoveItem(ctx context.Context, itemID, targetListID int) (*models.ListItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockList(ctx, tx, targetListID); err != nil {
		return nil, err
	}

	query := `
	UPDATE list_items SET
		list_id = $2,
		position = (SELECT COALESCE(MAX(position), 0) + 1 FROM list_items WHERE list_id = $2)
	WHERE id = $1
	RETURNING ` + itemColumns

	item, err := scanItem(tx.QueryRow(ctx, query, itemID, targetListID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit move: %w", err)
	}
	return item, nil
}

// ReorderItems assigns each supplied item its 1-based index as position,
// scoped to the given list. Ids that do not belong to the list match no
// row and are skipped. All updates apply in one transaction.
func (r *listRepository) ReorderItems(ctx context.Context, listID int, orderedIDs []int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, itemID := range orderedIDs {
		_, err := tx.Exec(ctx,
			`UPDATE list_items SET position = $1 WHERE id = $2 AND list_id = $3`,
			i+1, itemID, listID,
		)
		if err != nil {
			return fmt.Errorf("failed to reposition item %d: %w", itemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

func (r *listRepository) ItemsByList(ctx context.Context, listID int) ([]models.ListItemWithMedia, error) {
	query := `
	SELECT li.id, li.list_id, li.media_id, li.position, li.status, li.added_at,
		m.id, m.tmdb_id, m.media_type, m.title, m.original_title, m.overview,
		m.poster_path, m.backdrop_path, m.release_date, m.popularity, m.vote_average,
		m.vote_count, m.original_language, m.runtime, m.budget, m.revenue,
		m.number_of_seasons, m.number_of_episodes, m.episode_run_time, m.show_status,
		m.first_air_date, m.last_air_date, m.created_at, m.updated_at
	FROM list_items li
	JOIN media m ON m.id = li.media_id
	WHERE li.list_id = $1
	ORDER BY li.position ASC, li.added_at DESC
	`
	rows, err := r.db.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer rows.Close()

	var items []models.ListItemWithMedia
	for rows.Next() {
		var it models.ListItemWithMedia
		m := &it.Media
		err := rows.Scan(
			&it.ID, &it.ListID, &it.MediaID, &it.Position, &it.Status, &it.AddedAt,
			&m.ID, &m.TMDBID, &m.MediaType, &m.Title, &m.OriginalTitle, &m.Overview,
			&m.PosterPath, &m.BackdropPath, &m.ReleaseDate, &m.Popularity, &m.VoteAverage,
			&m.VoteCount, &m.OriginalLanguage, &m.Runtime, &m.Budget, &m.Revenue,
			&m.NumberOfSeasons, &m.NumberOfEpisodes, &m.EpisodeRunTime, &m.ShowStatus,
			&m.FirstAirDate, &m.LastAirDate, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *listRepository) UpdateItemStatus(ctx context.Context, itemID int, status models.WatchStatus) (*models.ListItem, error) {
	query := `UPDATE list_items SET status = $2 WHERE id = $1 RETURNING ` + itemColumns
	return scanItem(r.db.QueryRow(ctx, query, itemID, status))
}

func lockList(ctx context.Context, tx pgx.Tx, listID int) error {
	var id int
	err := tx.QueryRow(ctx, `SELECT id FROM lists WHERE id = $1 FOR UPDATE`, listID).Scan(&id)
	if err != nil {
		return mapError(err)
	}
	return nil
}
