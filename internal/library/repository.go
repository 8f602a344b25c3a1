// AngelaMos | 2026
// repository.go

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/truyenhub/backend/internal/core"
)

type Repository interface {
	AddBookmark(ctx context.Context, userID, storyID string) (*Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, storyID string) error
	ListBookmarks(ctx context.Context, userID string) ([]Bookmark, error)
	IsBookmarked(ctx context.Context, userID, storyID string) (bool, error)
	TouchHistory(
		ctx context.Context,
		userID, storyID string,
	) (*HistoryEntry, error)
	ListHistory(ctx context.Context, userID string) ([]HistoryEntry, error)
	DeleteHistory(ctx context.Context, userID, entryID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) AddBookmark(
	ctx context.Context,
	userID, storyID string,
) (*Bookmark, error) {
	query := `
		INSERT INTO bookmarks (user_id, story_id)
		VALUES ($1, $2)
		RETURNING created_at`

	bookmark := Bookmark{UserID: userID, StoryID: storyID}
	err := r.db.GetContext(ctx, &bookmark.CreatedAt, query, userID, storyID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("add bookmark: %w", core.ErrDuplicateKey)
		}
		if isForeignKeyError(err) {
			return nil, fmt.Errorf("add bookmark: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("add bookmark: %w", err)
	}

	return &bookmark, nil
}

func (r *repository) RemoveBookmark(
	ctx context.Context,
	userID, storyID string,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND story_id = $2`,
		userID, storyID)
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("remove bookmark: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListBookmarks(
	ctx context.Context,
	userID string,
) ([]Bookmark, error) {
	query := `
		SELECT b.user_id, b.story_id, b.created_at,
		       s.title AS story_title, s.slug AS story_slug,
		       s.cover_image AS story_cover_image,
		       s.type AS story_type, s.status AS story_status
		FROM bookmarks b
		JOIN stories s ON s.id = b.story_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	var bookmarks []Bookmark
	if err := r.db.SelectContext(ctx, &bookmarks, query, userID); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	return bookmarks, nil
}

func (r *repository) IsBookmarked(
	ctx context.Context,
	userID, storyID string,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM bookmarks WHERE user_id = $1 AND story_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, storyID); err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}

	return exists, nil
}

// TouchHistory upserts the (user, story) row and refreshes last_read_at.
func (r *repository) TouchHistory(
	ctx context.Context,
	userID, storyID string,
) (*HistoryEntry, error) {
	query := `
		INSERT INTO reading_history (id, user_id, story_id, last_read_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, story_id)
		DO UPDATE SET last_read_at = NOW()
		RETURNING id, user_id, story_id, last_read_at, created_at`

	var entry HistoryEntry
	err := r.db.GetContext(ctx, &entry, query,
		uuid.New().String(), userID, storyID)
	if err != nil {
		if isForeignKeyError(err) {
			return nil, fmt.Errorf("touch history: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("touch history: %w", err)
	}

	return &entry, nil
}

func (r *repository) ListHistory(
	ctx context.Context,
	userID string,
) ([]HistoryEntry, error) {
	query := `
		SELECT h.id, h.user_id, h.story_id, h.last_read_at, h.created_at,
		       s.title AS story_title, s.slug AS story_slug,
		       s.cover_image AS story_cover_image,
		       s.type AS story_type, s.status AS story_status
		FROM reading_history h
		JOIN stories s ON s.id = h.story_id
		WHERE h.user_id = $1
		ORDER BY h.last_read_at DESC`

	var entries []HistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}

// DeleteHistory scopes the delete to the owner so one user cannot clear
// another's history by guessing ids.
func (r *repository) DeleteHistory(
	ctx context.Context,
	userID, entryID string,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reading_history WHERE id = $1 AND user_id = $2`,
		entryID, userID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete history: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
