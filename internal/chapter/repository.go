// AngelaMos | 2026
// repository.go

package chapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/truyenhub/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, chapter *Chapter) error
	GetByID(ctx context.Context, id string) (*Chapter, error)
	Update(ctx context.Context, chapter *Chapter) error
	Delete(ctx context.Context, id string) error
	ListByStory(ctx context.Context, storyID string) ([]ChapterSummary, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, chapter *Chapter) error {
	query := `
		INSERT INTO chapters (id, story_id, chapter_number, title, content, images)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, chapter, query,
		chapter.ID,
		chapter.StoryID,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.Content,
		chapter.Images,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create chapter: %w", core.ErrDuplicateKey)
		}
		if isForeignKeyError(err) {
			return fmt.Errorf("create chapter: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create chapter: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Chapter, error) {
	query := `
		SELECT id, story_id, chapter_number, title, content, images,
		       created_at, updated_at
		FROM chapters
		WHERE id = $1`

	var chapter Chapter
	err := r.db.GetContext(ctx, &chapter, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get chapter: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return &chapter, nil
}

func (r *repository) Update(ctx context.Context, chapter *Chapter) error {
	query := `
		UPDATE chapters
		SET chapter_number = $2, title = $3, content = $4, images = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &chapter.UpdatedAt, query,
		chapter.ID,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.Content,
		chapter.Images,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update chapter: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update chapter: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update chapter: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete chapter: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByStory(
	ctx context.Context,
	storyID string,
) ([]ChapterSummary, error) {
	query := `
		SELECT id, story_id, chapter_number, title, created_at, updated_at
		FROM chapters
		WHERE story_id = $1
		ORDER BY chapter_number ASC`

	var chapters []ChapterSummary
	if err := r.db.SelectContext(ctx, &chapters, query, storyID); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	return chapters, nil
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
