// AngelaMos | 2026
// repository.go

package story

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/truyenhub/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, story *Story) error
	GetByID(ctx context.Context, id string) (*Story, error)
	GetBySlug(ctx context.Context, slug string) (*Story, error)
	Update(ctx context.Context, story *Story, replaceCategories bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListStoriesParams) ([]Story, int, error)
	MostViewed(ctx context.Context, limit int) ([]Story, error)
	RecentlyUpdated(ctx context.Context, limit int) ([]Story, error)
	RecentlyAdded(ctx context.Context, limit int) ([]Story, error)
	IncrementViews(ctx context.Context, id string) error
	AddLike(ctx context.Context, userID, storyID string) (int, error)
	RemoveLike(ctx context.Context, userID, storyID string) (int, error)
	LikeStatus(ctx context.Context, userID, storyID string) (bool, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const storyColumns = `id, title, slug, description, cover_image,
	author_name, author_bio, author_avatar_url, type, status,
	views, total_likes, created_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, story *Story) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO stories (id, title, slug, description, cover_image,
				author_name, author_bio, author_avatar_url, type, status, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, story, query,
			story.ID,
			story.Title,
			story.Slug,
			story.Description,
			story.CoverImage,
			story.AuthorName,
			story.AuthorBio,
			story.AuthorAvatarURL,
			story.Type,
			story.Status,
			story.CreatedBy,
		)
		if err != nil {
			return err
		}

		return insertCategories(ctx, tx, story.ID, story.CategoryIDs)
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create story: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create story: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Story, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM stories WHERE id = $1",
		storyColumns,
	)

	var story Story
	err := r.db.GetContext(ctx, &story, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get story: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}

	if err := r.loadCategories(ctx, []*Story{&story}); err != nil {
		return nil, err
	}

	return &story, nil
}

func (r *repository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Story, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM stories WHERE slug = $1",
		storyColumns,
	)

	var story Story
	err := r.db.GetContext(ctx, &story, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get story by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get story by slug: %w", err)
	}

	if err := r.loadCategories(ctx, []*Story{&story}); err != nil {
		return nil, err
	}

	return &story, nil
}

func (r *repository) Update(
	ctx context.Context,
	story *Story,
	replaceCategories bool,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE stories
			SET title = $2, slug = $3, description = $4, cover_image = $5,
			    author_name = $6, author_bio = $7, author_avatar_url = $8,
			    status = $9, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`

		err := tx.GetContext(ctx, &story.UpdatedAt, query,
			story.ID,
			story.Title,
			story.Slug,
			story.Description,
			story.CoverImage,
			story.AuthorName,
			story.AuthorBio,
			story.AuthorAvatarURL,
			story.Status,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		if err != nil {
			return err
		}

		if !replaceCategories {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM story_categories WHERE story_id = $1`,
			story.ID,
		); err != nil {
			return err
		}

		return insertCategories(ctx, tx, story.ID, story.CategoryIDs)
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("update story: %w", core.ErrNotFound)
		}
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update story: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update story: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete story: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListStoriesParams,
) ([]Story, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(s.title ILIKE $%d OR s.author_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Type != "" {
		conditions = append(conditions, fmt.Sprintf("s.type = $%d", argIdx))
		args = append(args, params.Type)
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM story_categories sc
			 WHERE sc.story_id = s.id AND sc.category_id = $%d)`, argIdx))
		args = append(args, params.CategoryID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM stories s WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count stories: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.title, s.slug, s.description, s.cover_image,
		       s.author_name, s.author_bio, s.author_avatar_url, s.type,
		       s.status, s.views, s.total_likes, s.created_by,
		       s.created_at, s.updated_at
		FROM stories s
		WHERE %s
		ORDER BY s.updated_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var stories []Story
	if err := r.db.SelectContext(ctx, &stories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list stories: %w", err)
	}

	if err := r.loadCategoriesForSlice(ctx, stories); err != nil {
		return nil, 0, err
	}

	return stories, total, nil
}

func (r *repository) MostViewed(
	ctx context.Context,
	limit int,
) ([]Story, error) {
	return r.topStories(ctx, "views DESC", limit)
}

func (r *repository) RecentlyUpdated(
	ctx context.Context,
	limit int,
) ([]Story, error) {
	return r.topStories(ctx, "updated_at DESC", limit)
}

func (r *repository) RecentlyAdded(
	ctx context.Context,
	limit int,
) ([]Story, error) {
	return r.topStories(ctx, "created_at DESC", limit)
}

func (r *repository) topStories(
	ctx context.Context,
	orderBy string,
	limit int,
) ([]Story, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM stories ORDER BY %s LIMIT $1",
		storyColumns, orderBy,
	)

	var stories []Story
	if err := r.db.SelectContext(ctx, &stories, query, limit); err != nil {
		return nil, fmt.Errorf("top stories: %w", err)
	}

	if err := r.loadCategoriesForSlice(ctx, stories); err != nil {
		return nil, err
	}

	return stories, nil
}

func (r *repository) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE stories SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("increment views: %w", core.ErrNotFound)
	}

	return nil
}

// AddLike inserts the like row and bumps the story counter in one
// transaction so the counter never drifts from the row count.
func (r *repository) AddLike(
	ctx context.Context,
	userID, storyID string,
) (int, error) {
	var total int
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO likes (user_id, story_id) VALUES ($1, $2)`,
			userID, storyID,
		); err != nil {
			return err
		}

		return tx.GetContext(ctx, &total,
			`UPDATE stories SET total_likes = total_likes + 1
			 WHERE id = $1
			 RETURNING total_likes`,
			storyID,
		)
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, fmt.Errorf("add like: %w", core.ErrDuplicateKey)
		}
		if isForeignKeyError(err) || errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("add like: %w", core.ErrNotFound)
		}
		return 0, fmt.Errorf("add like: %w", err)
	}

	return total, nil
}

func (r *repository) RemoveLike(
	ctx context.Context,
	userID, storyID string,
) (int, error) {
	var total int
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE user_id = $1 AND story_id = $2`,
			userID, storyID,
		)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return core.ErrNotFound
		}

		return tx.GetContext(ctx, &total,
			`UPDATE stories SET total_likes = GREATEST(total_likes - 1, 0)
			 WHERE id = $1
			 RETURNING total_likes`,
			storyID,
		)
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("remove like: %w", core.ErrNotFound)
		}
		return 0, fmt.Errorf("remove like: %w", err)
	}

	return total, nil
}

func (r *repository) LikeStatus(
	ctx context.Context,
	userID, storyID string,
) (bool, int, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM likes WHERE user_id = $1 AND story_id = $2
		) AS liked,
		(SELECT total_likes FROM stories WHERE id = $2) AS total_likes`

	var row struct {
		Liked      bool          `db:"liked"`
		TotalLikes sql.NullInt64 `db:"total_likes"`
	}
	if err := r.db.GetContext(ctx, &row, query, userID, storyID); err != nil {
		return false, 0, fmt.Errorf("like status: %w", err)
	}

	if !row.TotalLikes.Valid {
		return false, 0, fmt.Errorf("like status: %w", core.ErrNotFound)
	}

	return row.Liked, int(row.TotalLikes.Int64), nil
}

func (r *repository) loadCategories(
	ctx context.Context,
	stories []*Story,
) error {
	if len(stories) == 0 {
		return nil
	}

	ids := make([]string, 0, len(stories))
	byID := make(map[string]*Story, len(stories))
	for _, s := range stories {
		s.CategoryIDs = []string{}
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	query, args, err := sqlx.In(
		`SELECT story_id, category_id FROM story_categories
		 WHERE story_id IN (?)
		 ORDER BY category_id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	var rows []struct {
		StoryID    string `db:"story_id"`
		CategoryID string `db:"category_id"`
	}
	query = r.db.Rebind(query)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	for _, row := range rows {
		s := byID[row.StoryID]
		s.CategoryIDs = append(s.CategoryIDs, row.CategoryID)
	}

	return nil
}

func (r *repository) loadCategoriesForSlice(
	ctx context.Context,
	stories []Story,
) error {
	ptrs := make([]*Story, 0, len(stories))
	for i := range stories {
		ptrs = append(ptrs, &stories[i])
	}
	return r.loadCategories(ctx, ptrs)
}

func insertCategories(
	ctx context.Context,
	tx *sqlx.Tx,
	storyID string,
	categoryIDs []string,
) error {
	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO story_categories (story_id, category_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			storyID, categoryID,
		); err != nil {
			return err
		}
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

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
