// AngelaMos | 2026
// repository_test.go

package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/truyenhub/backend/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewRepository(sqlxDB), mock
}

func TestRepository_CreateDuplicateName(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO categories").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &Category{
		ID:   "cat-1",
		Name: "Fantasy",
	})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
}

func TestRepository_List(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM categories").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "description", "created_at", "updated_at"},
		).
			AddRow("cat-1", "Action", "", now, now).
			AddRow("cat-2", "Fantasy", "", now, now))

	categories, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("len = %d, want 2", len(categories))
	}
	if categories[0].Name != "Action" {
		t.Fatalf("unexpected ordering: %+v", categories)
	}
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM categories WHERE id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "description", "created_at", "updated_at"},
		))

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
