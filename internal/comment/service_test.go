// AngelaMos | 2026
// service_test.go

package comment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/truyenhub/backend/internal/core"
)

type fakeRepository struct {
	comments map[string]*Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: make(map[string]*Comment)}
}

func (r *fakeRepository) Create(ctx context.Context, comment *Comment) error {
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(
	ctx context.Context,
	id string,
) (*Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *comment
	return &cp, nil
}

func (r *fakeRepository) Update(
	ctx context.Context,
	id, content string,
) (*Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()
	cp := *comment
	return &cp, nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeRepository) ListByStory(
	ctx context.Context,
	storyID string,
	page, pageSize int,
) ([]Comment, int, error) {
	var out []Comment
	for _, comment := range r.comments {
		if comment.StoryID == storyID {
			out = append(out, *comment)
		}
	}
	return out, len(out), nil
}

func seedComment(t *testing.T, svc *Service, userID, storyID string) *Comment {
	t.Helper()

	comment, err := svc.Create(context.Background(), userID, CreateCommentRequest{
		StoryID: storyID,
		Content: "great chapter",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return comment
}

func TestService_UpdateOwnerOnly(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepository())
	ctx := context.Background()
	comment := seedComment(t, svc, "author-1", "s1")

	updated, err := svc.Update(ctx, "author-1", comment.ID, UpdateCommentRequest{
		Content: "edited",
	})
	if err != nil {
		t.Fatalf("author edit error: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("content = %q, want edited", updated.Content)
	}

	_, err = svc.Update(ctx, "someone-else", comment.ID, UpdateCommentRequest{
		Content: "hijacked",
	})
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("non-author edit: want ErrForbidden, got %v", err)
	}
}

func TestService_DeleteOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepository())
	ctx := context.Background()

	own := seedComment(t, svc, "author-1", "s1")
	if err := svc.Delete(ctx, "author-1", false, own.ID); err != nil {
		t.Fatalf("author delete error: %v", err)
	}

	other := seedComment(t, svc, "author-1", "s1")
	err := svc.Delete(ctx, "someone-else", false, other.ID)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("non-author delete: want ErrForbidden, got %v", err)
	}

	if err := svc.Delete(ctx, "admin-1", true, other.ID); err != nil {
		t.Fatalf("admin delete error: %v", err)
	}
}

func TestService_UpdateMissingComment(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepository())

	_, err := svc.Update(
		context.Background(),
		"author-1",
		"ghost",
		UpdateCommentRequest{Content: "x"},
	)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
