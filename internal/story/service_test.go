// AngelaMos | 2026
// service_test.go

package story

import (
	"context"
	"errors"
	"testing"

	"github.com/truyenhub/backend/internal/core"
)

type fakeRepository struct {
	stories map[string]*Story
	likes   map[string]map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		stories: make(map[string]*Story),
		likes:   make(map[string]map[string]bool),
	}
}

func (r *fakeRepository) Create(ctx context.Context, story *Story) error {
	cp := *story
	r.stories[story.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(
	ctx context.Context,
	id string,
) (*Story, error) {
	story, ok := r.stories[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *story
	return &cp, nil
}

func (r *fakeRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Story, error) {
	for _, story := range r.stories {
		if story.Slug == slug {
			cp := *story
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepository) Update(
	ctx context.Context,
	story *Story,
	replaceCategories bool,
) error {
	stored, ok := r.stories[story.ID]
	if !ok {
		return core.ErrNotFound
	}
	cp := *story
	if !replaceCategories {
		cp.CategoryIDs = stored.CategoryIDs
	}
	r.stories[story.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.stories[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.stories, id)
	return nil
}

func (r *fakeRepository) List(
	ctx context.Context,
	params ListStoriesParams,
) ([]Story, int, error) {
	var out []Story
	for _, story := range r.stories {
		out = append(out, *story)
	}
	return out, len(out), nil
}

func (r *fakeRepository) MostViewed(
	ctx context.Context,
	limit int,
) ([]Story, error) {
	return nil, nil
}

func (r *fakeRepository) RecentlyUpdated(
	ctx context.Context,
	limit int,
) ([]Story, error) {
	return nil, nil
}

func (r *fakeRepository) RecentlyAdded(
	ctx context.Context,
	limit int,
) ([]Story, error) {
	return nil, nil
}

func (r *fakeRepository) IncrementViews(ctx context.Context, id string) error {
	story, ok := r.stories[id]
	if !ok {
		return core.ErrNotFound
	}
	story.Views++
	return nil
}

func (r *fakeRepository) AddLike(
	ctx context.Context,
	userID, storyID string,
) (int, error) {
	story, ok := r.stories[storyID]
	if !ok {
		return 0, core.ErrNotFound
	}
	if r.likes[storyID] == nil {
		r.likes[storyID] = make(map[string]bool)
	}
	if r.likes[storyID][userID] {
		return 0, core.ErrDuplicateKey
	}
	r.likes[storyID][userID] = true
	story.TotalLikes++
	return story.TotalLikes, nil
}

func (r *fakeRepository) RemoveLike(
	ctx context.Context,
	userID, storyID string,
) (int, error) {
	story, ok := r.stories[storyID]
	if !ok || !r.likes[storyID][userID] {
		return 0, core.ErrNotFound
	}
	delete(r.likes[storyID], userID)
	if story.TotalLikes > 0 {
		story.TotalLikes--
	}
	return story.TotalLikes, nil
}

func (r *fakeRepository) LikeStatus(
	ctx context.Context,
	userID, storyID string,
) (bool, int, error) {
	story, ok := r.stories[storyID]
	if !ok {
		return false, 0, core.ErrNotFound
	}
	return r.likes[storyID][userID], story.TotalLikes, nil
}

func seedStory(t *testing.T, svc *Service) *Story {
	t.Helper()

	story, err := svc.Create(context.Background(), "admin-1", CreateStoryRequest{
		Title:      "The Long Road",
		Slug:       "the-long-road",
		Type:       TypeNovel,
		AuthorName: "K. Tran",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return story
}

func TestService_CreateDefaultsStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepository())
	story := seedStory(t, svc)

	if story.Status != StatusOngoing {
		t.Fatalf("status = %q, want %q", story.Status, StatusOngoing)
	}
}

func TestService_GetCountsView(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := NewService(repo)
	story := seedStory(t, svc)

	got, err := svc.Get(context.Background(), story.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("returned views = %d, want 1", got.Views)
	}
	if repo.stories[story.ID].Views != 1 {
		t.Fatalf("stored views = %d, want 1", repo.stories[story.ID].Views)
	}

	again, err := svc.Get(context.Background(), story.ID)
	if err != nil {
		t.Fatalf("second Get error: %v", err)
	}
	if again.Views != 2 {
		t.Fatalf("views after second read = %d, want 2", again.Views)
	}
}

func TestService_LikeUnlike(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepository())
	ctx := context.Background()
	story := seedStory(t, svc)

	status, err := svc.Like(ctx, "u1", story.ID)
	if err != nil {
		t.Fatalf("Like error: %v", err)
	}
	if !status.Liked || status.TotalLikes != 1 {
		t.Fatalf("after like: %+v", status)
	}

	if _, err := svc.Like(ctx, "u1", story.ID); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("double like: want ErrDuplicateKey, got %v", err)
	}

	status, err = svc.Unlike(ctx, "u1", story.ID)
	if err != nil {
		t.Fatalf("Unlike error: %v", err)
	}
	if status.Liked || status.TotalLikes != 0 {
		t.Fatalf("after unlike: %+v", status)
	}

	if _, err := svc.Unlike(ctx, "u1", story.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("unlike without like: want ErrNotFound, got %v", err)
	}
}

func TestService_UpdateKeepsCategoriesWhenOmitted(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	story, err := svc.Create(ctx, "admin-1", CreateStoryRequest{
		Title:       "The Long Road",
		Slug:        "the-long-road",
		Type:        TypeNovel,
		AuthorName:  "K. Tran",
		CategoryIDs: []string{"cat-1"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newTitle := "The Longer Road"
	updated, err := svc.Update(ctx, story.ID, UpdateStoryRequest{
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "The Longer Road" {
		t.Fatalf("title = %q", updated.Title)
	}
	if stored := repo.stories[story.ID]; len(stored.CategoryIDs) != 1 {
		t.Fatalf("categories lost on partial update: %v", stored.CategoryIDs)
	}

	empty := []string{}
	if _, err := svc.Update(ctx, story.ID, UpdateStoryRequest{
		CategoryIDs: &empty,
	}); err != nil {
		t.Fatalf("category-clearing update error: %v", err)
	}
	if stored := repo.stories[story.ID]; len(stored.CategoryIDs) != 0 {
		t.Fatalf("categories should be cleared: %v", stored.CategoryIDs)
	}
}
