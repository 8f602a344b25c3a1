// AngelaMos | 2026
// service.go

package chapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/truyenhub/backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateChapterRequest,
) (*Chapter, error) {
	chapter := &Chapter{
		ID:            uuid.New().String(),
		StoryID:       req.StoryID,
		ChapterNumber: req.ChapterNumber,
		Title:         req.Title,
		Content:       req.Content,
		Images:        core.StringSlice(req.Images),
	}

	if err := s.repo.Create(ctx, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Chapter, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateChapterRequest,
) (*Chapter, error) {
	chapter, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ChapterNumber != nil {
		chapter.ChapterNumber = *req.ChapterNumber
	}
	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Content != nil {
		chapter.Content = *req.Content
	}
	if req.Images != nil {
		chapter.Images = core.StringSlice(*req.Images)
	}

	if err := s.repo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByStory(
	ctx context.Context,
	storyID string,
) ([]ChapterSummary, error) {
	return s.repo.ListByStory(ctx, storyID)
}
