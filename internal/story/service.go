// AngelaMos | 2026
// service.go

package story

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const homeSectionSize = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	createdBy string,
	req CreateStoryRequest,
) (*Story, error) {
	status := req.Status
	if status == "" {
		status = StatusOngoing
	}

	story := &Story{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		AuthorName:      req.AuthorName,
		AuthorBio:       req.AuthorBio,
		AuthorAvatarURL: req.AuthorAvatarURL,
		Type:            req.Type,
		Status:          status,
		CreatedBy:       createdBy,
		CategoryIDs:     req.CategoryIDs,
	}

	if err := s.repo.Create(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// Get returns the story and records the read, so detail views double as
// the view counter. The increment is applied to the returned copy to
// spare a second round trip.
func (s *Service) Get(ctx context.Context, id string) (*Story, error) {
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	story.Views++

	return story, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Story, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateStoryRequest,
) (*Story, error) {
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Slug != nil {
		story.Slug = *req.Slug
	}
	if req.Description != nil {
		story.Description = *req.Description
	}
	if req.CoverImage != nil {
		story.CoverImage = *req.CoverImage
	}
	if req.AuthorName != nil {
		story.AuthorName = *req.AuthorName
	}
	if req.AuthorBio != nil {
		story.AuthorBio = *req.AuthorBio
	}
	if req.AuthorAvatarURL != nil {
		story.AuthorAvatarURL = *req.AuthorAvatarURL
	}
	if req.Status != nil {
		story.Status = *req.Status
	}

	replaceCategories := false
	if req.CategoryIDs != nil {
		story.CategoryIDs = *req.CategoryIDs
		replaceCategories = true
	}

	if err := s.repo.Update(ctx, story, replaceCategories); err != nil {
		return nil, err
	}

	return story, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListStoriesParams,
) ([]Story, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) HomeData(ctx context.Context) (*HomeResponse, error) {
	mostViewed, err := s.repo.MostViewed(ctx, homeSectionSize)
	if err != nil {
		return nil, fmt.Errorf("home data: %w", err)
	}

	recentlyUpdated, err := s.repo.RecentlyUpdated(ctx, homeSectionSize)
	if err != nil {
		return nil, fmt.Errorf("home data: %w", err)
	}

	recentlyAdded, err := s.repo.RecentlyAdded(ctx, homeSectionSize)
	if err != nil {
		return nil, fmt.Errorf("home data: %w", err)
	}

	return &HomeResponse{
		MostViewed:      ToStoryResponseList(mostViewed),
		RecentlyUpdated: ToStoryResponseList(recentlyUpdated),
		RecentlyAdded:   ToStoryResponseList(recentlyAdded),
	}, nil
}

func (s *Service) Like(
	ctx context.Context,
	userID, storyID string,
) (*LikeStatusResponse, error) {
	total, err := s.repo.AddLike(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	return &LikeStatusResponse{Liked: true, TotalLikes: total}, nil
}

func (s *Service) Unlike(
	ctx context.Context,
	userID, storyID string,
) (*LikeStatusResponse, error) {
	total, err := s.repo.RemoveLike(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	return &LikeStatusResponse{Liked: false, TotalLikes: total}, nil
}

func (s *Service) LikeStatus(
	ctx context.Context,
	userID, storyID string,
) (*LikeStatusResponse, error) {
	liked, total, err := s.repo.LikeStatus(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	return &LikeStatusResponse{Liked: liked, TotalLikes: total}, nil
}
