// AngelaMos | 2026
// service.go

package library

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddBookmark(
	ctx context.Context,
	userID, storyID string,
) (*Bookmark, error) {
	return s.repo.AddBookmark(ctx, userID, storyID)
}

func (s *Service) RemoveBookmark(
	ctx context.Context,
	userID, storyID string,
) error {
	return s.repo.RemoveBookmark(ctx, userID, storyID)
}

func (s *Service) ListBookmarks(
	ctx context.Context,
	userID string,
) ([]Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID)
}

func (s *Service) IsBookmarked(
	ctx context.Context,
	userID, storyID string,
) (bool, error) {
	return s.repo.IsBookmarked(ctx, userID, storyID)
}

func (s *Service) TouchHistory(
	ctx context.Context,
	userID, storyID string,
) (*HistoryEntry, error) {
	return s.repo.TouchHistory(ctx, userID, storyID)
}

func (s *Service) ListHistory(
	ctx context.Context,
	userID string,
) ([]HistoryEntry, error) {
	return s.repo.ListHistory(ctx, userID)
}

func (s *Service) DeleteHistory(
	ctx context.Context,
	userID, entryID string,
) error {
	return s.repo.DeleteHistory(ctx, userID, entryID)
}
