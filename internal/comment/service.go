// AngelaMos | 2026
// service.go

package comment

import (
	"context"
	"fmt"

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
	userID string,
	req CreateCommentRequest,
) (*Comment, error) {
	comment := &Comment{
		ID:      uuid.New().String(),
		StoryID: req.StoryID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Update edits a comment body. Only the author may edit.
func (s *Service) Update(
	ctx context.Context,
	requesterID, commentID string,
	req UpdateCommentRequest,
) (*Comment, error) {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != requesterID {
		return nil, fmt.Errorf(
			"only the author can edit a comment: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Update(ctx, commentID, req.Content)
}

// Delete removes a comment. The author may delete their own; admins may
// delete any.
func (s *Service) Delete(
	ctx context.Context,
	requesterID string,
	isAdmin bool,
	commentID string,
) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != requesterID && !isAdmin {
		return fmt.Errorf(
			"only the author or an admin can delete a comment: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, commentID)
}

func (s *Service) ListByStory(
	ctx context.Context,
	storyID string,
	page, pageSize int,
) ([]Comment, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return s.repo.ListByStory(ctx, storyID, page, pageSize)
}
