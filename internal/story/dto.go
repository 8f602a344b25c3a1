// AngelaMos | 2026
// dto.go

package story

import (
	"time"
)

type CreateStoryRequest struct {
	Title           string   `json:"title"             validate:"required,min=1,max=255"`
	Slug            string   `json:"slug"              validate:"required,min=1,max=255,lowercase"`
	Description     string   `json:"description"       validate:"omitempty,max=5000"`
	CoverImage      string   `json:"cover_image"       validate:"omitempty,url,max=512"`
	AuthorName      string   `json:"author_name"       validate:"omitempty,max=255"`
	AuthorBio       string   `json:"author_bio"        validate:"omitempty,max=2000"`
	AuthorAvatarURL string   `json:"author_avatar_url" validate:"omitempty,url,max=512"`
	Type            string   `json:"type"              validate:"required,oneof=novel comic"`
	Status          string   `json:"status"            validate:"omitempty,oneof=ongoing completed paused"`
	CategoryIDs     []string `json:"category_ids"      validate:"omitempty,dive,uuid"`
}

type UpdateStoryRequest struct {
	Title           *string   `json:"title,omitempty"             validate:"omitempty,min=1,max=255"`
	Slug            *string   `json:"slug,omitempty"              validate:"omitempty,min=1,max=255,lowercase"`
	Description     *string   `json:"description,omitempty"       validate:"omitempty,max=5000"`
	CoverImage      *string   `json:"cover_image,omitempty"       validate:"omitempty,url,max=512"`
	AuthorName      *string   `json:"author_name,omitempty"       validate:"omitempty,max=255"`
	AuthorBio       *string   `json:"author_bio,omitempty"        validate:"omitempty,max=2000"`
	AuthorAvatarURL *string   `json:"author_avatar_url,omitempty" validate:"omitempty,url,max=512"`
	Status          *string   `json:"status,omitempty"            validate:"omitempty,oneof=ongoing completed paused"`
	CategoryIDs     *[]string `json:"category_ids,omitempty"      validate:"omitempty,dive,uuid"`
}

type StoryResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description,omitempty"`
	CoverImage      string    `json:"cover_image,omitempty"`
	AuthorName      string    `json:"author_name,omitempty"`
	AuthorBio       string    `json:"author_bio,omitempty"`
	AuthorAvatarURL string    `json:"author_avatar_url,omitempty"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Views           int       `json:"views"`
	TotalLikes      int       `json:"total_likes"`
	CategoryIDs     []string  `json:"category_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type HomeResponse struct {
	MostViewed      []StoryResponse `json:"most_viewed"`
	RecentlyUpdated []StoryResponse `json:"recently_updated"`
	RecentlyAdded   []StoryResponse `json:"recently_added"`
}

type LikeStatusResponse struct {
	Liked      bool `json:"liked"`
	TotalLikes int  `json:"total_likes"`
}

type ListStoriesParams struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Search     string `json:"search"`
	CategoryID string `json:"category_id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

func (p *ListStoriesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListStoriesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToStoryResponse(s *Story) StoryResponse {
	categoryIDs := s.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}

	return StoryResponse{
		ID:              s.ID,
		Title:           s.Title,
		Slug:            s.Slug,
		Description:     s.Description,
		CoverImage:      s.CoverImage,
		AuthorName:      s.AuthorName,
		AuthorBio:       s.AuthorBio,
		AuthorAvatarURL: s.AuthorAvatarURL,
		Type:            s.Type,
		Status:          s.Status,
		Views:           s.Views,
		TotalLikes:      s.TotalLikes,
		CategoryIDs:     categoryIDs,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToStoryResponseList(stories []Story) []StoryResponse {
	responses := make([]StoryResponse, 0, len(stories))
	for _, s := range stories {
		responses = append(responses, ToStoryResponse(&s))
	}
	return responses
}
