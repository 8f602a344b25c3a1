// AngelaMos | 2026
// dto.go

package chapter

import (
	"time"
)

type CreateChapterRequest struct {
	StoryID       string   `json:"story_id"       validate:"required,uuid"`
	ChapterNumber int      `json:"chapter_number" validate:"required,min=1"`
	Title         string   `json:"title"          validate:"omitempty,max=255"`
	Content       string   `json:"content"        validate:"omitempty"`
	Images        []string `json:"images"         validate:"omitempty,dive,url"`
}

type UpdateChapterRequest struct {
	ChapterNumber *int      `json:"chapter_number,omitempty" validate:"omitempty,min=1"`
	Title         *string   `json:"title,omitempty"          validate:"omitempty,max=255"`
	Content       *string   `json:"content,omitempty"        validate:"omitempty"`
	Images        *[]string `json:"images,omitempty"         validate:"omitempty,dive,url"`
}

// ChapterSummary is the listing shape: no prose body, no image list.
type ChapterSummary struct {
	ID            string    `json:"id"             db:"id"`
	StoryID       string    `json:"story_id"       db:"story_id"`
	ChapterNumber int       `json:"chapter_number" db:"chapter_number"`
	Title         string    `json:"title,omitempty" db:"title"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"     db:"updated_at"`
}

type ChapterResponse struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"story_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title,omitempty"`
	Content       string    `json:"content,omitempty"`
	Images        []string  `json:"images,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToChapterResponse(c *Chapter) ChapterResponse {
	return ChapterResponse{
		ID:            c.ID,
		StoryID:       c.StoryID,
		ChapterNumber: c.ChapterNumber,
		Title:         c.Title,
		Content:       c.Content,
		Images:        []string(c.Images),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
