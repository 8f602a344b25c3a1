// AngelaMos | 2026
// dto.go

package library

import (
	"time"
)

type AddBookmarkRequest struct {
	StoryID string `json:"story_id" validate:"required,uuid"`
}

type StorySummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	CoverImage string `json:"cover_image,omitempty"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

type BookmarkResponse struct {
	StoryID   string       `json:"story_id"`
	Story     StorySummary `json:"story"`
	CreatedAt time.Time    `json:"created_at"`
}

type BookmarkCheckResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type HistoryResponse struct {
	ID         string       `json:"id"`
	StoryID    string       `json:"story_id"`
	Story      StorySummary `json:"story"`
	LastReadAt time.Time    `json:"last_read_at"`
}

func ToBookmarkResponse(b *Bookmark) BookmarkResponse {
	return BookmarkResponse{
		StoryID: b.StoryID,
		Story: StorySummary{
			ID:         b.StoryID,
			Title:      b.StoryTitle,
			Slug:       b.StorySlug,
			CoverImage: b.StoryCoverImage,
			Type:       b.StoryType,
			Status:     b.StoryStatus,
		},
		CreatedAt: b.CreatedAt,
	}
}

func ToBookmarkResponseList(bookmarks []Bookmark) []BookmarkResponse {
	responses := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		responses = append(responses, ToBookmarkResponse(&b))
	}
	return responses
}

func ToHistoryResponse(e *HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:      e.ID,
		StoryID: e.StoryID,
		Story: StorySummary{
			ID:         e.StoryID,
			Title:      e.StoryTitle,
			Slug:       e.StorySlug,
			CoverImage: e.StoryCoverImage,
			Type:       e.StoryType,
			Status:     e.StoryStatus,
		},
		LastReadAt: e.LastReadAt,
	}
}

func ToHistoryResponseList(entries []HistoryEntry) []HistoryResponse {
	responses := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, ToHistoryResponse(&e))
	}
	return responses
}
