// AngelaMos | 2026
// entity.go

package library

import (
	"time"
)

// Bookmark rows are keyed by (user_id, story_id); listings come back
// joined with the story so clients can render a shelf directly.
type Bookmark struct {
	UserID    string    `db:"user_id"`
	StoryID   string    `db:"story_id"`
	CreatedAt time.Time `db:"created_at"`

	StoryTitle      string `db:"story_title"`
	StorySlug       string `db:"story_slug"`
	StoryCoverImage string `db:"story_cover_image"`
	StoryType       string `db:"story_type"`
	StoryStatus     string `db:"story_status"`
}

type HistoryEntry struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	StoryID    string    `db:"story_id"`
	LastReadAt time.Time `db:"last_read_at"`
	CreatedAt  time.Time `db:"created_at"`

	StoryTitle      string `db:"story_title"`
	StorySlug       string `db:"story_slug"`
	StoryCoverImage string `db:"story_cover_image"`
	StoryType       string `db:"story_type"`
	StoryStatus     string `db:"story_status"`
}
