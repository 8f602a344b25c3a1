// AngelaMos | 2026
// entity.go

package chapter

import (
	"time"

	"github.com/truyenhub/backend/internal/core"
)

// Chapter carries either prose content (novels) or an ordered image
// list (comics), never both.
type Chapter struct {
	ID            string           `db:"id"`
	StoryID       string           `db:"story_id"`
	ChapterNumber int              `db:"chapter_number"`
	Title         string           `db:"title"`
	Content       string           `db:"content"`
	Images        core.StringSlice `db:"images"`
	CreatedAt     time.Time        `db:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at"`
}
