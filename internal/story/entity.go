// AngelaMos | 2026
// entity.go

package story

import (
	"time"
)

type Story struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Slug            string    `db:"slug"`
	Description     string    `db:"description"`
	CoverImage      string    `db:"cover_image"`
	AuthorName      string    `db:"author_name"`
	AuthorBio       string    `db:"author_bio"`
	AuthorAvatarURL string    `db:"author_avatar_url"`
	Type            string    `db:"type"`
	Status          string    `db:"status"`
	Views           int       `db:"views"`
	TotalLikes      int       `db:"total_likes"`
	CreatedBy       string    `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	CategoryIDs []string `db:"-"`
}

const (
	TypeNovel = "novel"
	TypeComic = "comic"
)

const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)
