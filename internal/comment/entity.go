// AngelaMos | 2026
// entity.go

package comment

import (
	"time"
)

type Comment struct {
	ID        string    `db:"id"`
	StoryID   string    `db:"story_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Joined from users for listings.
	Username  string `db:"username"`
	AvatarURL string `db:"avatar_url"`
}
