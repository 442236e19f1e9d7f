package types

import (
	"time"

	"github.com/google/uuid"
)

// CommunityPost is created when a journal entry is shared. LikeCount is only
// ever mutated through the like operation, alongside a PostLike row.
type CommunityPost struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JournalEntryID uuid.UUID `gorm:"type:uuid;not null;index" json:"journal_entry_id"`
	AuthorID       uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName     string    `gorm:"not null" json:"author_name"`
	Summary        string    `gorm:"type:text;not null" json:"summary"`
	LikeCount      int       `gorm:"not null;default:0" json:"like_count"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (CommunityPost) TableName() string { return "community_posts" }

// PostLike is the server-side likedBy membership. The composite primary key
// is what makes a like at-most-once per (post, user).
type PostLike struct {
	PostID uuid.UUID `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }
