package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JournalEntry is append-only: created on submission, immutable thereafter.
type JournalEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_entries_user_created" json:"user_id"`
	Text    string    `gorm:"type:text;not null" json:"text"`
	Summary string    `gorm:"type:text" json:"summary"`
	// Questions and Answers keep the day's prompts next to what the user
	// wrote for them.
	Questions datatypes.JSON `json:"questions"`
	Answers   datatypes.JSON `json:"answers"`
	Shared    bool           `gorm:"not null;default:false" json:"shared"`

	CreatedAt time.Time `gorm:"not null;index:idx_journal_entries_user_created" json:"created_at"`
}

func (JournalEntry) TableName() string { return "journal_entries" }
