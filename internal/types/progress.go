package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress is the per-user progression record. One row per user, created
// at registration with all counters zero. XP and TotalEntries only ever grow;
// level is derived from XP and never stored.
type UserProgress struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	XP     int       `gorm:"not null;default:0" json:"xp"`
	Streak int       `gorm:"not null;default:0" json:"streak"`
	// LastActivityDate is a UTC day key (see DayKey), nil before the first
	// submission.
	LastActivityDate *string `gorm:"type:varchar(10)" json:"last_activity_date,omitempty"`
	TotalEntries     int     `gorm:"not null;default:0" json:"total_entries"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }

const xpPerLevel = 100

// Level derives the level from an XP total: floor(xp/100)+1.
func Level(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/xpPerLevel + 1
}

// NextStreak applies the streak-continuity rule for a submission on day
// (a UTC day key): no prior activity starts a streak of 1, a submission the
// same day leaves it unchanged, the next calendar day extends it, and any
// longer gap resets it to 1. A day earlier than the recorded one (client
// clock skew) leaves the streak unchanged.
// NextActivityDate returns the last-activity marker after a submission on
// day: the marker only ever advances. A submission carrying an earlier day
// than the recorded one (client clock skew) keeps the recorded marker, so a
// later submission on the real day cannot re-extend the streak.
func NextActivityDate(lastActivityDate *string, day string) string {
	if lastActivityDate == nil || *lastActivityDate == "" {
		return day
	}
	gap, err := DaysBetween(*lastActivityDate, day)
	if err != nil {
		return day
	}
	if gap < 0 {
		return *lastActivityDate
	}
	return day
}

func NextStreak(current int, lastActivityDate *string, day string) int {
	if lastActivityDate == nil || *lastActivityDate == "" {
		return 1
	}
	gap, err := DaysBetween(*lastActivityDate, day)
	if err != nil {
		return 1
	}
	switch {
	case gap <= 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}
