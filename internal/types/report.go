package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// XPSeriesPoint is one day of the per-day XP chart series attached to a
// report. The series is derived from real journal activity in the window,
// never synthesized.
type XPSeriesPoint struct {
	Day string `json:"day"`
	XP  int    `json:"xp"`
}

// ReportSnapshot is immutable once created; generating a report always
// inserts a new snapshot.
type ReportSnapshot struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index:idx_report_snapshots_user_created" json:"user_id"`
	WindowStart        time.Time      `gorm:"not null" json:"window_start"`
	WindowEnd          time.Time      `gorm:"not null" json:"window_end"`
	EntryCount         int            `gorm:"not null" json:"entry_count"`
	XPDelta            int            `gorm:"not null" json:"xp_delta"`
	StreakAtGeneration int            `gorm:"not null" json:"streak_at_generation"`
	Narrative          string         `gorm:"type:text;not null" json:"narrative"`
	XPSeries           datatypes.JSON `json:"xp_series"`

	CreatedAt time.Time `gorm:"not null;index:idx_report_snapshots_user_created" json:"created_at"`
}

func (ReportSnapshot) TableName() string { return "report_snapshots" }
