package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ArtifactKind string

const (
	ArtifactChallenge   ArtifactKind = "challenge"
	ArtifactQuestionSet ArtifactKind = "question_set"
)

// DayLayout is the wire/storage format for calendar day keys.
const DayLayout = "2006-01-02"

// DayKey returns the calendar day for t in UTC. Day boundaries are evaluated
// in UTC for every user; never in the client's local zone, so a user crossing
// midnight in their own zone does not flip streaks or daily artifacts
// mid-session.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DaysBetween returns the whole-calendar-day gap from day key a to day key b.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.ParseInLocation(DayLayout, a, time.UTC)
	if err != nil {
		return 0, err
	}
	tb, err := time.ParseInLocation(DayLayout, b, time.UTC)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// DailyArtifact is a generated, cached unit of content (challenge or question
// set) scoped to one user and one UTC calendar day. At most one row exists
// per (user, day, kind); repeated requests return the same row.
type DailyArtifact struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_daily_artifacts_key" json:"user_id"`
	Day       string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_artifacts_key" json:"day"`
	Kind      ArtifactKind   `gorm:"type:varchar(20);not null;uniqueIndex:idx_daily_artifacts_key" json:"kind"`
	Content   datatypes.JSON `gorm:"not null" json:"content"`
	Completed bool           `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (DailyArtifact) TableName() string { return "daily_artifacts" }

func EncodeChallengeContent(text string) datatypes.JSON {
	raw, _ := json.Marshal(text)
	return datatypes.JSON(raw)
}

func EncodeQuestionSetContent(questions []string) datatypes.JSON {
	raw, _ := json.Marshal(questions)
	return datatypes.JSON(raw)
}

// ChallengeText decodes the content of a challenge artifact.
func (a *DailyArtifact) ChallengeText() string {
	var text string
	_ = json.Unmarshal(a.Content, &text)
	return text
}

// Questions decodes the content of a question-set artifact.
func (a *DailyArtifact) Questions() []string {
	var questions []string
	_ = json.Unmarshal(a.Content, &questions)
	return questions
}
