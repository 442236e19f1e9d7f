package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

const (
	// XP awards. Level is derived from XP, never stored.
	XPPerJournal   = 10
	XPPerChallenge = 20

	// Streak updates are conditional on the previously read state; a lost
	// race means another submission for the same user landed first.
	streakUpdateAttempts = 3
)

// ProgressView is a UserProgress row plus its derived level.
type ProgressView struct {
	*types.UserProgress
	Level int `json:"level"`
}

type ProgressService interface {
	GetForUser(ctx context.Context, userID uuid.UUID) (*ProgressView, error)

	// RecordJournalSubmission applies the journal award and streak
	// transition for a submission happening at now. Runs inside the
	// caller's transaction when tx is non-nil.
	RecordJournalSubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (*ProgressView, error)

	// RecordChallengeCompletion flips today's challenge to completed and
	// awards its XP, both in one transaction. A second call for the same
	// day returns ErrAlreadyCompleted and awards nothing.
	RecordChallengeCompletion(ctx context.Context, userID uuid.UUID, now time.Time) (*ProgressView, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRepo
	dailyRepo    repos.DailyArtifactRepo
	leaderboard  LeaderboardService
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo, dailyRepo repos.DailyArtifactRepo, leaderboard LeaderboardService) ProgressService {
	return &progressService{
		db:           db,
		log:          log.With("service", "ProgressService"),
		progressRepo: progressRepo,
		dailyRepo:    dailyRepo,
		leaderboard:  leaderboard,
	}
}

func view(p *types.UserProgress) *ProgressView {
	return &ProgressView{UserProgress: p, Level: types.Level(p.XP)}
}

func (ps *progressService) GetForUser(ctx context.Context, userID uuid.UUID) (*ProgressView, error) {
	progress, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return view(progress), nil
}

func (ps *progressService) RecordJournalSubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (*ProgressView, error) {
	day := types.DayKey(now)

	for attempt := 0; attempt < streakUpdateAttempts; attempt++ {
		progress, err := ps.progressRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		newStreak := types.NextStreak(progress.Streak, progress.LastActivityDate, day)
		newDay := types.NextActivityDate(progress.LastActivityDate, day)
		applied, err := ps.progressRepo.ApplyJournalSubmission(ctx, tx, userID, progress.LastActivityDate, newDay, newStreak)
		if err != nil {
			return nil, err
		}
		if applied {
			updated, err := ps.progressRepo.GetByUserID(ctx, tx, userID)
			if err != nil {
				return nil, err
			}
			return view(updated), nil
		}
		ps.log.Debug("Streak update lost race, retrying", "user_id", userID, "attempt", attempt+1)
	}
	return nil, fmt.Errorf("recording journal submission for user %s: streak update kept losing races", userID)
}

func (ps *progressService) RecordChallengeCompletion(ctx context.Context, userID uuid.UUID, now time.Time) (*ProgressView, error) {
	day := types.DayKey(now)

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.dailyRepo.MarkChallengeCompleted(ctx, tx, userID, day); err != nil {
			return err
		}
		return ps.progressRepo.AddXP(ctx, tx, userID, XPPerChallenge)
	})
	if err != nil {
		return nil, err
	}

	progress, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	// The award is committed; refresh the cached ranking.
	ps.leaderboard.BumpXP(ctx, userID, progress.XP)
	return view(progress), nil
}
