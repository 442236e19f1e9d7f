package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/types"
)

type ProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, progress *types.UserProgress) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserProgress, error)

	// ApplyJournalSubmission awards the submission (+10 XP, +1 entry) and
	// writes the new streak state in one conditional UPDATE keyed on the
	// previously observed last_activity_date. It reports false when another
	// submission won the race and the caller must re-read and retry.
	ApplyJournalSubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, prevLastActivityDate *string, newLastActivityDate string, newStreak int) (bool, error)

	// AddXP is a pure increment; it never reads back a stale total.
	AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) error

	TopByXP(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserProgress, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (pr *progressRepo) Create(ctx context.Context, tx *gorm.DB, progress *types.UserProgress) error {
	t := tx
	if t == nil {
		t = pr.db
	}
	if err := t.WithContext(ctx).Create(progress).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (pr *progressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error) {
	t := tx
	if t == nil {
		t = pr.db
	}
	var progress types.UserProgress
	if err := t.WithContext(ctx).First(&progress, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return &progress, nil
}

func (pr *progressRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserProgress, error) {
	t := tx
	if t == nil {
		t = pr.db
	}
	var results []*types.UserProgress
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (pr *progressRepo) ApplyJournalSubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, prevLastActivityDate *string, newLastActivityDate string, newStreak int) (bool, error) {
	t := tx
	if t == nil {
		t = pr.db
	}
	q := t.WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ?", userID)
	if prevLastActivityDate == nil {
		q = q.Where("last_activity_date IS NULL")
	} else {
		q = q.Where("last_activity_date = ?", *prevLastActivityDate)
	}
	res := q.Updates(map[string]interface{}{
		"xp":                 gorm.Expr("xp + ?", 10),
		"total_entries":      gorm.Expr("total_entries + ?", 1),
		"streak":             newStreak,
		"last_activity_date": newLastActivityDate,
	})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (pr *progressRepo) AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) error {
	t := tx
	if t == nil {
		t = pr.db
	}
	res := t.WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", delta))
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (pr *progressRepo) TopByXP(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserProgress, error) {
	t := tx
	if t == nil {
		t = pr.db
	}
	if limit <= 0 {
		limit = 50
	}
	var results []*types.UserProgress
	if err := t.WithContext(ctx).
		Order("xp DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (pr *progressRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = pr.db
	}
	if err := t.WithContext(ctx).Delete(&types.UserProgress{}, "user_id = ?", userID).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
