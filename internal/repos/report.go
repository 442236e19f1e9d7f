package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/types"
)

type ReportRepo interface {
	// Create inserts a new snapshot. Snapshots are never updated.
	Create(ctx context.Context, tx *gorm.DB, snapshot *types.ReportSnapshot) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ReportSnapshot, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (rr *reportRepo) Create(ctx context.Context, tx *gorm.DB, snapshot *types.ReportSnapshot) error {
	t := tx
	if t == nil {
		t = rr.db
	}
	if err := t.WithContext(ctx).Create(snapshot).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (rr *reportRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ReportSnapshot, error) {
	t := tx
	if t == nil {
		t = rr.db
	}
	var results []*types.ReportSnapshot
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}
