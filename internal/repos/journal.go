package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/types"
)

type JournalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) error
	GetByID(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) (*types.JournalEntry, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.JournalEntry, error)
	// ListByUserBetween returns the user's entries with created_at in
	// [from, to], oldest first.
	ListByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.JournalEntry, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.JournalEntry, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) error
}

type journalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalRepo(db *gorm.DB, baseLog *logger.Logger) JournalRepo {
	return &journalRepo{db: db, log: baseLog.With("repo", "JournalRepo")}
}

func (jr *journalRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) error {
	t := tx
	if t == nil {
		t = jr.db
	}
	if err := t.WithContext(ctx).Create(entry).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (jr *journalRepo) GetByID(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) (*types.JournalEntry, error) {
	t := tx
	if t == nil {
		t = jr.db
	}
	var entry types.JournalEntry
	if err := t.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return &entry, nil
}

func (jr *journalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.JournalEntry, error) {
	t := tx
	if t == nil {
		t = jr.db
	}
	var results []*types.JournalEntry
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (jr *journalRepo) ListByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.JournalEntry, error) {
	t := tx
	if t == nil {
		t = jr.db
	}
	var results []*types.JournalEntry
	if err := t.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (jr *journalRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.JournalEntry, error) {
	t := tx
	if t == nil {
		t = jr.db
	}
	if limit <= 0 {
		limit = 100
	}
	var results []*types.JournalEntry
	if err := t.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (jr *journalRepo) DeleteByID(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) error {
	t := tx
	if t == nil {
		t = jr.db
	}
	if err := t.WithContext(ctx).Delete(&types.JournalEntry{}, "id = ?", entryID).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
