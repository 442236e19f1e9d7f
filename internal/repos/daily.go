package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/types"
)

type DailyArtifactRepo interface {
	// CreateIfAbsent persists the artifact unless one already exists for its
	// (user, day, kind) key. The unique index plus ON CONFLICT DO NOTHING is
	// what makes concurrent first-requests-of-the-day persist exactly one
	// row. Reports whether this call created the row.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, artifact *types.DailyArtifact) (bool, error)

	GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string, kind types.ArtifactKind) (*types.DailyArtifact, error)

	// MarkChallengeCompleted flips completed false->true exactly once.
	// Returns ErrAlreadyCompleted when the flag was already set and
	// ErrNotFound when no challenge artifact exists for that day.
	MarkChallengeCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string) error
}

type dailyArtifactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyArtifactRepo(db *gorm.DB, baseLog *logger.Logger) DailyArtifactRepo {
	return &dailyArtifactRepo{db: db, log: baseLog.With("repo", "DailyArtifactRepo")}
}

func (dr *dailyArtifactRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, artifact *types.DailyArtifact) (bool, error) {
	t := tx
	if t == nil {
		t = dr.db
	}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "kind"}},
			DoNothing: true,
		}).
		Create(artifact)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (dr *dailyArtifactRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string, kind types.ArtifactKind) (*types.DailyArtifact, error) {
	t := tx
	if t == nil {
		t = dr.db
	}
	var artifact types.DailyArtifact
	if err := t.WithContext(ctx).
		First(&artifact, "user_id = ? AND day = ? AND kind = ?", userID, day, kind).Error; err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return &artifact, nil
}

func (dr *dailyArtifactRepo) MarkChallengeCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string) error {
	t := tx
	if t == nil {
		t = dr.db
	}
	res := t.WithContext(ctx).
		Model(&types.DailyArtifact{}).
		Where("user_id = ? AND day = ? AND kind = ? AND completed = ?", userID, day, types.ArtifactChallenge, false).
		Update("completed", true)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	// Zero rows: either no artifact yet or the flag was already set.
	if _, err := dr.GetByKey(ctx, tx, userID, day, types.ArtifactChallenge); err != nil {
		return err
	}
	return pkgerrors.ErrAlreadyCompleted
}
