package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	UpdateDisplayName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName string) error
	DeleteByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	t := tx
	if t == nil {
		t = ur.db
	}
	if err := t.WithContext(ctx).Create(user).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	t := tx
	if t == nil {
		t = ur.db
	}
	var user types.User
	if err := t.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return &user, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	t := tx
	if t == nil {
		t = ur.db
	}
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	t := tx
	if t == nil {
		t = ur.db
	}
	var user types.User
	if err := t.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return &user, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	t := tx
	if t == nil {
		t = ur.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	t := tx
	if t == nil {
		t = ur.db
	}
	var results []*types.User
	if err := t.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (ur *userRepo) UpdateDisplayName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName string) error {
	t := tx
	if t == nil {
		t = ur.db
	}
	res := t.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("display_name", displayName)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (ur *userRepo) DeleteByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = ur.db
	}
	if err := t.WithContext(ctx).Delete(&types.User{}, "id = ?", userID).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
