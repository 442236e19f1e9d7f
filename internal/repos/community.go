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

type CommunityRepo interface {
	CreatePost(ctx context.Context, tx *gorm.DB, post *types.CommunityPost) error
	GetPostByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.CommunityPost, error)
	ListPosts(ctx context.Context, tx *gorm.DB, limit int) ([]*types.CommunityPost, error)
	DeletePost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error

	// InsertLike records membership in the post's likedBy set. The composite
	// primary key plus ON CONFLICT DO NOTHING makes a duplicate like a no-op;
	// the boolean reports whether this call inserted the row.
	InsertLike(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error)
	IncrementLikeCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
	LikedBy(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]uuid.UUID, error)
	ListLikedPostIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type communityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunityRepo(db *gorm.DB, baseLog *logger.Logger) CommunityRepo {
	return &communityRepo{db: db, log: baseLog.With("repo", "CommunityRepo")}
}

func (cr *communityRepo) CreatePost(ctx context.Context, tx *gorm.DB, post *types.CommunityPost) error {
	t := tx
	if t == nil {
		t = cr.db
	}
	if err := t.WithContext(ctx).Create(post).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (cr *communityRepo) GetPostByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.CommunityPost, error) {
	t := tx
	if t == nil {
		t = cr.db
	}
	var post types.CommunityPost
	if err := t.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return &post, nil
}

func (cr *communityRepo) ListPosts(ctx context.Context, tx *gorm.DB, limit int) ([]*types.CommunityPost, error) {
	t := tx
	if t == nil {
		t = cr.db
	}
	if limit <= 0 {
		limit = 100
	}
	var results []*types.CommunityPost
	if err := t.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (cr *communityRepo) DeletePost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	t := tx
	if t == nil {
		t = cr.db
	}
	res := t.WithContext(ctx).Delete(&types.CommunityPost{}, "id = ?", postID)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	if err := t.WithContext(ctx).Delete(&types.PostLike{}, "post_id = ?", postID).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (cr *communityRepo) InsertLike(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = cr.db
	}
	like := types.PostLike{PostID: postID, UserID: userID}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (cr *communityRepo) IncrementLikeCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	t := tx
	if t == nil {
		t = cr.db
	}
	res := t.WithContext(ctx).
		Model(&types.CommunityPost{}).
		Where("id = ?", postID).
		Update("like_count", gorm.Expr("like_count + ?", 1))
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (cr *communityRepo) LikedBy(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = cr.db
	}
	var userIDs []uuid.UUID
	if err := t.WithContext(ctx).
		Model(&types.PostLike{}).
		Where("post_id = ?", postID).
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, storeErr(err)
	}
	return userIDs, nil
}

func (cr *communityRepo) ListLikedPostIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = cr.db
	}
	var postIDs []uuid.UUID
	if err := t.WithContext(ctx).
		Model(&types.PostLike{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &postIDs).Error; err != nil {
		return nil, storeErr(err)
	}
	return postIDs, nil
}
