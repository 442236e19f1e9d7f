package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

type PostView struct {
	*types.CommunityPost
	LikedByMe bool `json:"liked_by_me"`
}

type CommunityService interface {
	// List returns the shared feed newest first, with the caller's own
	// like state resolved.
	List(ctx context.Context, viewerID uuid.UUID) ([]*PostView, error)

	// Like records the viewer's like at most once. A repeat like returns
	// ErrAlreadyLiked and leaves the count untouched.
	Like(ctx context.Context, postID, viewerID uuid.UUID) (*types.CommunityPost, error)

	Delete(ctx context.Context, postID uuid.UUID) error

	// publish copies an entry into the shared feed inside the submission
	// transaction.
	publish(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.CommunityPost, error)
}

type communityService struct {
	db            *gorm.DB
	log           *logger.Logger
	communityRepo repos.CommunityRepo
	userRepo      repos.UserRepo
}

func NewCommunityService(db *gorm.DB, log *logger.Logger, communityRepo repos.CommunityRepo, userRepo repos.UserRepo) CommunityService {
	return &communityService{
		db:            db,
		log:           log.With("service", "CommunityService"),
		communityRepo: communityRepo,
		userRepo:      userRepo,
	}
}

func (cs *communityService) publish(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.CommunityPost, error) {
	author, err := cs.userRepo.GetByID(ctx, tx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolving post author: %w", err)
	}
	post := &types.CommunityPost{
		ID:             uuid.New(),
		JournalEntryID: entry.ID,
		AuthorID:       author.ID,
		AuthorName:     author.DisplayName,
		Summary:        entry.Summary,
	}
	if err := cs.communityRepo.CreatePost(ctx, tx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (cs *communityService) List(ctx context.Context, viewerID uuid.UUID) ([]*PostView, error) {
	posts, err := cs.communityRepo.ListPosts(ctx, nil, 0)
	if err != nil {
		return nil, err
	}
	likedIDs, err := cs.communityRepo.ListLikedPostIDs(ctx, nil, viewerID)
	if err != nil {
		return nil, err
	}
	liked := make(map[uuid.UUID]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		_, ok := liked[post.ID]
		views = append(views, &PostView{CommunityPost: post, LikedByMe: ok})
	}
	return views, nil
}

func (cs *communityService) Like(ctx context.Context, postID, viewerID uuid.UUID) (*types.CommunityPost, error) {
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := cs.communityRepo.InsertLike(ctx, tx, postID, viewerID)
		if err != nil {
			return err
		}
		if !inserted {
			return pkgerrors.ErrAlreadyLiked
		}
		return cs.communityRepo.IncrementLikeCount(ctx, tx, postID)
	})
	if err != nil {
		return nil, err
	}
	return cs.communityRepo.GetPostByID(ctx, nil, postID)
}

func (cs *communityService) Delete(ctx context.Context, postID uuid.UUID) error {
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return cs.communityRepo.DeletePost(ctx, tx, postID)
	})
	if err != nil {
		return err
	}
	cs.log.Info("Community post deleted", "post_id", postID)
	return nil
}
