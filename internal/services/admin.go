package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

// AdminService is the moderation surface. It deliberately bypasses the
// progression and engagement rules; access is gated by the admin middleware.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*types.User, error)
	UpdateUserDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*types.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	ListJournals(ctx context.Context, limit int) ([]*types.JournalEntry, error)
	DeleteJournal(ctx context.Context, entryID uuid.UUID) error
}

type adminService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	progressRepo repos.ProgressRepo
	journalRepo  repos.JournalRepo
}

func NewAdminService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, progressRepo repos.ProgressRepo, journalRepo repos.JournalRepo) AdminService {
	return &adminService{
		db:           db,
		log:          log.With("service", "AdminService"),
		userRepo:     userRepo,
		progressRepo: progressRepo,
		journalRepo:  journalRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*types.User, error) {
	return s.userRepo.List(ctx, nil)
}

func (s *adminService) UpdateUserDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*types.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, pkgerrors.ErrInvalidArgument
	}
	if err := s.userRepo.UpdateDisplayName(ctx, nil, userID, displayName); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, nil, userID)
}

func (s *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progressRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		return s.userRepo.DeleteByID(ctx, tx, userID)
	})
	if err != nil {
		return err
	}
	s.log.Info("User deleted", "user_id", userID)
	return nil
}

func (s *adminService) ListJournals(ctx context.Context, limit int) ([]*types.JournalEntry, error) {
	return s.journalRepo.ListRecent(ctx, nil, limit)
}

func (s *adminService) DeleteJournal(ctx context.Context, entryID uuid.UUID) error {
	if err := s.journalRepo.DeleteByID(ctx, nil, entryID); err != nil {
		return err
	}
	s.log.Info("Journal entry deleted", "entry_id", entryID)
	return nil
}
