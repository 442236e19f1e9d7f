package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

type SubmitJournalInput struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
	Share     bool     `json:"share"`
}

type SubmitJournalResult struct {
	Entry    *types.JournalEntry  `json:"entry"`
	Progress *ProgressView        `json:"progress"`
	Post     *types.CommunityPost `json:"post,omitempty"`
}

// JournalService is the intake path: summary generation, persistence, the
// progression award and the optional community publish are one unit of work.
type JournalService interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitJournalInput) (*SubmitJournalResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.JournalEntry, error)
}

type journalService struct {
	db          *gorm.DB
	log         *logger.Logger
	journalRepo repos.JournalRepo
	userRepo    repos.UserRepo
	progress    ProgressService
	community   CommunityService
	textGen     TextGenService
	leaderboard LeaderboardService
}

func NewJournalService(
	db *gorm.DB,
	log *logger.Logger,
	journalRepo repos.JournalRepo,
	userRepo repos.UserRepo,
	progress ProgressService,
	community CommunityService,
	textGen TextGenService,
	leaderboard LeaderboardService,
) JournalService {
	return &journalService{
		db:          db,
		log:         log.With("service", "JournalService"),
		journalRepo: journalRepo,
		userRepo:    userRepo,
		progress:    progress,
		community:   community,
		textGen:     textGen,
		leaderboard: leaderboard,
	}
}

func (js *journalService) Submit(ctx context.Context, userID uuid.UUID, input SubmitJournalInput) (*SubmitJournalResult, error) {
	var parts []string
	for _, answer := range input.Answers {
		if trimmed := strings.TrimSpace(answer); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: journal submission has no answers", pkgerrors.ErrInvalidArgument)
	}
	text := strings.Join(parts, "\n\n")

	// Generation happens before the transaction; it can be slow and it
	// never fails (fallback copy on error).
	summary := js.textGen.JournalSummary(ctx, text)

	questionsJSON, err := encodeStrings(input.Questions)
	if err != nil {
		return nil, err
	}
	answersJSON, err := encodeStrings(input.Answers)
	if err != nil {
		return nil, err
	}

	entry := &types.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Summary:   summary,
		Questions: questionsJSON,
		Answers:   answersJSON,
		Shared:    input.Share,
	}

	result := &SubmitJournalResult{Entry: entry}
	now := time.Now().UTC()

	err = js.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := js.journalRepo.Create(ctx, tx, entry); err != nil {
			return err
		}
		progress, err := js.progress.RecordJournalSubmission(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		result.Progress = progress

		if input.Share {
			post, err := js.community.publish(ctx, tx, entry)
			if err != nil {
				return err
			}
			result.Post = post
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	js.leaderboard.BumpXP(ctx, userID, result.Progress.XP)
	js.log.Info("Journal submitted", "user_id", userID, "entry_id", entry.ID, "shared", input.Share)
	return result, nil
}

func (js *journalService) List(ctx context.Context, userID uuid.UUID) ([]*types.JournalEntry, error) {
	return js.journalRepo.ListByUser(ctx, nil, userID)
}

func encodeStrings(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encoding strings: %w", err)
	}
	return datatypes.JSON(raw), nil
}
