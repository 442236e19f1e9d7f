package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

// DailyService serves the per-user once-per-day artifacts (challenge and
// question set). Content is generated at most once per user/day/kind;
// generation failures persist fixed fallback content so the generator is not
// retried for the rest of the day.
type DailyService interface {
	GetOrCreateChallenge(ctx context.Context, userID uuid.UUID, now time.Time) (*types.DailyArtifact, error)
	GetOrCreateQuestions(ctx context.Context, userID uuid.UUID, now time.Time) (*types.DailyArtifact, error)
}

type dailyService struct {
	db        *gorm.DB
	log       *logger.Logger
	dailyRepo repos.DailyArtifactRepo
	textGen   TextGenService

	// Collapses concurrent same-key generations in-process; the unique
	// index on (user_id, day, kind) stays the correctness guarantee.
	group singleflight.Group
}

func NewDailyService(db *gorm.DB, log *logger.Logger, dailyRepo repos.DailyArtifactRepo, textGen TextGenService) DailyService {
	return &dailyService{
		db:        db,
		log:       log.With("service", "DailyService"),
		dailyRepo: dailyRepo,
		textGen:   textGen,
	}
}

func (ds *dailyService) GetOrCreateChallenge(ctx context.Context, userID uuid.UUID, now time.Time) (*types.DailyArtifact, error) {
	return ds.getOrCreate(ctx, userID, types.DayKey(now), types.ArtifactChallenge)
}

func (ds *dailyService) GetOrCreateQuestions(ctx context.Context, userID uuid.UUID, now time.Time) (*types.DailyArtifact, error) {
	return ds.getOrCreate(ctx, userID, types.DayKey(now), types.ArtifactQuestionSet)
}

func (ds *dailyService) getOrCreate(ctx context.Context, userID uuid.UUID, day string, kind types.ArtifactKind) (*types.DailyArtifact, error) {
	existing, err := ds.dailyRepo.GetByKey(ctx, nil, userID, day, kind)
	if err == nil {
		return existing, nil
	}

	key := fmt.Sprintf("%s|%s|%s", userID, day, kind)
	result, err, _ := ds.group.Do(key, func() (interface{}, error) {
		// Re-check inside the flight; a concurrent caller may have
		// already persisted the artifact.
		if existing, err := ds.dailyRepo.GetByKey(ctx, nil, userID, day, kind); err == nil {
			return existing, nil
		}

		artifact := &types.DailyArtifact{
			ID:      uuid.New(),
			UserID:  userID,
			Day:     day,
			Kind:    kind,
			Content: ds.generateContent(ctx, kind),
		}
		created, err := ds.dailyRepo.CreateIfAbsent(ctx, nil, artifact)
		if err != nil {
			return nil, err
		}
		if !created {
			// Another request won the insert; serve its row.
			return ds.dailyRepo.GetByKey(ctx, nil, userID, day, kind)
		}
		ds.log.Info("Daily artifact generated", "user_id", userID, "day", day, "kind", kind)
		return artifact, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.DailyArtifact), nil
}

func (ds *dailyService) generateContent(ctx context.Context, kind types.ArtifactKind) datatypes.JSON {
	switch kind {
	case types.ArtifactQuestionSet:
		return types.EncodeQuestionSetContent(ds.textGen.DailyQuestions(ctx))
	default:
		return types.EncodeChallengeContent(ds.textGen.DailyChallenge(ctx))
	}
}
