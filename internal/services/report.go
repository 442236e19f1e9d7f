package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

const (
	DefaultReportWindowDays = 7
	maxReportWindowDays     = 90
)

// ReportService aggregates a user's recent activity into immutable
// snapshots with an AI narrative.
type ReportService interface {
	Generate(ctx context.Context, userID uuid.UUID, windowDays int) (*types.ReportSnapshot, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.ReportSnapshot, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	reportRepo   repos.ReportRepo
	journalRepo  repos.JournalRepo
	progressRepo repos.ProgressRepo
	textGen      TextGenService
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	reportRepo repos.ReportRepo,
	journalRepo repos.JournalRepo,
	progressRepo repos.ProgressRepo,
	textGen TextGenService,
) ReportService {
	return &reportService{
		db:           db,
		log:          log.With("service", "ReportService"),
		reportRepo:   reportRepo,
		journalRepo:  journalRepo,
		progressRepo: progressRepo,
		textGen:      textGen,
	}
}

func (rs *reportService) Generate(ctx context.Context, userID uuid.UUID, windowDays int) (*types.ReportSnapshot, error) {
	if windowDays <= 0 {
		windowDays = DefaultReportWindowDays
	}
	if windowDays > maxReportWindowDays {
		return nil, fmt.Errorf("%w: window_days must be at most %d", pkgerrors.ErrInvalidArgument, maxReportWindowDays)
	}

	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -windowDays)

	entries, err := rs.journalRepo.ListByUserBetween(ctx, nil, userID, windowStart, now)
	if err != nil {
		return nil, err
	}
	progress, err := rs.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	// XP earned per day in the window, derived from actual submissions.
	perDay := make(map[string]int, windowDays)
	summaries := make([]string, 0, len(entries))
	for _, entry := range entries {
		perDay[types.DayKey(entry.CreatedAt)] += XPPerJournal
		if entry.Summary != "" {
			summaries = append(summaries, entry.Summary)
		}
	}
	// The window spans windowDays+1 calendar days: its start sits partway
	// through a day, and entries from that partial day still count.
	series := make([]types.XPSeriesPoint, 0, windowDays+1)
	for d := 0; d <= windowDays; d++ {
		day := types.DayKey(windowStart.AddDate(0, 0, d))
		series = append(series, types.XPSeriesPoint{Day: day, XP: perDay[day]})
	}
	seriesJSON, err := json.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("encoding xp series: %w", err)
	}

	narrative := rs.textGen.WeeklyReport(ctx, len(entries), progress.XP, progress.Streak, summaries)

	snapshot := &types.ReportSnapshot{
		ID:                 uuid.New(),
		UserID:             userID,
		WindowStart:        windowStart,
		WindowEnd:          now,
		EntryCount:         len(entries),
		XPDelta:            len(entries) * XPPerJournal,
		StreakAtGeneration: progress.Streak,
		Narrative:          narrative,
		XPSeries:           datatypes.JSON(seriesJSON),
	}
	if err := rs.reportRepo.Create(ctx, nil, snapshot); err != nil {
		return nil, err
	}
	rs.log.Info("Report generated", "user_id", userID, "window_days", windowDays, "entries", len(entries))
	return snapshot, nil
}

func (rs *reportService) List(ctx context.Context, userID uuid.UUID) ([]*types.ReportSnapshot, error) {
	return rs.reportRepo.ListByUser(ctx, nil, userID)
}
