package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/types"
)

const (
	leaderboardKey  = "leaderboard:xp"
	leaderboardTTL  = 24 * time.Hour
	defaultTopLimit = 50
)

type LeaderboardRow struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	XP          int       `json:"xp"`
	Streak      int       `json:"streak"`
	Level       int       `json:"level"`
	Rank        int       `json:"rank"`
}

// LeaderboardService ranks users by XP. It keeps a Redis sorted set as a
// cache over the progress table; every read and write degrades to Postgres
// when Redis is absent or unhealthy.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]*LeaderboardRow, error)

	// BumpXP refreshes a user's cached score after an XP mutation.
	// Best-effort: failures are logged and never fail the user action.
	BumpXP(ctx context.Context, userID uuid.UUID, xp int)
}

type leaderboardService struct {
	log          *logger.Logger
	rdb          *redis.Client
	progressRepo repos.ProgressRepo
	userRepo     repos.UserRepo
}

func NewLeaderboardService(log *logger.Logger, rdb *redis.Client, progressRepo repos.ProgressRepo, userRepo repos.UserRepo) LeaderboardService {
	return &leaderboardService{
		log:          log.With("service", "LeaderboardService"),
		rdb:          rdb,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

func (ls *leaderboardService) BumpXP(ctx context.Context, userID uuid.UUID, xp int) {
	if ls.rdb == nil {
		return
	}
	pipe := ls.rdb.Pipeline()
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(xp), Member: userID.String()})
	pipe.Expire(ctx, leaderboardKey, leaderboardTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		ls.log.Warn("Leaderboard cache update failed", "user_id", userID, "error", err)
	}
}

func (ls *leaderboardService) Top(ctx context.Context, limit int) ([]*LeaderboardRow, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	if ls.rdb != nil {
		rows, err := ls.topFromRedis(ctx, limit)
		if err != nil {
			ls.log.Warn("Leaderboard cache read failed, falling back to store", "error", err)
		} else if rows != nil {
			return rows, nil
		}
	}

	return ls.topFromStore(ctx, limit)
}

// topFromRedis returns nil rows (no error) when the sorted set is empty and
// a rebuild from the store is needed.
func (ls *leaderboardService) topFromRedis(ctx context.Context, limit int) ([]*LeaderboardRow, error) {
	members, err := ls.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		rows, err := ls.topFromStore(ctx, limit)
		if err != nil {
			return nil, err
		}
		ls.rebuild(ctx, rows)
		return rows, nil
	}

	ids := make([]uuid.UUID, 0, len(members))
	scores := make(map[uuid.UUID]int, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m.Member.(string))
		if err != nil {
			continue
		}
		ids = append(ids, id)
		scores[id] = int(m.Score)
	}
	return ls.hydrate(ctx, ids, scores)
}

func (ls *leaderboardService) topFromStore(ctx context.Context, limit int) ([]*LeaderboardRow, error) {
	top, err := ls.progressRepo.TopByXP(ctx, nil, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(top))
	scores := make(map[uuid.UUID]int, len(top))
	for _, p := range top {
		ids = append(ids, p.UserID)
		scores[p.UserID] = p.XP
	}
	return ls.hydrate(ctx, ids, scores)
}

func (ls *leaderboardService) hydrate(ctx context.Context, orderedIDs []uuid.UUID, scores map[uuid.UUID]int) ([]*LeaderboardRow, error) {
	users, err := ls.userRepo.GetByIDs(ctx, nil, orderedIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	progresses, err := ls.progressRepo.GetByUserIDs(ctx, nil, orderedIDs)
	if err != nil {
		return nil, err
	}
	streaks := make(map[uuid.UUID]int, len(progresses))
	xps := make(map[uuid.UUID]int, len(progresses))
	for _, p := range progresses {
		streaks[p.UserID] = p.Streak
		xps[p.UserID] = p.XP
	}

	rows := make([]*LeaderboardRow, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		name, ok := names[id]
		if !ok {
			// Deleted user still cached; skip.
			continue
		}
		xp, ok := xps[id]
		if !ok {
			xp = scores[id]
		}
		rows = append(rows, &LeaderboardRow{
			UserID:      id,
			DisplayName: name,
			XP:          xp,
			Streak:      streaks[id],
			Level:       types.Level(xp),
			Rank:        len(rows) + 1,
		})
	}
	return rows, nil
}

func (ls *leaderboardService) rebuild(ctx context.Context, rows []*LeaderboardRow) {
	if ls.rdb == nil || len(rows) == 0 {
		return
	}
	members := make([]redis.Z, 0, len(rows))
	for _, r := range rows {
		members = append(members, redis.Z{Score: float64(r.XP), Member: r.UserID.String()})
	}
	pipe := ls.rdb.Pipeline()
	pipe.ZAdd(ctx, leaderboardKey, members...)
	pipe.Expire(ctx, leaderboardKey, leaderboardTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		ls.log.Warn("Leaderboard cache rebuild failed", "error", err)
	}
}
