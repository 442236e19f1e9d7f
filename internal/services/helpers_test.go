package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"gorm.io/gorm"

	"github.com/yungbote/lumina-backend/internal/platform/gemini"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/repos/testutil"
	"github.com/yungbote/lumina-backend/internal/services"
	"github.com/yungbote/lumina-backend/internal/types"
)

// fakeGenClient scripts the text generator: a non-nil err simulates an
// outage, otherwise every prompt returns output.
type fakeGenClient struct {
	output string
	err    error
	calls  atomic.Int64
}

func (f *fakeGenClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

var errGenDown = errors.New("generator down")

// recordingLeaderboard captures BumpXP calls so tests can assert the cache
// is refreshed after an award.
type recordingLeaderboard struct {
	services.LeaderboardService
	mu    sync.Mutex
	bumps []int
}

func (r *recordingLeaderboard) BumpXP(ctx context.Context, userID uuid.UUID, xp int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bumps = append(r.bumps, xp)
}

func (r *recordingLeaderboard) bumped() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.bumps...)
}

type testEnv struct {
	db *gorm.DB

	userRepo     repos.UserRepo
	progressRepo repos.ProgressRepo
	dailyRepo    repos.DailyArtifactRepo
	journalRepo  repos.JournalRepo
	reportRepo   repos.ReportRepo

	auth        services.AuthService
	progress    services.ProgressService
	community   services.CommunityService
	leaderboard services.LeaderboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:           db,
		userRepo:     repos.NewUserRepo(db, log),
		progressRepo: repos.NewProgressRepo(db, log),
		dailyRepo:    repos.NewDailyArtifactRepo(db, log),
		journalRepo:  repos.NewJournalRepo(db, log),
		reportRepo:   repos.NewReportRepo(db, log),
	}
	communityRepo := repos.NewCommunityRepo(db, log)

	env.auth = services.NewAuthService(db, log, env.userRepo, env.progressRepo, "test-secret", time.Hour, 24*time.Hour)
	env.leaderboard = services.NewLeaderboardService(log, nil, env.progressRepo, env.userRepo)
	env.progress = services.NewProgressService(db, log, env.progressRepo, env.dailyRepo, env.leaderboard)
	env.community = services.NewCommunityService(db, log, communityRepo, env.userRepo)
	return env
}

func (env *testEnv) textGen(t *testing.T, client gemini.Client) services.TextGenService {
	t.Helper()
	return services.NewTextGenService(client, testutil.Logger(t))
}

func (env *testEnv) journalService(t *testing.T, textGen services.TextGenService) services.JournalService {
	t.Helper()
	return services.NewJournalService(env.db, testutil.Logger(t), env.journalRepo, env.userRepo, env.progress, env.community, textGen, env.leaderboard)
}

var emailSeq atomic.Int64

// registerUser creates a fresh account (and its progress row) per test.
func registerUser(t *testing.T, env *testEnv) *registeredUser {
	t.Helper()
	email := fmt.Sprintf("user%d@example.com", emailSeq.Add(1))
	user, tokens, err := env.auth.Register(context.Background(), email, "password123", "Test User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return &registeredUser{user: user, tokens: tokens}
}

type registeredUser struct {
	user   *types.User
	tokens *services.TokenPair
}
