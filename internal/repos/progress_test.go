package repos_test

import (
	"context"
	"testing"

	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/repos/testutil"
)

func strPtr(s string) *string { return &s }

func TestApplyJournalSubmission(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewProgressRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "progress-apply@example.com")
	testutil.SeedProgress(t, ctx, tx, user.ID, 0, 0, nil)

	applied, err := repo.ApplyJournalSubmission(ctx, tx, user.ID, nil, "2025-03-01", 1)
	if err != nil {
		t.Fatalf("ApplyJournalSubmission: %v", err)
	}
	if !applied {
		t.Fatal("expected first submission to apply")
	}

	progress, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if progress.XP != 10 || progress.TotalEntries != 1 || progress.Streak != 1 {
		t.Errorf("progress = xp %d entries %d streak %d, want 10/1/1", progress.XP, progress.TotalEntries, progress.Streak)
	}
	if progress.LastActivityDate == nil || *progress.LastActivityDate != "2025-03-01" {
		t.Errorf("last activity date = %v, want 2025-03-01", progress.LastActivityDate)
	}

	// A stale precondition (the state before the first submission) no
	// longer matches and must not apply.
	applied, err = repo.ApplyJournalSubmission(ctx, tx, user.ID, nil, "2025-03-02", 1)
	if err != nil {
		t.Fatalf("ApplyJournalSubmission stale: %v", err)
	}
	if applied {
		t.Fatal("expected stale precondition to be rejected")
	}

	// The fresh precondition applies and extends the streak.
	applied, err = repo.ApplyJournalSubmission(ctx, tx, user.ID, strPtr("2025-03-01"), "2025-03-02", 2)
	if err != nil {
		t.Fatalf("ApplyJournalSubmission next day: %v", err)
	}
	if !applied {
		t.Fatal("expected fresh precondition to apply")
	}

	progress, err = repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if progress.XP != 20 || progress.TotalEntries != 2 || progress.Streak != 2 {
		t.Errorf("progress = xp %d entries %d streak %d, want 20/2/2", progress.XP, progress.TotalEntries, progress.Streak)
	}
}

func TestAddXPAndTopByXP(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewProgressRepo(db, testutil.Logger(t))

	a := testutil.SeedUser(t, ctx, tx, "top-a@example.com")
	b := testutil.SeedUser(t, ctx, tx, "top-b@example.com")
	testutil.SeedProgress(t, ctx, tx, a.ID, 30, 1, strPtr("2025-03-01"))
	testutil.SeedProgress(t, ctx, tx, b.ID, 10, 1, strPtr("2025-03-01"))

	if err := repo.AddXP(ctx, tx, b.ID, 40); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	top, err := repo.TopByXP(ctx, tx, 2)
	if err != nil {
		t.Fatalf("TopByXP: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopByXP returned %d rows, want 2", len(top))
	}
	if top[0].UserID != b.ID || top[0].XP != 50 {
		t.Errorf("top row = %s xp %d, want %s xp 50", top[0].UserID, top[0].XP, b.ID)
	}
}
