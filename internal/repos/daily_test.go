package repos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/repos/testutil"
	"github.com/yungbote/lumina-backend/internal/types"
)

func TestDailyArtifactCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewDailyArtifactRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "daily-create@example.com")
	day := "2025-03-01"

	first := &types.DailyArtifact{
		ID:      uuid.New(),
		UserID:  user.ID,
		Day:     day,
		Kind:    types.ArtifactChallenge,
		Content: types.EncodeChallengeContent("first"),
	}
	created, err := repo.CreateIfAbsent(ctx, tx, first)
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if !created {
		t.Fatal("expected first insert to create the row")
	}

	second := &types.DailyArtifact{
		ID:      uuid.New(),
		UserID:  user.ID,
		Day:     day,
		Kind:    types.ArtifactChallenge,
		Content: types.EncodeChallengeContent("second"),
	}
	created, err = repo.CreateIfAbsent(ctx, tx, second)
	if err != nil {
		t.Fatalf("CreateIfAbsent duplicate: %v", err)
	}
	if created {
		t.Fatal("expected duplicate insert to be a no-op")
	}

	stored, err := repo.GetByKey(ctx, tx, user.ID, day, types.ArtifactChallenge)
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if stored.ID != first.ID || stored.ChallengeText() != "first" {
		t.Errorf("stored artifact = %s %q, want the first insert", stored.ID, stored.ChallengeText())
	}

	// A different kind on the same day is its own row.
	questions := &types.DailyArtifact{
		ID:      uuid.New(),
		UserID:  user.ID,
		Day:     day,
		Kind:    types.ArtifactQuestionSet,
		Content: types.EncodeQuestionSetContent([]string{"Q?"}),
	}
	created, err = repo.CreateIfAbsent(ctx, tx, questions)
	if err != nil {
		t.Fatalf("CreateIfAbsent question set: %v", err)
	}
	if !created {
		t.Fatal("expected question set insert to create a row")
	}
}

func TestMarkChallengeCompleted(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewDailyArtifactRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "daily-complete@example.com")
	day := "2025-03-01"

	if err := repo.MarkChallengeCompleted(ctx, tx, user.ID, day); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("complete without artifact: err = %v, want ErrNotFound", err)
	}

	artifact := &types.DailyArtifact{
		ID:      uuid.New(),
		UserID:  user.ID,
		Day:     day,
		Kind:    types.ArtifactChallenge,
		Content: types.EncodeChallengeContent("walk"),
	}
	if _, err := repo.CreateIfAbsent(ctx, tx, artifact); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}

	if err := repo.MarkChallengeCompleted(ctx, tx, user.ID, day); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if err := repo.MarkChallengeCompleted(ctx, tx, user.ID, day); !errors.Is(err, pkgerrors.ErrAlreadyCompleted) {
		t.Fatalf("second completion: err = %v, want ErrAlreadyCompleted", err)
	}

	stored, err := repo.GetByKey(ctx, tx, user.ID, day, types.ArtifactChallenge)
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if !stored.Completed {
		t.Error("expected challenge to stay completed")
	}
}
