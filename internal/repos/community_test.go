package repos_test

import (
	"context"
	"sync"
	"testing"

	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/repos/testutil"
)

func TestInsertLikeAtMostOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewCommunityRepo(db, testutil.Logger(t))

	author := testutil.SeedUser(t, ctx, tx, "like-author@example.com")
	liker := testutil.SeedUser(t, ctx, tx, "like-liker@example.com")
	post := testutil.SeedPost(t, ctx, tx, author.ID, "a summary")

	inserted, err := repo.InsertLike(ctx, tx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("InsertLike: %v", err)
	}
	if !inserted {
		t.Fatal("expected first like to insert")
	}
	if err := repo.IncrementLikeCount(ctx, tx, post.ID); err != nil {
		t.Fatalf("IncrementLikeCount: %v", err)
	}

	inserted, err = repo.InsertLike(ctx, tx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("InsertLike repeat: %v", err)
	}
	if inserted {
		t.Fatal("expected repeat like to be a no-op")
	}

	stored, err := repo.GetPostByID(ctx, tx, post.ID)
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	if stored.LikeCount != 1 {
		t.Errorf("like count = %d, want 1", stored.LikeCount)
	}

	likedBy, err := repo.LikedBy(ctx, tx, post.ID)
	if err != nil {
		t.Fatalf("LikedBy: %v", err)
	}
	if len(likedBy) != 1 || likedBy[0] != liker.ID {
		t.Errorf("likedBy = %v, want [%s]", likedBy, liker.ID)
	}
}

func TestInsertLikeParallel(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repos.NewCommunityRepo(db, testutil.Logger(t))

	author := testutil.SeedUser(t, ctx, db, "like-parallel-author@example.com")
	liker := testutil.SeedUser(t, ctx, db, "like-parallel-liker@example.com")
	post := testutil.SeedPost(t, ctx, db, author.ID, "raced summary")
	t.Cleanup(func() {
		db.Exec("DELETE FROM post_likes WHERE post_id = ?", post.ID)
		db.Exec("DELETE FROM community_posts WHERE id = ?", post.ID)
		db.Exec("DELETE FROM user_progress WHERE user_id IN (?, ?)", author.ID, liker.ID)
		db.Unscoped().Exec("DELETE FROM users WHERE id IN (?, ?)", author.ID, liker.ID)
	})

	const workers = 8
	var wg sync.WaitGroup
	insertedCount := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted, err := repo.InsertLike(ctx, nil, post.ID, liker.ID)
			if err != nil {
				t.Errorf("InsertLike: %v", err)
				return
			}
			insertedCount <- inserted
		}()
	}
	wg.Wait()
	close(insertedCount)

	wins := 0
	for inserted := range insertedCount {
		if inserted {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("parallel likes inserted %d rows, want exactly 1", wins)
	}
}
