package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/services"
)

func TestLikeAtMostOncePerUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := registerUser(t, env)
	liker := registerUser(t, env)

	js := env.journalService(t, env.textGen(t, &fakeGenClient{output: "shared"}))
	result, err := js.Submit(ctx, author.user.ID, services.SubmitJournalInput{
		Answers: []string{"something worth sharing"},
		Share:   true,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	postID := result.Post.ID

	post, err := env.community.Like(ctx, postID, liker.user.ID)
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if post.LikeCount != 1 {
		t.Errorf("like count = %d, want 1", post.LikeCount)
	}

	if _, err := env.community.Like(ctx, postID, liker.user.ID); !errors.Is(err, pkgerrors.ErrAlreadyLiked) {
		t.Fatalf("second like: err = %v, want ErrAlreadyLiked", err)
	}

	// A different user still counts.
	other := registerUser(t, env)
	post, err = env.community.Like(ctx, postID, other.user.ID)
	if err != nil {
		t.Fatalf("other user Like: %v", err)
	}
	if post.LikeCount != 2 {
		t.Errorf("like count = %d, want 2", post.LikeCount)
	}

	views, err := env.community.List(ctx, liker.user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, v := range views {
		if v.ID == postID && !v.LikedByMe {
			t.Error("viewer's like state not reflected in the feed")
		}
	}
}

func TestLikeUnknownPost(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := registerUser(t, env)

	if _, err := env.community.Like(ctx, uuid.New(), u.user.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeletePostRemovesFromFeed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := registerUser(t, env)

	js := env.journalService(t, env.textGen(t, &fakeGenClient{output: "moderated"}))
	result, err := js.Submit(ctx, author.user.ID, services.SubmitJournalInput{
		Answers: []string{"soon to be moderated"},
		Share:   true,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := env.community.Delete(ctx, result.Post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	views, err := env.community.List(ctx, author.user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, v := range views {
		if v.ID == result.Post.ID {
			t.Error("deleted post still in the feed")
		}
	}
}
