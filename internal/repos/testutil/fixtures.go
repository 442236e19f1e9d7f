package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lumina-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		DisplayName: "Test User",
		Role:        types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, xp, streak int, lastActivityDate *string) *types.UserProgress {
	tb.Helper()
	p := &types.UserProgress{
		UserID:           userID,
		XP:               xp,
		Streak:           streak,
		LastActivityDate: lastActivityDate,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return p
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, summary string) *types.CommunityPost {
	tb.Helper()
	p := &types.CommunityPost{
		ID:         uuid.New(),
		AuthorID:   authorID,
		AuthorName: "Test User",
		Summary:    summary,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	return p
}
