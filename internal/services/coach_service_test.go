package services_test

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/repos/testutil"
	"github.com/yungbote/lumina-backend/internal/services"
)

func TestCoachReply(t *testing.T) {
	ctx := context.Background()
	log := testutil.Logger(t)

	up := services.NewCoachService(log, services.NewTextGenService(&fakeGenClient{output: "Break it into smaller steps."}, log))
	reply, err := up.Reply(ctx, []services.ChatTurn{{Role: "user", Text: "earlier message"}}, "I'm stuck on my thesis")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if reply != "Break it into smaller steps." {
		t.Errorf("reply = %q", reply)
	}

	if _, err := up.Reply(ctx, nil, "   "); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("empty message: err = %v, want ErrInvalidArgument", err)
	}

	down := services.NewCoachService(log, services.NewTextGenService(&fakeGenClient{err: errGenDown}, log))
	reply, err = down.Reply(ctx, nil, "hello")
	if err != nil {
		t.Fatalf("Reply with outage: %v", err)
	}
	if reply != services.FallbackCoach {
		t.Errorf("reply = %q, want fallback", reply)
	}
}
