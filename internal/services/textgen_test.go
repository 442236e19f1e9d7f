package services_test

import (
	"context"
	"testing"

	"github.com/yungbote/lumina-backend/internal/repos/testutil"
	"github.com/yungbote/lumina-backend/internal/services"
)

func TestTextGenFallbacksOnFailure(t *testing.T) {
	ctx := context.Background()
	down := &fakeGenClient{err: errGenDown}
	gen := services.NewTextGenService(down, testutil.Logger(t))

	if got := gen.DailyChallenge(ctx); got != services.FallbackChallenge {
		t.Errorf("DailyChallenge fallback = %q", got)
	}
	if got := gen.JournalSummary(ctx, "today I studied"); got != services.FallbackSummary {
		t.Errorf("JournalSummary fallback = %q", got)
	}
	if got := gen.WeeklyReport(ctx, 3, 120, 2, nil); got != services.FallbackReport {
		t.Errorf("WeeklyReport fallback = %q", got)
	}
	if got := gen.CoachReply(ctx, nil, "help"); got != services.FallbackCoach {
		t.Errorf("CoachReply fallback = %q", got)
	}

	questions := gen.DailyQuestions(ctx)
	want := []string{
		"What's one thing you learned today that you're proud of?",
		"How did you practice mindfulness or self-care today?",
		"What's your biggest win today, big or small?",
	}
	if len(questions) != 3 {
		t.Fatalf("DailyQuestions fallback = %v", questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("questions[%d] = %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestTextGenNilClientFallsBack(t *testing.T) {
	gen := services.NewTextGenService(nil, testutil.Logger(t))
	if got := gen.DailyChallenge(context.Background()); got != services.FallbackChallenge {
		t.Errorf("DailyChallenge with nil client = %q", got)
	}
}

func TestDailyQuestionsParsing(t *testing.T) {
	ctx := context.Background()
	up := &fakeGenClient{output: "1. What went well?\n2) What was hard?\n- What's next?\nExtra line ignored"}
	gen := services.NewTextGenService(up, testutil.Logger(t))

	questions := gen.DailyQuestions(ctx)
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3: %v", len(questions), questions)
	}
	want := []string{"What went well?", "What was hard?", "What's next?"}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("questions[%d] = %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestTextGenUsesClientOutput(t *testing.T) {
	up := &fakeGenClient{output: "Do one brave thing today."}
	gen := services.NewTextGenService(up, testutil.Logger(t))
	if got := gen.DailyChallenge(context.Background()); got != "Do one brave thing today." {
		t.Errorf("DailyChallenge = %q", got)
	}
}
