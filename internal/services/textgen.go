package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/yungbote/lumina-backend/internal/platform/gemini"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
)

// Fixed fallback copy served whenever generation fails. Callers rely on
// TextGenService never returning an error.
const (
	FallbackChallenge = "Try the Pomodoro technique: 25 minutes of focused work, then a 5-minute break."
	FallbackSummary   = "Unable to generate summary at this time."
	FallbackReport    = "Unable to generate weekly report at this time."
	FallbackCoach     = "I'm having trouble connecting right now. Please try again."
)

var FallbackQuestions = []string{
	"What's one thing you learned today that you're proud of?",
	"How did you practice mindfulness or self-care today?",
	"What's your biggest win today, big or small?",
}

// TextGenService wraps the Gemini client with the product's prompts and
// per-feature fallback copy.
type TextGenService interface {
	DailyChallenge(ctx context.Context) string
	DailyQuestions(ctx context.Context) []string
	JournalSummary(ctx context.Context, text string) string
	WeeklyReport(ctx context.Context, entryCount, xp, streak int, summaries []string) string
	CoachReply(ctx context.Context, history []ChatTurn, message string) string
}

type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type textGenService struct {
	client gemini.Client
	log    *logger.Logger
}

func NewTextGenService(client gemini.Client, log *logger.Logger) TextGenService {
	return &textGenService{client: client, log: log.With("service", "TextGenService")}
}

func (ts *textGenService) generate(ctx context.Context, prompt, fallback string) string {
	if ts.client == nil {
		return fallback
	}
	out, err := ts.client.GenerateText(ctx, prompt)
	if err != nil {
		ts.log.Warn("Text generation failed, serving fallback", "error", err)
		return fallback
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return fallback
	}
	return out
}

func (ts *textGenService) DailyChallenge(ctx context.Context) string {
	prompt := "Generate a single short daily productivity or wellbeing challenge for a student. " +
		"One sentence, actionable today, no preamble."
	return ts.generate(ctx, prompt, FallbackChallenge)
}

func (ts *textGenService) DailyQuestions(ctx context.Context) []string {
	prompt := "Generate exactly 3 short reflective journaling questions for a student's daily check-in. " +
		"Return them as three lines, one question per line, no numbering."
	raw := ts.generate(ctx, prompt, "")
	if raw == "" {
		return FallbackQuestions
	}
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "0123456789.-) "))
		if line != "" {
			questions = append(questions, line)
		}
		if len(questions) == 3 {
			break
		}
	}
	if len(questions) == 0 {
		return FallbackQuestions
	}
	return questions
}

func (ts *textGenService) JournalSummary(ctx context.Context, text string) string {
	prompt := "Summarize this journal entry in 2-3 encouraging sentences, speaking to the writer directly:\n\n" + text
	return ts.generate(ctx, prompt, FallbackSummary)
}

func (ts *textGenService) WeeklyReport(ctx context.Context, entryCount, xp, streak int, summaries []string) string {
	var b strings.Builder
	b.WriteString("Write a short, encouraging weekly progress report for a student based on their journaling.\n")
	b.WriteString("Stats for the week:\n")
	b.WriteString("- Journal entries: ")
	b.WriteString(strconv.Itoa(entryCount))
	b.WriteString("\n- Total XP: ")
	b.WriteString(strconv.Itoa(xp))
	b.WriteString("\n- Current streak: ")
	b.WriteString(strconv.Itoa(streak))
	b.WriteString(" days\n")
	if len(summaries) > 0 {
		b.WriteString("Entry summaries:\n")
		for _, s := range summaries {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	b.WriteString("Keep it to one paragraph, mention a concrete pattern if one stands out.")
	return ts.generate(ctx, b.String(), FallbackReport)
}

func (ts *textGenService) CoachReply(ctx context.Context, history []ChatTurn, message string) string {
	var b strings.Builder
	b.WriteString("You are a supportive productivity mentor for a student. " +
		"Be concise, warm, and practical. Answer the latest message.\n\n")
	for _, turn := range history {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	b.WriteString("user: ")
	b.WriteString(message)
	return ts.generate(ctx, b.String(), FallbackCoach)
}
