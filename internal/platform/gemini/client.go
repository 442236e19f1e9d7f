// Package gemini wraps the Google GenAI SDK behind the one call shape the
// backend needs: prompt in, text out. Fallback policy lives with the callers
// (services.TextGenService), not here.
package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
)

// Client is the text-generation client used by the rest of the backend.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type client struct {
	log   *logger.Logger
	c     *genai.Client
	model string
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.0-flash"
	}

	c, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &client{
		log:   log.With("client", "GeminiClient"),
		c:     c,
		model: model,
	}, nil
}

func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := c.c.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}
