package services

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
)

const maxCoachHistoryTurns = 20

// CoachService is the stateless chat mentor. History lives on the client and
// is replayed with each message; nothing is persisted.
type CoachService interface {
	Reply(ctx context.Context, history []ChatTurn, message string) (string, error)
}

type coachService struct {
	log     *logger.Logger
	textGen TextGenService
}

func NewCoachService(log *logger.Logger, textGen TextGenService) CoachService {
	return &coachService{log: log.With("service", "CoachService"), textGen: textGen}
}

func (cs *coachService) Reply(ctx context.Context, history []ChatTurn, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", pkgerrors.ErrInvalidArgument)
	}
	if len(history) > maxCoachHistoryTurns {
		history = history[len(history)-maxCoachHistoryTurns:]
	}
	return cs.textGen.CoachReply(ctx, history, message), nil
}
