package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lumina-backend/internal/services"
)

type DailyHandler struct {
	dailyService    services.DailyService
	progressService services.ProgressService
}

func NewDailyHandler(dailyService services.DailyService, progressService services.ProgressService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService, progressService: progressService}
}

// GET /api/daily/questions
func (dh *DailyHandler) GetQuestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	artifact, err := dh.dailyService.GetOrCreateQuestions(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": artifact.Day, "questions": artifact.Questions()})
}

// GET /api/daily/challenge
func (dh *DailyHandler) GetChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	artifact, err := dh.dailyService.GetOrCreateChallenge(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": artifact.Day, "challenge": artifact.ChallengeText(), "completed": artifact.Completed})
}

// POST /api/daily/challenge/complete
func (dh *DailyHandler) CompleteChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	progress, err := dh.progressService.RecordChallengeCompletion(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
