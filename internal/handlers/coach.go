package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lumina-backend/internal/services"
)

type CoachHandler struct {
	coachService services.CoachService
}

func NewCoachHandler(coachService services.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// POST /api/coach/chat
// body: { "history": [{"role": "...", "text": "..."}], "message": "..." }
func (ch *CoachHandler) Chat(c *gin.Context) {
	var req struct {
		History []services.ChatTurn `json:"history"`
		Message string              `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body", "code": "invalid_argument"}})
		return
	}
	reply, err := ch.coachService.Reply(c.Request.Context(), req.History, req.Message)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
