package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/lumina-backend/internal/pkg/errors"
	"github.com/yungbote/lumina-backend/internal/requestdata"
)

// respondErr maps service errors onto the HTTP surface. The benign
// idempotency outcomes (already liked, already completed) are conflicts,
// not server errors; store failures are retryable 503s.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error(), "code": "invalid_argument"}})
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "unauthorized", "code": "unauthorized"}})
	case errors.Is(err, pkgerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found", "code": "not_found"}})
	case errors.Is(err, pkgerrors.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "already liked", "code": "already_liked"}})
	case errors.Is(err, pkgerrors.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "already completed", "code": "already_completed"}})
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "store unavailable, retry later", "code": "store_unavailable"}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "internal error", "code": "internal"}})
	}
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "unauthorized", "code": "unauthorized"}})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid id", "code": "invalid_argument"}})
		return uuid.Nil, false
	}
	return id, true
}
