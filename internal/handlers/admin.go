package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lumina-backend/internal/services"
)

type AdminHandler struct {
	adminService     services.AdminService
	communityService services.CommunityService
}

func NewAdminHandler(adminService services.AdminService, communityService services.CommunityService) *AdminHandler {
	return &AdminHandler{adminService: adminService, communityService: communityService}
}

// GET /api/admin/users
func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// PATCH /api/admin/users/:id
// body: { "display_name": "..." }
func (ah *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body", "code": "invalid_argument"}})
		return
	}
	user, err := ah.adminService.UpdateUserDisplayName(c.Request.Context(), userID, req.DisplayName)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /api/admin/users/:id
func (ah *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ah.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/journals?limit=100
func (ah *AdminHandler) ListJournals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := ah.adminService.ListJournals(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// DELETE /api/admin/journals/:id
func (ah *AdminHandler) DeleteJournal(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ah.adminService.DeleteJournal(c.Request.Context(), entryID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/admin/community/posts/:id
func (ah *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ah.communityService.Delete(c.Request.Context(), postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
