package http

import (
	"github.com/gin-gonic/gin"
)

// ========== ACHIEVEMENT HANDLERS ==========

func (h *Handler) ListAchievements(c *gin.Context) {
	achievements, err := h.AchievementUsecase.ListCatalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"achievements": achievements, "count": len(achievements)})
}

func (h *Handler) GetMyAchievements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	achievements, err := h.AchievementUsecase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"achievements": achievements, "count": len(achievements)})
}
