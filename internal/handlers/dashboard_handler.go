package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/services"
)

type DashboardHandler struct {
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// @Summary      Task dashboard for the current user
// @Description  Status counters plus the urgent and recent task lists
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  services.DashboardData
// @Failure      500  {object}  map[string]string
// @Router       /tasks/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := currentUserID(c)

	data, err := h.service.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[dashboard][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, data)
}
