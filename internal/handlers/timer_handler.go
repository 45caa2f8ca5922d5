package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

type TimerHandler struct {
	service services.TimerService
}

func NewTimerHandler(service services.TimerService) *TimerHandler {
	return &TimerHandler{service: service}
}

// @Summary      Get the current user's pomodoro snapshot
// @Description  Returns {} when the user has no stored timer
// @Tags         Timer
// @Produce      json
// @Success      200  {object}  models.TimerState
// @Router       /timer/state [get]
func (h *TimerHandler) GetState(c *gin.Context) {
	userID := currentUserID(c)

	state, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[timer][get][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timer state"})
		return
	}
	if state == nil {
		// no timer yet: empty object, not an error
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, state)
}

// @Summary      Save the current user's pomodoro snapshot
// @Description  Full replace; omitted fields revert to defaults
// @Tags         Timer
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /timer/state [post]
func (h *TimerHandler) SaveState(c *gin.Context) {
	userID := currentUserID(c)

	var snapshot models.TimerSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		log.Printf("[timer][save][bind][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Save(c.Request.Context(), userID, snapshot); err != nil {
		log.Printf("[timer][save][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save timer state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

// @Summary      Reset the current user's pomodoro timer
// @Description  Deletes the stored snapshot entirely
// @Tags         Timer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /timer/reset [post]
func (h *TimerHandler) ResetState(c *gin.Context) {
	userID := currentUserID(c)

	if err := h.service.Reset(c.Request.Context(), userID); err != nil {
		log.Printf("[timer][reset][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset timer state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}
