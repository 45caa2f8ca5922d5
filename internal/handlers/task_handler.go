package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

type TaskHandler struct {
	service  services.TaskService
	notifier *services.TaskNotifier // may be nil
}

func NewTaskHandler(service services.TaskService, notifier *services.TaskNotifier) *TaskHandler {
	return &TaskHandler{service: service, notifier: notifier}
}

// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title         string              `json:"title" binding:"required"`
		Description   string              `json:"description"`
		AssigneeID    int64               `json:"assignee_id"`
		Priority      models.TaskPriority `json:"priority"`
		DurationHours float64             `json:"duration_hours"`
		DeadlineDate  string              `json:"deadline_date"` // 2006-01-02
		DeadlineTime  string              `json:"deadline_time"` // free text "HH:MM"
		TagIDs        []int64             `json:"tag_ids"`
	}

	userID := currentUserID(c)
	log.Printf("[task][create] call by userID=%d", userID)

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deadlineDate *time.Time
	if req.DeadlineDate != "" {
		d, err := time.Parse("2006-01-02", req.DeadlineDate)
		if err != nil {
			log.Printf("[task][create][err] invalid deadline_date=%q: %v", req.DeadlineDate, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline_date (want YYYY-MM-DD)"})
			return
		}
		deadlineDate = &d
	}

	task := &models.Task{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeID:    req.AssigneeID,
		CreatorID:     userID,
		Priority:      req.Priority,
		DurationHours: req.DurationHours,
		DeadlineDate:  deadlineDate,
		DeadlineTime:  req.DeadlineTime,
		TagIDs:        req.TagIDs,
	}

	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%d assignee_id=%d title=%q", created.ID, created.AssigneeID, created.Title)
	c.JSON(http.StatusCreated, created)

	h.notifier.NotifyAssignee(c.Request.Context(), created, "📌 New task")
}

// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      List tasks
// @Tags         Tasks
// @Produce      json
// @Success      200  {array}  models.Task
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	userID := currentUserID(c)
	log.Printf("[task][list] call by userID=%d q=%v", userID, c.Request.URL.RawQuery)

	var filter models.TaskFilter
	if v, ok := c.GetQuery("assignee_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssigneeID = &id
		} else {
			log.Printf("[task][list][warn] bad assignee_id=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("creator_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CreatorID = &id
		} else {
			log.Printf("[task][list][warn] bad creator_id=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		p := models.TaskPriority(v)
		filter.Priority = &p
	}
	if v, ok := c.GetQuery("include_archived"); ok {
		filter.IncludeArchived = v == "true" || v == "1"
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Update a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID := currentUserID(c)
	log.Printf("[task][update] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][update][err] get current id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req struct {
		Title         *string              `json:"title"`
		Description   *string              `json:"description"`
		AssigneeID    *int64               `json:"assignee_id"`
		Priority      *models.TaskPriority `json:"priority"`
		DurationHours *float64             `json:"duration_hours"`
		DeadlineDate  *string              `json:"deadline_date"` // "" clears
		DeadlineTime  *string              `json:"deadline_time"`
		TagIDs        []int64              `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := *current
	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Description != nil {
		update.Description = *req.Description
	}
	if req.AssigneeID != nil {
		update.AssigneeID = *req.AssigneeID
	}
	if req.Priority != nil {
		update.Priority = *req.Priority
	}
	if req.DurationHours != nil {
		update.DurationHours = *req.DurationHours
	}
	if req.DeadlineDate != nil {
		if *req.DeadlineDate == "" {
			update.DeadlineDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.DeadlineDate)
			if err != nil {
				log.Printf("[task][update][err] invalid deadline_date=%q: %v", *req.DeadlineDate, err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline_date (want YYYY-MM-DD)"})
				return
			}
			update.DeadlineDate = &d
		}
	}
	if req.DeadlineTime != nil {
		// malformed values are accepted here and degrade to midnight UTC
		// when the deadline is derived
		update.DeadlineTime = *req.DeadlineTime
	}
	if req.TagIDs != nil {
		update.TagIDs = req.TagIDs
	} else {
		update.TagIDs = nil
	}

	updated, err := h.service.Update(c.Request.Context(), id, &update)
	if err != nil {
		log.Printf("[task][update][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updated)

	if req.AssigneeID != nil && *req.AssigneeID != current.AssigneeID {
		h.notifier.NotifyAssignee(c.Request.Context(), updated, "👤 Task assigned to you")
	}
}

// @Summary      Archive a task
// @Description  Soft delete: clears the active flag, the row is kept
// @Tags         Tasks
// @Param        id  path  int  true  "Task ID"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	log.Printf("[task][delete] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][delete][err] get current id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// The four transition actions. No transition guards on purpose: a wrong click
// must always be correctable with another explicit action.

// @Summary  Mark task in progress
// @Tags     Tasks
// @Param    id  path  int  true  "Task ID"
// @Success  200  {object}  models.Task
// @Router   /tasks/{id}/start [post]
func (h *TaskHandler) Start(c *gin.Context) {
	h.runAction(c, "start", h.service.Start)
}

// @Summary  Mark task done
// @Tags     Tasks
// @Param    id  path  int  true  "Task ID"
// @Success  200  {object}  models.Task
// @Router   /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	h.runAction(c, "complete", h.service.Complete)
}

// @Summary  Cancel task
// @Tags     Tasks
// @Param    id  path  int  true  "Task ID"
// @Success  200  {object}  models.Task
// @Router   /tasks/{id}/cancel [post]
func (h *TaskHandler) Cancel(c *gin.Context) {
	h.runAction(c, "cancel", h.service.Cancel)
}

// @Summary  Reset task to new
// @Tags     Tasks
// @Param    id  path  int  true  "Task ID"
// @Success  200  {object}  models.Task
// @Router   /tasks/{id}/reset [post]
func (h *TaskHandler) Reset(c *gin.Context) {
	h.runAction(c, "reset", h.service.Reset)
}

func (h *TaskHandler) runAction(c *gin.Context, name string, fn func(context.Context, int64) (*models.Task, error)) {
	userID := currentUserID(c)
	log.Printf("[task][%s] call by userID=%d id_param=%s", name, userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	updated, err := fn(c.Request.Context(), id)
	if err != nil {
		if err == services.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		log.Printf("[task][%s][err] id=%d: %v", name, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][%s][ok] id=%d status=%q", name, id, updated.Status)
	c.JSON(http.StatusOK, updated)

	h.notifier.NotifyAssignee(c.Request.Context(), updated, "🔁 Status changed to "+string(updated.Status))
}
