package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

type TagHandler struct {
	service services.TagService
}

func NewTagHandler(service services.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// @Summary      Create a tag
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.TaskTag
// @Failure      400  {object}  map[string]string
// @Router       /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Color *int   `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := &models.TaskTag{Name: req.Name, Color: models.DefaultTagColor}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if err := h.service.Create(c.Request.Context(), tag); err != nil {
		log.Printf("[tag][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// @Summary      List tags
// @Tags         Tags
// @Produce      json
// @Success      200  {array}  models.TaskTag
// @Router       /tags [get]
func (h *TagHandler) GetAll(c *gin.Context) {
	tags, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[tag][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tags"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// @Summary      Update a tag
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Tag ID"
// @Success      200  {object}  models.TaskTag
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Color *int    `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.service.Update(c.Request.Context(), id, req.Name, req.Color)
	if err != nil {
		log.Printf("[tag][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// @Summary      Delete a tag
// @Tags         Tags
// @Param        id  path  int  true  "Tag ID"
// @Success      204
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[tag][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
