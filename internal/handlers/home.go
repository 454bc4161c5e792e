package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) HomeContent(c *gin.Context) {
	content, err := h.homeService.Aggregate(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": content})
}

type homeSectionRequest struct {
	Content map[string]any `json:"content" binding:"required"`
	Active  *bool          `json:"active"`
}

func (h HandlerSet) UpsertHomeSection(c *gin.Context) {
	var req homeSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if err := h.homeService.UpsertSection(c.Request.Context(), c.Param("section"), req.Content, active); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
