package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/models"
)

func (h HandlerSet) SiteSettings(c *gin.Context) {
	settings, err := h.settings.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make(map[string]map[string]any, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	c.JSON(http.StatusOK, gin.H{"settings": out})
}

type settingRequest struct {
	Value map[string]any `json:"value" binding:"required"`
}

func (h HandlerSet) UpsertSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	setting := models.SiteSetting{
		Key:   c.Param("key"),
		Value: req.Value,
	}

	if err := h.settings.Upsert(c.Request.Context(), setting); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
