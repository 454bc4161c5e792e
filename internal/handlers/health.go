package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if err := h.db.Ping(c.Request.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()).Err(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{"status": status})
}
