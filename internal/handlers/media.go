package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/middleware"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/service"
)

type mediaResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	URL        string    `json:"url"`
	MIME       string    `json:"mime"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (h HandlerSet) toMediaResponse(media models.Media, url string) mediaResponse {
	return mediaResponse{
		ID:         media.ID,
		FileName:   media.FileName,
		URL:        url,
		MIME:       media.MIME,
		SizeBytes:  media.SizeBytes,
		UploadedBy: media.UploadedBy,
		CreatedAt:  media.CreatedAt,
	}
}

func (h HandlerSet) UploadMedia(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}
	defer file.Close()

	out, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		UploadedBy: user.ID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"media": h.toMediaResponse(out.Media, out.URL)})
}

func (h HandlerSet) ListMedia(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	items, err := h.media.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]mediaResponse, 0, len(items))
	for _, media := range items {
		resp = append(resp, h.toMediaResponse(media, h.store.PublicURL(media.ObjectKey)))
	}
	c.JSON(http.StatusOK, gin.H{"media": resp})
}

func (h HandlerSet) DeleteMedia(c *gin.Context) {
	if err := h.uploadService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
