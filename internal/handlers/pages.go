package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
)

type pageResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPageResponse(page models.StaticPage) pageResponse {
	return pageResponse{
		ID:        page.ID,
		Title:     page.Title,
		Slug:      page.Slug,
		Body:      page.Body,
		Status:    string(page.Status),
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}
}

func (h HandlerSet) GetPage(c *gin.Context) {
	page, err := h.pages.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if page.Status != models.PublishStatusPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": toPageResponse(page)})
}

func (h HandlerSet) AdminListPages(c *gin.Context) {
	pages, err := h.pages.List(c.Request.Context(), models.PublishStatus(c.Query("status")))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]pageResponse, 0, len(pages))
	for _, page := range pages {
		resp = append(resp, toPageResponse(page))
	}
	c.JSON(http.StatusOK, gin.H{"pages": resp})
}

type pageRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=published draft"`
}

func (h HandlerSet) CreatePage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, "", h.pages.SlugExists)
	if !ok {
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = models.PublishStatusDraft
	}

	page := models.StaticPage{
		ID:     ids.New(),
		Title:  req.Title,
		Slug:   slug,
		Body:   req.Body,
		Status: status,
	}

	if err := h.pages.Create(c.Request.Context(), page); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": toPageResponse(page)})
}

func (h HandlerSet) UpdatePage(c *gin.Context) {
	id := c.Param("id")

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.pages.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, id, h.pages.SlugExists)
	if !ok {
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	page := models.StaticPage{
		ID:     id,
		Title:  req.Title,
		Slug:   slug,
		Body:   req.Body,
		Status: status,
	}

	if err := h.pages.Update(c.Request.Context(), page); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": toPageResponse(page)})
}

func (h HandlerSet) DeletePage(c *gin.Context) {
	if err := h.pages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
