package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
)

// serviceStore is the slice of the service repository the handlers touch.
type serviceStore interface {
	List(ctx context.Context, status models.ServiceStatus, limit, offset int) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (models.Service, error)
	GetBySlug(ctx context.Context, slug string) (models.Service, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, svc models.Service) error
	Update(ctx context.Context, svc models.Service) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.ServiceStatus) error
}

type serviceResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body"`
	Icon      string    `json:"icon"`
	Image     string    `json:"image"`
	Featured  bool      `json:"featured"`
	Status    string    `json:"status"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toServiceResponse(svc models.Service) serviceResponse {
	return serviceResponse{
		ID:        svc.ID,
		Title:     svc.Title,
		Slug:      svc.Slug,
		Summary:   svc.Summary,
		Body:      svc.Body,
		Icon:      svc.Icon,
		Image:     svc.Image,
		Featured:  svc.Featured,
		Status:    string(svc.Status),
		SortOrder: svc.SortOrder,
		CreatedAt: svc.CreatedAt,
		UpdatedAt: svc.UpdatedAt,
	}
}

func (h HandlerSet) ListServices(c *gin.Context) {
	limit, offset := pagination(c, 50, 100)

	services, err := h.services.List(c.Request.Context(), models.ServiceStatusActive, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, toServiceResponse(svc))
	}
	c.JSON(http.StatusOK, gin.H{"services": resp})
}

func (h HandlerSet) GetService(c *gin.Context) {
	svc, err := h.services.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if svc.Status != models.ServiceStatusActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": toServiceResponse(svc)})
}

func (h HandlerSet) AdminListServices(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	services, err := h.services.List(c.Request.Context(), models.ServiceStatus(c.Query("status")), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, toServiceResponse(svc))
	}
	c.JSON(http.StatusOK, gin.H{"services": resp})
}

type serviceRequest struct {
	Title     string `json:"title" binding:"required"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Icon      string `json:"icon"`
	Image     string `json:"image"`
	Featured  bool   `json:"featured"`
	Status    string `json:"status" binding:"omitempty,oneof=active inactive"`
	SortOrder int    `json:"sortOrder"`
}

func (h HandlerSet) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, "", h.services.SlugExists)
	if !ok {
		return
	}

	status := models.ServiceStatus(req.Status)
	if status == "" {
		status = models.ServiceStatusActive
	}

	svc := models.Service{
		ID:        ids.New(),
		Title:     req.Title,
		Slug:      slug,
		Summary:   req.Summary,
		Body:      req.Body,
		Icon:      req.Icon,
		Image:     req.Image,
		Featured:  req.Featured,
		Status:    status,
		SortOrder: req.SortOrder,
	}

	if err := h.services.Create(c.Request.Context(), svc); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service": toServiceResponse(svc)})
}

func (h HandlerSet) UpdateService(c *gin.Context) {
	id := c.Param("id")

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.services.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, id, h.services.SlugExists)
	if !ok {
		return
	}

	status := models.ServiceStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	svc := models.Service{
		ID:        id,
		Title:     req.Title,
		Slug:      slug,
		Summary:   req.Summary,
		Body:      req.Body,
		Icon:      req.Icon,
		Image:     req.Image,
		Featured:  req.Featured,
		Status:    status,
		SortOrder: req.SortOrder,
	}

	if err := h.services.Update(c.Request.Context(), svc); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": toServiceResponse(svc)})
}

func (h HandlerSet) DeleteService(c *gin.Context) {
	if err := h.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleServiceStatus flips active and inactive; two calls restore the
// original state.
func (h HandlerSet) ToggleServiceStatus(c *gin.Context) {
	svc, err := h.services.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	next := models.ServiceStatusActive
	if svc.Status == models.ServiceStatusActive {
		next = models.ServiceStatusInactive
	}

	if err := h.services.SetStatus(c.Request.Context(), svc.ID, next); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(next)})
}
