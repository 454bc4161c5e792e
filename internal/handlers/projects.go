package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/repository"
)

// projectStore is the slice of the project repository the handlers touch.
type projectStore interface {
	List(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	GetBySlug(ctx context.Context, slug string) (models.Project, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, project models.Project) error
	Update(ctx context.Context, project models.Project) error
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	SetStatus(ctx context.Context, id string, status models.PublishStatus) error
}

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Year        int       `json:"year"`
	CoverImage  string    `json:"coverImage"`
	Gallery     []string  `json:"gallery"`
	Featured    bool      `json:"featured"`
	Status      string    `json:"status"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectResponse(project models.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Slug:        project.Slug,
		Description: project.Description,
		Category:    project.Category,
		Location:    project.Location,
		Year:        project.Year,
		CoverImage:  project.CoverImage,
		Gallery:     project.Gallery,
		Featured:    project.Featured,
		Status:      string(project.Status),
		SortOrder:   project.SortOrder,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ListProjects is the public listing: published rows only.
func (h HandlerSet) ListProjects(c *gin.Context) {
	limit, offset := pagination(c, 24, 100)

	filter := repository.ProjectFilter{
		Category: c.Query("category"),
		Status:   models.PublishStatusPublished,
		Limit:    limit,
		Offset:   offset,
	}
	if c.Query("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	projects, err := h.projects.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, project := range projects {
		resp = append(resp, toProjectResponse(project))
	}
	c.JSON(http.StatusOK, gin.H{"projects": resp})
}

func (h HandlerSet) GetProject(c *gin.Context) {
	project, err := h.projects.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if project.Status != models.PublishStatusPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(project)})
}

func (h HandlerSet) AdminListProjects(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	projects, err := h.projects.List(c.Request.Context(), repository.ProjectFilter{
		Category: c.Query("category"),
		Status:   models.PublishStatus(c.Query("status")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, project := range projects {
		resp = append(resp, toProjectResponse(project))
	}
	c.JSON(http.StatusOK, gin.H{"projects": resp})
}

type projectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Location    string   `json:"location"`
	Year        int      `json:"year"`
	CoverImage  string   `json:"coverImage"`
	Gallery     []string `json:"gallery"`
	Featured    bool     `json:"featured"`
	Status      string   `json:"status" binding:"omitempty,oneof=published draft"`
	SortOrder   int      `json:"sortOrder"`
}

func (h HandlerSet) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, "", h.projects.SlugExists)
	if !ok {
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = models.PublishStatusDraft
	}

	project := models.Project{
		ID:          ids.New(),
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Year:        req.Year,
		CoverImage:  req.CoverImage,
		Gallery:     req.Gallery,
		Featured:    req.Featured,
		Status:      status,
		SortOrder:   req.SortOrder,
	}

	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": toProjectResponse(project)})
}

func (h HandlerSet) UpdateProject(c *gin.Context) {
	id := c.Param("id")

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, id, h.projects.SlugExists)
	if !ok {
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	project := models.Project{
		ID:          id,
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Year:        req.Year,
		CoverImage:  req.CoverImage,
		Gallery:     req.Gallery,
		Featured:    req.Featured,
		Status:      status,
		SortOrder:   req.SortOrder,
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(project)})
}

func (h HandlerSet) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) ToggleProjectFeatured(c *gin.Context) {
	project, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.projects.SetFeatured(c.Request.Context(), project.ID, !project.Featured); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"featured": !project.Featured})
}

func (h HandlerSet) ToggleProjectStatus(c *gin.Context) {
	project, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	next := models.PublishStatusPublished
	if project.Status == models.PublishStatusPublished {
		next = models.PublishStatusDraft
	}

	if err := h.projects.SetStatus(c.Request.Context(), project.ID, next); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(next)})
}
