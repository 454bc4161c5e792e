package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/middleware"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/repository"
)

type blogPostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body,omitempty"`
	CoverImage  string     `json:"coverImage"`
	AuthorID    string     `json:"authorId"`
	Tags        []string   `json:"tags"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toBlogPostResponse(post models.BlogPost, includeBody bool) blogPostResponse {
	resp := blogPostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		CoverImage:  post.CoverImage,
		AuthorID:    post.AuthorID,
		Tags:        post.Tags,
		Status:      string(post.Status),
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if includeBody {
		resp.Body = post.Body
	}
	return resp
}

func (h HandlerSet) ListBlogPosts(c *gin.Context) {
	limit, offset := pagination(c, 12, 50)

	posts, err := h.blog.List(c.Request.Context(), repository.BlogFilter{
		Status: models.PublishStatusPublished,
		Tag:    c.Query("tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]blogPostResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, toBlogPostResponse(post, false))
	}
	c.JSON(http.StatusOK, gin.H{"posts": resp})
}

func (h HandlerSet) GetBlogPost(c *gin.Context) {
	post, err := h.blog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if post.Status != models.PublishStatusPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": toBlogPostResponse(post, true)})
}

func (h HandlerSet) AdminListBlogPosts(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	posts, err := h.blog.List(c.Request.Context(), repository.BlogFilter{
		Status: models.PublishStatus(c.Query("status")),
		Tag:    c.Query("tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]blogPostResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, toBlogPostResponse(post, false))
	}
	c.JSON(http.StatusOK, gin.H{"posts": resp})
}

type blogPostRequest struct {
	Title      string   `json:"title" binding:"required"`
	Excerpt    string   `json:"excerpt"`
	Body       string   `json:"body" binding:"required"`
	CoverImage string   `json:"coverImage"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status" binding:"omitempty,oneof=published draft"`
}

func (h HandlerSet) CreateBlogPost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, "", h.blog.SlugExists)
	if !ok {
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = models.PublishStatusDraft
	}

	post := models.BlogPost{
		ID:         ids.New(),
		Title:      req.Title,
		Slug:       slug,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		AuthorID:   user.ID,
		Tags:       req.Tags,
		Status:     status,
	}
	if status == models.PublishStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := h.blog.Create(c.Request.Context(), post); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": toBlogPostResponse(post, true)})
}

func (h HandlerSet) UpdateBlogPost(c *gin.Context) {
	id := c.Param("id")

	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.blog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	slug, ok := h.resolveSlug(c, req.Title, id, h.blog.SlugExists)
	if !ok {
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	post := models.BlogPost{
		ID:          id,
		Title:       req.Title,
		Slug:        slug,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		CoverImage:  req.CoverImage,
		AuthorID:    existing.AuthorID,
		Tags:        req.Tags,
		Status:      status,
		PublishedAt: existing.PublishedAt,
	}
	// First transition to published stamps the date; it never moves after.
	if status == models.PublishStatusPublished && existing.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := h.blog.Update(c.Request.Context(), post); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": toBlogPostResponse(post, true)})
}

func (h HandlerSet) DeleteBlogPost(c *gin.Context) {
	if err := h.blog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
