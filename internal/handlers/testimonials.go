package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
)

type testimonialResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	AuthorRole string    `json:"authorRole"`
	Quote      string    `json:"quote"`
	Rating     int       `json:"rating"`
	AvatarURL  string    `json:"avatarUrl"`
	Status     string    `json:"status"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toTestimonialResponse(t models.Testimonial) testimonialResponse {
	return testimonialResponse{
		ID:         t.ID,
		AuthorName: t.AuthorName,
		AuthorRole: t.AuthorRole,
		Quote:      t.Quote,
		Rating:     t.Rating,
		AvatarURL:  t.AvatarURL,
		Status:     string(t.Status),
		SortOrder:  t.SortOrder,
		CreatedAt:  t.CreatedAt,
	}
}

func (h HandlerSet) ListTestimonials(c *gin.Context) {
	limit, offset := pagination(c, 20, 100)

	items, err := h.testimonials.List(c.Request.Context(), models.PublishStatusPublished, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]testimonialResponse, 0, len(items))
	for _, t := range items {
		resp = append(resp, toTestimonialResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": resp})
}

func (h HandlerSet) AdminListTestimonials(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	items, err := h.testimonials.List(c.Request.Context(), models.PublishStatus(c.Query("status")), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]testimonialResponse, 0, len(items))
	for _, t := range items {
		resp = append(resp, toTestimonialResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": resp})
}

type testimonialRequest struct {
	AuthorName string `json:"authorName" binding:"required"`
	AuthorRole string `json:"authorRole"`
	Quote      string `json:"quote" binding:"required"`
	Rating     int    `json:"rating" binding:"omitempty,min=1,max=5"`
	AvatarURL  string `json:"avatarUrl"`
	Status     string `json:"status" binding:"omitempty,oneof=published draft"`
	SortOrder  int    `json:"sortOrder"`
}

func (h HandlerSet) CreateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = models.PublishStatusDraft
	}

	t := models.Testimonial{
		ID:         ids.New(),
		AuthorName: req.AuthorName,
		AuthorRole: req.AuthorRole,
		Quote:      req.Quote,
		Rating:     req.Rating,
		AvatarURL:  req.AvatarURL,
		Status:     status,
		SortOrder:  req.SortOrder,
	}

	if err := h.testimonials.Create(c.Request.Context(), t); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"testimonial": toTestimonialResponse(t)})
}

func (h HandlerSet) UpdateTestimonial(c *gin.Context) {
	id := c.Param("id")

	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.testimonials.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	t := models.Testimonial{
		ID:         id,
		AuthorName: req.AuthorName,
		AuthorRole: req.AuthorRole,
		Quote:      req.Quote,
		Rating:     req.Rating,
		AvatarURL:  req.AvatarURL,
		Status:     status,
		SortOrder:  req.SortOrder,
	}

	if err := h.testimonials.Update(c.Request.Context(), t); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonial": toTestimonialResponse(t)})
}

func (h HandlerSet) DeleteTestimonial(c *gin.Context) {
	if err := h.testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
