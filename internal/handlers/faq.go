package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
)

type faqItemResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	SortOrder int    `json:"sortOrder"`
}

func toFAQItemResponse(item models.FAQItem) faqItemResponse {
	return faqItemResponse{
		ID:        item.ID,
		Question:  item.Question,
		Answer:    item.Answer,
		Category:  item.Category,
		Status:    string(item.Status),
		SortOrder: item.SortOrder,
	}
}

func (h HandlerSet) ListFAQ(c *gin.Context) {
	items, err := h.faq.List(c.Request.Context(), models.PublishStatusPublished, c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]faqItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toFAQItemResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"faq": resp})
}

func (h HandlerSet) AdminListFAQ(c *gin.Context) {
	items, err := h.faq.List(c.Request.Context(), models.PublishStatus(c.Query("status")), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]faqItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toFAQItemResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"faq": resp})
}

type faqItemRequest struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	Category  string `json:"category"`
	Status    string `json:"status" binding:"omitempty,oneof=published draft"`
	SortOrder int    `json:"sortOrder"`
}

func (h HandlerSet) CreateFAQItem(c *gin.Context) {
	var req faqItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = models.PublishStatusPublished
	}

	item := models.FAQItem{
		ID:        ids.New(),
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Status:    status,
		SortOrder: req.SortOrder,
	}

	if err := h.faq.Create(c.Request.Context(), item); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": toFAQItemResponse(item)})
}

func (h HandlerSet) UpdateFAQItem(c *gin.Context) {
	id := c.Param("id")

	var req faqItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.faq.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := models.PublishStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	item := models.FAQItem{
		ID:        id,
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Status:    status,
		SortOrder: req.SortOrder,
	}

	if err := h.faq.Update(c.Request.Context(), item); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": toFAQItemResponse(item)})
}

func (h HandlerSet) DeleteFAQItem(c *gin.Context) {
	if err := h.faq.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
