package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
)

type newsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SubscribeNewsletter is idempotent: re-subscribing an existing address
// clears any previous unsubscription and returns the same response.
func (h HandlerSet) SubscribeNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sub := models.NewsletterSubscriber{
		ID:           ids.New(),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		SubscribedAt: time.Now().UTC(),
	}

	if err := h.newsletter.Subscribe(c.Request.Context(), sub); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}

func (h HandlerSet) UnsubscribeNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.newsletter.Unsubscribe(c.Request.Context(), strings.TrimSpace(strings.ToLower(req.Email))); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

type subscriberResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func (h HandlerSet) AdminListSubscribers(c *gin.Context) {
	limit, offset := pagination(c, 100, 500)
	activeOnly := c.Query("active") == "true"

	subs, err := h.newsletter.List(c.Request.Context(), activeOnly, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]subscriberResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, subscriberResponse{
			ID:             sub.ID,
			Email:          sub.Email,
			SubscribedAt:   sub.SubscribedAt,
			UnsubscribedAt: sub.UnsubscribedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": resp})
}
