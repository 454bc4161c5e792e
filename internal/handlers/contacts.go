package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/mailer"
	"chantierpro/api/internal/models"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores the message and queues a notification mail for the
// office inbox. A mail failure never fails the submission.
func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg := models.ContactMessage{
		ID:      ids.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contacts.Create(c.Request.Context(), msg); err != nil {
		h.fail(c, err)
		return
	}

	body, err := mailer.RenderContactNotification(req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err == nil {
		err = h.mail.Enqueue(c.Request.Context(), mailer.Message{
			To:      h.cfg.ContactEmail,
			Subject: "Nouveau message de contact",
			Body:    body,
		})
	}
	if err != nil {
		h.log.Warn().Err(err).Str("contact_id", msg.ID).Msg("contact notification enqueue failed")
	}

	c.JSON(http.StatusCreated, gin.H{"message": "received"})
}

type contactMessageResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (h HandlerSet) AdminListContacts(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)
	unreadOnly := c.Query("unread") == "true"

	messages, err := h.contacts.List(c.Request.Context(), unreadOnly, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]contactMessageResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, contactMessageResponse{
			ID:        msg.ID,
			Name:      msg.Name,
			Email:     msg.Email,
			Phone:     msg.Phone,
			Subject:   msg.Subject,
			Message:   msg.Message,
			ReadAt:    msg.ReadAt,
			CreatedAt: msg.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

func (h HandlerSet) MarkContactRead(c *gin.Context) {
	if err := h.contacts.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteContact(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
