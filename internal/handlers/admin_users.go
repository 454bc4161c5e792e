package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/middleware"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/security"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	users, err := h.users.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

type adminCreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=user editor admin"`
}

// AdminCreateUser provisions an account directly, without the registration
// flow: no session, no verification mail.
func (h HandlerSet) AdminCreateUser(c *gin.Context) {
	var req adminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	user := models.User{
		ID:           ids.New(),
		Name:         req.Name,
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		Status:       models.UserStatusActive,
		IsActive:     true,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user editor admin"`
}

func (h HandlerSet) AdminUpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), models.UserRole(req.Role)); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

func (h HandlerSet) AdminUpdateUserStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.UpdateStatus(c.Request.Context(), c.Param("id"), models.UserStatus(req.Status)); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type banUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h HandlerSet) AdminBanUser(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req banUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	targetID := c.Param("id")
	if targetID == admin.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot_ban_self"})
		return
	}

	if err := h.authService.BanUser(c.Request.Context(), admin.ID, targetID, req.Reason); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
