package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/middleware"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/service"
)

type userResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	IsActive        bool       `json:"isActive"`
	AvatarURL       *string    `json:"avatarUrl,omitempty"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		Role:            string(user.Role),
		Status:          string(user.Status),
		IsActive:        user.IsActive,
		AvatarURL:       user.AvatarURL,
		EmailVerifiedAt: user.EmailVerifiedAt,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": result.Token,
		"user":  toUserResponse(result.User),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

func (h HandlerSet) Login(c *gin.Context) {
	h.login(c, false)
}

// AdminLogin issues admin-flagged tokens for the admin panel. Role is checked
// at issuance and again by the guard on every request.
func (h HandlerSet) AdminLogin(c *gin.Context) {
	h.login(c, true)
}

func (h HandlerSet) login(c *gin.Context, adminContext bool) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:        req.Email,
		Password:     req.Password,
		Remember:     req.Remember,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		AdminContext: adminContext,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  toUserResponse(result.User),
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.SessionID); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

type updateProfileRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     string  `json:"phone"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, user.ID, service.ProfileUpdateInput{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(updated)})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	claims, _ := middleware.CurrentClaims(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, claims.SessionID, req.OldPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword returns the same response whether or not the email exists.
func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "if the address exists, a reset link has been sent",
	})
}

type resetTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h HandlerSet) VerifyResetToken(c *gin.Context) {
	var req resetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.VerifyResetToken(c.Request.Context(), req.Token); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h HandlerSet) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) ResendVerification(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), user.ID); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type sessionResponse struct {
	ID        string     `json:"id"`
	IPAddress string     `json:"ipAddress"`
	UserAgent string     `json:"userAgent"`
	Type      string     `json:"type"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	Current   bool       `json:"current"`
}

func (h HandlerSet) ListSessions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	claims, _ := middleware.CurrentClaims(c)

	sessions, err := h.authService.Sessions(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, sessionResponse{
			ID:        session.ID,
			IPAddress: session.IPAddress,
			UserAgent: session.UserAgent,
			Type:      string(session.Type),
			IssuedAt:  session.IssuedAt,
			ExpiresAt: session.ExpiresAt,
			RevokedAt: session.RevokedAt,
			Current:   session.ID == claims.SessionID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"sessions": resp})
}

type historyResponse struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	OldValue  *string   `json:"oldValue"`
	NewValue  *string   `json:"newValue"`
	ChangedBy string    `json:"changedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) ListProfileHistory(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pagination(c, 50, 200)
	entries, err := h.authService.ProfileHistory(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]historyResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, historyResponse{
			ID:        entry.ID,
			Field:     entry.Field,
			OldValue:  entry.OldValue,
			NewValue:  entry.NewValue,
			ChangedBy: entry.ChangedBy,
			CreatedAt: entry.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": resp})
}
