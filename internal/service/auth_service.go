package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"chantierpro/api/internal/config"
	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/mailer"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/security"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBanned             = errors.New("identity banned")
	ErrTokenInvalid       = errors.New("token invalid or expired")
	ErrNotAdmin           = errors.New("admin access required")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, id string, name, phone string, avatarURL *string) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	SetEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	TouchLastLogin(ctx context.Context, id string) error
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string, keepID string) error
}

type BannedStore interface {
	Create(ctx context.Context, banned models.BannedUser) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}

type TokenStore interface {
	CreatePasswordReset(ctx context.Context, token models.PasswordResetToken) error
	FindPasswordResetByHash(ctx context.Context, tokenHash []byte) (models.PasswordResetToken, error)
	MarkPasswordResetUsed(ctx context.Context, id string) error
	CreateEmailVerification(ctx context.Context, token models.EmailVerificationToken) error
	FindEmailVerificationByHash(ctx context.Context, tokenHash []byte) (models.EmailVerificationToken, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

type HistoryStore interface {
	Create(ctx context.Context, entry models.ProfileHistory) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.ProfileHistory, error)
}

type MailEnqueuer interface {
	Enqueue(ctx context.Context, msg mailer.Message) error
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	banned   BannedStore
	tokens   TokenStore
	history  HistoryStore
	mail     MailEnqueuer
	cache    *redis.Client
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	banned BannedStore,
	tokens TokenStore,
	history HistoryStore,
	mail MailEnqueuer,
	cache *redis.Client,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		banned:   banned,
		tokens:   tokens,
		history:  history,
		mail:     mail,
		cache:    cache,
		cfg:      cfg,
		log:      log,
	}
}

type RegisterInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	IPAddress string
	UserAgent string
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("email and password required")
	}

	isBanned, err := s.banned.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return AuthResult{}, err
	}
	if isBanned {
		return AuthResult{}, ErrBanned
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !isNotFound(err) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	token, err := s.issueSession(ctx, user, issueOptions{
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.sendVerificationMail(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("enqueue verification mail failed")
	}

	return AuthResult{Token: token, User: user}, nil
}

type LoginInput struct {
	Email     string
	Password  string
	Remember  bool
	IPAddress string
	UserAgent string
	// AdminContext requires role admin/editor and mints an admin-flagged token.
	AdminContext bool
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := s.checkLoginThrottle(ctx, input.Email); err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if isNotFound(err) {
			s.recordLoginFailure(ctx, input.Email)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !user.IsActive {
		return AuthResult{}, ErrAccountDisabled
	}
	if user.Status != models.UserStatusActive {
		return AuthResult{}, ErrAccountSuspended
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		s.recordLoginFailure(ctx, input.Email)
		return AuthResult{}, ErrInvalidCredentials
	}

	if input.AdminContext && user.Role != models.UserRoleAdmin && user.Role != models.UserRoleEditor {
		return AuthResult{}, ErrNotAdmin
	}

	token, err := s.issueSession(ctx, user, issueOptions{
		Remember:  input.Remember,
		Admin:     input.AdminContext,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("touch last login failed")
	}

	return AuthResult{Token: token, User: user}, nil
}

type issueOptions struct {
	Remember  bool
	Admin     bool
	IPAddress string
	UserAgent string
}

func (s *AuthService) issueSession(ctx context.Context, user models.User, opts issueOptions) (string, error) {
	ttl := s.cfg.Security.TokenTTL
	if opts.Remember {
		ttl = s.cfg.Security.RememberTokenTTL
	}

	sessionType := models.SessionTypeClient
	if opts.Admin {
		sessionType = models.SessionTypeAdmin
	}

	sessionID := ids.New()
	token, err := security.GenerateToken(s.cfg.Security.JWTSecret, user.ID, sessionID, opts.Admin, ttl)
	if err != nil {
		return "", err
	}

	session := models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: security.HashToken(token),
		IPAddress: opts.IPAddress,
		UserAgent: opts.UserAgent,
		Type:      sessionType,
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// ChangePassword verifies the old password, rotates the hash and revokes every
// other live session of the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID, sessionID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	s.recordHistory(ctx, userID, userID, "password", nil, nil)

	if err := s.sessions.RevokeAllForUser(ctx, userID, sessionID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("revoke other sessions failed")
	}
	return nil
}

// ForgotPassword always succeeds from the caller's perspective; an unknown
// email is logged and dropped to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if isNotFound(err) {
			s.log.Debug().Str("email", email).Msg("password reset for unknown email ignored")
			return nil
		}
		return err
	}

	raw, hash, err := security.GenerateOpaqueToken(32)
	if err != nil {
		return err
	}

	token := models.PasswordResetToken{
		ID:        ids.New(),
		Email:     email,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(s.cfg.Security.ResetTokenTTL),
	}
	if err := s.tokens.CreatePasswordReset(ctx, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimSuffix(s.cfg.ClientBaseURL, "/"), raw)
	body, err := mailer.RenderPasswordReset(link)
	if err != nil {
		return err
	}
	return s.mail.Enqueue(ctx, mailer.Message{
		To:      email,
		Subject: "Réinitialisation de votre mot de passe",
		Body:    body,
	})
}

func (s *AuthService) VerifyResetToken(ctx context.Context, rawToken string) error {
	_, err := s.lookupResetToken(ctx, rawToken)
	return err
}

func (s *AuthService) lookupResetToken(ctx context.Context, rawToken string) (models.PasswordResetToken, error) {
	token, err := s.tokens.FindPasswordResetByHash(ctx, security.HashToken(rawToken))
	if err != nil {
		if isNotFound(err) {
			return models.PasswordResetToken{}, ErrTokenInvalid
		}
		return models.PasswordResetToken{}, err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return models.PasswordResetToken{}, ErrTokenInvalid
	}
	return token, nil
}

// ResetPassword consumes a reset token exactly once and revokes all sessions.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	token, err := s.lookupResetToken(ctx, rawToken)
	if err != nil {
		return err
	}

	// Consumption is the atomic step; a concurrent reset with the same token
	// loses here.
	if err := s.tokens.MarkPasswordResetUsed(ctx, token.ID); err != nil {
		if isNotFound(err) {
			return ErrTokenInvalid
		}
		return err
	}

	user, err := s.users.FindByEmail(ctx, token.Email)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	s.recordHistory(ctx, user.ID, user.ID, "password", nil, nil)

	if err := s.sessions.RevokeAllForUser(ctx, user.ID, ""); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("revoke sessions after reset failed")
	}
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string) error {
	token, err := s.tokens.FindEmailVerificationByHash(ctx, security.HashToken(rawToken))
	if err != nil {
		if isNotFound(err) {
			return ErrTokenInvalid
		}
		return err
	}
	if token.VerifiedAt != nil || time.Now().After(token.ExpiresAt) {
		return ErrTokenInvalid
	}

	if err := s.tokens.MarkEmailVerified(ctx, token.ID); err != nil {
		if isNotFound(err) {
			return ErrTokenInvalid
		}
		return err
	}
	return s.users.SetEmailVerified(ctx, token.UserID, time.Now())
}

func (s *AuthService) ResendVerification(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailVerifiedAt != nil {
		return nil
	}
	return s.sendVerificationMail(ctx, user)
}

func (s *AuthService) sendVerificationMail(ctx context.Context, user models.User) error {
	raw, hash, err := security.GenerateOpaqueToken(32)
	if err != nil {
		return err
	}

	token := models.EmailVerificationToken{
		ID:        ids.New(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(s.cfg.Security.VerifyTokenTTL),
	}
	if err := s.tokens.CreateEmailVerification(ctx, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimSuffix(s.cfg.ClientBaseURL, "/"), raw)
	body, err := mailer.RenderEmailVerification(user.Name, link)
	if err != nil {
		return err
	}
	return s.mail.Enqueue(ctx, mailer.Message{
		To:      user.Email,
		Subject: "Confirmez votre adresse courriel",
		Body:    body,
	})
}

type ProfileUpdateInput struct {
	Name      string
	Phone     string
	AvatarURL *string
}

// UpdateProfile applies the change and appends one history entry per modified
// field.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, changedBy string, input ProfileUpdateInput) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if input.Name != user.Name {
		s.recordHistory(ctx, userID, changedBy, "name", strPtr(user.Name), strPtr(input.Name))
	}
	if input.Phone != user.Phone {
		s.recordHistory(ctx, userID, changedBy, "phone", strPtr(user.Phone), strPtr(input.Phone))
	}
	if !strPtrEqual(input.AvatarURL, user.AvatarURL) {
		s.recordHistory(ctx, userID, changedBy, "avatar_url", user.AvatarURL, input.AvatarURL)
	}

	if err := s.users.UpdateProfile(ctx, userID, input.Name, input.Phone, input.AvatarURL); err != nil {
		return models.User{}, err
	}

	user.Name = input.Name
	user.Phone = input.Phone
	user.AvatarURL = input.AvatarURL
	return user, nil
}

func (s *AuthService) Sessions(ctx context.Context, userID string) ([]models.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

func (s *AuthService) ProfileHistory(ctx context.Context, userID string, limit, offset int) ([]models.ProfileHistory, error) {
	return s.history.ListByUser(ctx, userID, limit, offset)
}

// BanUser records an immutable ban, hard-disables the account and revokes all
// sessions. The user row itself is kept.
func (s *AuthService) BanUser(ctx context.Context, adminID, userID, reason string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	banned := models.BannedUser{
		ID:       ids.New(),
		Email:    user.Email,
		Phone:    user.Phone,
		Name:     user.Name,
		BannedBy: adminID,
		Reason:   reason,
	}
	if err := s.banned.Create(ctx, banned); err != nil {
		return err
	}

	if err := s.users.SetActive(ctx, userID, false); err != nil {
		return err
	}
	if err := s.sessions.RevokeAllForUser(ctx, userID, ""); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("revoke sessions after ban failed")
	}
	return nil
}

func (s *AuthService) recordHistory(ctx context.Context, userID, changedBy, field string, oldValue, newValue *string) {
	entry := models.ProfileHistory{
		ID:        ids.New(),
		UserID:    userID,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedBy: changedBy,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("field", field).Msg("record profile history failed")
	}
}

func (s *AuthService) checkLoginThrottle(ctx context.Context, email string) error {
	if s.cache == nil {
		return nil
	}
	count, err := s.cache.Get(ctx, loginAttemptKey(email)).Int()
	if err != nil && err != redis.Nil {
		return nil // throttle is best-effort
	}
	if count >= s.cfg.Security.LoginMaxAttempts {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) recordLoginFailure(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	key := loginAttemptKey(email)
	if err := s.cache.Incr(ctx, key).Err(); err != nil {
		return
	}
	s.cache.Expire(ctx, key, s.cfg.Security.LoginWindow)
}

func loginAttemptKey(email string) string {
	return "login:attempts:" + email
}

func strPtr(s string) *string {
	return &s
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
