package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chantierpro/api/internal/config"
	"chantierpro/api/internal/mailer"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/repository"
	"chantierpro/api/internal/security"
)

const testJWTSecret = "unit-test-secret-0123456789abcdef"

type authFixture struct {
	users    *mockUserStore
	sessions *mockSessionStore
	banned   *mockBannedStore
	tokens   *mockTokenStore
	history  *mockHistoryStore
	mail     *mockMailEnqueuer
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.AppConfig{
		ClientBaseURL: "http://localhost:3000",
		Security: config.SecurityConfig{
			JWTSecret:        testJWTSecret,
			TokenTTL:         24 * time.Hour,
			RememberTokenTTL: 720 * time.Hour,
			ResetTokenTTL:    5 * time.Minute,
			VerifyTokenTTL:   24 * time.Hour,
			LoginMaxAttempts: 10,
			LoginWindow:      15 * time.Minute,
		},
	}

	f := &authFixture{
		users:    &mockUserStore{},
		sessions: &mockSessionStore{},
		banned:   &mockBannedStore{},
		tokens:   &mockTokenStore{},
		history:  &mockHistoryStore{},
		mail:     &mockMailEnqueuer{},
	}
	f.svc = NewAuthService(f.users, f.sessions, f.banned, f.tokens, f.history, f.mail, nil, cfg, zerolog.Nop())
	return f
}

func testPasswordHash(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func activeUser(t *testing.T, password string) models.User {
	return models.User{
		ID:           "user-1",
		Name:         "Marie Tremblay",
		Email:        "marie@example.com",
		Phone:        "514-555-0001",
		PasswordHash: testPasswordHash(t, password),
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
		IsActive:     true,
	}
}

func TestRegisterBannedIdentityNeverWrites(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.banned.On("ExistsByEmailOrPhone", ctx, "banni@example.com", "514-555-0099").Return(true, nil).Once()

	_, err := f.svc.Register(ctx, RegisterInput{
		Name:     "Quelqu'un",
		Email:    "Banni@Example.com",
		Phone:    "514-555-0099",
		Password: "motdepasse123",
	})

	assert.ErrorIs(t, err, ErrBanned)
	f.banned.AssertExpectations(t)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.banned.On("ExistsByEmailOrPhone", ctx, "marie@example.com", "").Return(false, nil).Once()
	f.users.On("FindByEmail", ctx, "marie@example.com").Return(models.User{ID: "existing"}, nil).Once()

	_, err := f.svc.Register(ctx, RegisterInput{
		Name:     "Marie",
		Email:    "marie@example.com",
		Password: "motdepasse123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterSuccess(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.banned.On("ExistsByEmailOrPhone", ctx, "neuf@example.com", "").Return(false, nil).Once()
	f.users.On("FindByEmail", ctx, "neuf@example.com").Return(models.User{}, repository.ErrUserNotFound).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "neuf@example.com" &&
			u.Role == models.UserRoleUser &&
			u.IsActive &&
			u.Status == models.UserStatusActive &&
			len(u.PasswordHash) > 0
	})).Return(nil).Once()
	f.sessions.On("Create", ctx, mock.AnythingOfType("models.Session")).Return(nil).Once()
	f.tokens.On("CreateEmailVerification", ctx, mock.AnythingOfType("models.EmailVerificationToken")).Return(nil).Once()
	f.mail.On("Enqueue", ctx, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "neuf@example.com"
	})).Return(nil).Once()

	result, err := f.svc.Register(ctx, RegisterInput{
		Name:     "Nouveau Client",
		Email:    "  Neuf@Example.COM ",
		Password: "motdepasse123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "neuf@example.com", result.User.Email)

	claims, err := security.ParseToken(result.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.False(t, claims.Admin)

	f.users.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
	f.mail.AssertExpectations(t)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "fantome@example.com").Return(models.User{}, repository.ErrUserNotFound).Once()

	_, err := f.svc.Login(ctx, LoginInput{Email: "fantome@example.com", Password: "peu-importe"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccountCheckedBeforePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	user.IsActive = false
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()

	// Even the correct password must not get past the disabled gate.
	_, err := f.svc.Login(ctx, LoginInput{Email: user.Email, Password: "bonmotdepasse"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginSuspendedAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	user.Status = models.UserStatusInactive
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := f.svc.Login(ctx, LoginInput{Email: user.Email, Password: "bonmotdepasse"})
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := f.svc.Login(ctx, LoginInput{Email: user.Email, Password: "mauvais"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSuccessClientSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()
	f.users.On("TouchLastLogin", ctx, user.ID).Return(nil).Once()

	var created models.Session
	f.sessions.On("Create", ctx, mock.AnythingOfType("models.Session")).Run(func(args mock.Arguments) {
		created = args.Get(1).(models.Session)
	}).Return(nil).Once()

	result, err := f.svc.Login(ctx, LoginInput{
		Email:     user.Email,
		Password:  "bonmotdepasse",
		IPAddress: "10.0.0.5",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionTypeClient, created.Type)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, "10.0.0.5", created.IPAddress)
	assert.Equal(t, security.HashToken(result.Token), created.TokenHash)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), created.ExpiresAt, time.Minute)
}

func TestLoginRememberExtendsTTL(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()
	f.users.On("TouchLastLogin", ctx, user.ID).Return(nil).Once()

	var created models.Session
	f.sessions.On("Create", ctx, mock.AnythingOfType("models.Session")).Run(func(args mock.Arguments) {
		created = args.Get(1).(models.Session)
	}).Return(nil).Once()

	result, err := f.svc.Login(ctx, LoginInput{Email: user.Email, Password: "bonmotdepasse", Remember: true})
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(720*time.Hour), created.ExpiresAt, time.Minute)

	claims, err := security.ParseToken(result.Token, testJWTSecret)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAdminLoginRejectsRegularUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := f.svc.Login(ctx, LoginInput{Email: user.Email, Password: "bonmotdepasse", AdminContext: true})
	assert.ErrorIs(t, err, ErrNotAdmin)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminLoginMintsAdminToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "bonmotdepasse")
	user.Role = models.UserRoleEditor
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()
	f.users.On("TouchLastLogin", ctx, user.ID).Return(nil).Once()

	var created models.Session
	f.sessions.On("Create", ctx, mock.AnythingOfType("models.Session")).Run(func(args mock.Arguments) {
		created = args.Get(1).(models.Session)
	}).Return(nil).Once()

	result, err := f.svc.Login(ctx, LoginInput{Email: user.Email, Password: "bonmotdepasse", AdminContext: true})
	require.NoError(t, err)

	assert.Equal(t, models.SessionTypeAdmin, created.Type)

	claims, err := security.ParseToken(result.Token, testJWTSecret)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Equal(t, created.ID, claims.SessionID)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "ancienmotdepasse")
	f.users.On("GetByID", ctx, user.ID).Return(user, nil).Once()

	err := f.svc.ChangePassword(ctx, user.ID, "session-1", "mauvais", "nouveaumotdepasse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePasswordRevokesOtherSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "ancienmotdepasse")
	f.users.On("GetByID", ctx, user.ID).Return(user, nil).Once()
	f.users.On("UpdatePassword", ctx, user.ID, mock.Anything).Return(nil).Once()
	f.history.On("Create", ctx, mock.MatchedBy(func(e models.ProfileHistory) bool {
		return e.Field == "password" && e.OldValue == nil && e.NewValue == nil
	})).Return(nil).Once()
	f.sessions.On("RevokeAllForUser", ctx, user.ID, "session-current").Return(nil).Once()

	err := f.svc.ChangePassword(ctx, user.ID, "session-current", "ancienmotdepasse", "nouveaumotdepasse")
	require.NoError(t, err)
	f.sessions.AssertExpectations(t)
	f.history.AssertExpectations(t)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "inconnu@example.com").Return(models.User{}, repository.ErrUserNotFound).Once()

	err := f.svc.ForgotPassword(ctx, "Inconnu@Example.com")
	require.NoError(t, err)
	f.tokens.AssertNotCalled(t, "CreatePasswordReset", mock.Anything, mock.Anything)
	f.mail.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestForgotPasswordStoresHashAndMailsLink(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "x")
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()

	var stored models.PasswordResetToken
	f.tokens.On("CreatePasswordReset", ctx, mock.AnythingOfType("models.PasswordResetToken")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(models.PasswordResetToken)
	}).Return(nil).Once()
	f.mail.On("Enqueue", ctx, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == user.Email
	})).Return(nil).Once()

	err := f.svc.ForgotPassword(ctx, user.Email)
	require.NoError(t, err)

	assert.Equal(t, user.Email, stored.Email)
	assert.Len(t, stored.TokenHash, 32)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), stored.ExpiresAt, time.Minute)
}

func TestResetPasswordConsumesTokenOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "ancien")
	raw := "raw-reset-token"
	token := models.PasswordResetToken{
		ID:        "token-1",
		Email:     user.Email,
		TokenHash: security.HashToken(raw),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}

	f.tokens.On("FindPasswordResetByHash", ctx, security.HashToken(raw)).Return(token, nil).Once()
	f.tokens.On("MarkPasswordResetUsed", ctx, "token-1").Return(nil).Once()
	f.users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()
	f.users.On("UpdatePassword", ctx, user.ID, mock.Anything).Return(nil).Once()
	f.history.On("Create", ctx, mock.Anything).Return(nil).Once()
	f.sessions.On("RevokeAllForUser", ctx, user.ID, "").Return(nil).Once()

	require.NoError(t, f.svc.ResetPassword(ctx, raw, "toutnouveau123"))

	// Second attempt: the row now carries used_at.
	now := time.Now()
	used := token
	used.UsedAt = &now
	f.tokens.On("FindPasswordResetByHash", ctx, security.HashToken(raw)).Return(used, nil).Once()

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, raw, "encoreautre123"), ErrTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	raw := "stale-token"
	token := models.PasswordResetToken{
		ID:        "token-2",
		Email:     "marie@example.com",
		TokenHash: security.HashToken(raw),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	f.tokens.On("FindPasswordResetByHash", ctx, security.HashToken(raw)).Return(token, nil).Once()

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, raw, "nouveaumotdepasse"), ErrTokenInvalid)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	raw := "verify-token"
	token := models.EmailVerificationToken{
		ID:        "verify-1",
		UserID:    "user-1",
		TokenHash: security.HashToken(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	f.tokens.On("FindEmailVerificationByHash", ctx, security.HashToken(raw)).Return(token, nil).Once()
	f.tokens.On("MarkEmailVerified", ctx, "verify-1").Return(nil).Once()
	f.users.On("SetEmailVerified", ctx, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	require.NoError(t, f.svc.VerifyEmail(ctx, raw))
	f.users.AssertExpectations(t)
}

func TestUpdateProfileRecordsChangedFieldsOnly(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "x")
	f.users.On("GetByID", ctx, user.ID).Return(user, nil).Once()
	f.users.On("UpdateProfile", ctx, user.ID, "Marie T.", user.Phone, (*string)(nil)).Return(nil).Once()
	f.history.On("Create", ctx, mock.MatchedBy(func(e models.ProfileHistory) bool {
		return e.Field == "name" && *e.OldValue == "Marie Tremblay" && *e.NewValue == "Marie T."
	})).Return(nil).Once()

	updated, err := f.svc.UpdateProfile(ctx, user.ID, user.ID, ProfileUpdateInput{
		Name:  "Marie T.",
		Phone: user.Phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Marie T.", updated.Name)

	// Phone unchanged, so exactly one history entry.
	f.history.AssertNumberOfCalls(t, "Create", 1)
}

func TestBanUserDisablesAndRevokes(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := activeUser(t, "x")
	f.users.On("GetByID", ctx, user.ID).Return(user, nil).Once()
	f.banned.On("Create", ctx, mock.MatchedBy(func(b models.BannedUser) bool {
		return b.Email == user.Email && b.BannedBy == "admin-1" && b.Reason == "fraude"
	})).Return(nil).Once()
	f.users.On("SetActive", ctx, user.ID, false).Return(nil).Once()
	f.sessions.On("RevokeAllForUser", ctx, user.ID, "").Return(nil).Once()

	require.NoError(t, f.svc.BanUser(ctx, "admin-1", user.ID, "fraude"))
	f.banned.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
}
