package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"chantierpro/api/internal/mailer"
	"chantierpro/api/internal/models"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id string, name, phone string, avatarURL *string) error {
	return m.Called(ctx, id, name, phone, avatarURL).Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserStore) SetEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	return m.Called(ctx, id, verifiedAt).Error(0)
}

func (m *mockUserStore) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockUserStore) TouchLastLogin(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Create(ctx context.Context, session models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *mockSessionStore) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *mockSessionStore) Revoke(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionStore) RevokeAllForUser(ctx context.Context, userID string, keepID string) error {
	return m.Called(ctx, userID, keepID).Error(0)
}

type mockBannedStore struct{ mock.Mock }

func (m *mockBannedStore) Create(ctx context.Context, banned models.BannedUser) error {
	return m.Called(ctx, banned).Error(0)
}

func (m *mockBannedStore) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) CreatePasswordReset(ctx context.Context, token models.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenStore) FindPasswordResetByHash(ctx context.Context, tokenHash []byte) (models.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(models.PasswordResetToken), args.Error(1)
}

func (m *mockTokenStore) MarkPasswordResetUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTokenStore) CreateEmailVerification(ctx context.Context, token models.EmailVerificationToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenStore) FindEmailVerificationByHash(ctx context.Context, tokenHash []byte) (models.EmailVerificationToken, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(models.EmailVerificationToken), args.Error(1)
}

func (m *mockTokenStore) MarkEmailVerified(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockHistoryStore struct{ mock.Mock }

func (m *mockHistoryStore) Create(ctx context.Context, entry models.ProfileHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockHistoryStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.ProfileHistory, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.ProfileHistory), args.Error(1)
}

type mockMailEnqueuer struct{ mock.Mock }

func (m *mockMailEnqueuer) Enqueue(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}
