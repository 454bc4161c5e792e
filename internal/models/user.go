package models

import "time"

type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleEditor UserRole = "editor"
	UserRoleAdmin  UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User carries two independent gating flags: Status is a soft suspension set
// by moderation, IsActive a hard disable set by administration. Both must pass
// for any protected action.
type User struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	PasswordHash    []byte
	Role            UserRole
	Status          UserStatus
	IsActive        bool
	AvatarURL       *string
	EmailVerifiedAt *time.Time
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanAuthenticate reports whether both account gates pass.
func (u User) CanAuthenticate() bool {
	return u.IsActive && u.Status == UserStatusActive
}

type SessionType string

const (
	SessionTypeClient SessionType = "client"
	SessionTypeAdmin  SessionType = "admin"
)

// Session is a ledger row per issued token. The token itself carries its own
// signature and expiry; the ledger adds audit data and revocation.
type Session struct {
	ID        string
	UserID    string
	TokenHash []byte
	IPAddress string
	UserAgent string
	Type      SessionType
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

func (s Session) Revoked() bool {
	return s.RevokedAt != nil
}

// BannedUser is an immutable record blocking future registration by the same
// email or phone.
type BannedUser struct {
	ID        string
	Email     string
	Phone     string
	Name      string
	BannedBy  string
	Reason    string
	CreatedAt time.Time
}

type PasswordResetToken struct {
	ID        string
	Email     string
	TokenHash []byte
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

type EmailVerificationToken struct {
	ID         string
	UserID     string
	TokenHash  []byte
	ExpiresAt  time.Time
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// ProfileHistory records one field-level change. Password changes are stored
// with both values null.
type ProfileHistory struct {
	ID        string
	UserID    string
	Field     string
	OldValue  *string
	NewValue  *string
	ChangedBy string
	CreatedAt time.Time
}
