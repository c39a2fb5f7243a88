package domain

import "time"

// Role enumerates user authorization levels.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether the given role is one of the known values.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for accounts. PasswordHash and the reset-token
// fields never leave the service layer; Active=false marks a soft-deleted
// account that is retained but hidden from listings.
type User struct {
	ID                     string
	Name                   string
	Email                  string
	Photo                  string
	Role                   Role
	PasswordHash           string
	PasswordChangedAt      *time.Time
	PasswordResetToken     *string
	PasswordResetExpiresAt *time.Time
	Active                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// PasswordChangedAfter reports whether the password was rotated after the
// given token issue time. Tokens issued before a password change are void.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}

// ClearResetToken drops any pending reset token. Called after a successful
// reset and when the reset mail cannot be delivered.
func (u *User) ClearResetToken() {
	u.PasswordResetToken = nil
	u.PasswordResetExpiresAt = nil
}
