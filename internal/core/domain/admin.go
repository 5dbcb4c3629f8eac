package domain

import "time"

// Role is the admin role enumeration.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleModerator  Role = "moderator"
	RoleViewer     Role = "viewer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleSuperAdmin || r == RoleModerator || r == RoleViewer
}

// Admin is a privileged dashboard operator, distinct from chat users.
// Admins are never physically deleted; deactivation flips IsActive.
type Admin struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	Role             Role
	Permissions      Permissions
	Avatar           string
	IsActive         bool
	TwoFactorEnabled bool
	TwoFactorSecret  string
	LoginAttempts    int
	LockUntil        *time.Time
	LastLogin        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLocked reports whether a lockout is set and still in the future.
func (a *Admin) IsLocked(now time.Time) bool {
	return a.LockUntil != nil && a.LockUntil.After(now)
}

// AdminProfile is the sanitized shape returned to clients. The password hash
// and the two-factor secret never leave the server.
type AdminProfile struct {
	ID               string      `json:"_id"`
	Username         string      `json:"username"`
	Email            string      `json:"email"`
	Role             Role        `json:"role"`
	Permissions      Permissions `json:"permissions"`
	Avatar           string      `json:"avatar,omitempty"`
	IsActive         bool        `json:"isActive"`
	TwoFactorEnabled bool        `json:"twoFactorEnabled"`
	LastLogin        *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// Profile strips credentials from the admin record.
func (a *Admin) Profile() AdminProfile {
	return AdminProfile{
		ID:               a.ID,
		Username:         a.Username,
		Email:            a.Email,
		Role:             a.Role,
		Permissions:      a.Permissions,
		Avatar:           a.Avatar,
		IsActive:         a.IsActive,
		TwoFactorEnabled: a.TwoFactorEnabled,
		LastLogin:        a.LastLogin,
		CreatedAt:        a.CreatedAt,
	}
}
