package ports

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// CreateAdminInput drives POST /admins. Permissions default from the role.
type CreateAdminInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
	Actor    *domain.Admin
	Meta     RequestMeta
}

// UpdateAdminInput drives PATCH /admins/:id; nil means unchanged.
type UpdateAdminInput struct {
	AdminID  string
	Role     *domain.Role
	IsActive *bool
	Actor    *domain.Admin
	Meta     RequestMeta
}

// SetupStatus reports whether initial setup has been completed.
type SetupStatus struct {
	TotalAdmins int64 `json:"totalAdmins"`
	Initialized bool  `json:"initialized"`
}

// InitSetupInput creates the very first superadmin account. Only valid while
// no admin exists.
type InitSetupInput struct {
	Username string
	Email    string
	Password string
	Meta     RequestMeta
}

// AdminService manages admin accounts and the one-time initial setup.
type AdminService interface {
	List(ctx context.Context, actor *domain.Admin) ([]domain.AdminProfile, error)
	Create(ctx context.Context, in CreateAdminInput) (*domain.AdminProfile, error)
	Update(ctx context.Context, in UpdateAdminInput) (*domain.AdminProfile, error)

	SetupStatus(ctx context.Context) (*SetupStatus, error)
	InitSetup(ctx context.Context, in InitSetupInput) (*domain.AdminProfile, error)
	// FixPermissions repairs an admin's matrix from the role defaults.
	FixPermissions(ctx context.Context, username string) (*domain.AdminProfile, error)
}
