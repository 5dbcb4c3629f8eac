package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6

	// Defaults used by the one-time setup when the caller supplies nothing.
	defaultSetupUsername = "superadmin"
	defaultSetupEmail    = "admin@telegram.com"
	defaultSetupPassword = "admin123456"
)

// AdminService manages admin accounts and the one-time initial setup.
// Admin accounts are never hard-deleted; Update can only deactivate them.
type AdminService struct {
	repo       ports.AdminRepository
	audit      ports.AuditLogger
	bcryptCost int
}

func NewAdminService(repo ports.AdminRepository, audit ports.AuditLogger, bcryptCost int) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &AdminService{repo: repo, audit: audit, bcryptCost: bcryptCost}
}

func (s *AdminService) List(ctx context.Context, _ *domain.Admin) ([]domain.AdminProfile, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.AdminProfile, 0, len(admins))
	for i := range admins {
		profiles = append(profiles, admins[i].Profile())
	}
	return profiles, nil
}

// Create registers a new admin with the default matrix for its role.
func (s *AdminService) Create(ctx context.Context, in ports.CreateAdminInput) (*domain.AdminProfile, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if len(username) < minUsernameLen {
		return nil, domain.ValidationError("username must be at least 3 characters")
	}
	if email == "" {
		return nil, domain.ValidationError("email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ValidationError("password must be at least 6 characters")
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ValidationError("role must be one of: superadmin, moderator, viewer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Permissions:  domain.RolePermissions(in.Role),
		IsActive:     true,
	})
	if err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &in.Actor.ID,
			Action:       domain.AuditAdminCreate,
			Target:       username,
			TargetType:   domain.TargetAdmin,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    in.Meta.IPAddress,
			UserAgent:    in.Meta.UserAgent,
		})
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &in.Actor.ID,
		Action:     domain.AuditAdminCreate,
		Target:     created.ID,
		TargetType: domain.TargetAdmin,
		Details:    map[string]any{"username": username, "role": string(in.Role)},
		Success:    true,
		IPAddress:  in.Meta.IPAddress,
		UserAgent:  in.Meta.UserAgent,
	})

	profile := created.Profile()
	return &profile, nil
}

// Update changes role and/or active state. A role change re-applies the
// role's default permission matrix.
func (s *AdminService) Update(ctx context.Context, in ports.UpdateAdminInput) (*domain.AdminProfile, error) {
	if in.Role == nil && in.IsActive == nil {
		return nil, domain.ValidationError("no valid fields to update")
	}

	admin, err := s.repo.FindByID(ctx, in.AdminID)
	if err != nil {
		return nil, err
	}

	details := map[string]any{}
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.ValidationError("role must be one of: superadmin, moderator, viewer")
		}
		admin.Role = *in.Role
		admin.Permissions = domain.RolePermissions(*in.Role)
		details["role"] = string(*in.Role)
	}
	if in.IsActive != nil {
		admin.IsActive = *in.IsActive
		details["isActive"] = *in.IsActive
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &in.Actor.ID,
		Action:     domain.AuditAdminEdit,
		Target:     admin.ID,
		TargetType: domain.TargetAdmin,
		Details:    details,
		Success:    true,
		IPAddress:  in.Meta.IPAddress,
		UserAgent:  in.Meta.UserAgent,
	})

	profile := admin.Profile()
	return &profile, nil
}

func (s *AdminService) SetupStatus(ctx context.Context) (*ports.SetupStatus, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.SetupStatus{TotalAdmins: count, Initialized: count > 0}, nil
}

// InitSetup creates the very first superadmin. Refused once any admin exists.
func (s *AdminService) InitSetup(ctx context.Context, in ports.InitSetupInput) (*domain.AdminProfile, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyInitialized
	}

	username := in.Username
	if username == "" {
		username = defaultSetupUsername
	}
	email := in.Email
	if email == "" {
		email = defaultSetupEmail
	}
	password := in.Password
	if password == "" {
		password = defaultSetupPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Username:     strings.ToLower(username),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		Permissions:  domain.RolePermissions(domain.RoleSuperAdmin),
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		// The setup endpoint runs before any session exists.
		Action:     domain.AuditAdminCreate,
		Target:     created.ID,
		TargetType: domain.TargetAdmin,
		Details:    map[string]any{"initialSetup": true, "username": created.Username},
		Success:    true,
		IPAddress:  in.Meta.IPAddress,
		UserAgent:  in.Meta.UserAgent,
	})

	profile := created.Profile()
	return &profile, nil
}

// FixPermissions re-applies the role default matrix to an admin whose stored
// matrix is missing or drifted.
func (s *AdminService) FixPermissions(ctx context.Context, username string) (*domain.AdminProfile, error) {
	admin, err := s.repo.FindByLogin(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	perms := domain.RolePermissions(admin.Role)
	if err := s.repo.UpdatePermissions(ctx, admin.ID, perms); err != nil {
		return nil, err
	}
	admin.Permissions = perms

	profile := admin.Profile()
	return &profile, nil
}
