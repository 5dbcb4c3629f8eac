package ports

import (
	"context"
	"time"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// LoginInput carries the credentials and client context of a login attempt.
type LoginInput struct {
	Username        string
	Password        string
	TwoFactorToken  string
	RememberMe      bool
	Meta            RequestMeta
}

// LoginResult is the outcome of a successful credential check. When the
// account has two-factor enabled and no code was supplied, RequireTwoFactor
// is set and no token is issued.
type LoginResult struct {
	RequireTwoFactor bool
	Token            string
	MaxAge           time.Duration
	Admin            domain.AdminProfile
}

// TwoFactorSetup is the pending secret handed to the authenticator app.
type TwoFactorSetup struct {
	Secret          string
	ProvisioningURI string
}

// AuthService implements the login sequence, session issuance and the
// two-factor lifecycle.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Logout only audits; session tokens are stateless and expire on their own.
	Logout(ctx context.Context, actor *domain.Admin, meta RequestMeta)

	GenerateTwoFactor(ctx context.Context, actor *domain.Admin, meta RequestMeta) (*TwoFactorSetup, error)
	EnableTwoFactor(ctx context.Context, actor *domain.Admin, code string, meta RequestMeta) error
	DisableTwoFactor(ctx context.Context, actor *domain.Admin, code string, meta RequestMeta) error
}
