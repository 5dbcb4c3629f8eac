package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
	"github.com/telegram-clone/admin-api/internal/pkg/session"
	"github.com/telegram-clone/admin-api/internal/pkg/twofactor"
)

// AuthConfig carries the tunables of the login sequence.
type AuthConfig struct {
	JWTSecret        string
	SessionTTL       time.Duration // plain login
	RememberMeTTL    time.Duration // login with rememberMe
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

func (c *AuthConfig) applyDefaults() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.RememberMeTTL <= 0 {
		c.RememberMeTTL = 30 * 24 * time.Hour
	}
	if c.MaxLoginAttempts <= 0 {
		c.MaxLoginAttempts = 5
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = 30 * time.Minute
	}
}

// AuthService implements the login state machine, session issuance and the
// two-factor lifecycle.
type AuthService struct {
	repo   ports.AdminRepository
	audit  ports.AuditLogger
	cfg    AuthConfig
	logger zerolog.Logger
}

func NewAuthService(repo ports.AdminRepository, audit ports.AuditLogger, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	cfg.applyDefaults()
	return &AuthService{repo: repo, audit: audit, cfg: cfg, logger: logger}
}

// Login runs the full sequence: lookup, lockout, credential and two-factor
// checks, then token issuance. Credential failures return the same generic
// error whether the username exists or not.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	login := strings.ToLower(strings.TrimSpace(in.Username))
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()

	admin, err := s.repo.FindByLogin(ctx, login)
	if errors.Is(err, domain.ErrAdminNotFound) {
		// No resolved actor yet; the entry records the attempted username.
		s.audit.Record(ctx, loginAudit(nil, login, false, "admin not found", in.Meta))
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if admin.IsLocked(now) {
		s.audit.Record(ctx, loginAudit(&admin.ID, admin.Username, false, "account locked", in.Meta))
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		return nil, domain.ErrAccountLocked
	}

	if !admin.IsActive {
		s.audit.Record(ctx, loginAudit(&admin.ID, admin.Username, false, "account deactivated", in.Meta))
		metrics.LoginAttemptsTotal.WithLabelValues("deactivated").Inc()
		return nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		s.recordFailure(ctx, admin)
		s.audit.Record(ctx, loginAudit(&admin.ID, admin.Username, false, "invalid password", in.Meta))
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if admin.TwoFactorEnabled {
		if in.TwoFactorToken == "" {
			// Not an error: the client is asked to prompt for a code.
			metrics.LoginAttemptsTotal.WithLabelValues("two_factor_required").Inc()
			return &ports.LoginResult{RequireTwoFactor: true}, nil
		}
		if !twofactor.Verify(in.TwoFactorToken, admin.TwoFactorSecret) {
			s.recordFailure(ctx, admin)
			s.audit.Record(ctx, loginAudit(&admin.ID, admin.Username, false, "invalid 2FA token", in.Meta))
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_2fa").Inc()
			return nil, domain.ErrInvalidTwoFactorCode
		}
	}

	if err := s.repo.ResetLoginAttempts(ctx, admin.ID); err != nil {
		return nil, err
	}
	if err := s.repo.SetLastLogin(ctx, admin.ID, now); err != nil {
		return nil, err
	}
	admin.LoginAttempts = 0
	admin.LockUntil = nil
	admin.LastLogin = &now

	ttl := s.cfg.SessionTTL
	if in.RememberMe {
		ttl = s.cfg.RememberMeTTL
	}
	token, err := session.Issue(s.cfg.JWTSecret, admin, ttl)
	if err != nil {
		return nil, err
	}

	entry := loginAudit(&admin.ID, admin.Username, true, "", in.Meta)
	entry.Details["rememberMe"] = in.RememberMe
	s.audit.Record(ctx, entry)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return &ports.LoginResult{
		Token:  token,
		MaxAge: ttl,
		Admin:  admin.Profile(),
	}, nil
}

// Logout audits the end of a session. Tokens are stateless, so the only
// server-side effect is the audit entry; logout succeeds regardless.
func (s *AuthService) Logout(ctx context.Context, actor *domain.Admin, meta ports.RequestMeta) {
	if actor == nil {
		return
	}
	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditAdminLogout,
		Target:     actor.Username,
		TargetType: domain.TargetAdmin,
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
}

// GenerateTwoFactor creates a fresh secret and stores it in pending state:
// TwoFactorEnabled stays false until EnableTwoFactor verifies a code.
// Re-invoking from pending overwrites the previous secret.
func (s *AuthService) GenerateTwoFactor(ctx context.Context, actor *domain.Admin, meta ports.RequestMeta) (*ports.TwoFactorSetup, error) {
	setup, err := twofactor.Generate(actor.Email)
	if err != nil {
		metrics.TwoFactorEventsTotal.WithLabelValues("generate", "failure").Inc()
		return nil, err
	}

	actor.TwoFactorSecret = setup.Secret
	if err := s.repo.Update(ctx, actor); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, twoFactorAudit(actor, domain.AuditTwoFactorGenerate, true, "", meta))
	metrics.TwoFactorEventsTotal.WithLabelValues("generate", "success").Inc()
	return &ports.TwoFactorSetup{Secret: setup.Secret, ProvisioningURI: setup.ProvisioningURI}, nil
}

// EnableTwoFactor activates two-factor after one successful verification of
// the pending secret.
func (s *AuthService) EnableTwoFactor(ctx context.Context, actor *domain.Admin, code string, meta ports.RequestMeta) error {
	if actor.TwoFactorSecret == "" {
		return domain.ErrTwoFactorNotConfigured
	}

	if !twofactor.Verify(code, actor.TwoFactorSecret) {
		s.audit.Record(ctx, twoFactorAudit(actor, domain.AuditTwoFactorEnable, false, "invalid token", meta))
		metrics.TwoFactorEventsTotal.WithLabelValues("enable", "failure").Inc()
		return domain.ErrInvalidTwoFactorCode
	}

	actor.TwoFactorEnabled = true
	if err := s.repo.Update(ctx, actor); err != nil {
		return err
	}

	s.audit.Record(ctx, twoFactorAudit(actor, domain.AuditTwoFactorEnable, true, "", meta))
	metrics.TwoFactorEventsTotal.WithLabelValues("enable", "success").Inc()
	return nil
}

// DisableTwoFactor requires one successful verification of the active secret,
// then clears it.
func (s *AuthService) DisableTwoFactor(ctx context.Context, actor *domain.Admin, code string, meta ports.RequestMeta) error {
	if !actor.TwoFactorEnabled {
		return domain.ErrTwoFactorNotEnabled
	}

	if !twofactor.Verify(code, actor.TwoFactorSecret) {
		s.audit.Record(ctx, twoFactorAudit(actor, domain.AuditTwoFactorDisable, false, "invalid token", meta))
		metrics.TwoFactorEventsTotal.WithLabelValues("disable", "failure").Inc()
		return domain.ErrInvalidTwoFactorCode
	}

	actor.TwoFactorEnabled = false
	actor.TwoFactorSecret = ""
	if err := s.repo.Update(ctx, actor); err != nil {
		return err
	}

	s.audit.Record(ctx, twoFactorAudit(actor, domain.AuditTwoFactorDisable, true, "", meta))
	metrics.TwoFactorEventsTotal.WithLabelValues("disable", "success").Inc()
	return nil
}

// recordFailure bumps the failed-attempt counter atomically at the storage
// layer. Counter state accumulated before an expired lock is deliberately
// kept until a successful login resets it.
func (s *AuthService) recordFailure(ctx context.Context, admin *domain.Admin) {
	updated, err := s.repo.RecordFailedAttempt(ctx, admin.ID, s.cfg.MaxLoginAttempts, s.cfg.LockoutDuration)
	if err != nil {
		s.logger.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to record login attempt")
		return
	}
	if updated.LockUntil != nil && admin.LockUntil == nil {
		metrics.AccountLockoutsTotal.Inc()
		s.logger.Warn().Str("admin_id", admin.ID).Time("lock_until", *updated.LockUntil).Msg("admin account locked")
	}
}

func loginAudit(actorID *string, target string, success bool, errMsg string, meta ports.RequestMeta) domain.AuditEntry {
	targetType := ""
	if actorID != nil {
		targetType = domain.TargetAdmin
	}
	return domain.AuditEntry{
		ActorID:      actorID,
		Action:       domain.AuditAdminLogin,
		Target:       target,
		TargetType:   targetType,
		Details:      map[string]any{},
		Success:      success,
		ErrorMessage: errMsg,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	}
}

func twoFactorAudit(actor *domain.Admin, action domain.AuditAction, success bool, errMsg string, meta ports.RequestMeta) domain.AuditEntry {
	return domain.AuditEntry{
		ActorID:      &actor.ID,
		Action:       action,
		Target:       actor.Username,
		TargetType:   domain.TargetAdmin,
		Success:      success,
		ErrorMessage: errMsg,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	}
}
