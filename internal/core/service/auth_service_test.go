package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
	"github.com/telegram-clone/admin-api/internal/pkg/session"
	"github.com/telegram-clone/admin-api/pkg/logger"
)

type stubAdminRepo struct {
	admins map[string]*domain.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) add(a *domain.Admin) {
	r.admins[a.ID] = cloneAdmin(a)
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	if a, ok := r.admins[id]; ok {
		return cloneAdmin(a), nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByLogin(_ context.Context, login string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == login || a.Email == login {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == admin.Username || a.Email == admin.Email {
			return nil, domain.ErrAdminExists
		}
	}
	clone := cloneAdmin(admin)
	if clone.ID == "" {
		clone.ID = admin.Username
	}
	r.admins[clone.ID] = cloneAdmin(clone)
	return clone, nil
}

func (r *stubAdminRepo) Update(_ context.Context, admin *domain.Admin) error {
	if _, ok := r.admins[admin.ID]; !ok {
		return domain.ErrAdminNotFound
	}
	r.admins[admin.ID] = cloneAdmin(admin)
	return nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	out := make([]domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

func (r *stubAdminRepo) RecordFailedAttempt(_ context.Context, id string, threshold int, lockFor time.Duration) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	a.LoginAttempts++
	if a.LoginAttempts >= threshold && a.LockUntil == nil {
		until := time.Now().UTC().Add(lockFor)
		a.LockUntil = &until
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) ResetLoginAttempts(_ context.Context, id string) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.LoginAttempts = 0
	a.LockUntil = nil
	return nil
}

func (r *stubAdminRepo) SetLastLogin(_ context.Context, id string, at time.Time) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.LastLogin = &at
	return nil
}

func (r *stubAdminRepo) UpdatePermissions(_ context.Context, id string, perms domain.Permissions) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.Permissions = perms
	return nil
}

type stubAudit struct {
	entries []domain.AuditEntry
}

func (s *stubAudit) Record(_ context.Context, entry domain.AuditEntry) {
	s.entries = append(s.entries, entry)
}

func (s *stubAudit) last() *domain.AuditEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func newTestAuthService(t *testing.T, repo *stubAdminRepo, audit *stubAudit) *AuthService {
	t.Helper()
	log := logger.Init(logger.Options{Level: "error"})
	return NewAuthService(repo, audit, AuthConfig{
		JWTSecret:        "test-secret",
		SessionTTL:       24 * time.Hour,
		RememberMeTTL:    30 * 24 * time.Hour,
		MaxLoginAttempts: 5,
		LockoutDuration:  30 * time.Minute,
	}, log)
}

func activeAdmin(t *testing.T, password string) *domain.Admin {
	t.Helper()
	return &domain.Admin{
		ID:           "admin_1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: mustHash(t, password),
		Role:         domain.RoleSuperAdmin,
		Permissions:  domain.RolePermissions(domain.RoleSuperAdmin),
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAdminRepo()
	audit := &stubAudit{}
	repo.add(activeAdmin(t, "s3cret-pass"))
	svc := newTestAuthService(t, repo, audit)

	result, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "Alice",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if result.RequireTwoFactor {
		t.Fatalf("unexpected two-factor challenge")
	}
	if result.MaxAge != 24*time.Hour {
		t.Fatalf("unexpected max age: %v", result.MaxAge)
	}

	claims, err := session.Parse("test-secret", result.Token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.AdminID != "admin_1" || claims.Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if repo.admins["admin_1"].LastLogin == nil {
		t.Fatalf("last login not recorded")
	}
	entry := audit.last()
	if entry == nil || entry.Action != domain.AuditAdminLogin || !entry.Success {
		t.Fatalf("expected successful login audit, got %+v", entry)
	}
}

func TestAuthService_Login_RememberMe(t *testing.T) {
	repo := newStubAdminRepo()
	repo.add(activeAdmin(t, "s3cret-pass"))
	svc := newTestAuthService(t, repo, &stubAudit{})

	result, err := svc.Login(context.Background(), ports.LoginInput{
		Username:   "alice",
		Password:   "s3cret-pass",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.MaxAge != 30*24*time.Hour {
		t.Fatalf("expected 30d max age, got %v", result.MaxAge)
	}
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	repo := newStubAdminRepo()
	audit := &stubAudit{}
	svc := newTestAuthService(t, repo, audit)

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "ghost",
		Password: "whatever",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	entry := audit.last()
	if entry == nil {
		t.Fatalf("expected audit entry for unknown username")
	}
	if entry.ActorID != nil {
		t.Fatalf("expected nil actor for unresolved login, got %v", *entry.ActorID)
	}
	if entry.Target != "ghost" || entry.Success {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestAuthService_Login_LockoutAfterRepeatedFailures(t *testing.T) {
	repo := newStubAdminRepo()
	repo.add(activeAdmin(t, "s3cret-pass"))
	svc := newTestAuthService(t, repo, &stubAudit{})

	for i := 0; i < 5; i++ {
		if _, err := svc.Login(context.Background(), ports.LoginInput{
			Username: "alice",
			Password: "wrong",
		}); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Correct password no longer helps while the lock holds.
	_, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "alice",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func TestAuthService_Login_SuccessResetsCounter(t *testing.T) {
	repo := newStubAdminRepo()
	repo.add(activeAdmin(t, "s3cret-pass"))
	svc := newTestAuthService(t, repo, &stubAudit{})

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "wrong"})
	}
	if repo.admins["admin_1"].LoginAttempts != 3 {
		t.Fatalf("expected 3 failed attempts, got %d", repo.admins["admin_1"].LoginAttempts)
	}

	if _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if repo.admins["admin_1"].LoginAttempts != 0 {
		t.Fatalf("counter not reset, got %d", repo.admins["admin_1"].LoginAttempts)
	}
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	repo := newStubAdminRepo()
	admin := activeAdmin(t, "s3cret-pass")
	admin.IsActive = false
	repo.add(admin)
	svc := newTestAuthService(t, repo, &stubAudit{})

	_, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "s3cret-pass"})
	if !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_Login_TwoFactorChallenge(t *testing.T) {
	repo := newStubAdminRepo()
	audit := &stubAudit{}
	svc := newTestAuthService(t, repo, audit)

	admin := activeAdmin(t, "s3cret-pass")
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: admin.Email})
	if err != nil {
		t.Fatalf("generate totp key: %v", err)
	}
	admin.TwoFactorEnabled = true
	admin.TwoFactorSecret = key.Secret()
	repo.add(admin)

	// Correct password without a code asks for the code instead of failing.
	result, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("expected two-factor challenge without error, got %v", err)
	}
	if !result.RequireTwoFactor || result.Token != "" {
		t.Fatalf("expected challenge result, got %+v", result)
	}

	// Wrong code counts as a failed attempt.
	_, err = svc.Login(context.Background(), ports.LoginInput{
		Username: "alice", Password: "s3cret-pass", TwoFactorToken: "000000",
	})
	if !errors.Is(err, domain.ErrInvalidTwoFactorCode) {
		t.Fatalf("expected ErrInvalidTwoFactorCode, got %v", err)
	}
	if repo.admins["admin_1"].LoginAttempts != 1 {
		t.Fatalf("wrong 2FA code should count as failure, attempts=%d", repo.admins["admin_1"].LoginAttempts)
	}

	// Valid code completes the login.
	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	result, err = svc.Login(context.Background(), ports.LoginInput{
		Username: "alice", Password: "s3cret-pass", TwoFactorToken: code,
	})
	if err != nil {
		t.Fatalf("login with valid code failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token after two-factor login")
	}
}

func TestAuthService_EnableTwoFactor_WrongCodeLeavesDisabled(t *testing.T) {
	repo := newStubAdminRepo()
	audit := &stubAudit{}
	svc := newTestAuthService(t, repo, audit)

	admin := activeAdmin(t, "s3cret-pass")
	repo.add(admin)

	setup, err := svc.GenerateTwoFactor(context.Background(), admin, ports.RequestMeta{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if setup.Secret == "" || setup.ProvisioningURI == "" {
		t.Fatalf("incomplete setup: %+v", setup)
	}
	if repo.admins["admin_1"].TwoFactorEnabled {
		t.Fatalf("generate must not enable two-factor")
	}

	err = svc.EnableTwoFactor(context.Background(), admin, "000000", ports.RequestMeta{})
	if !errors.Is(err, domain.ErrInvalidTwoFactorCode) {
		t.Fatalf("expected ErrInvalidTwoFactorCode, got %v", err)
	}
	if repo.admins["admin_1"].TwoFactorEnabled {
		t.Fatalf("failed verification must leave two-factor disabled")
	}
	entry := audit.last()
	if entry == nil || entry.Action != domain.AuditTwoFactorEnable || entry.Success {
		t.Fatalf("expected failed enable audit, got %+v", entry)
	}
}

func TestAuthService_EnableThenDisableTwoFactor(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(t, repo, &stubAudit{})

	admin := activeAdmin(t, "s3cret-pass")
	repo.add(admin)

	setup, err := svc.GenerateTwoFactor(context.Background(), admin, ports.RequestMeta{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := svc.EnableTwoFactor(context.Background(), admin, code, ports.RequestMeta{}); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if !repo.admins["admin_1"].TwoFactorEnabled {
		t.Fatalf("two-factor not enabled in storage")
	}

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := svc.DisableTwoFactor(context.Background(), admin, code, ports.RequestMeta{}); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	stored := repo.admins["admin_1"]
	if stored.TwoFactorEnabled || stored.TwoFactorSecret != "" {
		t.Fatalf("disable must clear the secret, got %+v", stored)
	}
}

func TestAuthService_DisableTwoFactor_NotEnabled(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(t, repo, &stubAudit{})
	admin := activeAdmin(t, "s3cret-pass")
	repo.add(admin)

	err := svc.DisableTwoFactor(context.Background(), admin, "123456", ports.RequestMeta{})
	if !errors.Is(err, domain.ErrTwoFactorNotEnabled) {
		t.Fatalf("expected ErrTwoFactorNotEnabled, got %v", err)
	}
}
