package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

func newTestAdminService() (*AdminService, *stubAdminRepo, *stubAudit) {
	repo := newStubAdminRepo()
	audit := &stubAudit{}
	return NewAdminService(repo, audit, bcrypt.MinCost), repo, audit
}

func TestAdminCreate_AppliesRoleMatrix(t *testing.T) {
	svc, repo, audit := newTestAdminService()
	actor := &domain.Admin{ID: "root", Role: domain.RoleSuperAdmin}

	profile, err := svc.Create(context.Background(), ports.CreateAdminInput{
		Username: "  Maria  ",
		Email:    "Maria@Example.com",
		Password: "hunter22",
		Role:     domain.RoleModerator,
		Actor:    actor,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if profile.Username != "maria" || profile.Email != "maria@example.com" {
		t.Fatalf("login fields not normalized: %+v", profile)
	}
	if profile.Permissions != domain.RolePermissions(domain.RoleModerator) {
		t.Fatalf("moderator matrix not applied: %+v", profile.Permissions)
	}

	stored, err := repo.FindByLogin(context.Background(), "maria")
	if err != nil {
		t.Fatalf("stored admin not found: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("password not hashed correctly: %v", err)
	}
	if !stored.IsActive {
		t.Fatalf("new admin should start active")
	}

	entry := audit.last()
	if entry == nil || entry.Action != domain.AuditAdminCreate || !entry.Success {
		t.Fatalf("missing success audit: %+v", entry)
	}
}

func TestAdminCreate_DuplicateIsAudited(t *testing.T) {
	svc, repo, audit := newTestAdminService()
	repo.add(&domain.Admin{ID: "a1", Username: "maria", Email: "maria@example.com"})

	_, err := svc.Create(context.Background(), ports.CreateAdminInput{
		Username: "maria",
		Email:    "other@example.com",
		Password: "hunter22",
		Role:     domain.RoleViewer,
		Actor:    &domain.Admin{ID: "root"},
	})
	if !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}

	entry := audit.last()
	if entry == nil || entry.Success || entry.ErrorMessage == "" {
		t.Fatalf("missing failure audit: %+v", entry)
	}
}

func TestAdminCreate_RejectsWeakInput(t *testing.T) {
	svc, _, _ := newTestAdminService()
	actor := &domain.Admin{ID: "root"}

	cases := []ports.CreateAdminInput{
		{Username: "ab", Email: "a@b.com", Password: "hunter22", Role: domain.RoleViewer, Actor: actor},
		{Username: "maria", Email: "", Password: "hunter22", Role: domain.RoleViewer, Actor: actor},
		{Username: "maria", Email: "a@b.com", Password: "short", Role: domain.RoleViewer, Actor: actor},
		{Username: "maria", Email: "a@b.com", Password: "hunter22", Role: domain.Role("owner"), Actor: actor},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestAdminUpdate_RoleChangeResetsMatrix(t *testing.T) {
	svc, repo, _ := newTestAdminService()
	repo.add(&domain.Admin{
		ID:          "a1",
		Username:    "maria",
		Role:        domain.RoleModerator,
		Permissions: domain.RolePermissions(domain.RoleModerator),
		IsActive:    true,
	})

	role := domain.RoleViewer
	profile, err := svc.Update(context.Background(), ports.UpdateAdminInput{
		AdminID: "a1",
		Role:    &role,
		Actor:   &domain.Admin{ID: "root"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if profile.Role != domain.RoleViewer {
		t.Fatalf("role not updated: %+v", profile)
	}
	if profile.Permissions != domain.RolePermissions(domain.RoleViewer) {
		t.Fatalf("demotion must drop the moderator matrix: %+v", profile.Permissions)
	}
}

func TestAdminUpdate_NoFields(t *testing.T) {
	svc, _, _ := newTestAdminService()

	_, err := svc.Update(context.Background(), ports.UpdateAdminInput{
		AdminID: "a1",
		Actor:   &domain.Admin{ID: "root"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInitSetup_CreatesDefaultSuperadminOnce(t *testing.T) {
	svc, repo, audit := newTestAdminService()

	status, err := svc.SetupStatus(context.Background())
	if err != nil || status.Initialized {
		t.Fatalf("fresh install should not be initialized: %+v, %v", status, err)
	}

	profile, err := svc.InitSetup(context.Background(), ports.InitSetupInput{})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if profile.Username != "superadmin" || profile.Role != domain.RoleSuperAdmin {
		t.Fatalf("defaults not applied: %+v", profile)
	}

	stored, err := repo.FindByLogin(context.Background(), "superadmin")
	if err != nil {
		t.Fatalf("stored admin not found: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("admin123456")); err != nil {
		t.Fatalf("default password not applied: %v", err)
	}

	entry := audit.last()
	if entry == nil || entry.ActorID != nil {
		t.Fatalf("setup audit must have no actor: %+v", entry)
	}

	if _, err := svc.InitSetup(context.Background(), ports.InitSetupInput{}); !errors.Is(err, domain.ErrAlreadyInitialized) {
		t.Fatalf("second setup must be refused, got %v", err)
	}

	status, err = svc.SetupStatus(context.Background())
	if err != nil || !status.Initialized || status.TotalAdmins != 1 {
		t.Fatalf("unexpected status after setup: %+v, %v", status, err)
	}
}

func TestFixPermissions_RestoresRoleDefaults(t *testing.T) {
	svc, repo, _ := newTestAdminService()
	repo.add(&domain.Admin{
		ID:       "a1",
		Username: "maria",
		Role:     domain.RoleModerator,
		// Drifted matrix: everything off.
		Permissions: domain.Permissions{},
		IsActive:    true,
	})

	profile, err := svc.FixPermissions(context.Background(), "Maria")
	if err != nil {
		t.Fatalf("fix failed: %v", err)
	}
	if profile.Permissions != domain.RolePermissions(domain.RoleModerator) {
		t.Fatalf("matrix not restored: %+v", profile.Permissions)
	}

	stored, _ := repo.FindByID(context.Background(), "a1")
	if stored.Permissions != domain.RolePermissions(domain.RoleModerator) {
		t.Fatalf("matrix not persisted")
	}
}
