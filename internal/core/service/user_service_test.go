package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
	"github.com/telegram-clone/admin-api/pkg/logger"
)

type stubUserRepo struct {
	users          map[string]*domain.User
	cascadeCalls   int
	lastCascade    ports.CascadeDeleteInput
	setBlockedFail error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ ports.UserQuery) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Biography != nil {
		u.Biography = *patch.Biography
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetBlocked(_ context.Context, id string, blocked bool, reason, adminID string) (*domain.User, error) {
	if r.setBlockedFail != nil {
		return nil, r.setBlockedFail
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsBlocked = blocked
	u.BlockReason = reason
	u.BlockedBy = adminID
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) AddWarning(_ context.Context, id string, w domain.Warning) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Warnings = append(u.Warnings, w)
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) CascadeDelete(_ context.Context, in ports.CascadeDeleteInput) error {
	if _, ok := r.users[in.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	r.cascadeCalls++
	r.lastCascade = in
	return nil
}

type stubMessageRepo struct{}

func (stubMessageRepo) FindByID(context.Context, string) (*domain.Message, error) {
	return nil, domain.ErrMessageNotFound
}
func (stubMessageRepo) List(context.Context, ports.MessageQuery) ([]domain.Message, int64, error) {
	return nil, 0, nil
}
func (stubMessageRepo) SoftDelete(context.Context, string, string) error { return nil }
func (stubMessageRepo) CountBySender(context.Context, string) (int64, error) {
	return 7, nil
}
func (stubMessageRepo) RecentBySender(context.Context, string, int) ([]domain.Message, error) {
	return nil, nil
}
func (stubMessageRepo) ActivityBySender(context.Context, string, time.Time) ([]ports.DailyCount, error) {
	return nil, nil
}

type stubRoomRepo struct{}

func (stubRoomRepo) FindByID(context.Context, string) (*domain.Room, error) {
	return nil, domain.ErrRoomNotFound
}
func (stubRoomRepo) List(context.Context, ports.RoomQuery) ([]domain.Room, int64, error) {
	return nil, 0, nil
}
func (stubRoomRepo) SetBlocked(context.Context, string, bool, string) (*domain.Room, error) {
	return nil, domain.ErrRoomNotFound
}
func (stubRoomRepo) CountByParticipant(context.Context, string) (int64, error) { return 2, nil }
func (stubRoomRepo) ListByParticipant(context.Context, string, int) ([]domain.Room, error) {
	return nil, nil
}

type stubMediaRepo struct{}

func (stubMediaRepo) FindByID(context.Context, string) (*domain.Media, error) {
	return nil, domain.ErrMediaNotFound
}
func (stubMediaRepo) List(context.Context, ports.MediaQuery) ([]domain.Media, int64, error) {
	return nil, 0, nil
}
func (stubMediaRepo) SoftDelete(context.Context, string, string) error { return nil }
func (stubMediaRepo) CountBySender(context.Context, string) (int64, error) {
	return 3, nil
}
func (stubMediaRepo) StorageBySender(context.Context, string) (int64, error) {
	return 5 << 20, nil
}

type stubReportRepo struct{}

func (stubReportRepo) FindByID(context.Context, string) (*domain.Report, error) {
	return nil, domain.ErrReportNotFound
}
func (stubReportRepo) List(context.Context, ports.ReportQuery) ([]domain.Report, int64, error) {
	return nil, 0, nil
}
func (stubReportRepo) SetStatus(context.Context, string, domain.ReportStatus, domain.AdminAction) (*domain.Report, error) {
	return nil, domain.ErrReportNotFound
}
func (stubReportRepo) CountByReporter(context.Context, string) (int64, error) { return 1, nil }
func (stubReportRepo) ListAboutTarget(context.Context, domain.ReportTargetType, string, int) ([]domain.Report, error) {
	return nil, nil
}

func newTestUserService(users *stubUserRepo, audit *stubAudit) *UserService {
	log := logger.Init(logger.Options{Level: "error"})
	return NewUserService(users, stubMessageRepo{}, stubRoomRepo{}, stubMediaRepo{}, stubReportRepo{}, audit, log)
}

func moderatorActor() *domain.Admin {
	return &domain.Admin{
		ID:          "mod_1",
		Username:    "mod",
		Role:        domain.RoleModerator,
		Permissions: domain.RolePermissions(domain.RoleModerator),
		IsActive:    true,
	}
}

func superadminActor() *domain.Admin {
	return &domain.Admin{
		ID:          "root_1",
		Username:    "root",
		Role:        domain.RoleSuperAdmin,
		Permissions: domain.RolePermissions(domain.RoleSuperAdmin),
		IsActive:    true,
	}
}

func TestUserService_Get_Stats(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1", Name: "Bob", LastName: "Stone", Username: "bob"}
	svc := newTestUserService(users, &stubAudit{})

	detail, err := svc.Get(context.Background(), "u1", superadminActor(), ports.RequestMeta{})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.FullName != "Bob Stone" {
		t.Fatalf("unexpected full name: %s", detail.FullName)
	}
	if detail.Stats.MessageCount != 7 || detail.Stats.RoomCount != 2 || detail.Stats.MediaCount != 3 {
		t.Fatalf("unexpected stats: %+v", detail.Stats)
	}
	if detail.Stats.StorageUsedMB != 5 {
		t.Fatalf("expected 5 MB storage, got %d", detail.Stats.StorageUsedMB)
	}
}

func TestUserService_Moderate_BlockRequiresPermission(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1", Username: "bob"}
	svc := newTestUserService(users, &stubAudit{})

	// Moderators carry users.edit but not users.delete.
	_, err := svc.Moderate(context.Background(), ports.ModerateUserInput{
		UserID: "u1",
		Action: ports.UserActionBlock,
		Reason: "spamming the general room",
		Actor:  moderatorActor(),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for moderator block, got %v", err)
	}

	result, err := svc.Moderate(context.Background(), ports.ModerateUserInput{
		UserID: "u1",
		Action: ports.UserActionBlock,
		Reason: "spamming the general room",
		Actor:  superadminActor(),
	})
	if err != nil {
		t.Fatalf("superadmin block failed: %v", err)
	}
	if !result.IsBlocked || result.BlockReason != "spamming the general room" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestUserService_Moderate_BlockReasonTooShort(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	svc := newTestUserService(users, &stubAudit{})

	_, err := svc.Moderate(context.Background(), ports.ModerateUserInput{
		UserID: "u1",
		Action: ports.UserActionBlock,
		Reason: "short",
		Actor:  superadminActor(),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if users.users["u1"].IsBlocked {
		t.Fatalf("user must not be blocked on validation failure")
	}
}

func TestUserService_Moderate_Warn(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	audit := &stubAudit{}
	svc := newTestUserService(users, audit)

	result, err := svc.Moderate(context.Background(), ports.ModerateUserInput{
		UserID: "u1",
		Action: ports.UserActionWarn,
		Reason: "offensive language in public rooms",
		Actor:  moderatorActor(),
	})
	if err != nil {
		t.Fatalf("warn failed: %v", err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].AdminID != "mod_1" {
		t.Fatalf("warning not recorded: %+v", result.Warnings)
	}
	entry := audit.last()
	if entry == nil || entry.Action != domain.AuditUserWarn || !entry.Success {
		t.Fatalf("expected warn audit, got %+v", entry)
	}
}

func TestUserService_Moderate_FailureIsAudited(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	users.setBlockedFail = errors.New("storage offline")
	audit := &stubAudit{}
	svc := newTestUserService(users, audit)

	_, err := svc.Moderate(context.Background(), ports.ModerateUserInput{
		UserID: "u1",
		Action: ports.UserActionBlock,
		Reason: "spamming the general room",
		Actor:  superadminActor(),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	entry := audit.last()
	if entry == nil || entry.Success || entry.ErrorMessage == "" {
		t.Fatalf("expected failure audit, got %+v", entry)
	}
}

func TestUserService_Delete_ValidatesBeforeMutation(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1", Username: "bob"}
	svc := newTestUserService(users, &stubAudit{})

	err := svc.Delete(context.Background(), ports.DeleteUserInput{
		UserID: "u1",
		Reason: "short",
		Actor:  superadminActor(),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if users.cascadeCalls != 0 {
		t.Fatalf("cascade must not run on validation failure")
	}

	err = svc.Delete(context.Background(), ports.DeleteUserInput{
		UserID:         "u1",
		Reason:         "repeated harassment reports",
		DeleteMessages: true,
		Actor:          superadminActor(),
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if users.cascadeCalls != 1 {
		t.Fatalf("expected one cascade call, got %d", users.cascadeCalls)
	}
	if !users.lastCascade.DeleteMessages || users.lastCascade.DeleteMedia {
		t.Fatalf("cascade flags not forwarded: %+v", users.lastCascade)
	}
}

func TestUserService_Delete_RequiresPermission(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	svc := newTestUserService(users, &stubAudit{})

	err := svc.Delete(context.Background(), ports.DeleteUserInput{
		UserID: "u1",
		Reason: "repeated harassment reports",
		Actor:  moderatorActor(),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if users.cascadeCalls != 0 {
		t.Fatalf("cascade must not run without permission")
	}
}
