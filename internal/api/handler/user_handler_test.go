package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/api/middleware"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

type stubUserService struct {
	lastModerate ports.ModerateUserInput
	moderated    int
}

func (s *stubUserService) List(context.Context, ports.UserQuery, *domain.Admin, ports.RequestMeta) (*ports.UserList, error) {
	return &ports.UserList{}, nil
}

func (s *stubUserService) Get(context.Context, string, *domain.Admin, ports.RequestMeta) (*ports.UserDetail, error) {
	return &ports.UserDetail{}, nil
}

func (s *stubUserService) Moderate(_ context.Context, in ports.ModerateUserInput) (*domain.User, error) {
	s.lastModerate = in
	s.moderated++
	return &domain.User{ID: in.UserID}, nil
}

func (s *stubUserService) Delete(context.Context, ports.DeleteUserInput) error {
	return nil
}

func moderateContext(t *testing.T, path, body string) echo.Context {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.AdminContextKey, &domain.Admin{
		ID:          "admin_1",
		Role:        domain.RoleSuperAdmin,
		Permissions: domain.RolePermissions(domain.RoleSuperAdmin),
	})
	return c
}

func TestModerate_UserIDFromBody(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c := moderateContext(t, "/api/admin/users", `{"userId":"u1","action":"warn","reason":"spamming the lobby"}`)
	if err := h.Moderate(c); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}
	if svc.lastModerate.UserID != "u1" || svc.lastModerate.Action != "warn" {
		t.Fatalf("body target not forwarded: %+v", svc.lastModerate)
	}
}

func TestModerate_PathParamWinsOverBody(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c := moderateContext(t, "/api/admin/users/u2", `{"userId":"u1","action":"warn","reason":"spamming"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.Moderate(c); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}
	if svc.lastModerate.UserID != "u2" {
		t.Fatalf("path target must win: %+v", svc.lastModerate)
	}
}

func TestModerate_MissingUserID(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c := moderateContext(t, "/api/admin/users", `{"action":"warn","reason":"spamming"}`)
	if err := h.Moderate(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.moderated != 0 {
		t.Fatalf("service must not be called without a target")
	}
}
