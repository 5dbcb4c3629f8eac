package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, errorResponse, string) {
	t.Helper()

	var logBuf strings.Builder
	log := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, resp, logBuf.String()
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ValidationError("reason too short"), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountLocked, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrAdminExists, http.StatusConflict},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		code, resp, _ := render(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.code, code)
		}
		if resp.Success {
			t.Errorf("%v: success must be false", tc.err)
		}
		if resp.Message == "" {
			t.Errorf("%v: empty message", tc.err)
		}
	}
}

func TestErrorHandler_TokenDetailsAreHidden(t *testing.T) {
	wrapped := errors.Join(domain.ErrTokenInvalid, errors.New("token signature is invalid: crypto/hmac"))
	code, resp, _ := render(t, wrapped)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Message != "authentication required" {
		t.Fatalf("token parse details leaked: %q", resp.Message)
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	code, _, _ := render(t, fmt.Errorf("load user: %w", domain.ErrUserNotFound))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found, got %d", code)
	}
}

func TestErrorHandler_UnknownErrorIsGenericAndLogged(t *testing.T) {
	code, resp, logged := render(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Message)
	}
	if !strings.Contains(logged, "connection reset") {
		t.Fatalf("cause not logged: %q", logged)
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	code, resp, _ := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", code)
	}
	if resp.Message != "method not allowed" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestErrorHandler_CommittedResponseIsLeftAlone(t *testing.T) {
	log := zerolog.New(io.Discard)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatalf("commit response: %v", err)
	}
	NewHTTPErrorHandler(log)(domain.ErrUserNotFound, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response was overwritten: %d", rec.Code)
	}
}
