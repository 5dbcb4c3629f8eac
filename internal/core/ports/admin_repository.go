package ports

import (
	"context"
	"time"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// AdminRepository persists admin accounts.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	// FindByLogin matches username or email, case-insensitively.
	FindByLogin(ctx context.Context, login string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) error
	List(ctx context.Context) ([]domain.Admin, error)
	Count(ctx context.Context) (int64, error)

	// RecordFailedAttempt atomically increments the failed-login counter and,
	// when the counter reaches threshold with no lock in place, sets the lock
	// expiry to now+lockFor. Returns the record after the increment.
	RecordFailedAttempt(ctx context.Context, id string, threshold int, lockFor time.Duration) (*domain.Admin, error)
	// ResetLoginAttempts zeroes the counter and clears any lock.
	ResetLoginAttempts(ctx context.Context, id string) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePermissions(ctx context.Context, id string, perms domain.Permissions) error
}
