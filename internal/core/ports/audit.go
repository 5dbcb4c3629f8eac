package ports

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// RequestMeta is the client context attached to audited operations.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuditLogger appends audit entries best-effort: implementations must never
// return a failure to the caller, only surface it operationally.
type AuditLogger interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}

// AuditQuery filters the audit trail listing.
type AuditQuery struct {
	Page    int
	Limit   int
	ActorID string
	Action  domain.AuditAction
}

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, q AuditQuery) ([]domain.AuditEntry, int64, error)
}
