package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// AuditLogger appends audit entries best-effort. A failed write must never
// abort the operation it describes: failures go to the operational log and
// a Prometheus counter, nothing propagates to the caller.
type AuditLogger struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditLogger(repo ports.AuditRepository, logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{repo: repo, logger: logger}
}

// Record appends one entry. CreatedAt defaults to now when unset.
func (a *AuditLogger) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := a.repo.Append(ctx, &entry); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		a.logger.Error().Err(err).
			Str("action", string(entry.Action)).
			Bool("success", entry.Success).
			Msg("audit write failed")
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(entry.Action), strconv.FormatBool(entry.Success)).Inc()
}

// AuditService exposes the audit trail to the dashboard.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, q ports.AuditQuery) (*ports.AuditList, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)

	entries, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ports.AuditList{
		Entries:    entries,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}
