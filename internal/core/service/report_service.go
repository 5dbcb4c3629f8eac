package service

import (
	"context"
	"time"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// ReportService reviews and closes user reports.
type ReportService struct {
	repo  ports.ReportRepository
	audit ports.AuditLogger
}

func NewReportService(repo ports.ReportRepository, audit ports.AuditLogger) *ReportService {
	return &ReportService{repo: repo, audit: audit}
}

func (s *ReportService) List(ctx context.Context, q ports.ReportQuery, actor *domain.Admin, meta ports.RequestMeta) (*ports.ReportList, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)

	reports, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditReportView,
		TargetType: domain.TargetReport,
		Details:    map[string]any{"page": q.Page, "status": q.Status, "total": total},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return &ports.ReportList{
		Reports:    reports,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// Resolve closes a report as resolved or dismissed and records the admin
// action on the report itself.
func (s *ReportService) Resolve(ctx context.Context, in ports.ResolveReportInput) (*domain.Report, error) {
	var (
		status domain.ReportStatus
		action domain.AuditAction
	)
	switch in.Action {
	case ports.ReportActionResolve:
		status, action = domain.ReportResolved, domain.AuditReportResolve
	case ports.ReportActionDismiss:
		status, action = domain.ReportDismissed, domain.AuditReportDismiss
	default:
		return nil, domain.ValidationError("action must be one of: resolve, dismiss")
	}

	report, err := s.repo.SetStatus(ctx, in.ReportID, status, domain.AdminAction{
		AdminID: in.Actor.ID,
		Action:  in.Action,
		Note:    in.Note,
		TakenAt: time.Now().UTC(),
	})
	if err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &in.Actor.ID,
			Action:       action,
			Target:       in.ReportID,
			TargetType:   domain.TargetReport,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    in.Meta.IPAddress,
			UserAgent:    in.Meta.UserAgent,
		})
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &in.Actor.ID,
		Action:     action,
		Target:     in.ReportID,
		TargetType: domain.TargetReport,
		Details:    map[string]any{"note": in.Note},
		Success:    true,
		IPAddress:  in.Meta.IPAddress,
		UserAgent:  in.Meta.UserAgent,
	})
	metrics.ModerationActionsTotal.WithLabelValues(string(action)).Inc()

	return report, nil
}
