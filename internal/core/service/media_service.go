package service

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// MediaService serves media moderation.
type MediaService struct {
	repo  ports.MediaRepository
	audit ports.AuditLogger
}

func NewMediaService(repo ports.MediaRepository, audit ports.AuditLogger) *MediaService {
	return &MediaService{repo: repo, audit: audit}
}

func (s *MediaService) List(ctx context.Context, q ports.MediaQuery, actor *domain.Admin, meta ports.RequestMeta) (*ports.MediaList, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)

	media, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditMediaView,
		TargetType: domain.TargetMedia,
		Details:    map[string]any{"page": q.Page, "reportedOnly": q.ReportedOnly, "total": total},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return &ports.MediaList{
		Media:      media,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// Delete soft-deletes one media reference.
func (s *MediaService) Delete(ctx context.Context, id string, actor *domain.Admin, meta ports.RequestMeta) error {
	if err := s.repo.SoftDelete(ctx, id, actor.ID); err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &actor.ID,
			Action:       domain.AuditMediaDelete,
			Target:       id,
			TargetType:   domain.TargetMedia,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
		})
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditMediaDelete,
		Target:     id,
		TargetType: domain.TargetMedia,
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditMediaDelete)).Inc()

	return nil
}
