package service

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// MessageService serves message moderation.
type MessageService struct {
	repo  ports.MessageRepository
	audit ports.AuditLogger
}

func NewMessageService(repo ports.MessageRepository, audit ports.AuditLogger) *MessageService {
	return &MessageService{repo: repo, audit: audit}
}

func (s *MessageService) List(ctx context.Context, q ports.MessageQuery, actor *domain.Admin, meta ports.RequestMeta) (*ports.MessageList, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)

	messages, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditMessageView,
		TargetType: domain.TargetMessage,
		Details:    map[string]any{"page": q.Page, "roomID": q.RoomID, "total": total},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return &ports.MessageList{
		Messages:   messages,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// Delete soft-deletes one message; the record stays for the audit trail.
func (s *MessageService) Delete(ctx context.Context, id string, actor *domain.Admin, meta ports.RequestMeta) error {
	if err := s.repo.SoftDelete(ctx, id, actor.ID); err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &actor.ID,
			Action:       domain.AuditMessageDelete,
			Target:       id,
			TargetType:   domain.TargetMessage,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
		})
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditMessageDelete,
		Target:     id,
		TargetType: domain.TargetMessage,
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditMessageDelete)).Inc()

	return nil
}
