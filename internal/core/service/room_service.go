package service

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// RoomService serves room moderation.
type RoomService struct {
	repo  ports.RoomRepository
	audit ports.AuditLogger
}

func NewRoomService(repo ports.RoomRepository, audit ports.AuditLogger) *RoomService {
	return &RoomService{repo: repo, audit: audit}
}

func (s *RoomService) List(ctx context.Context, q ports.RoomQuery, actor *domain.Admin, meta ports.RequestMeta) (*ports.RoomList, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)

	rooms, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditRoomView,
		TargetType: domain.TargetRoom,
		Details:    map[string]any{"page": q.Page, "type": q.Type, "total": total},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return &ports.RoomList{
		Rooms:      rooms,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// SetBlocked blocks or unblocks a room.
func (s *RoomService) SetBlocked(ctx context.Context, id string, blocked bool, actor *domain.Admin, meta ports.RequestMeta) (*domain.Room, error) {
	room, err := s.repo.SetBlocked(ctx, id, blocked, actor.ID)
	if err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &actor.ID,
			Action:       domain.AuditRoomEdit,
			Target:       id,
			TargetType:   domain.TargetRoom,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
		})
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditRoomEdit,
		Target:     id,
		TargetType: domain.TargetRoom,
		Details:    map[string]any{"blocked": blocked},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditRoomEdit)).Inc()

	return room, nil
}
