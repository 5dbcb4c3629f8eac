package service

import (
	"context"
	"time"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// SettingsService reads and updates system settings.
type SettingsService struct {
	repo  ports.SettingsRepository
	audit ports.AuditLogger
}

func NewSettingsService(repo ports.SettingsRepository, audit ports.AuditLogger) *SettingsService {
	return &SettingsService{repo: repo, audit: audit}
}

func (s *SettingsService) List(ctx context.Context, category string, actor *domain.Admin, meta ports.RequestMeta) ([]domain.SystemSetting, error) {
	settings, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditSystemSettingsView,
		TargetType: domain.TargetSystem,
		Details:    map[string]any{"category": category},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return settings, nil
}

// Update upserts one setting by key.
func (s *SettingsService) Update(ctx context.Context, in ports.UpdateSettingInput) (*domain.SystemSetting, error) {
	setting := &domain.SystemSetting{
		Key:            in.Key,
		Value:          in.Value,
		Category:       in.Category,
		Description:    in.Description,
		LastModifiedBy: in.Actor.ID,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &in.Actor.ID,
			Action:       domain.AuditSystemSettingsEdit,
			Target:       in.Key,
			TargetType:   domain.TargetSystem,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    in.Meta.IPAddress,
			UserAgent:    in.Meta.UserAgent,
		})
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &in.Actor.ID,
		Action:     domain.AuditSystemSettingsEdit,
		Target:     in.Key,
		TargetType: domain.TargetSystem,
		Details:    map[string]any{"category": string(in.Category)},
		Success:    true,
		IPAddress:  in.Meta.IPAddress,
		UserAgent:  in.Meta.UserAgent,
	})

	return setting, nil
}
