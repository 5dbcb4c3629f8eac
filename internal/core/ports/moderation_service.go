package ports

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// Report resolution actions accepted by PATCH /reports/:id.
const (
	ReportActionResolve = "resolve"
	ReportActionDismiss = "dismiss"
)

// ResolveReportInput drives PATCH /reports/:id.
type ResolveReportInput struct {
	ReportID string
	Action   string
	Note     string
	Actor    *domain.Admin
	Meta     RequestMeta
}

// ReportList is the paginated report listing.
type ReportList struct {
	Reports    []domain.Report `json:"reports"`
	Pagination Pagination      `json:"pagination"`
}

// ReportService reviews and closes user reports.
type ReportService interface {
	List(ctx context.Context, q ReportQuery, actor *domain.Admin, meta RequestMeta) (*ReportList, error)
	Resolve(ctx context.Context, in ResolveReportInput) (*domain.Report, error)
}

// MessageList is the paginated message listing.
type MessageList struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

// MessageService serves message moderation.
type MessageService interface {
	List(ctx context.Context, q MessageQuery, actor *domain.Admin, meta RequestMeta) (*MessageList, error)
	Delete(ctx context.Context, id string, actor *domain.Admin, meta RequestMeta) error
}

// RoomList is the paginated room listing.
type RoomList struct {
	Rooms      []domain.Room `json:"rooms"`
	Pagination Pagination    `json:"pagination"`
}

// RoomService serves room moderation.
type RoomService interface {
	List(ctx context.Context, q RoomQuery, actor *domain.Admin, meta RequestMeta) (*RoomList, error)
	SetBlocked(ctx context.Context, id string, blocked bool, actor *domain.Admin, meta RequestMeta) (*domain.Room, error)
}

// MediaList is the paginated media listing.
type MediaList struct {
	Media      []domain.Media `json:"media"`
	Pagination Pagination     `json:"pagination"`
}

// MediaService serves media moderation.
type MediaService interface {
	List(ctx context.Context, q MediaQuery, actor *domain.Admin, meta RequestMeta) (*MediaList, error)
	Delete(ctx context.Context, id string, actor *domain.Admin, meta RequestMeta) error
}

// UpdateSettingInput drives PUT /system/settings/:key.
type UpdateSettingInput struct {
	Key         string
	Value       any
	Category    domain.SettingCategory
	Description string
	Actor       *domain.Admin
	Meta        RequestMeta
}

// SettingsService reads and updates system settings.
type SettingsService interface {
	List(ctx context.Context, category string, actor *domain.Admin, meta RequestMeta) ([]domain.SystemSetting, error)
	Update(ctx context.Context, in UpdateSettingInput) (*domain.SystemSetting, error)
}

// AuditList is the paginated audit trail.
type AuditList struct {
	Entries    []domain.AuditEntry `json:"entries"`
	Pagination Pagination          `json:"pagination"`
}

// AuditService reads the audit trail.
type AuditService interface {
	List(ctx context.Context, q AuditQuery) (*AuditList, error)
}
