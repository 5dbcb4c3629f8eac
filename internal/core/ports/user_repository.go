package ports

import (
	"context"
	"time"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// UserQuery filters and paginates the user listing.
type UserQuery struct {
	Page      int
	Limit     int
	Search    string // matches name, username or phone
	Status    string // all | online | offline | blocked | active
	SortBy    string
	SortOrder string // asc | desc
}

// UserPatch carries the editable profile fields; nil means unchanged.
type UserPatch struct {
	Name      *string
	LastName  *string
	Username  *string
	Biography *string
	Avatar    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.LastName == nil && p.Username == nil &&
		p.Biography == nil && p.Avatar == nil
}

// CascadeDeleteInput drives the transactional user removal: block the user
// and cascade soft-deletes and room membership removal in one transaction.
type CascadeDeleteInput struct {
	UserID         string
	AdminID        string
	Reason         string
	DeleteMessages bool
	DeleteMedia    bool
}

// UserRepository persists chat users for the moderation views.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, q UserQuery) ([]domain.User, int64, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	SetBlocked(ctx context.Context, id string, blocked bool, reason, adminID string) (*domain.User, error)
	AddWarning(ctx context.Context, id string, w domain.Warning) (*domain.User, error)
	// CascadeDelete runs inside a single database transaction; either every
	// step commits or all are rolled back.
	CascadeDelete(ctx context.Context, in CascadeDeleteInput) error
}

// DailyCount is one day of activity for trend charts.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// MessageQuery filters and paginates the message listing.
type MessageQuery struct {
	Page     int
	Limit    int
	RoomID   string
	SenderID string
}

// MessageRepository reads and moderates chat messages.
type MessageRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context, q MessageQuery) ([]domain.Message, int64, error)
	SoftDelete(ctx context.Context, id, adminID string) error
	CountBySender(ctx context.Context, senderID string) (int64, error)
	RecentBySender(ctx context.Context, senderID string, limit int) ([]domain.Message, error)
	ActivityBySender(ctx context.Context, senderID string, since time.Time) ([]DailyCount, error)
}

// RoomQuery filters and paginates the room listing.
type RoomQuery struct {
	Page  int
	Limit int
	Type  string
}

// RoomRepository reads and moderates chat rooms.
type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, q RoomQuery) ([]domain.Room, int64, error)
	SetBlocked(ctx context.Context, id string, blocked bool, adminID string) (*domain.Room, error)
	CountByParticipant(ctx context.Context, userID string) (int64, error)
	ListByParticipant(ctx context.Context, userID string, limit int) ([]domain.Room, error)
}

// MediaQuery filters and paginates the media listing.
type MediaQuery struct {
	Page         int
	Limit        int
	SenderID     string
	ReportedOnly bool
}

// MediaRepository reads and moderates uploaded media references.
type MediaRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Media, error)
	List(ctx context.Context, q MediaQuery) ([]domain.Media, int64, error)
	SoftDelete(ctx context.Context, id, adminID string) error
	CountBySender(ctx context.Context, senderID string) (int64, error)
	StorageBySender(ctx context.Context, senderID string) (int64, error)
}

// ReportQuery filters and paginates the report listing.
type ReportQuery struct {
	Page       int
	Limit      int
	Status     string
	TargetType string
}

// ReportRepository reads and resolves user reports.
type ReportRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, q ReportQuery) ([]domain.Report, int64, error)
	SetStatus(ctx context.Context, id string, status domain.ReportStatus, action domain.AdminAction) (*domain.Report, error)
	CountByReporter(ctx context.Context, userID string) (int64, error)
	ListAboutTarget(ctx context.Context, targetType domain.ReportTargetType, targetID string, limit int) ([]domain.Report, error)
}

// SettingsRepository persists system settings, unique by key.
type SettingsRepository interface {
	List(ctx context.Context, category string) ([]domain.SystemSetting, error)
	Get(ctx context.Context, key string) (*domain.SystemSetting, error)
	Upsert(ctx context.Context, setting *domain.SystemSetting) error
}
