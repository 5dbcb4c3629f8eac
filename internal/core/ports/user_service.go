package ports

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// Pagination is the list envelope shared by all paginated responses.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
}

// UserListItem is one row in the user listing, enriched with counts.
type UserListItem struct {
	domain.User
	FullName     string `json:"fullName"`
	MessageCount int64  `json:"messageCount"`
	RoomCount    int64  `json:"roomCount"`
}

// UserList is the paginated user listing.
type UserList struct {
	Users      []UserListItem `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// UserStats summarises a single user's footprint.
type UserStats struct {
	MessageCount  int64 `json:"messageCount"`
	RoomCount     int64 `json:"roomCount"`
	MediaCount    int64 `json:"mediaCount"`
	ReportCount   int64 `json:"reportCount"`
	StorageUsedMB int64 `json:"storageUsed"`
}

// MessageSummary trims a message for the user detail view.
type MessageSummary struct {
	ID        string `json:"_id"`
	Message   string `json:"message"`
	HasFile   bool   `json:"hasFile"`
	HasVoice  bool   `json:"hasVoice"`
	IsEdited  bool   `json:"isEdited"`
	CreatedAt string `json:"createdAt"`
}

// RoomSummary trims a room for the user detail view.
type RoomSummary struct {
	ID               string          `json:"_id"`
	Name             string          `json:"name"`
	Type             domain.RoomType `json:"type"`
	Avatar           string          `json:"avatar,omitempty"`
	ParticipantCount int             `json:"participantCount"`
	CreatedAt        string          `json:"createdAt"`
}

// ReportSummary trims a report for the user detail view.
type ReportSummary struct {
	ID        string              `json:"_id"`
	Reason    domain.ReportReason `json:"reason"`
	Status    domain.ReportStatus `json:"status"`
	CreatedAt string              `json:"createdAt"`
}

// UserDetail is the full moderation view of one user.
type UserDetail struct {
	domain.User
	FullName       string           `json:"fullName"`
	Stats          UserStats        `json:"stats"`
	RecentMessages []MessageSummary `json:"recentMessages"`
	Rooms          []RoomSummary    `json:"rooms"`
	Activity       []DailyCount     `json:"activity"`
	Reports        []ReportSummary  `json:"reports"`
}

// User moderation actions accepted by PATCH /users.
const (
	UserActionUpdate  = "update"
	UserActionBlock   = "block"
	UserActionUnblock = "unblock"
	UserActionWarn    = "warn"
)

// ModerateUserInput drives PATCH /users.
type ModerateUserInput struct {
	UserID string
	Action string
	Reason string
	Patch  UserPatch
	Actor  *domain.Admin
	Meta   RequestMeta
}

// DeleteUserInput drives DELETE /users/:id.
type DeleteUserInput struct {
	UserID         string
	Reason         string
	DeleteMessages bool
	DeleteMedia    bool
	Actor          *domain.Admin
	Meta           RequestMeta
}

// UserService serves the user moderation views.
type UserService interface {
	List(ctx context.Context, q UserQuery, actor *domain.Admin, meta RequestMeta) (*UserList, error)
	Get(ctx context.Context, id string, actor *domain.Admin, meta RequestMeta) (*UserDetail, error)
	Moderate(ctx context.Context, in ModerateUserInput) (*domain.User, error)
	Delete(ctx context.Context, in DeleteUserInput) error
}
