package domain

import "time"

// RoomType distinguishes direct chats, groups and broadcast channels.
type RoomType string

const (
	RoomPrivate RoomType = "private"
	RoomGroup   RoomType = "group"
	RoomChannel RoomType = "channel"
)

// Room is a chat room with its participant roster.
type Room struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Type         RoomType `json:"type"`
	Avatar       string   `json:"avatar,omitempty"`
	Description  string   `json:"description,omitempty"`
	CreatorID    string   `json:"creator,omitempty"`
	Participants []string `json:"participants"`
	Admins       []string `json:"admins,omitempty"`

	IsBlocked   bool       `json:"isBlocked"`
	BlockReason string     `json:"blockReason,omitempty"`
	BlockedAt   *time.Time `json:"blockedAt,omitempty"`
	BlockedBy   string     `json:"blockedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
