package domain

import "time"

// UserStatus is the presence state of a chat user.
type UserStatus string

const (
	StatusOnline  UserStatus = "online"
	StatusOffline UserStatus = "offline"
)

// User is an end-user account of the chat application. The admin API reads
// and moderates these records but does not own their full schema.
type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	LastName  string     `json:"lastName"`
	Username  string     `json:"username"`
	Phone     string     `json:"phone"`
	Avatar    string     `json:"avatar,omitempty"`
	Biography string     `json:"biography,omitempty"`
	Status    UserStatus `json:"status"`

	IsBlocked   bool       `json:"isBlocked"`
	BlockReason string     `json:"blockReason,omitempty"`
	BlockedAt   *time.Time `json:"blockedAt,omitempty"`
	BlockedBy   string     `json:"blockedBy,omitempty"`
	Warnings    []Warning  `json:"warnings,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins first and last name, trimming when the last name is empty.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Warning is a moderation note attached to a user by an admin.
type Warning struct {
	Reason    string    `json:"reason"`
	AdminID   string    `json:"adminId"`
	CreatedAt time.Time `json:"createdAt"`
}
