package domain

import "time"

// Message is a chat message as seen by the moderation views.
type Message struct {
	ID       string `json:"_id"`
	SenderID string `json:"sender"`
	RoomID   string `json:"roomID"`
	Text     string `json:"message,omitempty"`

	HasFile  bool `json:"hasFile"`
	HasVoice bool `json:"hasVoice"`
	IsEdited bool `json:"isEdited"`

	IsDeleted bool       `json:"isDeleted"`
	DeletedBy string     `json:"deletedBy,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Preview returns the first n characters of the message text for list views.
func (m *Message) Preview(n int) string {
	if len(m.Text) <= n {
		return m.Text
	}
	return m.Text[:n]
}
