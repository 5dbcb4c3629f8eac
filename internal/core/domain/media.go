package domain

import "time"

// Media is an uploaded file reference tracked for moderation and storage
// accounting. File bytes live elsewhere; the admin API works with URLs.
type Media struct {
	ID       string `json:"_id"`
	SenderID string `json:"sender"`
	RoomID   string `json:"roomID"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
	Size     int64  `json:"size"`

	IsReported  bool `json:"isReported"`
	ReportCount int  `json:"reportCount"`

	IsDeleted bool       `json:"isDeleted"`
	DeletedBy string     `json:"deletedBy,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
