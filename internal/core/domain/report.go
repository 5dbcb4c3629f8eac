package domain

import "time"

// ReportStatus is the lifecycle state of a user report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// ReportTargetType names what kind of entity a report points at.
type ReportTargetType string

const (
	ReportTargetUser    ReportTargetType = "user"
	ReportTargetMessage ReportTargetType = "message"
	ReportTargetRoom    ReportTargetType = "room"
	ReportTargetMedia   ReportTargetType = "media"
)

// ReportReason is the closed set of report categories.
type ReportReason string

const (
	ReasonSpam                 ReportReason = "spam"
	ReasonHarassment           ReportReason = "harassment"
	ReasonInappropriateContent ReportReason = "inappropriate_content"
	ReasonFakeAccount          ReportReason = "fake_account"
	ReasonCopyrightViolation   ReportReason = "copyright_violation"
	ReasonViolence             ReportReason = "violence"
	ReasonHateSpeech           ReportReason = "hate_speech"
	ReasonAdultContent         ReportReason = "adult_content"
	ReasonOther                ReportReason = "other"
)

// Report is a user-submitted complaint awaiting admin review.
type Report struct {
	ID          string           `json:"_id"`
	ReporterID  string           `json:"reporterId"`
	TargetType  ReportTargetType `json:"targetType"`
	TargetID    string           `json:"targetId"`
	Reason      ReportReason     `json:"reason"`
	Description string           `json:"description,omitempty"`
	Status      ReportStatus     `json:"status"`

	AdminAction *AdminAction `json:"adminAction,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminAction records how a report was closed and by whom.
type AdminAction struct {
	AdminID string    `json:"adminId"`
	Action  string    `json:"action"`
	Note    string    `json:"note,omitempty"`
	TakenAt time.Time `json:"takenAt"`
}
