package domain

import "time"

// AuditAction is the closed set of auditable admin actions.
type AuditAction string

const (
	AuditUserView   AuditAction = "USER_VIEW"
	AuditUserEdit   AuditAction = "USER_EDIT"
	AuditUserDelete AuditAction = "USER_DELETE"
	AuditUserBan    AuditAction = "USER_BAN"
	AuditUserUnban  AuditAction = "USER_UNBAN"
	AuditUserWarn   AuditAction = "USER_WARN"

	AuditMessageView   AuditAction = "MESSAGE_VIEW"
	AuditMessageDelete AuditAction = "MESSAGE_DELETE"

	AuditRoomView AuditAction = "ROOM_VIEW"
	AuditRoomEdit AuditAction = "ROOM_EDIT"

	AuditMediaView   AuditAction = "MEDIA_VIEW"
	AuditMediaDelete AuditAction = "MEDIA_DELETE"

	AuditReportView    AuditAction = "REPORT_VIEW"
	AuditReportResolve AuditAction = "REPORT_RESOLVE"
	AuditReportDismiss AuditAction = "REPORT_DISMISS"

	AuditSystemSettingsView AuditAction = "SYSTEM_SETTINGS_VIEW"
	AuditSystemSettingsEdit AuditAction = "SYSTEM_SETTINGS_EDIT"

	AuditAdminLogin  AuditAction = "ADMIN_LOGIN"
	AuditAdminLogout AuditAction = "ADMIN_LOGOUT"
	AuditAdminCreate AuditAction = "ADMIN_CREATE"
	AuditAdminEdit   AuditAction = "ADMIN_EDIT"

	AuditPasswordChange   AuditAction = "PASSWORD_CHANGE"
	AuditTwoFactorGenerate AuditAction = "2FA_GENERATE"
	AuditTwoFactorEnable   AuditAction = "2FA_ENABLE"
	AuditTwoFactorDisable  AuditAction = "2FA_DISABLE"
)

// Target type values recorded alongside an audit entry.
const (
	TargetUser    = "User"
	TargetMessage = "Message"
	TargetRoom    = "Room"
	TargetMedia   = "Media"
	TargetReport  = "Report"
	TargetAdmin   = "Admin"
	TargetSystem  = "System"
)

// AuditEntry is an append-only record of a sensitive admin action. Entries
// are never mutated or deleted by normal operation. ActorID is nil for
// failed logins that never resolved to an admin.
type AuditEntry struct {
	ID           string         `json:"_id"`
	ActorID      *string        `json:"adminId"`
	Action       AuditAction    `json:"action"`
	Target       string         `json:"target,omitempty"`
	TargetType   string         `json:"targetType,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
