package domain

import "time"

// SettingCategory groups system settings in the dashboard.
type SettingCategory string

const (
	CategoryGeneral       SettingCategory = "general"
	CategorySecurity      SettingCategory = "security"
	CategoryNotifications SettingCategory = "notifications"
	CategoryFeatures      SettingCategory = "features"
	CategoryLimits        SettingCategory = "limits"
	CategoryAppearance    SettingCategory = "appearance"
	CategoryBackup        SettingCategory = "backup"
)

// SystemSetting is a single key/value configuration entry, unique by key.
type SystemSetting struct {
	Key            string          `json:"key"`
	Value          any             `json:"value"`
	Category       SettingCategory `json:"category"`
	Description    string          `json:"description,omitempty"`
	IsPublic       bool            `json:"isPublic"`
	LastModifiedBy string          `json:"lastModifiedBy,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
