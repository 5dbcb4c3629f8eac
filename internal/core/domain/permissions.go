package domain

// Resource and Action form the fixed vocabulary of permission checks.
// Unknown pairs resolve to denied.
type Resource string

type Action string

const (
	ResourceUsers    Resource = "users"
	ResourceMessages Resource = "messages"
	ResourceRooms    Resource = "rooms"
	ResourceReports  Resource = "reports"
	ResourceSystem   Resource = "system"
	ResourceAdmins   Resource = "admins"
)

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// Permissions is the per-admin permission matrix. Each resource carries only
// the actions that exist for it, so an invalid pair cannot be granted.
type Permissions struct {
	Users    UserPerms    `bson:"users" json:"users"`
	Messages MessagePerms `bson:"messages" json:"messages"`
	Rooms    RoomPerms    `bson:"rooms" json:"rooms"`
	Reports  ReportPerms  `bson:"reports" json:"reports"`
	System   SystemPerms  `bson:"system" json:"system"`
	Admins   AdminPerms   `bson:"admins" json:"admins"`
}

type UserPerms struct {
	View   bool `bson:"view" json:"view"`
	Edit   bool `bson:"edit" json:"edit"`
	Delete bool `bson:"delete" json:"delete"`
}

type MessagePerms struct {
	View   bool `bson:"view" json:"view"`
	Delete bool `bson:"delete" json:"delete"`
}

type RoomPerms struct {
	View   bool `bson:"view" json:"view"`
	Edit   bool `bson:"edit" json:"edit"`
	Delete bool `bson:"delete" json:"delete"`
}

type ReportPerms struct {
	View   bool `bson:"view" json:"view"`
	Manage bool `bson:"manage" json:"manage"`
}

type SystemPerms struct {
	View bool `bson:"view" json:"view"`
	Edit bool `bson:"edit" json:"edit"`
}

type AdminPerms struct {
	View   bool `bson:"view" json:"view"`
	Manage bool `bson:"manage" json:"manage"`
}

// Allows reports whether the matrix grants action on resource. Pairs outside
// the fixed vocabulary are always denied.
func (p Permissions) Allows(resource Resource, action Action) bool {
	switch resource {
	case ResourceUsers:
		switch action {
		case ActionView:
			return p.Users.View
		case ActionEdit:
			return p.Users.Edit
		case ActionDelete:
			return p.Users.Delete
		}
	case ResourceMessages:
		switch action {
		case ActionView:
			return p.Messages.View
		case ActionDelete:
			return p.Messages.Delete
		}
	case ResourceRooms:
		switch action {
		case ActionView:
			return p.Rooms.View
		case ActionEdit:
			return p.Rooms.Edit
		case ActionDelete:
			return p.Rooms.Delete
		}
	case ResourceReports:
		switch action {
		case ActionView:
			return p.Reports.View
		case ActionManage:
			return p.Reports.Manage
		}
	case ResourceSystem:
		switch action {
		case ActionView:
			return p.System.View
		case ActionEdit:
			return p.System.Edit
		}
	case ResourceAdmins:
		switch action {
		case ActionView:
			return p.Admins.View
		case ActionManage:
			return p.Admins.Manage
		}
	}
	return false
}

// RolePermissions returns the default matrix for a role. Unknown roles fall
// back to the viewer matrix.
func RolePermissions(role Role) Permissions {
	switch role {
	case RoleSuperAdmin:
		return Permissions{
			Users:    UserPerms{View: true, Edit: true, Delete: true},
			Messages: MessagePerms{View: true, Delete: true},
			Rooms:    RoomPerms{View: true, Edit: true, Delete: true},
			Reports:  ReportPerms{View: true, Manage: true},
			System:   SystemPerms{View: true, Edit: true},
			Admins:   AdminPerms{View: true, Manage: true},
		}
	case RoleModerator:
		return Permissions{
			Users:    UserPerms{View: true, Edit: true},
			Messages: MessagePerms{View: true, Delete: true},
			Rooms:    RoomPerms{View: true},
			Reports:  ReportPerms{View: true, Manage: true},
		}
	default:
		return Permissions{
			Users:    UserPerms{View: true},
			Messages: MessagePerms{View: true},
			Rooms:    RoomPerms{View: true},
			Reports:  ReportPerms{View: true},
		}
	}
}
