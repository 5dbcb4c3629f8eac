package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

const (
	minBlockReasonLen  = 10
	recentItemsLimit   = 10
	activityWindowDays = 30
	previewLength      = 100
)

// UserService serves the user moderation views.
type UserService struct {
	users    ports.UserRepository
	messages ports.MessageRepository
	rooms    ports.RoomRepository
	media    ports.MediaRepository
	reports  ports.ReportRepository
	audit    ports.AuditLogger
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	messages ports.MessageRepository,
	rooms ports.RoomRepository,
	media ports.MediaRepository,
	reports ports.ReportRepository,
	audit ports.AuditLogger,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		messages: messages,
		rooms:    rooms,
		media:    media,
		reports:  reports,
		audit:    audit,
		logger:   logger,
	}
}

// List returns a page of users with per-user message and room counts.
func (s *UserService) List(ctx context.Context, q ports.UserQuery, actor *domain.Admin, meta ports.RequestMeta) (*ports.UserList, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)

	users, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]ports.UserListItem, 0, len(users))
	for i := range users {
		u := users[i]
		msgCount, err := s.messages.CountBySender(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		roomCount, err := s.rooms.CountByParticipant(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, ports.UserListItem{
			User:         u,
			FullName:     u.FullName(),
			MessageCount: msgCount,
			RoomCount:    roomCount,
		})
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditUserView,
		TargetType: domain.TargetUser,
		Details: map[string]any{
			"page": q.Page, "limit": q.Limit, "search": q.Search,
			"status": q.Status, "total": total,
		},
		Success:   true,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return &ports.UserList{
		Users:      items,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// Get returns one user's moderation detail: footprint stats, recent
// messages, rooms, a 30-day activity series and reports filed against them.
func (s *UserService) Get(ctx context.Context, id string, actor *domain.Admin, meta ports.RequestMeta) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	msgCount, err := s.messages.CountBySender(ctx, id)
	if err != nil {
		return nil, err
	}
	roomCount, err := s.rooms.CountByParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	mediaCount, err := s.media.CountBySender(ctx, id)
	if err != nil {
		return nil, err
	}
	reportCount, err := s.reports.CountByReporter(ctx, id)
	if err != nil {
		return nil, err
	}
	storageBytes, err := s.media.StorageBySender(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.messages.RecentBySender(ctx, id, recentItemsLimit)
	if err != nil {
		return nil, err
	}
	userRooms, err := s.rooms.ListByParticipant(ctx, id, recentItemsLimit)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -activityWindowDays)
	activity, err := s.messages.ActivityBySender(ctx, id, since)
	if err != nil {
		return nil, err
	}

	about, err := s.reports.ListAboutTarget(ctx, domain.ReportTargetUser, id, recentItemsLimit)
	if err != nil {
		return nil, err
	}

	detail := &ports.UserDetail{
		User:     *user,
		FullName: user.FullName(),
		Stats: ports.UserStats{
			MessageCount:  msgCount,
			RoomCount:     roomCount,
			MediaCount:    mediaCount,
			ReportCount:   reportCount,
			StorageUsedMB: storageBytes / (1024 * 1024),
		},
		RecentMessages: make([]ports.MessageSummary, 0, len(recent)),
		Rooms:          make([]ports.RoomSummary, 0, len(userRooms)),
		Activity:       activity,
		Reports:        make([]ports.ReportSummary, 0, len(about)),
	}
	for _, m := range recent {
		detail.RecentMessages = append(detail.RecentMessages, ports.MessageSummary{
			ID:        m.ID,
			Message:   m.Preview(previewLength),
			HasFile:   m.HasFile,
			HasVoice:  m.HasVoice,
			IsEdited:  m.IsEdited,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, r := range userRooms {
		detail.Rooms = append(detail.Rooms, ports.RoomSummary{
			ID:               r.ID,
			Name:             r.Name,
			Type:             r.Type,
			Avatar:           r.Avatar,
			ParticipantCount: len(r.Participants),
			CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, r := range about {
		detail.Reports = append(detail.Reports, ports.ReportSummary{
			ID:        r.ID,
			Reason:    r.Reason,
			Status:    r.Status,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditUserView,
		Target:     id,
		TargetType: domain.TargetUser,
		Details:    map[string]any{"userDetails": true},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return detail, nil
}

// Moderate applies one of the PATCH /users actions. Block and unblock need
// the users.delete permission (superadmin short-circuits); block and warn
// require a reason of at least 10 characters, checked before any mutation.
func (s *UserService) Moderate(ctx context.Context, in ports.ModerateUserInput) (*domain.User, error) {
	var (
		result *domain.User
		action domain.AuditAction
		err    error
	)

	switch in.Action {
	case ports.UserActionUpdate:
		if in.Patch.IsEmpty() {
			return nil, domain.ValidationError("no valid fields to update")
		}
		result, err = s.users.Update(ctx, in.UserID, in.Patch)
		action = domain.AuditUserEdit

	case ports.UserActionBlock:
		if !s.canBlock(in.Actor) {
			return nil, domain.ErrForbidden
		}
		if len(in.Reason) < minBlockReasonLen {
			return nil, domain.ValidationError("reason must be at least 10 characters")
		}
		result, err = s.users.SetBlocked(ctx, in.UserID, true, in.Reason, in.Actor.ID)
		action = domain.AuditUserBan

	case ports.UserActionUnblock:
		if !s.canBlock(in.Actor) {
			return nil, domain.ErrForbidden
		}
		result, err = s.users.SetBlocked(ctx, in.UserID, false, "", in.Actor.ID)
		action = domain.AuditUserUnban

	case ports.UserActionWarn:
		if len(in.Reason) < minBlockReasonLen {
			return nil, domain.ValidationError("reason must be at least 10 characters")
		}
		result, err = s.users.AddWarning(ctx, in.UserID, domain.Warning{
			Reason:    in.Reason,
			AdminID:   in.Actor.ID,
			CreatedAt: time.Now().UTC(),
		})
		action = domain.AuditUserWarn

	default:
		return nil, domain.ValidationError("action must be one of: update, block, unblock, warn")
	}

	if err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			ActorID:      &in.Actor.ID,
			Action:       action,
			Target:       in.UserID,
			TargetType:   domain.TargetUser,
			Success:      false,
			ErrorMessage: err.Error(),
			IPAddress:    in.Meta.IPAddress,
			UserAgent:    in.Meta.UserAgent,
		})
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &in.Actor.ID,
		Action:     action,
		Target:     in.UserID,
		TargetType: domain.TargetUser,
		Details:    map[string]any{"reason": in.Reason},
		Success:    true,
		IPAddress:  in.Meta.IPAddress,
		UserAgent:  in.Meta.UserAgent,
	})
	metrics.ModerationActionsTotal.WithLabelValues(string(action)).Inc()

	return result, nil
}

// Delete blocks the user and cascades soft-deletes and room removal inside a
// single transaction. Validation runs before any database mutation; a failed
// transaction leaves no partial state and no completed-deletion audit entry.
func (s *UserService) Delete(ctx context.Context, in ports.DeleteUserInput) error {
	if !s.canBlock(in.Actor) {
		return domain.ErrForbidden
	}
	if len(in.Reason) < minBlockReasonLen {
		return domain.ValidationError("a deletion reason of at least 10 characters is required")
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := s.users.CascadeDelete(ctx, ports.CascadeDeleteInput{
		UserID:         in.UserID,
		AdminID:        in.Actor.ID,
		Reason:         in.Reason,
		DeleteMessages: in.DeleteMessages,
		DeleteMedia:    in.DeleteMedia,
	}); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &in.Actor.ID,
		Action:     domain.AuditUserDelete,
		Target:     in.UserID,
		TargetType: domain.TargetUser,
		Details: map[string]any{
			"reason":         in.Reason,
			"deleteMessages": in.DeleteMessages,
			"deleteMedia":    in.DeleteMedia,
			"username":       user.Username,
		},
		Success:   true,
		IPAddress: in.Meta.IPAddress,
		UserAgent: in.Meta.UserAgent,
	})
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditUserDelete)).Inc()

	return nil
}

// canBlock mirrors the destructive-action check: users.delete or superadmin.
func (s *UserService) canBlock(actor *domain.Admin) bool {
	return actor.Role == domain.RoleSuperAdmin || actor.Permissions.Users.Delete
}
