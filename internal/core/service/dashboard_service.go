package service

import (
	"context"
	"math"
	"time"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

const (
	trendDays      = 7
	topSendersSize = 10
)

// DashboardService aggregates platform statistics for the dashboard landing
// page.
type DashboardService struct {
	stats ports.StatsRepository
	audit ports.AuditLogger
}

func NewDashboardService(stats ports.StatsRepository, audit ports.AuditLogger) *DashboardService {
	return &DashboardService{stats: stats, audit: audit}
}

func (s *DashboardService) Stats(ctx context.Context, actor *domain.Admin, meta ports.RequestMeta) (*ports.DashboardStats, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -trendDays)

	overview, err := s.stats.Overview(ctx, now)
	if err != nil {
		return nil, err
	}
	daily, err := s.stats.DailyTrend(ctx, today, trendDays)
	if err != nil {
		return nil, err
	}
	topUsers, err := s.stats.MostActiveUsers(ctx, weekAgo, topSendersSize)
	if err != nil {
		return nil, err
	}

	result := &ports.DashboardStats{
		Overview: ports.Overview{
			TotalUsers:     overview.TotalUsers,
			OnlineUsers:    overview.OnlineUsers,
			BlockedUsers:   overview.BlockedUsers,
			TotalMessages:  overview.TotalMessages,
			TotalRooms:     overview.TotalRooms,
			TotalStorageMB: overview.StorageBytes / (1024 * 1024),
			PendingReports: overview.PendingReports,
		},
		Growth: ports.Growth{
			Users:    growth(overview.NewUsersToday, overview.NewUsersYesterday),
			Messages: growth(overview.MessagesToday, overview.MessagesYesterday),
			Reports:  growth(overview.ReportsToday, overview.ReportsYesterday),
			Media:    ports.GrowthPoint{Count: overview.MediaToday},
		},
		Breakdown: ports.Breakdown{
			Rooms: ports.RoomBreakdown{
				Private: overview.PrivateRooms,
				Group:   overview.GroupRooms,
				Channel: overview.ChannelRooms,
			},
			Reports: ports.ReportBreakdown{
				Total:    overview.TotalReports,
				Pending:  overview.PendingReports,
				Resolved: overview.ResolvedReports,
			},
		},
		Trends: ports.Trends{
			Daily:           daily,
			MostActiveUsers: topUsers,
		},
	}

	s.audit.Record(ctx, domain.AuditEntry{
		ActorID:    &actor.ID,
		Action:     domain.AuditSystemSettingsView,
		TargetType: domain.TargetSystem,
		Details:    map[string]any{"dashboardStats": true},
		Success:    true,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return result, nil
}

// growth computes today's count and the percentage change versus yesterday.
// A jump from zero reports as 100%.
func growth(today, yesterday int64) ports.GrowthPoint {
	var pct float64
	switch {
	case yesterday > 0:
		pct = math.Round(float64(today-yesterday)/float64(yesterday)*1000) / 10
	case today > 0:
		pct = 100
	}
	return ports.GrowthPoint{Count: today, Percentage: pct}
}
