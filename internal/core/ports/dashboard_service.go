package ports

import (
	"context"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// DashboardStats is the aggregate payload behind GET /dashboard/stats,
// shaped for the dashboard widgets.
type DashboardStats struct {
	Overview  Overview  `json:"overview"`
	Growth    Growth    `json:"growth"`
	Breakdown Breakdown `json:"breakdown"`
	Trends    Trends    `json:"trends"`
}

type Overview struct {
	TotalUsers     int64 `json:"totalUsers"`
	OnlineUsers    int64 `json:"onlineUsers"`
	BlockedUsers   int64 `json:"blockedUsers"`
	TotalMessages  int64 `json:"totalMessages"`
	TotalRooms     int64 `json:"totalRooms"`
	TotalStorageMB int64 `json:"totalStorage"`
	PendingReports int64 `json:"pendingReports"`
}

// GrowthPoint is today's count plus the percentage change versus yesterday.
type GrowthPoint struct {
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Growth struct {
	Users    GrowthPoint `json:"users"`
	Messages GrowthPoint `json:"messages"`
	Reports  GrowthPoint `json:"reports"`
	Media    GrowthPoint `json:"media"`
}

type Breakdown struct {
	Rooms   RoomBreakdown   `json:"rooms"`
	Reports ReportBreakdown `json:"reports"`
}

type RoomBreakdown struct {
	Private int64 `json:"private"`
	Group   int64 `json:"group"`
	Channel int64 `json:"channel"`
}

type ReportBreakdown struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
}

type Trends struct {
	Daily           []DailyActivity `json:"daily"`
	MostActiveUsers []ActiveUser    `json:"mostActiveUsers"`
}

// DashboardService aggregates platform statistics.
type DashboardService interface {
	Stats(ctx context.Context, actor *domain.Admin, meta RequestMeta) (*DashboardStats, error)
}
