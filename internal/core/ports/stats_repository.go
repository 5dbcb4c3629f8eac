package ports

import (
	"context"
	"time"
)

// OverviewStats is the raw counter set behind the dashboard overview.
type OverviewStats struct {
	TotalUsers        int64
	OnlineUsers       int64
	BlockedUsers      int64
	NewUsersToday     int64
	NewUsersYesterday int64

	TotalMessages     int64
	MessagesToday     int64
	MessagesYesterday int64

	TotalRooms   int64
	PrivateRooms int64
	GroupRooms   int64
	ChannelRooms int64

	TotalMedia   int64
	MediaToday   int64
	StorageBytes int64

	TotalReports      int64
	PendingReports    int64
	ResolvedReports   int64
	ReportsToday      int64
	ReportsYesterday  int64
}

// DailyActivity is one day of combined platform activity.
type DailyActivity struct {
	Date     string `json:"date"`
	Users    int64  `json:"users"`
	Messages int64  `json:"messages"`
	Reports  int64  `json:"reports"`
}

// ActiveUser is a most-active-senders aggregation row.
type ActiveUser struct {
	UserID       string `json:"_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar,omitempty"`
	MessageCount int64  `json:"messageCount"`
}

// StatsRepository runs the dashboard aggregations across collections.
type StatsRepository interface {
	Overview(ctx context.Context, now time.Time) (*OverviewStats, error)
	DailyTrend(ctx context.Context, today time.Time, days int) ([]DailyActivity, error)
	MostActiveUsers(ctx context.Context, since time.Time, limit int) ([]ActiveUser, error)
}
