package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// StatsRepository runs the dashboard aggregations across collections.
type StatsRepository struct {
	users    *mongo.Collection
	messages *mongo.Collection
	rooms    *mongo.Collection
	media    *mongo.Collection
	reports  *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users:    db.Collection(userCollection),
		messages: db.Collection(messageCollection),
		rooms:    db.Collection(roomCollection),
		media:    db.Collection(mediaCollection),
		reports:  db.Collection(reportCollection),
	}
}

// dayStart truncates t to midnight UTC.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *StatsRepository) Overview(ctx context.Context, now time.Time) (*ports.OverviewStats, error) {
	today := dayStart(now)
	yesterday := today.AddDate(0, 0, -1)

	out := &ports.OverviewStats{}
	var err error

	count := func(coll *mongo.Collection, filter bson.M, dst *int64) {
		if err != nil {
			return
		}
		var n int64
		n, err = coll.CountDocuments(ctx, filter)
		if err != nil {
			err = fmt.Errorf("overview count: %w", err)
			return
		}
		*dst = n
	}

	todayRange := bson.M{"$gte": today}
	yesterdayRange := bson.M{"$gte": yesterday, "$lt": today}

	count(r.users, bson.M{}, &out.TotalUsers)
	count(r.users, bson.M{"status": "online"}, &out.OnlineUsers)
	count(r.users, bson.M{"isBlocked": true}, &out.BlockedUsers)
	count(r.users, bson.M{"createdAt": todayRange}, &out.NewUsersToday)
	count(r.users, bson.M{"createdAt": yesterdayRange}, &out.NewUsersYesterday)

	notDeleted := bson.M{"isDeleted": bson.M{"$ne": true}}
	count(r.messages, notDeleted, &out.TotalMessages)
	count(r.messages, bson.M{"isDeleted": bson.M{"$ne": true}, "createdAt": todayRange}, &out.MessagesToday)
	count(r.messages, bson.M{"isDeleted": bson.M{"$ne": true}, "createdAt": yesterdayRange}, &out.MessagesYesterday)

	count(r.rooms, bson.M{}, &out.TotalRooms)
	count(r.rooms, bson.M{"type": "private"}, &out.PrivateRooms)
	count(r.rooms, bson.M{"type": "group"}, &out.GroupRooms)
	count(r.rooms, bson.M{"type": "channel"}, &out.ChannelRooms)

	count(r.media, notDeleted, &out.TotalMedia)
	count(r.media, bson.M{"isDeleted": bson.M{"$ne": true}, "createdAt": todayRange}, &out.MediaToday)

	count(r.reports, bson.M{}, &out.TotalReports)
	count(r.reports, bson.M{"status": "pending"}, &out.PendingReports)
	count(r.reports, bson.M{"status": "resolved"}, &out.ResolvedReports)
	count(r.reports, bson.M{"createdAt": todayRange}, &out.ReportsToday)
	count(r.reports, bson.M{"createdAt": yesterdayRange}, &out.ReportsYesterday)

	if err != nil {
		return nil, err
	}

	storage, err := r.totalStorage(ctx)
	if err != nil {
		return nil, err
	}
	out.StorageBytes = storage
	return out, nil
}

func (r *StatsRepository) totalStorage(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isDeleted": bson.M{"$ne": true}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$size"}}}},
	}
	cur, err := r.media.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("storage total: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Total int64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode storage total: %w", err)
		}
	}
	return row.Total, cur.Err()
}

// DailyTrend returns one row per calendar day for the last days days,
// including days with no activity.
func (r *StatsRepository) DailyTrend(ctx context.Context, today time.Time, days int) ([]ports.DailyActivity, error) {
	start := dayStart(today).AddDate(0, 0, -(days - 1))

	users, err := r.dailyCounts(ctx, r.users, bson.M{"createdAt": bson.M{"$gte": start}})
	if err != nil {
		return nil, err
	}
	messages, err := r.dailyCounts(ctx, r.messages, bson.M{
		"isDeleted": bson.M{"$ne": true},
		"createdAt": bson.M{"$gte": start},
	})
	if err != nil {
		return nil, err
	}
	reports, err := r.dailyCounts(ctx, r.reports, bson.M{"createdAt": bson.M{"$gte": start}})
	if err != nil {
		return nil, err
	}

	trend := make([]ports.DailyActivity, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, ports.DailyActivity{
			Date:     date,
			Users:    users[date],
			Messages: messages[date],
			Reports:  reports[date],
		})
	}
	return trend, nil
}

func (r *StatsRepository) dailyCounts(ctx context.Context, coll *mongo.Collection, match bson.M) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Date  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode daily count: %w", err)
		}
		counts[row.Date] = row.Count
	}
	return counts, cur.Err()
}

// MostActiveUsers groups messages by sender since the given time and joins
// the sender profile.
func (r *StatsRepository) MostActiveUsers(ctx context.Context, since time.Time, limit int) ([]ports.ActiveUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"isDeleted": bson.M{"$ne": true},
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$sender",
			"messageCount": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "messageCount", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         userCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"messageCount": 1,
			"username":     "$user.username",
			"name":         "$user.name",
			"avatar":       "$user.avatar",
		}}},
	}

	cur, err := r.messages.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("most active users: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.ActiveUser
	for cur.Next(ctx) {
		var row struct {
			ID           primitive.ObjectID `bson:"_id"`
			Username     string             `bson:"username"`
			Name         string             `bson:"name"`
			Avatar       string             `bson:"avatar"`
			MessageCount int64              `bson:"messageCount"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode active user: %w", err)
		}
		out = append(out, ports.ActiveUser{
			UserID:       row.ID.Hex(),
			Username:     row.Username,
			Name:         row.Name,
			Avatar:       row.Avatar,
			MessageCount: row.MessageCount,
		})
	}
	return out, cur.Err()
}
