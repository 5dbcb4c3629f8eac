package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// MessageRepository reads and moderates chat messages. List views exclude
// soft-deleted messages; deletion itself is always soft.
type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messageCollection)}
}

type messageDoc struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Sender    primitive.ObjectID  `bson:"sender"`
	RoomID    primitive.ObjectID  `bson:"roomID"`
	Message   string              `bson:"message,omitempty"`
	FileData  bson.M              `bson:"fileData,omitempty"`
	VoiceData bson.M              `bson:"voiceData,omitempty"`
	IsEdited  bool                `bson:"isEdited"`
	IsDeleted bool                `bson:"isDeleted"`
	DeletedBy *primitive.ObjectID `bson:"deletedBy,omitempty"`
	DeletedAt *time.Time          `bson:"deletedAt,omitempty"`
	CreatedAt time.Time           `bson:"createdAt"`
}

func (d *messageDoc) toDomain() *domain.Message {
	m := &domain.Message{
		ID:        d.ID.Hex(),
		SenderID:  d.Sender.Hex(),
		RoomID:    d.RoomID.Hex(),
		Text:      d.Message,
		HasFile:   len(d.FileData) > 0,
		HasVoice:  len(d.VoiceData) > 0,
		IsEdited:  d.IsEdited,
		IsDeleted: d.IsDeleted,
		DeletedAt: d.DeletedAt,
		CreatedAt: d.CreatedAt,
	}
	if d.DeletedBy != nil {
		m.DeletedBy = d.DeletedBy.Hex()
	}
	return m
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	var doc messageDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MessageRepository) List(ctx context.Context, q ports.MessageQuery) ([]domain.Message, int64, error) {
	filter := bson.M{"isDeleted": bson.M{"$ne": true}}
	if q.RoomID != "" {
		oid, err := primitive.ObjectIDFromHex(q.RoomID)
		if err != nil {
			return nil, 0, domain.ValidationError("invalid room id")
		}
		filter["roomID"] = oid
	}
	if q.SenderID != "" {
		oid, err := primitive.ObjectIDFromHex(q.SenderID)
		if err != nil {
			return nil, 0, domain.ValidationError("invalid sender id")
		}
		filter["sender"] = oid
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []domain.Message
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, *doc.toDomain())
	}
	return messages, total, cur.Err()
}

func (r *MessageRepository) SoftDelete(ctx context.Context, id, adminID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMessageNotFound
	}
	adminOID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return fmt.Errorf("delete message: bad admin id: %w", err)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"isDeleted": true,
		"deletedBy": adminOID,
		"deletedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) CountBySender(ctx context.Context, senderID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return r.coll.CountDocuments(ctx, bson.M{"sender": oid, "isDeleted": bson.M{"$ne": true}})
}

func (r *MessageRepository) RecentBySender(ctx context.Context, senderID string, limit int) ([]domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"sender": oid, "isDeleted": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []domain.Message
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, *doc.toDomain())
	}
	return messages, cur.Err()
}

// ActivityBySender groups the sender's messages per day since the given
// time, for the activity chart on the user detail page.
func (r *MessageRepository) ActivityBySender(ctx context.Context, senderID string, since time.Time) ([]ports.DailyCount, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"sender":    oid,
			"isDeleted": bson.M{"$ne": true},
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("activity by sender: %w", err)
	}
	defer cur.Close(ctx)

	var activity []ports.DailyCount
	for cur.Next(ctx) {
		var row struct {
			Date  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode activity row: %w", err)
		}
		activity = append(activity, ports.DailyCount{Date: row.Date, Count: row.Count})
	}
	return activity, cur.Err()
}
