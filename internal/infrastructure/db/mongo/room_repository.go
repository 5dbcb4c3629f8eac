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

// RoomRepository reads and moderates chat rooms.
type RoomRepository struct {
	coll *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{coll: db.Collection(roomCollection)}
}

type roomDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Type         string               `bson:"type"`
	Avatar       string               `bson:"avatar,omitempty"`
	Description  string               `bson:"description,omitempty"`
	Creator      *primitive.ObjectID  `bson:"creator,omitempty"`
	Participants []primitive.ObjectID `bson:"participants"`
	Admins       []primitive.ObjectID `bson:"admins,omitempty"`
	IsBlocked    bool                 `bson:"isBlocked"`
	BlockReason  string               `bson:"blockReason,omitempty"`
	BlockedAt    *time.Time           `bson:"blockedAt,omitempty"`
	BlockedBy    *primitive.ObjectID  `bson:"blockedBy,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt"`
}

func (d *roomDoc) toDomain() *domain.Room {
	room := &domain.Room{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Type:        domain.RoomType(d.Type),
		Avatar:      d.Avatar,
		Description: d.Description,
		IsBlocked:   d.IsBlocked,
		BlockReason: d.BlockReason,
		BlockedAt:   d.BlockedAt,
		CreatedAt:   d.CreatedAt,
	}
	if d.Creator != nil {
		room.CreatorID = d.Creator.Hex()
	}
	if d.BlockedBy != nil {
		room.BlockedBy = d.BlockedBy.Hex()
	}
	for _, p := range d.Participants {
		room.Participants = append(room.Participants, p.Hex())
	}
	for _, a := range d.Admins {
		room.Admins = append(room.Admins, a.Hex())
	}
	return room
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	var doc roomDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoomRepository) List(ctx context.Context, q ports.RoomQuery) ([]domain.Room, int64, error) {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = q.Type
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []domain.Room
	for cur.Next(ctx) {
		var doc roomDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, *doc.toDomain())
	}
	return rooms, total, cur.Err()
}

func (r *RoomRepository) SetBlocked(ctx context.Context, id string, blocked bool, adminID string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	var update bson.M
	if blocked {
		adminOID, err := primitive.ObjectIDFromHex(adminID)
		if err != nil {
			return nil, fmt.Errorf("block room: bad admin id: %w", err)
		}
		update = bson.M{"$set": bson.M{
			"isBlocked": true,
			"blockedAt": time.Now().UTC(),
			"blockedBy": adminOID,
		}}
	} else {
		update = bson.M{
			"$set":   bson.M{"isBlocked": false},
			"$unset": bson.M{"blockReason": "", "blockedAt": "", "blockedBy": ""},
		}
	}

	var doc roomDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoomRepository) CountByParticipant(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return r.coll.CountDocuments(ctx, bson.M{"participants": oid})
}

func (r *RoomRepository) ListByParticipant(ctx context.Context, userID string, limit int) ([]domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"participants": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("rooms by participant: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []domain.Room
	for cur.Next(ctx) {
		var doc roomDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, *doc.toDomain())
	}
	return rooms, cur.Err()
}
