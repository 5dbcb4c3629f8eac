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

// MediaRepository reads and moderates uploaded media references.
type MediaRepository struct {
	coll *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{coll: db.Collection(mediaCollection)}
}

type mediaDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Sender      primitive.ObjectID  `bson:"sender"`
	Room        *primitive.ObjectID `bson:"room,omitempty"`
	URL         string              `bson:"url,omitempty"`
	Filename    string              `bson:"filename,omitempty"`
	MimeType    string              `bson:"mimetype,omitempty"`
	Size        int64               `bson:"size"`
	IsReported  bool                `bson:"isReported"`
	ReportCount int                 `bson:"reportCount"`
	IsDeleted   bool                `bson:"isDeleted"`
	DeletedBy   *primitive.ObjectID `bson:"deletedBy,omitempty"`
	DeletedAt   *time.Time          `bson:"deletedAt,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
}

func (d *mediaDoc) toDomain() *domain.Media {
	m := &domain.Media{
		ID:          d.ID.Hex(),
		SenderID:    d.Sender.Hex(),
		URL:         d.URL,
		Filename:    d.Filename,
		MimeType:    d.MimeType,
		Size:        d.Size,
		IsReported:  d.IsReported,
		ReportCount: d.ReportCount,
		IsDeleted:   d.IsDeleted,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt,
	}
	if d.Room != nil {
		m.RoomID = d.Room.Hex()
	}
	if d.DeletedBy != nil {
		m.DeletedBy = d.DeletedBy.Hex()
	}
	return m
}

func (r *MediaRepository) FindByID(ctx context.Context, id string) (*domain.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMediaNotFound
	}

	var doc mediaDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("find media: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MediaRepository) List(ctx context.Context, q ports.MediaQuery) ([]domain.Media, int64, error) {
	filter := bson.M{"isDeleted": bson.M{"$ne": true}}
	if q.SenderID != "" {
		oid, err := primitive.ObjectIDFromHex(q.SenderID)
		if err != nil {
			return nil, 0, domain.ErrUserNotFound
		}
		filter["sender"] = oid
	}
	if q.ReportedOnly {
		filter["isReported"] = true
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.Media
	for cur.Next(ctx) {
		var doc mediaDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode media: %w", err)
		}
		items = append(items, *doc.toDomain())
	}
	return items, total, cur.Err()
}

func (r *MediaRepository) SoftDelete(ctx context.Context, id, adminID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMediaNotFound
	}
	adminOID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return fmt.Errorf("delete media: bad admin id: %w", err)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "isDeleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{
			"isDeleted": true,
			"deletedBy": adminOID,
			"deletedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepository) CountBySender(ctx context.Context, senderID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return r.coll.CountDocuments(ctx, bson.M{"sender": oid, "isDeleted": bson.M{"$ne": true}})
}

// StorageBySender sums the byte sizes of a user's non-deleted uploads.
func (r *MediaRepository) StorageBySender(ctx context.Context, senderID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sender": oid, "isDeleted": bson.M{"$ne": true}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$size"}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("storage by sender: %w", err)
	}
	defer cur.Close(ctx)

	var out struct {
		Total int64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return 0, fmt.Errorf("decode storage sum: %w", err)
		}
	}
	return out.Total, cur.Err()
}
