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

// UserRepository reads and moderates chat users. It also owns the one
// multi-collection operation in the system, CascadeDelete, which runs inside
// a MongoDB transaction spanning users, messages, media and rooms.
type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(userCollection)}
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	LastName    string             `bson:"lastName,omitempty"`
	Username    string             `bson:"username"`
	Phone       string             `bson:"phone"`
	Avatar      string             `bson:"avatar,omitempty"`
	Biography   string             `bson:"biography,omitempty"`
	Status      string             `bson:"status"`
	IsBlocked   bool               `bson:"isBlocked"`
	BlockReason string             `bson:"blockReason,omitempty"`
	BlockedAt   *time.Time         `bson:"blockedAt,omitempty"`
	BlockedBy   *primitive.ObjectID `bson:"blockedBy,omitempty"`
	Warnings    []warningDoc       `bson:"warnings,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type warningDoc struct {
	Reason    string             `bson:"reason"`
	AdminID   primitive.ObjectID `bson:"adminId"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		LastName:    d.LastName,
		Username:    d.Username,
		Phone:       d.Phone,
		Avatar:      d.Avatar,
		Biography:   d.Biography,
		Status:      domain.UserStatus(d.Status),
		IsBlocked:   d.IsBlocked,
		BlockReason: d.BlockReason,
		BlockedAt:   d.BlockedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.BlockedBy != nil {
		u.BlockedBy = d.BlockedBy.Hex()
	}
	for _, w := range d.Warnings {
		u.Warnings = append(u.Warnings, domain.Warning{
			Reason:    w.Reason,
			AdminID:   w.AdminID.Hex(),
			CreatedAt: w.CreatedAt,
		})
	}
	return u
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, q ports.UserQuery) ([]domain.User, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		regex := primitive.Regex{Pattern: q.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"username": regex},
			bson.M{"phone": regex},
		}
	}
	switch q.Status {
	case "online":
		filter["status"] = "online"
	case "offline":
		filter["status"] = "offline"
	case "blocked":
		filter["isBlocked"] = true
	case "active":
		filter["isBlocked"] = false
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := -1
	if q.SortOrder == "asc" {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *doc.toDomain())
	}
	return users, total, cur.Err()
}

func (r *UserRepository) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Biography != nil {
		set["biography"] = *patch.Biography
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}

	return r.findAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *UserRepository) SetBlocked(ctx context.Context, id string, blocked bool, reason, adminID string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var update bson.M
	if blocked {
		adminOID, err := primitive.ObjectIDFromHex(adminID)
		if err != nil {
			return nil, fmt.Errorf("block user: bad admin id: %w", err)
		}
		now := time.Now().UTC()
		update = bson.M{"$set": bson.M{
			"isBlocked":   true,
			"blockReason": reason,
			"blockedAt":   now,
			"blockedBy":   adminOID,
			"status":      "offline",
			"updatedAt":   now,
		}}
	} else {
		update = bson.M{
			"$set":   bson.M{"isBlocked": false, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"blockReason": "", "blockedAt": "", "blockedBy": ""},
		}
	}

	return r.findAndUpdate(ctx, oid, update)
}

func (r *UserRepository) AddWarning(ctx context.Context, id string, w domain.Warning) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	adminOID, err := primitive.ObjectIDFromHex(w.AdminID)
	if err != nil {
		return nil, fmt.Errorf("warn user: bad admin id: %w", err)
	}

	return r.findAndUpdate(ctx, oid, bson.M{
		"$push": bson.M{"warnings": warningDoc{
			Reason:    w.Reason,
			AdminID:   adminOID,
			CreatedAt: w.CreatedAt,
		}},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) findAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*domain.User, error) {
	var doc userDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

// CascadeDelete blocks the user and cascades soft-deletes of their messages
// and media plus removal from all room rosters, all inside one transaction.
// Any failed step aborts the whole transaction and surfaces the original
// error.
func (r *UserRepository) CascadeDelete(ctx context.Context, in ports.CascadeDeleteInput) error {
	oid, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	adminOID, err := primitive.ObjectIDFromHex(in.AdminID)
	if err != nil {
		return fmt.Errorf("cascade delete: bad admin id: %w", err)
	}

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.coll.UpdateOne(sc, bson.M{"_id": oid}, bson.M{"$set": bson.M{
			"isBlocked":   true,
			"blockReason": "account deleted: " + in.Reason,
			"blockedAt":   now,
			"blockedBy":   adminOID,
			"status":      "offline",
			"updatedAt":   now,
		}})
		if err != nil {
			return nil, fmt.Errorf("block user: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrUserNotFound
		}

		softDelete := bson.M{"$set": bson.M{
			"isDeleted": true,
			"deletedBy": adminOID,
			"deletedAt": now,
		}}
		if in.DeleteMessages {
			if _, err := r.db.Collection(messageCollection).UpdateMany(sc, bson.M{"sender": oid}, softDelete); err != nil {
				return nil, fmt.Errorf("delete messages: %w", err)
			}
		}
		if in.DeleteMedia {
			if _, err := r.db.Collection(mediaCollection).UpdateMany(sc, bson.M{"sender": oid}, softDelete); err != nil {
				return nil, fmt.Errorf("delete media: %w", err)
			}
		}

		_, err = r.db.Collection(roomCollection).UpdateMany(sc,
			bson.M{"participants": oid},
			bson.M{"$pull": bson.M{"participants": oid, "admins": oid}},
		)
		if err != nil {
			return nil, fmt.Errorf("remove from rooms: %w", err)
		}

		return nil, nil
	})
	return err
}
