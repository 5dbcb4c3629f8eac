package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// AdminRepository persists admin accounts in the admins collection.
type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(adminCollection)}
}

type adminDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password_hash"`
	Role             string             `bson:"role"`
	Permissions      domain.Permissions `bson:"permissions"`
	Avatar           string             `bson:"avatar,omitempty"`
	IsActive         bool               `bson:"is_active"`
	TwoFactorEnabled bool               `bson:"two_factor_enabled"`
	TwoFactorSecret  string             `bson:"two_factor_secret,omitempty"`
	LoginAttempts    int                `bson:"login_attempts"`
	LockUntil        *time.Time         `bson:"lock_until,omitempty"`
	LastLogin        *time.Time         `bson:"last_login,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:               d.ID.Hex(),
		Username:         d.Username,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		Role:             domain.Role(d.Role),
		Permissions:      d.Permissions,
		Avatar:           d.Avatar,
		IsActive:         d.IsActive,
		TwoFactorEnabled: d.TwoFactorEnabled,
		TwoFactorSecret:  d.TwoFactorSecret,
		LoginAttempts:    d.LoginAttempts,
		LockUntil:        d.LockUntil,
		LastLogin:        d.LastLogin,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AdminRepository) FindByLogin(ctx context.Context, login string) (*domain.Admin, error) {
	login = strings.ToLower(login)
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var doc adminDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	now := time.Now().UTC()
	doc := adminDoc{
		Username:         admin.Username,
		Email:            admin.Email,
		PasswordHash:     admin.PasswordHash,
		Role:             string(admin.Role),
		Permissions:      admin.Permissions,
		Avatar:           admin.Avatar,
		IsActive:         admin.IsActive,
		TwoFactorEnabled: admin.TwoFactorEnabled,
		TwoFactorSecret:  admin.TwoFactorSecret,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	created := *admin
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *AdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	oid, err := primitive.ObjectIDFromHex(admin.ID)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	update := bson.M{"$set": bson.M{
		"role":               string(admin.Role),
		"permissions":        admin.Permissions,
		"avatar":             admin.Avatar,
		"is_active":          admin.IsActive,
		"two_factor_enabled": admin.TwoFactorEnabled,
		"two_factor_secret":  admin.TwoFactorSecret,
		"updated_at":         time.Now().UTC(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer cur.Close(ctx)

	var admins []domain.Admin
	for cur.Next(ctx) {
		var doc adminDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode admin: %w", err)
		}
		admins = append(admins, *doc.toDomain())
	}
	return admins, cur.Err()
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// RecordFailedAttempt increments the counter with an atomic $inc, so
// concurrent failures cannot under-count, then sets the lock in a second
// conditional update once the threshold is reached. The lock write races only
// with identical writes of the same expiry, which is harmless.
func (r *AdminRepository) RecordFailedAttempt(ctx context.Context, id string, threshold int, lockFor time.Duration) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	var doc adminDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"login_attempts": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("record failed attempt: %w", err)
	}

	if doc.LoginAttempts >= threshold && doc.LockUntil == nil {
		lockUntil := time.Now().UTC().Add(lockFor)
		_, err = r.coll.UpdateOne(ctx,
			bson.M{"_id": oid, "lock_until": nil},
			bson.M{"$set": bson.M{"lock_until": lockUntil}},
		)
		if err != nil {
			return nil, fmt.Errorf("set lockout: %w", err)
		}
		doc.LockUntil = &lockUntil
	}

	return doc.toDomain(), nil
}

func (r *AdminRepository) ResetLoginAttempts(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	_, err = r.coll.UpdateByID(ctx, oid, bson.M{
		"$set":   bson.M{"login_attempts": 0, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"lock_until": ""},
	})
	if err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

func (r *AdminRepository) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	_, err = r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"last_login": at, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set last login: %w", err)
	}
	return nil
}

func (r *AdminRepository) UpdatePermissions(ctx context.Context, id string, perms domain.Permissions) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"permissions": perms, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update permissions: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
