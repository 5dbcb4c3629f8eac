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
)

// SettingsRepository persists system settings, unique by key.
type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

type settingDoc struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	Key            string              `bson:"key"`
	Value          any                 `bson:"value"`
	Category       string              `bson:"category"`
	Description    string              `bson:"description,omitempty"`
	IsPublic       bool                `bson:"isPublic"`
	LastModifiedBy *primitive.ObjectID `bson:"lastModifiedBy,omitempty"`
	UpdatedAt      time.Time           `bson:"updatedAt"`
}

func (d *settingDoc) toDomain() *domain.SystemSetting {
	s := &domain.SystemSetting{
		Key:         d.Key,
		Value:       d.Value,
		Category:    domain.SettingCategory(d.Category),
		Description: d.Description,
		IsPublic:    d.IsPublic,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.LastModifiedBy != nil {
		s.LastModifiedBy = d.LastModifiedBy.Hex()
	}
	return s
}

func (r *SettingsRepository) List(ctx context.Context, category string) ([]domain.SystemSetting, error) {
	filter := bson.M{}
	if category != "" && category != "all" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "key", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer cur.Close(ctx)

	var settings []domain.SystemSetting
	for cur.Next(ctx) {
		var doc settingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode setting: %w", err)
		}
		settings = append(settings, *doc.toDomain())
	}
	return settings, cur.Err()
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (*domain.SystemSetting, error) {
	var doc settingDoc
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, fmt.Errorf("find setting: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, setting *domain.SystemSetting) error {
	set := bson.M{
		"value":     setting.Value,
		"category":  string(setting.Category),
		"isPublic":  setting.IsPublic,
		"updatedAt": time.Now().UTC(),
	}
	if setting.Description != "" {
		set["description"] = setting.Description
	}
	if setting.LastModifiedBy != "" {
		oid, err := primitive.ObjectIDFromHex(setting.LastModifiedBy)
		if err != nil {
			return fmt.Errorf("upsert setting: bad admin id: %w", err)
		}
		set["lastModifiedBy"] = oid
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"key": setting.Key},
		bson.M{"$set": set, "$setOnInsert": bson.M{"key": setting.Key}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
