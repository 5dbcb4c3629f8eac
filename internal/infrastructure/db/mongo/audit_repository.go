package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// AuditRepository persists the append-only audit trail in admin_logs.
// Entries are only ever inserted; there is no update or delete path.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	AdminID      *primitive.ObjectID `bson:"admin_id,omitempty"`
	Action       string              `bson:"action"`
	Target       string              `bson:"target,omitempty"`
	TargetType   string              `bson:"target_type,omitempty"`
	Details      map[string]any      `bson:"details,omitempty"`
	Success      bool                `bson:"success"`
	ErrorMessage string              `bson:"error_message,omitempty"`
	IPAddress    string              `bson:"ip_address,omitempty"`
	UserAgent    string              `bson:"user_agent,omitempty"`
	CreatedAt    time.Time           `bson:"created_at"`
}

func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		Action:       string(entry.Action),
		Target:       entry.Target,
		TargetType:   entry.TargetType,
		Details:      entry.Details,
		Success:      entry.Success,
		ErrorMessage: entry.ErrorMessage,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		CreatedAt:    entry.CreatedAt,
	}
	if entry.ActorID != nil {
		oid, err := primitive.ObjectIDFromHex(*entry.ActorID)
		if err != nil {
			return fmt.Errorf("audit actor id: %w", err)
		}
		doc.AdminID = &oid
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, q ports.AuditQuery) ([]domain.AuditEntry, int64, error) {
	filter := bson.M{}
	if q.ActorID != "" {
		oid, err := primitive.ObjectIDFromHex(q.ActorID)
		if err != nil {
			return nil, 0, domain.ValidationError("invalid actor id")
		}
		filter["admin_id"] = oid
	}
	if q.Action != "" {
		filter["action"] = string(q.Action)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.AuditEntry
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode audit entry: %w", err)
		}
		entry := domain.AuditEntry{
			ID:           doc.ID.Hex(),
			Action:       domain.AuditAction(doc.Action),
			Target:       doc.Target,
			TargetType:   doc.TargetType,
			Details:      doc.Details,
			Success:      doc.Success,
			ErrorMessage: doc.ErrorMessage,
			IPAddress:    doc.IPAddress,
			UserAgent:    doc.UserAgent,
			CreatedAt:    doc.CreatedAt,
		}
		if doc.AdminID != nil {
			hex := doc.AdminID.Hex()
			entry.ActorID = &hex
		}
		entries = append(entries, entry)
	}
	return entries, total, cur.Err()
}
