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

// ReportRepository reads and resolves user reports.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportCollection)}
}

type adminActionDoc struct {
	Admin   primitive.ObjectID `bson:"admin"`
	Action  string             `bson:"action"`
	Note    string             `bson:"note,omitempty"`
	TakenAt time.Time          `bson:"takenAt"`
}

type reportDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Reporter    primitive.ObjectID `bson:"reporter"`
	TargetType  string             `bson:"targetType"`
	TargetID    primitive.ObjectID `bson:"targetId"`
	Reason      string             `bson:"reason"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	AdminAction *adminActionDoc    `bson:"adminAction,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *reportDoc) toDomain() *domain.Report {
	rep := &domain.Report{
		ID:          d.ID.Hex(),
		ReporterID:  d.Reporter.Hex(),
		TargetType:  domain.ReportTargetType(d.TargetType),
		TargetID:    d.TargetID.Hex(),
		Reason:      domain.ReportReason(d.Reason),
		Description: d.Description,
		Status:      domain.ReportStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.AdminAction != nil {
		rep.AdminAction = &domain.AdminAction{
			AdminID: d.AdminAction.Admin.Hex(),
			Action:  d.AdminAction.Action,
			Note:    d.AdminAction.Note,
			TakenAt: d.AdminAction.TakenAt,
		}
	}
	return rep
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	var doc reportDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReportRepository) List(ctx context.Context, q ports.ReportQuery) ([]domain.Report, int64, error) {
	filter := bson.M{}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}
	if q.TargetType != "" {
		filter["targetType"] = q.TargetType
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	var reports []domain.Report
	for cur.Next(ctx) {
		var doc reportDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, *doc.toDomain())
	}
	return reports, total, cur.Err()
}

func (r *ReportRepository) SetStatus(ctx context.Context, id string, status domain.ReportStatus, action domain.AdminAction) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}
	adminOID, err := primitive.ObjectIDFromHex(action.AdminID)
	if err != nil {
		return nil, fmt.Errorf("resolve report: bad admin id: %w", err)
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": now,
		"adminAction": adminActionDoc{
			Admin:   adminOID,
			Action:  action.Action,
			Note:    action.Note,
			TakenAt: now,
		},
	}}

	var doc reportDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("update report: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReportRepository) CountByReporter(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return r.coll.CountDocuments(ctx, bson.M{"reporter": oid})
}

func (r *ReportRepository) ListAboutTarget(ctx context.Context, targetType domain.ReportTargetType, targetID string, limit int) ([]domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"targetType": string(targetType), "targetId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("reports about target: %w", err)
	}
	defer cur.Close(ctx)

	var reports []domain.Report
	for cur.Next(ctx) {
		var doc reportDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, *doc.toDomain())
	}
	return reports, cur.Err()
}
