package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository struct {
	store *Store
}

func NewAuditRepository(store *Store) *AuditRepository {
	return &AuditRepository{store: store}
}

func (r *AuditRepository) SaveReport(ctx context.Context, report reconciliation.Report) error {
	if _, err := r.store.Collections.AuditLogs.InsertOne(ctx, newAuditDocument(report)); err != nil {
		return fmt.Errorf("insert audit report %s: %w", report.ID, err)
	}
	return nil
}

func (r *AuditRepository) LatestReport(ctx context.Context) (reconciliation.Report, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	filter := bson.M{"type": reconciliation.ReportTypeFullCrossCheck}

	var doc auditDocument
	err := r.store.Collections.AuditLogs.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return reconciliation.Report{}, false, nil
	}
	if err != nil {
		return reconciliation.Report{}, false, fmt.Errorf("find latest audit report: %w", err)
	}
	return doc.toDomain(), true, nil
}
