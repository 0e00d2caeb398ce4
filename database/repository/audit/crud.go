// File: database/repository/audit/crud.go
package auditRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autoslot/models"
)

const defaultHistoryLimit = 50

func (r *mongoCommitAuditRepo) Insert(ctx context.Context, rec models.CommitRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CommittedAt.IsZero() {
		rec.CommittedAt = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *mongoCommitAuditRepo) ListByProvider(ctx context.Context, providerID string, limit int) ([]models.CommitRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	filter := bson.M{"providerId": providerID}
	opts := options.Find().
		SetSort(bson.D{{Key: "committedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CommitRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.CommitRecord{}
	}
	return records, nil
}
