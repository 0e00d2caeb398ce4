// File: database/repository/audit/interface.go
package auditRepo

import (
	"context"

	"autoslot/database"
	"autoslot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CommitAuditRepository persists the trail of batch commits pushed to the
// booking platform.
type CommitAuditRepository interface {
	Insert(ctx context.Context, rec models.CommitRecord) error
	ListByProvider(ctx context.Context, providerID string, limit int) ([]models.CommitRecord, error)
}

type mongoCommitAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoCommitAuditRepo constructs a new MongoDB CommitAuditRepository.
func NewMongoCommitAuditRepo() CommitAuditRepository {
	db := database.MongoClient.Database("autoslot")
	return &mongoCommitAuditRepo{
		coll: db.Collection("commit_audit"),
	}
}
