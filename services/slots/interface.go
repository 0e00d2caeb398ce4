package slots

import (
	"context"
	"fmt"

	auditRepo "autoslot/database/repository/audit"
	"autoslot/models"
	"autoslot/upstream"
)

// EditorService is the slot-management surface exposed to the HTTP layer.
type EditorService interface {
	// Session lifecycle
	OpenSession(ctx context.Context, providerID, weekStart string) (*models.EditorSessionView, error)
	GetSession(providerID, sessionID string) (*models.EditorSessionView, error)
	CloseSession(providerID, sessionID string) error

	// Mutations
	ToggleHour(providerID, sessionID string, dayIndex, hour int) (*models.EditorSessionView, error)
	SetEmployees(providerID, sessionID string, dayIndex, count int) (*models.EditorSessionView, error)

	// Synchronization
	Commit(ctx context.Context, providerID, sessionID string) (*models.EditorSessionView, error)
	Discard(providerID, sessionID string) (*models.EditorSessionView, error)

	// Audit trail
	History(ctx context.Context, providerID string, limit int) ([]models.CommitRecord, error)
}

// CommitRecorder accepts audit entries for successful commits. The
// production implementation enqueues onto the async worker queue so commits
// never block on the audit store.
type CommitRecorder interface {
	Record(rec models.CommitRecord) error
}

// DefaultEditorService is the production implementation.
type DefaultEditorService struct {
	API      upstream.SlotAPI
	Store    *SessionStore
	Audit    auditRepo.CommitAuditRepository
	Recorder CommitRecorder
}

// NewDefaultEditorService wires the service. Audit and Recorder may be nil;
// commits then simply leave no trail.
func NewDefaultEditorService(api upstream.SlotAPI, store *SessionStore, audit auditRepo.CommitAuditRepository, recorder CommitRecorder) (*DefaultEditorService, error) {
	if api == nil || store == nil {
		return nil, fmt.Errorf("editor service initialization error: one or more dependencies are nil")
	}
	return &DefaultEditorService{
		API:      api,
		Store:    store,
		Audit:    audit,
		Recorder: recorder,
	}, nil
}
