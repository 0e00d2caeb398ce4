package slots

import (
	"context"
	"fmt"
	"time"

	"autoslot/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenSession fetches the provider's day-records from the platform, merges
// them into the requested week window and registers a fresh editor session.
// A fetch failure opens no session; there is no default-schedule fallback
// for that case, unlike a legitimately empty server list.
func (s *DefaultEditorService) OpenSession(ctx context.Context, providerID, weekStart string) (*models.EditorSessionView, error) {
	anchor, err := time.Parse(models.DateLayout, weekStart)
	if err != nil {
		return nil, ErrInvalidWeekStart
	}

	serverDays, err := s.API.GetSlots(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch slots: %w", err)
	}

	ed := newEditor(providerID, anchor, serverDays)
	s.Store.Put(ed)
	return ed.View(), nil
}

func (s *DefaultEditorService) GetSession(providerID, sessionID string) (*models.EditorSessionView, error) {
	ed, err := s.Store.Get(providerID, sessionID)
	if err != nil {
		return nil, err
	}
	return ed.View(), nil
}

func (s *DefaultEditorService) CloseSession(providerID, sessionID string) error {
	if _, err := s.Store.Get(providerID, sessionID); err != nil {
		return err
	}
	s.Store.Delete(sessionID)
	return nil
}

func (s *DefaultEditorService) ToggleHour(providerID, sessionID string, dayIndex, hour int) (*models.EditorSessionView, error) {
	ed, err := s.Store.Get(providerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ed.ToggleHour(dayIndex, hour); err != nil {
		return nil, err
	}
	return ed.View(), nil
}

func (s *DefaultEditorService) SetEmployees(providerID, sessionID string, dayIndex, count int) (*models.EditorSessionView, error) {
	ed, err := s.Store.Get(providerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ed.SetEmployees(dayIndex, count); err != nil {
		return nil, err
	}
	return ed.View(), nil
}

// Commit pushes the change-set snapshot upstream in one batch. On transport
// or server failure every piece of local state survives untouched and the
// session stays dirty for a retry; nothing is retried automatically.
func (s *DefaultEditorService) Commit(ctx context.Context, providerID, sessionID string) (*models.EditorSessionView, error) {
	ed, err := s.Store.Get(providerID, sessionID)
	if err != nil {
		return nil, err
	}

	ordered, snapshot, err := ed.beginCommit()
	if err != nil {
		return nil, err
	}

	echoed, err := s.API.UpdateSlots(ctx, providerID, ordered)
	if err != nil {
		ed.abortCommit()
		return nil, fmt.Errorf("commit slots: %w", err)
	}

	ed.completeCommit(snapshot, echoed)
	s.recordCommit(ed, ordered)
	return ed.View(), nil
}

func (s *DefaultEditorService) Discard(providerID, sessionID string) (*models.EditorSessionView, error) {
	ed, err := s.Store.Get(providerID, sessionID)
	if err != nil {
		return nil, err
	}
	ed.Discard()
	return ed.View(), nil
}

func (s *DefaultEditorService) History(ctx context.Context, providerID string, limit int) ([]models.CommitRecord, error) {
	if s.Audit == nil {
		return []models.CommitRecord{}, nil
	}
	records, err := s.Audit.ListByProvider(ctx, providerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list commit history: %w", err)
	}
	return records, nil
}

func (s *DefaultEditorService) recordCommit(ed *Editor, committed []models.DaySchedule) {
	if s.Recorder == nil {
		return
	}

	view := ed.View()
	dates := make([]string, len(committed))
	for i, day := range committed {
		dates[i] = day.Date
	}

	rec := models.CommitRecord{
		ID:             uuid.New().String(),
		ProviderID:     view.ProviderID,
		SessionID:      view.SessionID,
		WeekStart:      view.WeekStart,
		Dates:          dates,
		DaysSaved:      len(dates),
		AvailableHours: view.Stats.AvailableHours,
		CommittedAt:    time.Now().UTC(),
	}

	// Audit is best effort; a full queue never fails the commit.
	if err := s.Recorder.Record(rec); err != nil {
		zap.L().Warn("Failed to enqueue commit record",
			zap.String("providerID", rec.ProviderID),
			zap.Error(err))
	}
}
