package slots

import (
	"time"

	"autoslot/models"
)

// beginCommit snapshots the change set and enters the saving state. It
// returns the snapshot both as a date-ordered batch for the wire and as a
// keyed map for reconciliation. A second beginCommit while one is pending
// is refused with ErrCommitInFlight.
func (e *Editor) beginCommit() ([]models.DaySchedule, map[string]models.DaySchedule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return nil, nil, ErrCommitInFlight
	}
	if len(e.changes) == 0 {
		return nil, nil, ErrNoPendingChanges
	}

	snapshot := make(map[string]models.DaySchedule, len(e.changes))
	ordered := make([]models.DaySchedule, 0, len(e.changes))
	for date, day := range e.changes {
		copied := day.Clone()
		snapshot[date] = copied
		ordered = append(ordered, copied.Clone())
	}
	models.SortByDate(ordered)

	e.saving = true
	e.lastActive = time.Now()
	return ordered, snapshot, nil
}

// abortCommit leaves the week and change set exactly as they were before
// the failed attempt. Only the saving flag is dropped so a retry is
// possible immediately.
func (e *Editor) abortCommit() {
	e.mu.Lock()
	e.saving = false
	e.mu.Unlock()
}

// completeCommit reconciles a successful batch. For each submitted date the
// server's echoed record wins where present, guarding against server-side
// normalization; dates the echo omits keep the submitted optimistic value.
// The last-synced server list is advanced to the committed values so a
// later Discard restores post-commit truth.
//
// A date whose change-set entry diverged from the snapshot while the
// request was in flight keeps its newer local value and stays pending for
// the next commit.
func (e *Editor) completeCommit(snapshot map[string]models.DaySchedule, echoed []models.DaySchedule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	echoByDate := make(map[string]models.DaySchedule, len(echoed))
	for _, day := range echoed {
		echoByDate[models.NormalizeDate(day.Date)] = day
	}

	for date, submitted := range snapshot {
		committed := submitted
		if srv, ok := echoByDate[date]; ok {
			srv.Date = date
			srv.DayName = models.DayNameFor(date)
			srv.NormalizeHours()
			if srv.Employees < 1 {
				srv.Employees = 1
			}
			committed = srv
		}

		e.setServerDay(committed.Clone())

		if current, ok := e.changes[date]; ok && current.Equal(submitted) {
			if idx := e.dayIndexOf(date); idx >= 0 {
				e.week[idx] = committed.Clone()
			}
			delete(e.changes, date)
		}
	}

	e.saving = false
	e.lastActive = time.Now()
}
