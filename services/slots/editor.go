package slots

import (
	"sort"
	"sync"
	"time"

	"autoslot/models"

	"github.com/google/uuid"
)

// Editor is one provider's slot-editing session: the editable week, the
// per-date change set and the save state machine (clean -> dirty -> saving).
// All state is owned exclusively by this session and dies with it; the
// platform remains the only durable store.
//
// Mutations are synchronous and serialized by the session mutex, so a
// mutation can never observe another one half-applied. The lock is NOT held
// across the commit network round trip; local edits stay possible while a
// commit is pending and simply ride the next commit.
type Editor struct {
	mu         sync.Mutex
	sessionID  string
	providerID string
	weekStart  time.Time
	week       models.WeekSchedule
	// serverDays is the last server-synced day list, used by Discard. It is
	// updated after every successful commit so a later discard restores the
	// platform's current truth, not the state at session open.
	serverDays []models.DaySchedule
	// changes holds the latest cumulative record per touched date, not a
	// per-toggle event log. Presence means "touched since last save".
	changes    map[string]models.DaySchedule
	saving     bool
	lastActive time.Time
}

func newEditor(providerID string, weekStart time.Time, serverDays []models.DaySchedule) *Editor {
	ed := &Editor{
		sessionID:  uuid.New().String(),
		providerID: providerID,
		weekStart:  weekStart,
		serverDays: cloneDays(serverDays),
		changes:    make(map[string]models.DaySchedule),
		lastActive: time.Now(),
	}
	ed.week = BuildWeek(weekStart, serverDays)
	return ed
}

// SessionID returns the immutable session identifier.
func (e *Editor) SessionID() string { return e.sessionID }

// ProviderID returns the owning provider.
func (e *Editor) ProviderID() string { return e.providerID }

// ToggleHour flips one cell of the grid and upserts the full day record
// into the change set. Toggling twice restores the cell but the date stays
// marked as touched.
func (e *Editor) ToggleHour(dayIndex, hour int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if dayIndex < 0 || dayIndex >= len(e.week) || hour < 0 || hour >= models.HoursPerDay {
		return ErrOutOfRange
	}

	day := &e.week[dayIndex]
	if day.Hours[hour] == models.HourAvailable {
		day.Hours[hour] = models.HourUnavailable
	} else {
		day.Hours[hour] = models.HourAvailable
	}
	e.changes[day.Date] = day.Clone()
	e.lastActive = time.Now()
	return nil
}

// SetEmployees updates a day's staffing count, clamped to a minimum of one,
// and upserts the day into the change set.
func (e *Editor) SetEmployees(dayIndex, count int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if dayIndex < 0 || dayIndex >= len(e.week) {
		return ErrOutOfRange
	}
	if count < 1 {
		count = 1
	}

	day := &e.week[dayIndex]
	day.Employees = count
	e.changes[day.Date] = day.Clone()
	e.lastActive = time.Now()
	return nil
}

// Discard rebuilds the week from the last server-synced day list and clears
// the change set. No fetch happens; it always succeeds.
func (e *Editor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.week = BuildWeek(e.weekStart, e.serverDays)
	e.changes = make(map[string]models.DaySchedule)
	e.lastActive = time.Now()
}

// View snapshots the session for the API response.
func (e *Editor) View() *models.EditorSessionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	pending := make([]string, 0, len(e.changes))
	for date := range e.changes {
		pending = append(pending, date)
	}
	sort.Strings(pending)

	week := e.week.Clone()
	return &models.EditorSessionView{
		SessionID:    e.sessionID,
		ProviderID:   e.providerID,
		WeekStart:    e.weekStart.Format(models.DateLayout),
		Week:         week,
		Stats:        ComputeWeekStats(week),
		Dirty:        len(e.changes) > 0,
		Saving:       e.saving,
		PendingDates: pending,
	}
}

func (e *Editor) touch() {
	e.mu.Lock()
	e.lastActive = time.Now()
	e.mu.Unlock()
}

func (e *Editor) expiredAt(now time.Time, ttl time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastActive) > ttl
}

func (e *Editor) dayIndexOf(date string) int {
	for i := range e.week {
		if e.week[i].Date == date {
			return i
		}
	}
	return -1
}

// setServerDay replaces or appends a day in the last-synced server list.
// Caller holds e.mu.
func (e *Editor) setServerDay(day models.DaySchedule) {
	for i := range e.serverDays {
		if models.NormalizeDate(e.serverDays[i].Date) == day.Date {
			e.serverDays[i] = day
			return
		}
	}
	e.serverDays = append(e.serverDays, day)
}

func cloneDays(days []models.DaySchedule) []models.DaySchedule {
	out := make([]models.DaySchedule, len(days))
	for i, day := range days {
		out[i] = day.Clone()
	}
	return out
}
