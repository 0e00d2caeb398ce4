package models

// EditorSessionView is the wire representation of one slot-editing session
// returned to the provider dashboard after every operation.
type EditorSessionView struct {
	SessionID    string       `json:"sessionId"`
	ProviderID   string       `json:"providerId"`
	WeekStart    string       `json:"weekStart"`
	Week         WeekSchedule `json:"week"`
	Stats        WeekStats    `json:"stats"`
	Dirty        bool         `json:"dirty"`
	Saving       bool         `json:"saving"`
	PendingDates []string     `json:"pendingDates,omitempty"`
}

// OpenSessionRequest starts an editing session for the week anchored at
// WeekStart (YYYY-MM-DD).
type OpenSessionRequest struct {
	WeekStart string `json:"weekStart" binding:"required"`
}

// ToggleHourRequest flips one cell of the 7x24 grid.
type ToggleHourRequest struct {
	DayIndex int `json:"dayIndex" binding:"min=0,max=6"`
	Hour     int `json:"hour" binding:"min=0,max=23"`
}

// SetEmployeesRequest updates the staffing count for one day. Counts below
// one are clamped, not rejected.
type SetEmployeesRequest struct {
	DayIndex  int `json:"dayIndex" binding:"min=0,max=6"`
	Employees int `json:"employees"`
}
