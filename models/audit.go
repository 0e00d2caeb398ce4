package models

import "time"

// CommitRecord is the audit entry written after a successful batch commit.
// It captures what was pushed upstream, not the schedule itself; editing
// state stays session-local.
type CommitRecord struct {
	ID             string    `bson:"id" json:"id"`
	ProviderID     string    `bson:"providerId" json:"providerId"`
	SessionID      string    `bson:"sessionId" json:"sessionId"`
	WeekStart      string    `bson:"weekStart" json:"weekStart"`
	Dates          []string  `bson:"dates" json:"dates"`
	DaysSaved      int       `bson:"daysSaved" json:"daysSaved"`
	AvailableHours int       `bson:"availableHours" json:"availableHours"`
	CommittedAt    time.Time `bson:"committedAt" json:"committedAt"`
}
