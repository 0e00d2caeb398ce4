package slots

import "errors"

var (
	// ErrSessionNotFound covers unknown, expired and foreign-provider
	// session lookups alike.
	ErrSessionNotFound = errors.New("editor session not found or expired")

	// ErrCommitInFlight rejects a second commit while one is pending; the
	// second call is refused, never queued.
	ErrCommitInFlight = errors.New("a commit is already in flight for this session")

	// ErrNoPendingChanges means the change set is empty.
	ErrNoPendingChanges = errors.New("no pending changes to commit")

	// ErrOutOfRange is a caller contract violation on day or hour indices.
	ErrOutOfRange = errors.New("day or hour index out of range")

	// ErrInvalidWeekStart rejects a malformed week anchor date.
	ErrInvalidWeekStart = errors.New("weekStart must be a valid YYYY-MM-DD date")
)
