package lifecycle

import (
	"time"

	dbmodels "smarthire-backend/models/db"
)

// NextTimestamp returns the timestamp for a new history entry: now truncated
// to milliseconds and never earlier than the last recorded entry.
func NextTimestamp(history []dbmodels.AuditLog, now time.Time) time.Time {
	at := now.UTC().Truncate(time.Millisecond)
	if len(history) == 0 {
		return at
	}
	last := history[len(history)-1].Timestamp
	if at.Before(last) {
		return last
	}
	return at
}

// afterTimestamp returns a timestamp strictly later than prev.
func afterTimestamp(prev, now time.Time) time.Time {
	at := now.UTC().Truncate(time.Millisecond)
	if at.After(prev) {
		return at
	}
	return prev.Add(time.Millisecond)
}
