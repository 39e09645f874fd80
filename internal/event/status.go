package event

import "time"

// Status is an event's temporal state derived from its scheduled window.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	// StatusCancelled is a reachable value in the schema but no code path
	// sets it; it is reserved for a future cancellation flow.
	StatusCancelled Status = "cancelled"
)

// DeriveStatus computes the temporal status of an event window. All inputs
// are normalized to UTC before comparison, so timestamps carrying offsets
// compare correctly.
func DeriveStatus(now, start, end time.Time) Status {
	now = now.UTC()
	start = start.UTC()
	end = end.UTC()

	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.After(end):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}
