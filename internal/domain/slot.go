package domain

import "time"

// TimeSlot represents a structural bookable interval for a technician.
// Slots are generated fresh per query and never persisted
type TimeSlot struct {
	Start           time.Time
	End             time.Time
	TechnicianID    int64
	DurationMinutes int
}

// Contains returns true if t lies within the slot (half-open interval)
func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}
