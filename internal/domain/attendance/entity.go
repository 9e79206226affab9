package attendance

import (
	"time"
)

type EventType string

const (
	EventGoWork   EventType = "go_work"   // left home for work
	EventCheckIn  EventType = "check_in"  // arrived
	EventCheckOut EventType = "check_out" // left
	EventComplete EventType = "complete"  // marked the work day finished
	EventPunch    EventType = "punch"     // single-tap punch, meaning depends on order
)

var EventTypeValues = []string{
	string(EventGoWork),
	string(EventCheckIn),
	string(EventCheckOut),
	string(EventComplete),
	string(EventPunch),
}

// Event is one entry in the append-only attendance log of a work date. WorkDate is the
// calendar day the shift started on, so a 07:10 check-out after a night shift belongs to
// the previous date.
type Event struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	Type       EventType
	Timestamp  time.Time
	Note       *string
	CreatedAt  time.Time
}

// ClosesSession reports whether the event can end a worked interval.
func (t EventType) ClosesSession() bool {
	return t == EventCheckOut || t == EventComplete || t == EventPunch
}
