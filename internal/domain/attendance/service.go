package attendance

import (
	"context"
)

// AttendanceService records and lists attendance events
type AttendanceService interface {
	// RecordEvent appends an event, resolving its work date, and triggers a recompute
	// of that date's work status
	RecordEvent(ctx context.Context, req RecordEventRequest) (EventResponse, error)

	// ListEvents returns the events of one work date
	ListEvents(ctx context.Context, filter ListEventsFilter) (ListEventsResponse, error)
}
