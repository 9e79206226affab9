package holiday

import "time"

// Holiday is a calendar-wide public holiday; work on that date uses the holiday
// overtime buckets.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
