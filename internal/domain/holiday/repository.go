package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListBetween returns holidays with start <= date <= end, ordered by date
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
}
