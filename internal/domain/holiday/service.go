package holiday

import "context"

type HolidayService interface {
	List(ctx context.Context, filter ListHolidaysFilter) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}
