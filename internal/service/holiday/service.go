package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func toHolidayResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:   h.ID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}

// List implements holiday.HolidayService.
func (h *HolidayServiceImpl) List(ctx context.Context, filter holiday.ListHolidaysFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	start, _ := time.Parse("2006-01-02", filter.StartDate)
	end, _ := time.Parse("2006-01-02", filter.EndDate)

	holidays, err := h.HolidayRepository.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		responses = append(responses, toHolidayResponse(hd))
	}
	return responses, nil
}

// Create implements holiday.HolidayService.
func (h *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := h.HolidayRepository.Create(ctx, holiday.Holiday{Date: date, Name: req.Name})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Info("Holiday created", "date", req.Date, "name", req.Name)
	return toHolidayResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (h *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return h.HolidayRepository.Delete(ctx, id)
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepo,
	}
}
