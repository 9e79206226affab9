package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/timeinterval"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	recomputer workstatus.Recomputer
}

func toShiftResponse(s shift.Shift) shift.ShiftResponse {
	workDays := s.WorkDays
	if workDays == nil {
		workDays = []int{}
	}
	return shift.ShiftResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		Name:          s.Name,
		StartTime:     s.StartTime,
		OfficeEndTime: s.OfficeEndTime,
		EndTime:       s.EndTime,
		BreakMinutes:  s.BreakMinutes,
		WorkDays:      workDays,
		IsActive:      s.IsActive,
		IsOvernight:   timeinterval.IsOvernight(s.StartTime, s.MaxEndTime()),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.List(ctx, req.EmployeeID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	for _, e := range existing {
		if e.Name == req.Name {
			return shift.ShiftResponse{}, shift.ErrShiftNameExists
		}
	}

	newShift := shift.Shift{
		EmployeeID:    req.EmployeeID,
		Name:          req.Name,
		StartTime:     req.StartTime,
		OfficeEndTime: req.OfficeEndTime,
		EndTime:       req.EndTime,
		BreakMinutes:  *req.BreakMinutes,
		WorkDays:      append([]int(nil), req.WorkDays...),
	}

	created, err := s.ShiftRepository.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	if req.Activate || len(existing) == 0 {
		return s.Activate(ctx, created.ID, req.EmployeeID)
	}
	return toShiftResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.ShiftRepository.GetByID(ctx, req.ID, req.EmployeeID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	req.Apply(&current)
	if _, _, _, err := current.Clocks(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if err := s.ShiftRepository.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	if current.IsActive {
		s.recompute(ctx, req.EmployeeID)
	}

	updated, err := s.ShiftRepository.GetByID(ctx, req.ID, req.EmployeeID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return toShiftResponse(updated), nil
}

// GetActive implements shift.ShiftService.
func (s *ShiftServiceImpl) GetActive(ctx context.Context, employeeID string) (shift.ShiftResponse, error) {
	active, err := s.ShiftRepository.GetActiveShift(ctx, employeeID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return toShiftResponse(active), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context, employeeID string) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, toShiftResponse(sh))
	}
	return responses, nil
}

// Activate implements shift.ShiftService.
func (s *ShiftServiceImpl) Activate(ctx context.Context, id string, employeeID string) (shift.ShiftResponse, error) {
	target, err := s.ShiftRepository.GetByID(ctx, id, employeeID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if !target.IsActive {
		if err := s.ShiftRepository.Activate(ctx, id, employeeID); err != nil {
			return shift.ShiftResponse{}, fmt.Errorf("failed to activate shift: %w", err)
		}
		target.IsActive = true
		slog.Info("Shift activated", "employee_id", employeeID, "shift_id", id, "shift", target.Name)
		s.recompute(ctx, employeeID)
	}
	return toShiftResponse(target), nil
}

// CreateDefaults implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateDefaults(ctx context.Context, employeeID string) ([]shift.ShiftResponse, error) {
	existing, err := s.ShiftRepository.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[e.Name] = true
	}

	var created []shift.ShiftResponse
	for _, def := range fixtures.GetDefaultShifts(employeeID) {
		if taken[def.Name] {
			slog.Debug("Default shift already exists", "employee_id", employeeID, "shift", def.Name)
			continue
		}
		sh, err := s.ShiftRepository.Create(ctx, def)
		if err != nil {
			slog.Warn("Failed to create default shift", "employee_id", employeeID, "shift", def.Name, "error", err)
			continue
		}
		if def.Name == fixtures.DefaultShiftName && len(existing) == 0 {
			if err := s.ShiftRepository.Activate(ctx, sh.ID, employeeID); err != nil {
				return nil, fmt.Errorf("failed to activate default shift: %w", err)
			}
			sh.IsActive = true
		}
		created = append(created, toShiftResponse(sh))
	}

	slog.Info("Seeded default shifts", "employee_id", employeeID, "count", len(created))
	return created, nil
}

// recompute refreshes recent work statuses; a failure leaves stale statuses behind but
// does not undo the shift change.
func (s *ShiftServiceImpl) recompute(ctx context.Context, employeeID string) {
	if s.recomputer == nil {
		return
	}
	if err := s.recomputer.RecomputeAfterShiftChange(ctx, employeeID); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Error("Failed to recompute work statuses after shift change", "employee_id", employeeID, "error", err)
	}
}

func NewShiftService(shiftRepo shift.ShiftRepository, recomputer workstatus.Recomputer) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: shiftRepo,
		recomputer:      recomputer,
	}
}
