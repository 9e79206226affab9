package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WorkStatusHandler interface {
	GetDay(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	RecomputeRange(w http.ResponseWriter, r *http.Request)
	SetManual(w http.ResponseWriter, r *http.Request)
	ClearManual(w http.ResponseWriter, r *http.Request)
}

type workStatusHandlerImpl struct {
	workStatusService workstatus.WorkStatusService
}

func NewWorkStatusHandler(workStatusService workstatus.WorkStatusService) WorkStatusHandler {
	return &workStatusHandlerImpl{
		workStatusService: workStatusService,
	}
}

func dateParam(r *http.Request) (string, error) {
	date := chi.URLParam(r, "date")
	if _, ok := validator.IsValidDate(date); !ok {
		return "", validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return date, nil
}

// GetDay implements WorkStatusHandler. The date is recomputed unless it carries a
// manual override.
func (h *workStatusHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	parsed, _ := validator.IsValidDate(date)

	result, err := h.workStatusService.ComputeDailyStatus(r.Context(), middleware.EmployeeIDFromContext(r.Context()), parsed)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workstatus.NewDailyWorkStatusResponse(result))
}

// GetRange implements WorkStatusHandler. Stored records are returned as-is unless
// recompute=true.
func (h *workStatusHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	req := workstatus.RangeStatusRequest{
		EmployeeID: middleware.EmployeeIDFromContext(r.Context()),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if recompute := r.URL.Query().Get("recompute"); recompute != "" {
		req.Recompute, _ = strconv.ParseBool(recompute)
	}
	h.serveRange(w, r, req)
}

// RecomputeRange implements WorkStatusHandler.
func (h *workStatusHandlerImpl) RecomputeRange(w http.ResponseWriter, r *http.Request) {
	var req workstatus.RangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode range request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeIDFromContext(r.Context())
	req.Recompute = true
	h.serveRange(w, r, req)
}

func (h *workStatusHandlerImpl) serveRange(w http.ResponseWriter, r *http.Request, req workstatus.RangeStatusRequest) {
	start, end, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var days []workstatus.DailyWorkStatus
	if req.Recompute {
		days, err = h.workStatusService.ComputeRangeStatus(r.Context(), req.EmployeeID, start, end)
	} else {
		days, err = h.workStatusService.ListRange(r.Context(), req.EmployeeID, start, end)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workstatus.NewRangeStatusResponse(start, end, days))
}

// SetManual implements WorkStatusHandler.
func (h *workStatusHandlerImpl) SetManual(w http.ResponseWriter, r *http.Request) {
	var req workstatus.ManualStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode manual status", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeIDFromContext(r.Context())
	req.Date = chi.URLParam(r, "date")

	result, err := h.workStatusService.ManuallySetStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work status overridden", workstatus.NewDailyWorkStatusResponse(result))
}

// ClearManual implements WorkStatusHandler.
func (h *workStatusHandlerImpl) ClearManual(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	parsed, _ := validator.IsValidDate(date)

	result, err := h.workStatusService.ClearManualStatus(r.Context(), middleware.EmployeeIDFromContext(r.Context()), parsed)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manual override cleared", workstatus.NewDailyWorkStatusResponse(result))
}
