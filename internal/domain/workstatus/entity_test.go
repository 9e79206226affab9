package workstatus

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_JSONUsesNames(t *testing.T) {
	body, err := json.Marshal(struct {
		Status Status `json:"status"`
	}{StatusLateAndEarly})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"LATE_AND_EARLY"}`, string(body))

	var decoded struct {
		Status Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"SICK_LEAVE"}`), &decoded))
	assert.Equal(t, StatusSickLeave, decoded.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"ON_TIME"}`), &decoded))
	_, err = Status(200).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatus_ManualGroups(t *testing.T) {
	for _, name := range StatusValues() {
		s, err := ParseStatus(name)
		require.NoError(t, err)
		if s.IsManualOnly() {
			assert.True(t, s.IsManuallySettable(), name)
		}
	}
	assert.False(t, StatusDataError.IsManuallySettable())
	assert.False(t, StatusFutureDay.IsManuallySettable())
	assert.True(t, StatusAbsent.IsManualOnly())
	assert.False(t, StatusComplete.IsManualOnly())
}

func TestDayTypeOf(t *testing.T) {
	friday := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, DayTypeWeekday, DayTypeOf(friday, false))
	assert.Equal(t, DayTypeSaturday, DayTypeOf(friday.AddDate(0, 0, 1), false))
	assert.Equal(t, DayTypeSunday, DayTypeOf(friday.AddDate(0, 0, 2), false))
	assert.Equal(t, DayTypeHoliday, DayTypeOf(friday.AddDate(0, 0, 2), true))
	assert.Equal(t, DayTypeWeekday, ParseDayType("bogus"))
}

func TestOvertimeBuckets_SetRoutesOnePair(t *testing.T) {
	var b OvertimeBuckets
	b.Set(DayTypeSunday, 1.5, 0.5)
	day, night := b.Pair(DayTypeSunday)
	assert.Equal(t, 1.5, day)
	assert.Equal(t, 0.5, night)
	assert.Equal(t, 2.0, b.Total())

	wd, wn := b.Pair(DayTypeWeekday)
	assert.Zero(t, wd+wn)
}

func TestNewRangeSummary(t *testing.T) {
	days := []DailyWorkStatus{
		{Status: StatusComplete, WorkedHours: 9, StandardDayHours: 8, TotalOvertimeHours: 1, EstimatedOvertimePay: decimal.RequireFromString("75.00")},
		{Status: StatusLate, WorkedHours: 7, StandardDayHours: 5, StandardNightHours: 2, NightHours: 2, EstimatedOvertimePay: decimal.Zero},
		{Status: StatusComplete, WorkedHours: 8, StandardDayHours: 8, SundayHours: 8, EstimatedOvertimePay: decimal.RequireFromString("0.10")},
	}

	s := NewRangeSummary(days)
	assert.InDelta(t, 24.0, s.WorkedHours, 1e-9)
	assert.InDelta(t, 23.0, s.StandardHours, 1e-9)
	assert.InDelta(t, 1.0, s.OvertimeHours, 1e-9)
	assert.InDelta(t, 2.0, s.NightHours, 1e-9)
	assert.InDelta(t, 8.0, s.SundayHours, 1e-9)
	assert.Equal(t, "75.10", s.EstimatedOvertimePay)
	assert.Equal(t, map[string]int{"COMPLETE": 2, "LATE": 1}, s.StatusCounts)

	empty := NewRangeSummary(nil)
	assert.Equal(t, "0.00", empty.EstimatedOvertimePay)
	assert.NotNil(t, empty.StatusCounts)
}

func TestManualStatusRequest_Validate(t *testing.T) {
	in, out := "2025-03-10T08:00:00Z", "2025-03-10T07:00:00Z"
	req := ManualStatusRequest{EmployeeID: "emp-1", Date: "2025-03-10", Status: "DATA_ERROR", CheckIn: &in, CheckOut: &out}

	err := req.Validate()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "check_out")

	req.Status = "LEAVE"
	req.CheckIn, req.CheckOut = nil, nil
	assert.NoError(t, req.Validate())
}

func TestRangeStatusRequest_Validate(t *testing.T) {
	req := RangeStatusRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"}
	start, end, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, 30, int(end.Sub(start).Hours()/24))

	req.EndDate = "2025-02-28"
	_, _, err = req.Validate()
	assert.Error(t, err)

	req.EndDate = "2025-06-30"
	_, _, err = req.Validate()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, ErrDateRangeTooLarge.Error(), errs.ToMap()["end_date"])
}
