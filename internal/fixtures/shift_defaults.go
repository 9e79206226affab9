package fixtures

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT SHIFTS
// ==========================================

// DefaultShiftName is the shift activated for a new employee
const DefaultShiftName = "Standard Office Hours"

// GetDefaultShifts returns the shift templates seeded for a new employee
func GetDefaultShifts(employeeID string) []shift.Shift {
	return []shift.Shift{
		// Standard Office Hours - Monday to Friday, overtime until 20:00
		{
			EmployeeID:    employeeID,
			Name:          DefaultShiftName,
			StartTime:     "08:00",
			OfficeEndTime: "17:00",
			EndTime:       strPtr("20:00"),
			BreakMinutes:  60,
			WorkDays:      []int{1, 2, 3, 4, 5},
		},

		// Night Shift - crosses midnight, overtime until 07:00
		{
			EmployeeID:    employeeID,
			Name:          "Night Shift",
			StartTime:     "22:00",
			OfficeEndTime: "06:00",
			EndTime:       strPtr("07:00"),
			BreakMinutes:  30,
			WorkDays:      []int{1, 2, 3, 4, 5},
		},

		// Half Day Saturday
		{
			EmployeeID:    employeeID,
			Name:          "Saturday Half Day",
			StartTime:     "08:00",
			OfficeEndTime: "13:00",
			BreakMinutes:  0,
			WorkDays:      []int{6},
		},
	}
}

// ==========================================
// DEFAULT HOLIDAYS
// ==========================================

// GetDefaultHolidays returns fixed-date public holidays for year
func GetDefaultHolidays(year int) []holiday.Holiday {
	date := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return []holiday.Holiday{
		{Date: date(time.January, 1), Name: "New Year's Day"},
		{Date: date(time.May, 1), Name: "Labour Day"},
		{Date: date(time.June, 1), Name: "Pancasila Day"},
		{Date: date(time.August, 17), Name: "Independence Day"},
		{Date: date(time.December, 25), Name: "Christmas Day"},
	}
}
