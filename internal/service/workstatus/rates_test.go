package workstatus

import (
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitOvertimeTiers(t *testing.T) {
	cases := []struct {
		name                string
		ot, threshold       float64
		enabled             bool
		wantBase, wantTier2 float64
	}{
		{"under threshold", 1.5, 2, true, 1.5, 0},
		{"over threshold", 3, 2, true, 2, 1},
		{"zero threshold", 3, 0, true, 0, 3},
		{"tiering disabled", 3, 2, false, 3, 0},
		{"no overtime", 0, 2, true, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			base, tier2 := SplitOvertimeTiers(c.ot, c.threshold, c.enabled)
			assert.InDelta(t, c.wantBase, base, 1e-9)
			assert.InDelta(t, c.wantTier2, tier2, 1e-9)
		})
	}
}

func TestNightRate(t *testing.T) {
	assert.InDelta(t, 180.0, NightRate(settings.NightRuleSum, 150, 30, 999), 1e-9)
	assert.InDelta(t, 195.0, NightRate(settings.NightRuleMultiply, 150, 30, 999), 1e-9)
	assert.InDelta(t, 175.0, NightRate(settings.NightRuleFixed, 150, 30, 175), 1e-9)
	assert.InDelta(t, 180.0, NightRate(settings.NightOvertimeRule("geometric"), 150, 30, 999), 1e-9)
}

func TestAssignRates(t *testing.T) {
	s := settings.DefaultUserSettings("emp")

	tiers := AssignRates(3, workstatus.DayTypeWeekday, s)
	assert.Equal(t, workstatus.OvertimeTiers{
		BaseRateHours:         2,
		Tier2RateHours:        1,
		BaseDayRatePercent:    150,
		BaseNightRatePercent:  180,
		Tier2DayRatePercent:   200,
		Tier2NightRatePercent: 230,
	}, tiers)

	holiday := AssignRates(3, workstatus.DayTypeHoliday, s)
	assert.Equal(t, 0.0, holiday.BaseRateHours)
	assert.Equal(t, 3.0, holiday.Tier2RateHours)
	assert.Equal(t, 300.0, holiday.Tier2DayRatePercent)

	s.NightOvertimeRule = settings.NightRuleFixed
	fixed := AssignRates(1, workstatus.DayTypeSunday, s)
	assert.Equal(t, s.FixedRates.Sunday.DayPercent, fixed.BaseDayRatePercent)
	assert.Equal(t, s.FixedRates.Sunday.NightPercent, fixed.BaseNightRatePercent)
	assert.Equal(t, s.FixedRates.Sunday.NightPercent, fixed.Tier2NightRatePercent)
}

func TestEstimateOvertimePay(t *testing.T) {
	wage := decimal.NewFromInt(100)

	dayOnly := workstatus.OvertimeTiers{BaseRateHours: 2, Tier2RateHours: 1, BaseDayRatePercent: 150, Tier2DayRatePercent: 200}
	assert.True(t, decimal.NewFromInt(500).Equal(EstimateOvertimePay(3, 0, dayOnly, wage)), EstimateOvertimePay(3, 0, dayOnly, wage).String())

	mixed := workstatus.OvertimeTiers{BaseRateHours: 2, BaseDayRatePercent: 150, BaseNightRatePercent: 180}
	got := EstimateOvertimePay(1, 1, mixed, decimal.NewFromInt(10))
	assert.True(t, decimal.NewFromInt(33).Equal(got), got.String())

	assert.True(t, EstimateOvertimePay(0, 0, dayOnly, wage).IsZero())
	assert.True(t, EstimateOvertimePay(3, 0, dayOnly, decimal.Zero).IsZero())
}
