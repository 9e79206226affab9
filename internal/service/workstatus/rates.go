package workstatus

import (
	"math"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/workstatus"
	"github.com/shopspring/decimal"
)

// SplitOvertimeTiers splits overtime into hours paid at the base rate and hours past
// the threshold. With tiering disabled everything is base rate.
func SplitOvertimeTiers(otHours, thresholdHours float64, tieringEnabled bool) (base, tier2 float64) {
	otHours = math.Max(otHours, 0)
	if !tieringEnabled {
		return otHours, 0
	}
	thresholdHours = math.Max(thresholdHours, 0)
	return math.Min(otHours, thresholdHours), math.Max(otHours-thresholdHours, 0)
}

// NightRate combines an overtime rate with the night premium. Unknown rules use sum.
func NightRate(rule settings.NightOvertimeRule, otRatePercent, premiumPercent, fixedNightPercent float64) float64 {
	switch rule {
	case settings.NightRuleMultiply:
		return otRatePercent * (1 + premiumPercent/100)
	case settings.NightRuleFixed:
		return fixedNightPercent
	}
	return otRatePercent + premiumPercent
}

func overtimeRateFor(s settings.UserSettings, dayType workstatus.DayType) settings.OvertimeRate {
	switch workstatus.ParseDayType(string(dayType)) {
	case workstatus.DayTypeSaturday:
		return s.OvertimeRates.Saturday
	case workstatus.DayTypeSunday:
		return s.OvertimeRates.Sunday
	case workstatus.DayTypeHoliday:
		return s.OvertimeRates.Holiday
	}
	return s.OvertimeRates.Weekday
}

func fixedRateFor(s settings.UserSettings, dayType workstatus.DayType) settings.FixedRate {
	switch workstatus.ParseDayType(string(dayType)) {
	case workstatus.DayTypeSaturday:
		return s.FixedRates.Saturday
	case workstatus.DayTypeSunday:
		return s.FixedRates.Sunday
	case workstatus.DayTypeHoliday:
		return s.FixedRates.Holiday
	}
	return s.FixedRates.Weekday
}

// AssignRates resolves tier hours and the day/night rate of each tier for one date.
func AssignRates(otHours float64, dayType workstatus.DayType, s settings.UserSettings) workstatus.OvertimeTiers {
	rate := overtimeRateFor(s, dayType)
	fixed := fixedRateFor(s, dayType)

	var tiers workstatus.OvertimeTiers
	tiers.BaseRateHours, tiers.Tier2RateHours = SplitOvertimeTiers(otHours, rate.ThresholdHours, s.OvertimeTieringEnabled)

	if s.NightOvertimeRule == settings.NightRuleFixed {
		tiers.BaseDayRatePercent = fixed.DayPercent
		tiers.Tier2DayRatePercent = fixed.DayPercent
	} else {
		tiers.BaseDayRatePercent = rate.BaseRatePercent
		tiers.Tier2DayRatePercent = rate.Tier2RatePercent
	}
	tiers.BaseNightRatePercent = NightRate(s.NightOvertimeRule, rate.BaseRatePercent, s.NightPremiumPercent, fixed.NightPercent)
	tiers.Tier2NightRatePercent = NightRate(s.NightOvertimeRule, rate.Tier2RatePercent, s.NightPremiumPercent, fixed.NightPercent)
	return tiers
}

var hundred = decimal.NewFromInt(100)

// EstimateOvertimePay prices a day's overtime. Night hours are spread over both tiers
// by their share of total overtime.
func EstimateOvertimePay(otDay, otNight float64, tiers workstatus.OvertimeTiers, hourlyWage decimal.Decimal) decimal.Decimal {
	total := otDay + otNight
	if total <= 0 || hourlyWage.IsZero() {
		return decimal.Zero
	}
	nightShare := otNight / total

	baseNight := tiers.BaseRateHours * nightShare
	tier2Night := tiers.Tier2RateHours * nightShare

	weighted := decimal.NewFromFloat(tiers.BaseRateHours - baseNight).Mul(decimal.NewFromFloat(tiers.BaseDayRatePercent)).
		Add(decimal.NewFromFloat(baseNight).Mul(decimal.NewFromFloat(tiers.BaseNightRatePercent))).
		Add(decimal.NewFromFloat(tiers.Tier2RateHours - tier2Night).Mul(decimal.NewFromFloat(tiers.Tier2DayRatePercent))).
		Add(decimal.NewFromFloat(tier2Night).Mul(decimal.NewFromFloat(tiers.Tier2NightRatePercent)))

	return weighted.Mul(hourlyWage).Div(hundred).Round(2)
}
