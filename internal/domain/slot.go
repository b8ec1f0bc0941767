package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// Working day grid. The last bookable start is 18:30.
const (
	WorkdayStartMinutes = 10 * 60
	WorkdayEndMinutes   = 19 * 60
	SlotStepMinutes     = 30
)

// Period groups slots of a day for presentation
type Period string

const (
	PeriodMorning Period = "morning"
	PeriodDay     Period = "day"
	PeriodEvening Period = "evening"
)

// Periods in display order
func Periods() []Period {
	return []Period{PeriodMorning, PeriodDay, PeriodEvening}
}

// Title human-readable period name
func (p Period) Title() string {
	switch p {
	case PeriodMorning:
		return "Утро"
	case PeriodDay:
		return "День"
	case PeriodEvening:
		return "Вечер"
	default:
		return string(p)
	}
}

// PeriodOf morning < 12:00, day 12:00-16:59, evening >= 17:00
func PeriodOf(t types.TimeString) Period {
	m := t.Minutes()
	switch {
	case m < 12*60:
		return PeriodMorning
	case m < 17*60:
		return PeriodDay
	default:
		return PeriodEvening
	}
}

// DaySlots returns the ordered slot grid of a working day.
// The grid is the same for every day.
func DaySlots() []types.TimeString {
	slots := make([]types.TimeString, 0, (WorkdayEndMinutes-WorkdayStartMinutes)/SlotStepMinutes)
	for m := WorkdayStartMinutes; m < WorkdayEndMinutes; m += SlotStepMinutes {
		t, _ := types.FromMinutes(m)
		slots = append(slots, t)
	}
	return slots
}

// IsOnGrid reports whether t is a bookable start time of the working day
func IsOnGrid(t types.TimeString) bool {
	if t.Validate() != nil {
		return false
	}
	m := t.Minutes()
	return m >= WorkdayStartMinutes && m < WorkdayEndMinutes && (m-WorkdayStartMinutes)%SlotStepMinutes == 0
}
