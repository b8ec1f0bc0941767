package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Policy правила записи: зона салона, минимальный запас времени и горизонт записи
// Единственное место, где проверяются дата и время слота
type Policy struct {
	Location    *time.Location
	LeadTime    time.Duration
	HorizonDays int // 0 = без ограничения
}

// NewPolicy создаёт политику; nil location означает UTC
func NewPolicy(loc *time.Location, leadMinutes, horizonDays int) *Policy {
	if loc == nil {
		loc = time.UTC
	}
	return &Policy{
		Location:    loc,
		LeadTime:    time.Duration(leadMinutes) * time.Minute,
		HorizonDays: horizonDays,
	}
}

// Today полночь текущего дня в зоне салона
func (p *Policy) Today(now time.Time) time.Time {
	return types.DateOnly(now.In(p.Location))
}

// NormalizeDate переносит календарную дату в зону салона
func (p *Policy) NormalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, p.Location)
}

// SlotMoment момент начала слота
func (p *Policy) SlotMoment(date time.Time, t types.TimeString) time.Time {
	return t.On(date, p.Location)
}

// IsPastDate дата раньше сегодняшней
func (p *Policy) IsPastDate(date, now time.Time) bool {
	return p.NormalizeDate(date).Before(p.Today(now))
}

// IsBeyondHorizon дата дальше разрешённого горизонта записи
func (p *Policy) IsBeyondHorizon(date, now time.Time) bool {
	if p.HorizonDays <= 0 {
		return false
	}
	maxDate := p.Today(now).AddDate(0, 0, p.HorizonDays)
	return p.NormalizeDate(date).After(maxDate)
}

// passesLeadTime слот начинается не раньше now + LeadTime
func (p *Policy) passesLeadTime(date time.Time, t types.TimeString, now time.Time) bool {
	return !p.SlotMoment(p.NormalizeDate(date), t).Before(now.Add(p.LeadTime))
}

// ValidateSlot проверяет, что слот можно забронировать в момент now
func (p *Policy) ValidateSlot(date time.Time, t types.TimeString, now time.Time) error {
	if err := t.Validate(); err != nil {
		return domain.NewFieldError("time", fmt.Errorf("%w: %w", ErrInvalidTime, err))
	}
	if !domain.IsOnGrid(t) {
		return domain.NewFieldError("time", fmt.Errorf("%w: %s", ErrOutsideWorkingHours, t))
	}
	if p.IsPastDate(date, now) {
		return domain.NewFieldError("date", ErrDateInPast)
	}
	if p.IsBeyondHorizon(date, now) {
		return domain.NewFieldError("date", fmt.Errorf("%w: can only book %d days ahead", ErrDateTooFar, p.HorizonDays))
	}
	if !p.passesLeadTime(date, t, now) {
		return domain.NewFieldError("time", fmt.Errorf("%w: must book at least %s ahead", ErrTooLate, p.LeadTime))
	}
	return nil
}

// FreeSlots сетка дня без занятых слотов и без слотов, нарушающих запас времени
// Для прошедшей даты возвращает пустой список
func (p *Policy) FreeSlots(date time.Time, occupied []types.TimeString, now time.Time) []types.TimeString {
	free := make([]types.TimeString, 0)
	if p.IsPastDate(date, now) {
		return free
	}

	busy := make(map[types.TimeString]struct{}, len(occupied))
	for _, t := range occupied {
		busy[t] = struct{}{}
	}

	for _, slot := range domain.DaySlots() {
		if _, taken := busy[slot]; taken {
			continue
		}
		if !p.passesLeadTime(date, slot, now) {
			continue
		}
		free = append(free, slot)
	}

	return free
}

// PeriodSlots слоты одного периода дня
type PeriodSlots struct {
	Period domain.Period
	Slots  []types.TimeString
}

// GroupByPeriod перегруппировка слотов по периодам; пустые периоды опускаются
func GroupByPeriod(slots []types.TimeString) []PeriodSlots {
	byPeriod := make(map[domain.Period][]types.TimeString, 3)
	for _, s := range slots {
		period := domain.PeriodOf(s)
		byPeriod[period] = append(byPeriod[period], s)
	}

	result := make([]PeriodSlots, 0, len(byPeriod))
	for _, period := range domain.Periods() {
		if len(byPeriod[period]) == 0 {
			continue
		}
		result = append(result, PeriodSlots{Period: period, Slots: byPeriod[period]})
	}
	return result
}
