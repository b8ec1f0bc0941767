package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var msk = time.FixedZone("MSK", 3*60*60)

func newPolicy() *Policy {
	return NewPolicy(msk, 60, 0)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, msk)
}

func TestFreeSlots_FutureDateAllFree(t *testing.T) {
	p := newPolicy()
	now := time.Date(2024, 6, 9, 20, 0, 0, 0, msk)

	slots := p.FreeSlots(day(2024, 6, 10), nil, now)

	assert.Len(t, slots, 18)
	assert.Equal(t, domain.DaySlots(), slots)
}

func TestFreeSlots_PastDateEmpty(t *testing.T) {
	p := newPolicy()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, msk)

	slots := p.FreeSlots(day(2024, 6, 9), nil, now)

	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFreeSlots_RemovesOccupied(t *testing.T) {
	p := newPolicy()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, msk)

	slots := p.FreeSlots(day(2024, 6, 10), []types.TimeString{"14:00", "10:00"}, now)

	assert.Len(t, slots, 16)
	assert.NotContains(t, slots, types.TimeString("14:00"))
	assert.NotContains(t, slots, types.TimeString("10:00"))
	assert.Equal(t, types.TimeString("10:30"), slots[0])
}

func TestFreeSlots_TodayLeadTime(t *testing.T) {
	p := newPolicy()
	now := time.Date(2024, 6, 10, 13, 10, 0, 0, msk)

	slots := p.FreeSlots(day(2024, 6, 10), nil, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("14:30"), slots[0])
	for _, s := range slots {
		moment := s.On(day(2024, 6, 10), msk)
		assert.False(t, moment.Before(now.Add(time.Hour)), "slot %s violates lead time", s)
	}
}

func TestFreeSlots_LeadTimeBoundaryIsInclusive(t *testing.T) {
	p := newPolicy()
	now := time.Date(2024, 6, 10, 13, 0, 0, 0, msk)

	slots := p.FreeSlots(day(2024, 6, 10), nil, now)

	assert.Equal(t, types.TimeString("14:00"), slots[0])
}

func TestFreeSlots_NowInOtherZone(t *testing.T) {
	p := newPolicy()
	// 10:10 UTC = 13:10 MSK
	now := time.Date(2024, 6, 10, 10, 10, 0, 0, time.UTC)

	slots := p.FreeSlots(day(2024, 6, 10), nil, now)

	assert.Equal(t, types.TimeString("14:30"), slots[0])
}

func TestValidateSlot(t *testing.T) {
	now := time.Date(2024, 6, 10, 13, 10, 0, 0, msk)

	tests := []struct {
		name    string
		policy  *Policy
		date    time.Time
		time    types.TimeString
		wantErr error
		field   string
	}{
		{name: "ok tomorrow", policy: newPolicy(), date: day(2024, 6, 11), time: "10:00"},
		{name: "ok today after lead", policy: newPolicy(), date: day(2024, 6, 10), time: "14:30"},
		{name: "malformed time", policy: newPolicy(), date: day(2024, 6, 11), time: "1400", wantErr: ErrInvalidTime, field: "time"},
		{name: "before opening", policy: newPolicy(), date: day(2024, 6, 11), time: "09:30", wantErr: ErrOutsideWorkingHours, field: "time"},
		{name: "closing time", policy: newPolicy(), date: day(2024, 6, 11), time: "19:00", wantErr: ErrOutsideWorkingHours, field: "time"},
		{name: "off grid", policy: newPolicy(), date: day(2024, 6, 11), time: "10:15", wantErr: ErrOutsideWorkingHours, field: "time"},
		{name: "past date", policy: newPolicy(), date: day(2024, 6, 9), time: "12:00", wantErr: ErrDateInPast, field: "date"},
		{name: "inside lead time", policy: newPolicy(), date: day(2024, 6, 10), time: "14:00", wantErr: ErrTooLate, field: "time"},
		{name: "beyond horizon", policy: NewPolicy(msk, 60, 7), date: day(2024, 6, 18), time: "12:00", wantErr: ErrDateTooFar, field: "date"},
		{name: "horizon edge", policy: NewPolicy(msk, 60, 7), date: day(2024, 6, 17), time: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.ValidateSlot(tt.date, tt.time, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.field, domain.FieldOf(err))
		})
	}
}

func TestGroupByPeriod(t *testing.T) {
	groups := GroupByPeriod([]types.TimeString{"10:00", "11:30", "12:00", "17:00", "18:30"})

	require.Len(t, groups, 3)
	assert.Equal(t, domain.PeriodMorning, groups[0].Period)
	assert.Equal(t, []types.TimeString{"10:00", "11:30"}, groups[0].Slots)
	assert.Equal(t, domain.PeriodDay, groups[1].Period)
	assert.Equal(t, []types.TimeString{"12:00"}, groups[1].Slots)
	assert.Equal(t, domain.PeriodEvening, groups[2].Period)
	assert.Equal(t, []types.TimeString{"17:00", "18:30"}, groups[2].Slots)
}

func TestGroupByPeriod_OmitsEmpty(t *testing.T) {
	groups := GroupByPeriod([]types.TimeString{"17:30"})

	require.Len(t, groups, 1)
	assert.Equal(t, domain.PeriodEvening, groups[0].Period)
	assert.Empty(t, GroupByPeriod(nil))
}
