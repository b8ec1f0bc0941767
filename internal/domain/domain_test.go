package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "+7 (917) 902-38-00", want: "+79179023800"},
		{raw: "8 917 902 38 00", want: "+79179023800"},
		{raw: "9179023800", want: "+79179023800"},
		{raw: "+44 20 7946 0958", want: "+442079460958"},
		{raw: "12345", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "+1 234 567 890 123 456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("anna@example.com"))
	assert.ErrorIs(t, ValidateEmail("anna@"), ErrValidation)
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("anna@localhost"))
	assert.Error(t, ValidateEmail("an na@example.com"))
}

func TestAppointmentStatus_Transitions(t *testing.T) {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestAppointmentStatus_IsSlotOccupying(t *testing.T) {
	assert.True(t, StatusPending.IsSlotOccupying())
	assert.True(t, StatusConfirmed.IsSlotOccupying())
	assert.False(t, StatusCancelled.IsSlotOccupying())
	assert.False(t, StatusCompleted.IsSlotOccupying())
	assert.False(t, StatusNoShow.IsSlotOccupying())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("in_progress")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDaySlots(t *testing.T) {
	slots := DaySlots()

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("18:30"), slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, SlotStepMinutes, slots[i].Minutes()-slots[i-1].Minutes())
	}
}

func TestIsOnGrid(t *testing.T) {
	assert.True(t, IsOnGrid("10:00"))
	assert.True(t, IsOnGrid("18:30"))
	assert.False(t, IsOnGrid("19:00"))
	assert.False(t, IsOnGrid("09:30"))
	assert.False(t, IsOnGrid("10:15"))
	assert.False(t, IsOnGrid("bad"))
}

func TestPeriodOf(t *testing.T) {
	assert.Equal(t, PeriodMorning, PeriodOf("11:30"))
	assert.Equal(t, PeriodDay, PeriodOf("12:00"))
	assert.Equal(t, PeriodDay, PeriodOf("16:30"))
	assert.Equal(t, PeriodEvening, PeriodOf("17:00"))
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NewFieldError("time", fmt.Errorf("taken: %w", ErrConflict)))

	assert.Equal(t, ErrConflict, KindOf(wrapped))
	assert.Equal(t, "time", FieldOf(wrapped))
	assert.Equal(t, ErrInternal, KindOf(errors.New("boom")))
	assert.Nil(t, KindOf(nil))
}
