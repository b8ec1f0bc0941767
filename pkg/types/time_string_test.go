package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "10:30", want: "10:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "with seconds", input: "14:00:00", wantErr: true},
		{name: "trailing garbage", input: "14:00:zz", wantErr: true},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "hour overflow", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("18:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:00"), got)

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.True(t, TimeString("17:00").IsAfter("12:00"))
	assert.False(t, TimeString("12:00").IsAfter("12:00"))
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("9:00").Validate())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("11:30:00"))
	assert.Equal(t, TimeString("11:30"), ts)

	require.NoError(t, ts.Scan([]byte("12:00")))
	assert.Equal(t, TimeString("12:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("17:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
	assert.ErrorIs(t, ts.Scan("14:00:zz"), ErrInvalidTimeString)
	assert.ErrorIs(t, ts.Scan("9:30"), ErrInvalidTimeString)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)

	got := TimeString("14:30").On(date, loc)
	assert.Equal(t, time.Date(2024, 6, 10, 14, 30, 0, 0, loc), got)
}
