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
		{name: "valid morning time", input: "09:00", want: "09:00"},
		{name: "valid afternoon time", input: "14:30", want: "14:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "14:60", wantErr: true},
		{name: "with seconds", input: "14:00:00", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "add hour", start: "14:00", minutes: 60, want: "15:00"},
		{name: "add half hour", start: "11:30", minutes: 30, want: "12:00"},
		{name: "cross midnight boundary", start: "23:30", minutes: 60, wantErr: ErrTimeOutOfRange},
		{name: "negative shift", start: "10:00", minutes: -30, want: "09:30"},
		{name: "negative below zero", start: "00:30", minutes: -60, wantErr: ErrTimeOutOfRange},
		{name: "invalid base", start: "bad", minutes: 30, wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("14:00"))
	assert.False(t, TimeString("14:00").IsBefore("14:00"))
	assert.True(t, TimeString("16:30").IsAfter("09:30"))
	assert.False(t, TimeString("09:30").IsAfter("09:30"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, 6, 16, 23, 45, 12, 0, time.UTC)

	got := TimeString("14:00").At(date)

	assert.Equal(t, time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    TimeString
		wantErr bool
	}{
		{name: "postgres time string with seconds", src: "14:00:00", want: "14:00"},
		{name: "short string", src: "09:30", want: "09:30"},
		{name: "bytes", src: []byte("16:30:00"), want: "16:30"},
		{name: "time value", src: time.Date(2025, 6, 16, 11, 30, 0, 0, time.UTC), want: "11:30"},
		{name: "nil", src: nil, want: ""},
		{name: "unsupported type", src: 42, wantErr: true},
		{name: "invalid string", src: "garbage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			err := ts.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("14:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "14:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:99").Value()
	require.Error(t, err)
}
