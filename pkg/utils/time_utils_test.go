package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	min, err := ParseHHMM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, min)

	min, err = ParseHHMM("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	_, err = ParseHHMM("25:00")
	assert.Error(t, err)
	_, err = ParseHHMM("close")
	assert.Error(t, err)
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "09:05", FormatHHMM(9*60+5))
	assert.Equal(t, "00:00", FormatHHMM(0))
	assert.Equal(t, "00:00", FormatHHMM(-10))
	assert.Equal(t, "23:59", FormatHHMM(23*60+59))
}

func TestParseHoursLabel(t *testing.T) {
	open, closeAt, ok := ParseHoursLabel("10 am-9 pm")
	require.True(t, ok)
	assert.Equal(t, 10*60, open)
	assert.Equal(t, 21*60, closeAt)

	open, closeAt, ok = ParseHoursLabel("10:30 AM-2 PM")
	require.True(t, ok)
	assert.Equal(t, 10*60+30, open)
	assert.Equal(t, 14*60, closeAt)

	open, closeAt, ok = ParseHoursLabel("Open 24 hours")
	require.True(t, ok)
	assert.Equal(t, 0, open)
	assert.Equal(t, MinutesPerDay, closeAt)

	_, _, ok = ParseHoursLabel("Closed")
	assert.False(t, ok)
	_, _, ok = ParseHoursLabel("")
	assert.False(t, ok)
	_, _, ok = ParseHoursLabel("whenever")
	assert.False(t, ok)
}

func TestParseHoursLabelMidnightWrap(t *testing.T) {
	// Ranges past midnight clamp to end of day.
	open, closeAt, ok := ParseHoursLabel("6 pm-2 am")
	require.True(t, ok)
	assert.Equal(t, 18*60, open)
	assert.Equal(t, MinutesPerDay, closeAt)
}

func TestWeekdayName(t *testing.T) {
	d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	assert.Equal(t, "Monday", WeekdayName(d))
}
