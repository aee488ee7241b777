package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	m, err := ParseHHMM("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	m, err = ParseHHMM("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseHHMM("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)
}

func TestParseHHMMInvalid(t *testing.T) {
	for _, s := range []string{"", "8:30", "24:00", "12:60", "ab:cd", "12-30"} {
		_, err := ParseHHMM(s)
		assert.Error(t, err, s)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m += 7 {
		s := FormatMinutes(m)
		back, err := ParseHHMM(s)
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestDuration(t *testing.T) {
	d, err := Duration("08:00", "16:00")
	require.NoError(t, err)
	assert.Equal(t, 8.0, d)

	d, err = Duration("22:00", "06:00")
	require.NoError(t, err)
	assert.Equal(t, 8.0, d)

	d, err = Duration("10:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 24.0, d)
}

func TestDurationPlusRestIsFullDay(t *testing.T) {
	d, err := Duration("09:00", "17:00")
	require.NoError(t, err)

	r, err := RestHours("17:00", "09:00")
	require.NoError(t, err)

	assert.Equal(t, 24.0, d+r)
}

func TestRestHoursOvernight(t *testing.T) {
	r, err := RestHours("17:00", "06:00")
	require.NoError(t, err)
	assert.Equal(t, 13.0, r)
}

func TestRestHoursClampsOverlap(t *testing.T) {
	r, err := RestHours("17:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)
}

func TestIntervalsOverlap(t *testing.T) {
	ok, err := IntervalsOverlap("09:00", "12:00", "10:00", "13:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IntervalsOverlap("09:00", "10:00", "10:00", "11:00")
	require.NoError(t, err)
	assert.False(t, ok, "half-open: touching at boundary does not overlap")

	ok, err = IntervalsOverlap("22:00", "02:00", "01:00", "03:00")
	require.NoError(t, err)
	assert.False(t, ok, "both intervals start the same day: 01:00-03:00 lies before the 22:00 start")
}

func TestIntervalsOverlapInvalid(t *testing.T) {
	_, err := IntervalsOverlap("bad", "12:00", "10:00", "13:00")
	assert.Error(t, err)
}
