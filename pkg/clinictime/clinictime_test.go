package clinictime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMidnightToUTC(t *testing.T) {
	got, err := LocalMidnightToUTC("2024-06-10", "America/Mexico_City")
	require.NoError(t, err)
	// Mexico City no longer observes DST; fixed UTC-6.
	assert.Equal(t, time.Date(2024, 6, 10, 6, 0, 0, 0, time.UTC), got)
}

func TestLocalDateTimeToUTC(t *testing.T) {
	got, err := LocalDateTimeToUTC("2024-06-10", "09:30", "America/Mexico_City")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC), got)
}

func TestRoundTripAcrossDST(t *testing.T) {
	// New York springs forward on 2024-03-10 and falls back on 2024-11-03;
	// a local midnight must still round-trip to the same calendar date.
	dates := []string{"2024-03-09", "2024-03-10", "2024-03-11", "2024-11-02", "2024-11-03", "2024-11-04"}
	for _, date := range dates {
		utc, err := LocalMidnightToUTC(date, "America/New_York")
		require.NoError(t, err, date)

		back, err := UTCToLocalDate(utc, "America/New_York")
		require.NoError(t, err, date)
		assert.Equal(t, date, back)

		clock, err := UTCToLocalTime(utc, "America/New_York")
		require.NoError(t, err, date)
		assert.Equal(t, "00:00", clock)
	}
}

func TestUnknownTimezoneIsError(t *testing.T) {
	_, err := LocalMidnightToUTC("2024-06-10", "Mars/Olympus_Mons")
	assert.Error(t, err)

	_, err = Location("")
	assert.Error(t, err)
}

func TestWeekday(t *testing.T) {
	wd, err := Weekday("2024-06-10", "America/Mexico_City")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)

	wd, err = Weekday("2024-06-16", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "9:30am", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "13:00", FormatClock(780))
}
