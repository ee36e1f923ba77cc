// Package clinictime converts between clinic-local wall-clock values and the
// UTC instants the rest of the system persists. Every function is pure and
// resolves timezones through the IANA database; callers are expected to treat
// a failed lookup as a clinic configuration error, not something to default.
package clinictime

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the clinic-local calendar date format used across the API.
	DateLayout = "2006-01-02"
	// ClockLayout is the clinic-local time-of-day format (24h).
	ClockLayout = "15:04"
)

// Location resolves an IANA timezone identifier. An empty or unknown
// identifier is an error; fallbacks are a policy decision that belongs to the
// caller (see model.Clinic.Location).
func Location(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("empty timezone identifier")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// LocalMidnightToUTC interprets date ("2006-01-02") as 00:00 wall-clock in tz
// and returns the corresponding UTC instant. Used wherever a calendar date
// becomes a UTC query boundary.
func LocalMidnightToUTC(date, tz string) (time.Time, error) {
	loc, err := Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.UTC(), nil
}

// LocalDateTimeToUTC combines a date and an HH:MM clock as wall-clock in tz
// and returns the UTC instant.
func LocalDateTimeToUTC(date, clock, tz string) (time.Time, error) {
	loc, err := Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local datetime %q %q: %w", date, clock, err)
	}
	return t.UTC(), nil
}

// UTCToLocalDate returns the calendar date the given instant falls on in tz.
func UTCToLocalDate(t time.Time, tz string) (string, error) {
	loc, err := Location(tz)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(DateLayout), nil
}

// UTCToLocalTime returns the HH:MM wall-clock the given instant falls on in tz.
func UTCToLocalTime(t time.Time, tz string) (string, error) {
	loc, err := Location(tz)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(ClockLayout), nil
}

// CurrentLocalDate returns today's calendar date in tz.
func CurrentLocalDate(tz string) (string, error) {
	return UTCToLocalDate(time.Now().UTC(), tz)
}

// CurrentLocalTime returns the current HH:MM wall-clock in tz.
func CurrentLocalTime(tz string) (string, error) {
	return UTCToLocalTime(time.Now().UTC(), tz)
}

// Weekday returns the weekday the given calendar date falls on. The date is a
// clinic-local date already, so the weekday is fixed by the date alone; tz is
// still resolved to fail fast on misconfiguration.
func Weekday(date, tz string) (time.Weekday, error) {
	loc, err := Location(tz)
	if err != nil {
		return 0, err
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Weekday(), nil
}

// ParseClock parses an "HH:MM" 24-hour string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
