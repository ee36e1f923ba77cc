// Package schedule contains the availability core: resolving a doctor's
// bookable intervals for a date and turning intervals into slot capacity.
// Everything in resolver.go and slots.go is pure; I/O lives in service.go.
package schedule

import (
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
)

// ResolveInput carries the already-materialized rows the resolver needs.
// Fetching them is the caller's concern; the resolver never touches storage.
type ResolveInput struct {
	// Weekday of the requested clinic-local date.
	Weekday time.Weekday
	// DoctorSchedules holds ALL of the doctor's schedule rows, not just the
	// requested weekday: the presence of any row disables the clinic fallback
	// for every weekday.
	DoctorSchedules []*model.DoctorSchedule
	// ClinicSchedules holds the owning clinic's weekly template rows.
	ClinicSchedules []*model.ClinicSchedule
	// Exceptions holds the doctor's exceptions for the requested date only.
	Exceptions []*model.DoctorException
}

// Resolve returns the bookable clinic-local intervals for one doctor and one
// date.
//
// Precedence:
//  1. a full-day exception empties the whole date, whatever the schedules say;
//  2. if the doctor owns at least one active schedule row (any weekday), the
//     doctor's rows for this weekday are the base set and the clinic template
//     is never consulted;
//  3. otherwise the clinic template rows for this weekday are the base set;
//  4. each partial exception is authoritative for its sub-range: its overlap
//     is carved out of the base set and the exception interval itself is
//     appended.
//
// Overlapping rows within the same source are kept as-is, not merged; slot
// totals downstream deliberately count them twice.
func Resolve(in ResolveInput) ([]model.Interval, error) {
	for _, exc := range in.Exceptions {
		if exc.FullDay() {
			return []model.Interval{}, nil
		}
	}

	base, err := baseIntervals(in)
	if err != nil {
		return nil, err
	}

	for _, exc := range in.Exceptions {
		if exc.StartTime == nil || exc.EndTime == nil {
			continue
		}
		override := model.Interval{Start: *exc.StartTime, End: *exc.EndTime}
		base, err = carve(base, override)
		if err != nil {
			return nil, fmt.Errorf("exception %s: %w", exc.ID, err)
		}
		base = append(base, override)
	}

	return base, nil
}

func baseIntervals(in ResolveInput) ([]model.Interval, error) {
	ownSchedule := false
	for _, row := range in.DoctorSchedules {
		if row.IsActive && !row.Deleted() {
			ownSchedule = true
			break
		}
	}

	intervals := []model.Interval{}
	if ownSchedule {
		for _, row := range in.DoctorSchedules {
			if !row.IsActive || row.Deleted() || row.Weekday != in.Weekday {
				continue
			}
			intervals = append(intervals, model.Interval{Start: row.StartTime, End: row.EndTime})
		}
		return intervals, nil
	}

	for _, row := range in.ClinicSchedules {
		if !row.IsActive || row.Deleted() || row.Weekday != in.Weekday {
			continue
		}
		intervals = append(intervals, model.Interval{Start: row.StartTime, End: row.EndTime})
	}
	return intervals, nil
}

// carve removes the overlap with override from every interval, splitting
// intervals that fully contain it.
func carve(intervals []model.Interval, override model.Interval) ([]model.Interval, error) {
	oStart, oEnd, err := bounds(override)
	if err != nil {
		return nil, err
	}

	out := []model.Interval{}
	for _, iv := range intervals {
		start, end, err := bounds(iv)
		if err != nil {
			return nil, err
		}
		if oEnd <= start || oStart >= end {
			out = append(out, iv)
			continue
		}
		if start < oStart {
			out = append(out, model.Interval{Start: iv.Start, End: clinictime.FormatClock(oStart)})
		}
		if oEnd < end {
			out = append(out, model.Interval{Start: clinictime.FormatClock(oEnd), End: iv.End})
		}
	}
	return out, nil
}

func bounds(iv model.Interval) (int, int, error) {
	start, err := clinictime.ParseClock(iv.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := clinictime.ParseClock(iv.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
