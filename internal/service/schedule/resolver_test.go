package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
)

func strPtr(s string) *string { return &s }

func clinicRow(weekday time.Weekday, start, end string) *model.ClinicSchedule {
	return &model.ClinicSchedule{Weekday: weekday, StartTime: start, EndTime: end, IsActive: true}
}

func doctorRow(weekday time.Weekday, start, end string) *model.DoctorSchedule {
	return &model.DoctorSchedule{Weekday: weekday, StartTime: start, EndTime: end, IsActive: true}
}

func TestResolveClinicFallback(t *testing.T) {
	// Doctor with no own schedule inherits the clinic template.
	got, err := Resolve(ResolveInput{
		Weekday:         time.Monday,
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Monday, "09:00", "13:00")},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{{Start: "09:00", End: "13:00"}}, got)
}

func TestResolveOwnScheduleDisablesFallbackEntirely(t *testing.T) {
	// The doctor has rows only for Tuesday; on Wednesday the clinic template
	// must NOT kick in. Own-schedule presence is all-or-nothing.
	got, err := Resolve(ResolveInput{
		Weekday:         time.Wednesday,
		DoctorSchedules: []*model.DoctorSchedule{doctorRow(time.Tuesday, "10:00", "14:00")},
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Wednesday, "09:00", "13:00")},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveOwnScheduleWins(t *testing.T) {
	got, err := Resolve(ResolveInput{
		Weekday:         time.Tuesday,
		DoctorSchedules: []*model.DoctorSchedule{doctorRow(time.Tuesday, "10:00", "14:00")},
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Tuesday, "09:00", "13:00")},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{{Start: "10:00", End: "14:00"}}, got)
}

func TestResolveMultipleBlocksSameWeekday(t *testing.T) {
	got, err := Resolve(ResolveInput{
		Weekday: time.Friday,
		ClinicSchedules: []*model.ClinicSchedule{
			clinicRow(time.Friday, "09:00", "13:00"),
			clinicRow(time.Friday, "15:00", "19:00"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{
		{Start: "09:00", End: "13:00"},
		{Start: "15:00", End: "19:00"},
	}, got)
}

func TestResolveOverlappingRowsAreNotMerged(t *testing.T) {
	got, err := Resolve(ResolveInput{
		Weekday: time.Monday,
		ClinicSchedules: []*model.ClinicSchedule{
			clinicRow(time.Monday, "09:00", "12:00"),
			clinicRow(time.Monday, "11:00", "14:00"),
		},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestResolveFullDayExceptionWins(t *testing.T) {
	// A full-day block empties the day no matter what schedule rows exist.
	got, err := Resolve(ResolveInput{
		Weekday:         time.Monday,
		DoctorSchedules: []*model.DoctorSchedule{doctorRow(time.Monday, "09:00", "13:00")},
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Monday, "09:00", "18:00")},
		Exceptions:      []*model.DoctorException{{}},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolvePartialExceptionCarvesAndOverrides(t *testing.T) {
	// Base 09:00-17:00, exception 12:00-14:00: the override is authoritative
	// for its range, so the base is split around it and the exception interval
	// itself is kept.
	got, err := Resolve(ResolveInput{
		Weekday:         time.Monday,
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Monday, "09:00", "17:00")},
		Exceptions: []*model.DoctorException{
			{StartTime: strPtr("12:00"), EndTime: strPtr("14:00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{
		{Start: "09:00", End: "12:00"},
		{Start: "14:00", End: "17:00"},
		{Start: "12:00", End: "14:00"},
	}, got)
}

func TestResolvePartialExceptionOutsideBase(t *testing.T) {
	// An exception with no overlap still contributes its own interval
	// (e.g. an extra evening opened on a day off the normal schedule).
	got, err := Resolve(ResolveInput{
		Weekday:         time.Monday,
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Monday, "09:00", "12:00")},
		Exceptions: []*model.DoctorException{
			{StartTime: strPtr("18:00"), EndTime: strPtr("20:00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{
		{Start: "09:00", End: "12:00"},
		{Start: "18:00", End: "20:00"},
	}, got)
}

func TestResolveInactiveRowsIgnored(t *testing.T) {
	inactive := doctorRow(time.Monday, "09:00", "13:00")
	inactive.IsActive = false

	// An inactive row does not count as "has own schedule" either, so the
	// clinic fallback applies.
	got, err := Resolve(ResolveInput{
		Weekday:         time.Monday,
		DoctorSchedules: []*model.DoctorSchedule{inactive},
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Monday, "08:00", "12:00")},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{{Start: "08:00", End: "12:00"}}, got)
}

func TestResolveNoScheduleAnywhere(t *testing.T) {
	got, err := Resolve(ResolveInput{Weekday: time.Sunday})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveMalformedTimeIsError(t *testing.T) {
	_, err := Resolve(ResolveInput{
		Weekday:         time.Monday,
		ClinicSchedules: []*model.ClinicSchedule{clinicRow(time.Monday, "09:00", "17:00")},
		Exceptions: []*model.DoctorException{
			{StartTime: strPtr("noon"), EndTime: strPtr("14:00")},
		},
	})
	assert.Error(t, err)
}
