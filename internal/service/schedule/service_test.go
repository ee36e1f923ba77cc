package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// In-memory fakes implementing just what the schedule service touches.

type fakeClinicRepo struct{ clinics map[uuid.UUID]*model.Clinic }

func (f *fakeClinicRepo) Create(_ context.Context, c *model.Clinic) error { f.clinics[c.ID] = c; return nil }
func (f *fakeClinicRepo) Get(_ context.Context, id uuid.UUID) (*model.Clinic, error) {
	return f.clinics[id], nil
}
func (f *fakeClinicRepo) Update(context.Context, *model.Clinic) error { return nil }
func (f *fakeClinicRepo) Delete(context.Context, uuid.UUID) error     { return nil }
func (f *fakeClinicRepo) List(context.Context) ([]*model.Clinic, error) {
	return nil, nil
}
func (f *fakeClinicRepo) CreateRoom(context.Context, *model.Room) error { return nil }
func (f *fakeClinicRepo) ListRooms(context.Context, uuid.UUID) ([]*model.Room, error) {
	return nil, nil
}

type fakeDoctorRepo struct{ doctors map[uuid.UUID]*model.Doctor }

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error { f.doctors[d.ID] = d; return nil }
func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	return f.doctors[id], nil
}
func (f *fakeDoctorRepo) GetByEmail(context.Context, string) (*model.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) Update(context.Context, *model.Doctor) error               { return nil }
func (f *fakeDoctorRepo) Delete(context.Context, uuid.UUID) error                   { return nil }
func (f *fakeDoctorRepo) List(context.Context, uuid.UUID) ([]*model.Doctor, error)  { return nil, nil }
func (f *fakeDoctorRepo) ListActive(_ context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	out := []*model.Doctor{}
	for _, d := range f.doctors {
		if d.ClinicID == clinicID && d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	clinicRows []*model.ClinicSchedule
	doctorRows []*model.DoctorSchedule
	exceptions []*model.DoctorException
}

func (f *fakeScheduleRepo) CreateClinicSchedule(_ context.Context, r *model.ClinicSchedule) error {
	f.clinicRows = append(f.clinicRows, r)
	return nil
}
func (f *fakeScheduleRepo) ListClinicSchedules(context.Context, uuid.UUID) ([]*model.ClinicSchedule, error) {
	return f.clinicRows, nil
}
func (f *fakeScheduleRepo) DeleteClinicSchedule(context.Context, uuid.UUID) error { return nil }
func (f *fakeScheduleRepo) CreateDoctorSchedule(_ context.Context, r *model.DoctorSchedule) error {
	f.doctorRows = append(f.doctorRows, r)
	return nil
}
func (f *fakeScheduleRepo) ListDoctorSchedules(_ context.Context, doctorID uuid.UUID) ([]*model.DoctorSchedule, error) {
	out := []*model.DoctorSchedule{}
	for _, r := range f.doctorRows {
		if r.DoctorID == doctorID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeScheduleRepo) DeleteDoctorSchedule(context.Context, uuid.UUID) error { return nil }
func (f *fakeScheduleRepo) CreateDoctorException(_ context.Context, r *model.DoctorException) error {
	f.exceptions = append(f.exceptions, r)
	return nil
}
func (f *fakeScheduleRepo) ListDoctorExceptions(_ context.Context, doctorID uuid.UUID, date string) ([]*model.DoctorException, error) {
	out := []*model.DoctorException{}
	for _, e := range f.exceptions {
		if e.DoctorID == doctorID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeScheduleRepo) DeleteDoctorException(context.Context, uuid.UUID) error { return nil }

type fakeAppointmentRepo struct{ appointments []*model.Appointment }

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	f.appointments = append(f.appointments, a)
	return nil
}
func (f *fakeAppointmentRepo) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Update(context.Context, *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) UpdateStatus(context.Context, uuid.UUID, model.AppointmentStatus, model.AppointmentStatus) error {
	return nil
}
func (f *fakeAppointmentRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (f *fakeAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointmentRepo) ListForDoctorDate(_ context.Context, doctorID uuid.UUID, date string) ([]*model.Appointment, error) {
	out := []*model.Appointment{}
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAppointmentRepo) HasOverlap(context.Context, uuid.UUID, string, string, string, *uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeAppointmentRepo) CreateType(context.Context, *model.AppointmentType) error { return nil }
func (f *fakeAppointmentRepo) GetType(context.Context, uuid.UUID) (*model.AppointmentType, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListTypes(context.Context, uuid.UUID) ([]*model.AppointmentType, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) DeleteType(context.Context, uuid.UUID) error { return nil }

func newFixture() (*Service, *model.Clinic, *model.Doctor, *fakeScheduleRepo, *fakeAppointmentRepo) {
	clinic := &model.Clinic{
		Base:        model.Base{ID: uuid.New()},
		Name:        "Centro Médico",
		Timezone:    "America/Mexico_City",
		SlotMinutes: 30,
		IsActive:    true,
	}
	doctor := &model.Doctor{
		Base:     model.Base{ID: uuid.New()},
		ClinicID: clinic.ID,
		Name:     "Dr. García",
		IsActive: true,
	}

	clinicRepo := &fakeClinicRepo{clinics: map[uuid.UUID]*model.Clinic{clinic.ID: clinic}}
	doctorRepo := &fakeDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{doctor.ID: doctor}}
	scheduleRepo := &fakeScheduleRepo{}
	aptRepo := &fakeAppointmentRepo{}

	return NewService(clinicRepo, doctorRepo, scheduleRepo, aptRepo), clinic, doctor, scheduleRepo, aptRepo
}

// 2024-06-10 is a Monday.
const monday = "2024-06-10"

func TestResolveAvailabilityThroughClinicFallback(t *testing.T) {
	svc, clinic, doctor, scheduleRepo, _ := newFixture()
	scheduleRepo.clinicRows = []*model.ClinicSchedule{
		{ClinicID: clinic.ID, Weekday: time.Monday, StartTime: "09:00", EndTime: "13:00", IsActive: true},
	}

	intervals, err := svc.ResolveAvailability(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{{Start: "09:00", End: "13:00"}}, intervals)

	occ, err := svc.DoctorOccupancy(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, 8, occ.TotalSlots)
	assert.Equal(t, 0, occ.OccupiedSlots)
	assert.Equal(t, 0.0, occ.Rate)
}

func TestFullDayExceptionZeroesOccupancy(t *testing.T) {
	svc, clinic, doctor, scheduleRepo, _ := newFixture()
	scheduleRepo.clinicRows = []*model.ClinicSchedule{
		{ClinicID: clinic.ID, Weekday: time.Monday, StartTime: "09:00", EndTime: "13:00", IsActive: true},
	}
	scheduleRepo.exceptions = []*model.DoctorException{
		{DoctorID: doctor.ID, Date: monday},
	}

	intervals, err := svc.ResolveAvailability(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Empty(t, intervals)

	occ, err := svc.DoctorOccupancy(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, occ.TotalSlots)
	assert.Equal(t, 0.0, occ.Rate)
}

func TestDoctorOccupancyCountsBookings(t *testing.T) {
	svc, clinic, doctor, scheduleRepo, aptRepo := newFixture()
	scheduleRepo.clinicRows = []*model.ClinicSchedule{
		{ClinicID: clinic.ID, Weekday: time.Monday, StartTime: "09:00", EndTime: "13:00", IsActive: true},
	}
	aptRepo.appointments = []*model.Appointment{
		{DoctorID: doctor.ID, Date: monday, StartTime: "09:00", Status: model.AppointmentStatusConfirmed, IsActive: true},
		{DoctorID: doctor.ID, Date: monday, StartTime: "09:30", Status: model.AppointmentStatusPending, IsActive: true},
		{DoctorID: doctor.ID, Date: monday, StartTime: "10:00", Status: model.AppointmentStatusCancelled, IsActive: true},
	}

	occ, err := svc.DoctorOccupancy(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, 8, occ.TotalSlots)
	assert.Equal(t, 2, occ.OccupiedSlots)
	assert.Equal(t, 25.0, occ.Rate)
}

func TestAvailableSlotsExcludesTakenTimes(t *testing.T) {
	svc, clinic, doctor, scheduleRepo, aptRepo := newFixture()
	scheduleRepo.clinicRows = []*model.ClinicSchedule{
		{ClinicID: clinic.ID, Weekday: time.Monday, StartTime: "09:00", EndTime: "11:00", IsActive: true},
	}
	aptRepo.appointments = []*model.Appointment{
		{DoctorID: doctor.ID, Date: monday, StartTime: "09:30", Status: model.AppointmentStatusConfirmed, IsActive: true},
		// A cancelled booking frees its slot.
		{DoctorID: doctor.ID, Date: monday, StartTime: "10:00", Status: model.AppointmentStatusCancelled, IsActive: true},
	}

	open, err := svc.AvailableSlots(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, open)
}

func TestClinicOccupancySumsDoctors(t *testing.T) {
	svc, clinic, doctor, scheduleRepo, aptRepo := newFixture()

	second := &model.Doctor{Base: model.Base{ID: uuid.New()}, ClinicID: clinic.ID, IsActive: true}
	svcDoctorRepo := svc.doctorRepo.(*fakeDoctorRepo)
	svcDoctorRepo.doctors[second.ID] = second

	scheduleRepo.clinicRows = []*model.ClinicSchedule{
		{ClinicID: clinic.ID, Weekday: time.Monday, StartTime: "09:00", EndTime: "13:00", IsActive: true},
	}
	// The second doctor has an own schedule, so the clinic template does not
	// apply to them on Monday.
	scheduleRepo.doctorRows = []*model.DoctorSchedule{
		{DoctorID: second.ID, Weekday: time.Monday, StartTime: "14:00", EndTime: "16:00", IsActive: true},
	}
	aptRepo.appointments = []*model.Appointment{
		{DoctorID: doctor.ID, Date: monday, StartTime: "09:00", Status: model.AppointmentStatusConfirmed, IsActive: true},
		{DoctorID: second.ID, Date: monday, StartTime: "14:00", Status: model.AppointmentStatusConfirmed, IsActive: true},
		{DoctorID: second.ID, Date: monday, StartTime: "14:30", Status: model.AppointmentStatusConfirmed, IsActive: true},
	}

	occ, err := svc.ClinicOccupancy(context.Background(), clinic.ID, monday)
	require.NoError(t, err)
	// 8 slots for the fallback doctor + 4 for the own-schedule doctor.
	assert.Equal(t, 12, occ.TotalSlots)
	assert.Equal(t, 3, occ.OccupiedSlots)
	assert.Equal(t, 25.0, occ.Rate)
}

func TestInvalidClinicTimezoneIsConfigurationError(t *testing.T) {
	svc, clinic, doctor, _, _ := newFixture()
	clinic.Timezone = "Not/A_Zone"

	_, err := svc.ResolveAvailability(context.Background(), doctor.ID, monday)
	assert.Error(t, err)
}
