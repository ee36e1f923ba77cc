package appointment

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/logger"
)

type fakeAptRepo struct {
	byID    map[uuid.UUID]*model.Appointment
	overlap bool
}

func newFakeAptRepo() *fakeAptRepo {
	return &fakeAptRepo{byID: map[uuid.UUID]*model.Appointment{}}
}

func (f *fakeAptRepo) Create(_ context.Context, a *model.Appointment) error {
	f.byID[a.ID] = a
	return nil
}
func (f *fakeAptRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}
func (f *fakeAptRepo) Update(_ context.Context, a *model.Appointment) error {
	f.byID[a.ID] = a
	return nil
}
func (f *fakeAptRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to model.AppointmentStatus) error {
	a, ok := f.byID[id]
	if !ok || a.Status != from {
		return fmt.Errorf("stale status")
	}
	a.Status = to
	return nil
}
func (f *fakeAptRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeAptRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	out := []*model.Appointment{}
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}
func (f *fakeAptRepo) ListForDoctorDate(context.Context, uuid.UUID, string) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAptRepo) HasOverlap(context.Context, uuid.UUID, string, string, string, *uuid.UUID) (bool, error) {
	return f.overlap, nil
}
func (f *fakeAptRepo) CreateType(context.Context, *model.AppointmentType) error { return nil }
func (f *fakeAptRepo) GetType(context.Context, uuid.UUID) (*model.AppointmentType, error) {
	return nil, nil
}
func (f *fakeAptRepo) ListTypes(context.Context, uuid.UUID) ([]*model.AppointmentType, error) {
	return nil, nil
}
func (f *fakeAptRepo) DeleteType(context.Context, uuid.UUID) error { return nil }

type fakeClinicRepo struct{ clinic *model.Clinic }

func (f *fakeClinicRepo) Create(context.Context, *model.Clinic) error { return nil }
func (f *fakeClinicRepo) Get(context.Context, uuid.UUID) (*model.Clinic, error) {
	return f.clinic, nil
}
func (f *fakeClinicRepo) Update(context.Context, *model.Clinic) error   { return nil }
func (f *fakeClinicRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (f *fakeClinicRepo) List(context.Context) ([]*model.Clinic, error) { return nil, nil }
func (f *fakeClinicRepo) CreateRoom(context.Context, *model.Room) error { return nil }
func (f *fakeClinicRepo) ListRooms(context.Context, uuid.UUID) ([]*model.Room, error) {
	return nil, nil
}

type fakeOutboxRepo struct{ events []*model.OutboxEvent }

func (f *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakeOutboxRepo) GetPendingEvents(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkProcessed(context.Context, uuid.UUID) error      { return nil }
func (f *fakeOutboxRepo) MarkFailed(context.Context, uuid.UUID, string) error { return nil }

type fakeAvailability struct{ intervals []model.Interval }

func (f *fakeAvailability) ResolveAvailability(context.Context, uuid.UUID, string) ([]model.Interval, error) {
	return f.intervals, nil
}

type fakeNotifier struct{ created, cancelled int }

func (f *fakeNotifier) AppointmentCreated(context.Context, *model.Appointment) error {
	f.created++
	return nil
}
func (f *fakeNotifier) AppointmentCancelled(context.Context, *model.Appointment) error {
	f.cancelled++
	return nil
}

func newFixture(intervals []model.Interval) (*Service, *fakeAptRepo, *fakeOutboxRepo, *fakeNotifier) {
	repo := newFakeAptRepo()
	outbox := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	clinicRepo := &fakeClinicRepo{clinic: &model.Clinic{
		Base:     model.Base{ID: uuid.New()},
		Timezone: "America/Mexico_City",
		IsActive: true,
	}}
	svc := NewService(repo, clinicRepo, outbox, &fakeAvailability{intervals: intervals}, notifier, logger.NewLogger(nil))
	return svc, repo, outbox, notifier
}

func bookingRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ClinicID:  uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
		Date:      "2024-06-10",
		StartTime: "09:00",
		EndTime:   "09:30",
	}
}

func TestCreateStartsPending(t *testing.T) {
	svc, _, outbox, notifier := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})

	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.True(t, apt.IsActive)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, outbox.events[0].EventType)
	assert.Equal(t, 1, notifier.created)
}

func TestCreateOutsideWorkingHours(t *testing.T) {
	svc, _, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})

	req := bookingRequest()
	req.StartTime = "14:00"
	req.EndTime = "14:30"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))
}

func TestCreateNoAvailabilityAtAll(t *testing.T) {
	// Full-day exception or no schedule: the resolver returns nothing and
	// the booking is rejected.
	svc, _, _, _ := newFixture(nil)

	_, err := svc.Create(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))
}

func TestCreateOverlapRejected(t *testing.T) {
	svc, repo, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	repo.overlap = true

	_, err := svc.Create(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))
}

func TestTransitionLegal(t *testing.T) {
	svc, repo, outbox, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	got, err := svc.Transition(context.Background(), apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)
	assert.Equal(t, model.AppointmentStatusConfirmed, repo.byID[apt.ID].Status)

	require.Len(t, outbox.events, 2)
	assert.Equal(t, model.EventAppointmentTransition, outbox.events[1].EventType)
}

func TestTransitionIllegalRejectedBeforeWrite(t *testing.T) {
	svc, repo, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	// PENDING cannot jump straight to COMPLETED.
	_, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidTransition, apperrors.Code(err))
	assert.Equal(t, model.AppointmentStatusPending, repo.byID[apt.ID].Status)
}

func TestConsultationMustPassThroughPaid(t *testing.T) {
	svc, repo, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)
	repo.byID[apt.ID].Status = model.AppointmentStatusInConsultation

	_, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidTransition, apperrors.Code(err))

	_, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusPaid)
	require.NoError(t, err)
}

func TestCancellationNotifies(t *testing.T) {
	svc, _, _, notifier := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.cancelled)
}

func TestAvailableTransitionsForTerminal(t *testing.T) {
	svc, repo, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)
	repo.byID[apt.ID].Status = model.AppointmentStatusCompleted

	targets, err := svc.AvailableTransitions(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestRescheduleTerminalRejected(t *testing.T) {
	svc, repo, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)
	repo.byID[apt.ID].Status = model.AppointmentStatusNoShow

	_, err = svc.Reschedule(context.Background(), apt.ID, "2024-06-11", "09:00", "09:30")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))
}

func TestDeleteOnlyCancelled(t *testing.T) {
	svc, repo, _, _ := newFixture([]model.Interval{{Start: "09:00", End: "13:00"}})
	apt, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), apt.ID)
	require.Error(t, err)

	repo.byID[apt.ID].Status = model.AppointmentStatusCancelled
	require.NoError(t, svc.Delete(context.Background(), apt.ID))
}
