package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service/schedule"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/logger"
)

// Notifier delivers booking confirmations; failures are logged, never fatal.
type Notifier interface {
	AppointmentCreated(ctx context.Context, apt *model.Appointment) error
	AppointmentCancelled(ctx context.Context, apt *model.Appointment) error
}

// Availability is the slice of the schedule service the booking flow needs.
type Availability interface {
	ResolveAvailability(ctx context.Context, doctorID uuid.UUID, date string) ([]model.Interval, error)
}

type Service struct {
	repo         repository.AppointmentRepository
	clinicRepo   repository.ClinicRepository
	outboxRepo   repository.OutboxRepository
	availability Availability
	notifier     Notifier
	logger       *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	clinicRepo repository.ClinicRepository,
	outboxRepo repository.OutboxRepository,
	availability Availability,
	notifier Notifier,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:         repo,
		clinicRepo:   clinicRepo,
		outboxRepo:   outboxRepo,
		availability: availability,
		notifier:     notifier,
		logger:       log.WithComponent("appointment"),
	}
}

// Create books an appointment. The requested time must fall inside the
// doctor's resolved availability for the date, and no billable appointment
// may already overlap it. Both checks are re-run here, right next to the
// write, because earlier UI-side checks may be stale.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.clinicRepo.Get(ctx, req.ClinicID); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	if err := s.checkAvailability(ctx, req.DoctorID, req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, req.DoctorID, req.Date, req.StartTime, req.EndTime, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlap: %w", err)
	}
	if overlap {
		return nil, apperrors.Conflict("the requested time is already booked", nil)
	}

	apt := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		ClinicID:      req.ClinicID,
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		RoomID:        req.RoomID,
		TypeID:        req.TypeID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.InitialAppointmentStatus,
		CustomPrice:   req.CustomPrice,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventAppointmentCreated, apt, nil)

	if err := s.notifier.AppointmentCreated(ctx, apt); err != nil {
		s.logger.Error(err, "failed to send booking notification", "appointment_id", apt.ID.String())
	}

	return apt, nil
}

func (s *Service) checkAvailability(ctx context.Context, doctorID uuid.UUID, date, start, end string) error {
	intervals, err := s.availability.ResolveAvailability(ctx, doctorID, date)
	if err != nil {
		return err
	}
	if len(intervals) == 0 {
		return apperrors.Conflict("the doctor is not available on this date", nil)
	}

	startMin, err := clinictime.ParseClock(start)
	if err != nil {
		return apperrors.BadRequest("invalid start time", err)
	}
	endMin, err := clinictime.ParseClock(end)
	if err != nil {
		return apperrors.BadRequest("invalid end time", err)
	}

	for _, iv := range intervals {
		ivStart, err := clinictime.ParseClock(iv.Start)
		if err != nil {
			return err
		}
		ivEnd, err := clinictime.ParseClock(iv.End)
		if err != nil {
			return err
		}
		if startMin >= ivStart && endMin <= ivEnd {
			return nil
		}
	}
	return apperrors.Conflict("the requested time is outside the doctor's working hours", nil)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Transition moves an appointment to a new status. The transition table is
// the only authority: an illegal move is rejected before anything is written.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to model.AppointmentStatus) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if !model.IsValidTransition(apt.Status, to) {
		return nil, apperrors.InvalidTransition(string(apt.Status), string(to))
	}

	from := apt.Status
	if err := s.repo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	apt.Status = to

	s.recordEvent(ctx, model.EventAppointmentTransition, apt, &from)

	if to == model.AppointmentStatusCancelled {
		if err := s.notifier.AppointmentCancelled(ctx, apt); err != nil {
			s.logger.Error(err, "failed to send cancellation notification", "appointment_id", apt.ID.String())
		}
	}

	return apt, nil
}

// AvailableTransitions exposes the legal next statuses for the UI.
func (s *Service) AvailableTransitions(ctx context.Context, id uuid.UUID) ([]model.AppointmentStatus, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return model.AvailableTransitions(apt.Status), nil
}

// Reschedule moves a non-terminal appointment to a new date/time, re-running
// the same availability checks as Create.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date, start, end string) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if model.IsTerminal(apt.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot reschedule a %s appointment", apt.Status.Label()), nil)
	}

	if err := s.checkAvailability(ctx, apt.DoctorID, date, start, end); err != nil {
		return nil, err
	}
	overlap, err := s.repo.HasOverlap(ctx, apt.DoctorID, date, start, end, &apt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlap: %w", err)
	}
	if overlap {
		return nil, apperrors.Conflict("the requested time is already booked", nil)
	}

	apt.Date = date
	apt.StartTime = start
	apt.EndTime = end
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventAppointmentRescheduled, apt, nil)
	return apt, nil
}

// Delete soft-deletes; only cancelled appointments may be removed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}
	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.Conflict("only cancelled appointments can be deleted", nil)
	}
	return s.repo.Delete(ctx, id)
}

// Appointment type CRUD.

func (s *Service) CreateType(ctx context.Context, t *model.AppointmentType) error {
	return s.repo.CreateType(ctx, t)
}

func (s *Service) ListTypes(ctx context.Context, clinicID uuid.UUID) ([]*model.AppointmentType, error) {
	return s.repo.ListTypes(ctx, clinicID)
}

func (s *Service) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteType(ctx, id)
}

// EstimatedIncome reports projected revenue for a clinic over a date range.
func (s *Service) EstimatedIncome(ctx context.Context, clinicID uuid.UUID, startDate, endDate string) (string, error) {
	appointments, err := s.repo.List(ctx, &model.AppointmentFilters{
		ClinicID:  clinicID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list appointments: %w", err)
	}
	return schedule.EstimatedIncome(appointments).StringFixed(2), nil
}

func (s *Service) recordEvent(ctx context.Context, eventType string, apt *model.Appointment, from *model.AppointmentStatus) {
	payload, err := json.Marshal(model.AppointmentEvent{
		AppointmentID: apt.ID,
		ClinicID:      apt.ClinicID,
		DoctorID:      apt.DoctorID,
		PatientID:     apt.PatientID,
		Date:          apt.Date,
		StartTime:     apt.StartTime,
		FromStatus:    from,
		ToStatus:      apt.Status,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal appointment event", "appointment_id", apt.ID.String())
		return
	}

	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to write outbox event", "event_type", eventType)
	}
}
