package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

// Service materializes schedule data and delegates to the pure resolver and
// slot calculator. It holds no state beyond its repositories.
type Service struct {
	clinicRepo   repository.ClinicRepository
	doctorRepo   repository.DoctorRepository
	scheduleRepo repository.ScheduleRepository
	aptRepo      repository.AppointmentRepository
}

func NewService(
	clinicRepo repository.ClinicRepository,
	doctorRepo repository.DoctorRepository,
	scheduleRepo repository.ScheduleRepository,
	aptRepo repository.AppointmentRepository,
) *Service {
	return &Service{
		clinicRepo:   clinicRepo,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		aptRepo:      aptRepo,
	}
}

// ResolveAvailability returns the bookable clinic-local intervals for a doctor
// on a clinic-local calendar date.
func (s *Service) ResolveAvailability(ctx context.Context, doctorID uuid.UUID, date string) ([]model.Interval, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	clinic, err := s.clinicRepo.Get(ctx, doctor.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return s.resolveForDoctor(ctx, doctor, clinic, date)
}

func (s *Service) resolveForDoctor(ctx context.Context, doctor *model.Doctor, clinic *model.Clinic, date string) ([]model.Interval, error) {
	weekday, err := clinictime.Weekday(date, clinic.EffectiveTimezone())
	if err != nil {
		return nil, apperrors.Configuration(fmt.Sprintf("clinic %s has an invalid timezone", clinic.ID), err)
	}

	doctorRows, err := s.scheduleRepo.ListDoctorSchedules(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor schedules: %w", err)
	}
	clinicRows, err := s.scheduleRepo.ListClinicSchedules(ctx, clinic.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinic schedules: %w", err)
	}
	exceptions, err := s.scheduleRepo.ListDoctorExceptions(ctx, doctor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor exceptions: %w", err)
	}

	return Resolve(ResolveInput{
		Weekday:         weekday,
		DoctorSchedules: doctorRows,
		ClinicSchedules: clinicRows,
		Exceptions:      exceptions,
	})
}

// AvailableSlots returns the concrete clinic-local start times still open for
// booking with the doctor on the date.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	clinic, err := s.clinicRepo.Get(ctx, doctor.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	intervals, err := s.resolveForDoctor(ctx, doctor, clinic, date)
	if err != nil {
		return nil, err
	}
	starts, err := SlotStarts(intervals, clinic.EffectiveSlotMinutes())
	if err != nil {
		return nil, err
	}

	appointments, err := s.aptRepo.ListForDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	taken := map[string]bool{}
	for _, apt := range appointments {
		if apt.Billable() {
			taken[apt.StartTime] = true
		}
	}

	open := []string{}
	for _, start := range starts {
		if !taken[start] {
			open = append(open, start)
		}
	}
	return open, nil
}

// DoctorOccupancy computes capacity and usage for one doctor on one date.
func (s *Service) DoctorOccupancy(ctx context.Context, doctorID uuid.UUID, date string) (Occupancy, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return Occupancy{}, fmt.Errorf("failed to get doctor: %w", err)
	}
	clinic, err := s.clinicRepo.Get(ctx, doctor.ClinicID)
	if err != nil {
		return Occupancy{}, fmt.Errorf("failed to get clinic: %w", err)
	}

	intervals, err := s.resolveForDoctor(ctx, doctor, clinic, date)
	if err != nil {
		return Occupancy{}, err
	}
	total, err := TotalSlots(intervals, clinic.EffectiveSlotMinutes())
	if err != nil {
		return Occupancy{}, err
	}

	appointments, err := s.aptRepo.ListForDoctorDate(ctx, doctorID, date)
	if err != nil {
		return Occupancy{}, fmt.Errorf("failed to list appointments: %w", err)
	}

	return NewOccupancy(total, CountOccupied(appointments)), nil
}

// ClinicOccupancy sums capacity across every active doctor of the clinic and
// returns the clinic-wide rate for the date.
func (s *Service) ClinicOccupancy(ctx context.Context, clinicID uuid.UUID, date string) (Occupancy, error) {
	clinic, err := s.clinicRepo.Get(ctx, clinicID)
	if err != nil {
		return Occupancy{}, fmt.Errorf("failed to get clinic: %w", err)
	}
	doctors, err := s.doctorRepo.ListActive(ctx, clinicID)
	if err != nil {
		return Occupancy{}, fmt.Errorf("failed to list doctors: %w", err)
	}

	totalSlots, occupied := 0, 0
	for _, doctor := range doctors {
		intervals, err := s.resolveForDoctor(ctx, doctor, clinic, date)
		if err != nil {
			return Occupancy{}, err
		}
		total, err := TotalSlots(intervals, clinic.EffectiveSlotMinutes())
		if err != nil {
			return Occupancy{}, err
		}
		totalSlots += total

		appointments, err := s.aptRepo.ListForDoctorDate(ctx, doctor.ID, date)
		if err != nil {
			return Occupancy{}, fmt.Errorf("failed to list appointments: %w", err)
		}
		occupied += CountOccupied(appointments)
	}

	return NewOccupancy(totalSlots, occupied), nil
}

// Schedule CRUD passthroughs used by the handlers.

func (s *Service) CreateClinicSchedule(ctx context.Context, row *model.ClinicSchedule) error {
	if err := validateWindow(row.StartTime, row.EndTime); err != nil {
		return err
	}
	return s.scheduleRepo.CreateClinicSchedule(ctx, row)
}

func (s *Service) ListClinicSchedules(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicSchedule, error) {
	return s.scheduleRepo.ListClinicSchedules(ctx, clinicID)
}

func (s *Service) DeleteClinicSchedule(ctx context.Context, id uuid.UUID) error {
	return s.scheduleRepo.DeleteClinicSchedule(ctx, id)
}

func (s *Service) CreateDoctorSchedule(ctx context.Context, row *model.DoctorSchedule) error {
	if err := validateWindow(row.StartTime, row.EndTime); err != nil {
		return err
	}
	return s.scheduleRepo.CreateDoctorSchedule(ctx, row)
}

func (s *Service) ListDoctorSchedules(ctx context.Context, doctorID uuid.UUID) ([]*model.DoctorSchedule, error) {
	return s.scheduleRepo.ListDoctorSchedules(ctx, doctorID)
}

func (s *Service) DeleteDoctorSchedule(ctx context.Context, id uuid.UUID) error {
	return s.scheduleRepo.DeleteDoctorSchedule(ctx, id)
}

func (s *Service) CreateDoctorException(ctx context.Context, row *model.DoctorException) error {
	if (row.StartTime == nil) != (row.EndTime == nil) {
		return apperrors.BadRequest("exception must set both times or neither", nil)
	}
	if row.StartTime != nil {
		if err := validateWindow(*row.StartTime, *row.EndTime); err != nil {
			return err
		}
	}
	return s.scheduleRepo.CreateDoctorException(ctx, row)
}

func (s *Service) ListDoctorExceptions(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.DoctorException, error) {
	return s.scheduleRepo.ListDoctorExceptions(ctx, doctorID, date)
}

func (s *Service) DeleteDoctorException(ctx context.Context, id uuid.UUID) error {
	return s.scheduleRepo.DeleteDoctorException(ctx, id)
}

func validateWindow(start, end string) error {
	startMin, err := clinictime.ParseClock(start)
	if err != nil {
		return apperrors.BadRequest("invalid start time", err)
	}
	endMin, err := clinictime.ParseClock(end)
	if err != nil {
		return apperrors.BadRequest("invalid end time", err)
	}
	if endMin <= startMin {
		return apperrors.BadRequest("end time must be after start time", nil)
	}
	return nil
}
