package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		// Delete soft-deletes; scheduling and metrics never see tombstoned rows.
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Clinic, error)
		CreateRoom(ctx context.Context, room *model.Room) error
		ListRooms(ctx context.Context, clinicID uuid.UUID) ([]*model.Room, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
		ListActive(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
	}

	// ScheduleRepository materializes the rows the availability resolver
	// consumes. The resolver itself is pure; this is its only data source.
	ScheduleRepository interface {
		CreateClinicSchedule(ctx context.Context, row *model.ClinicSchedule) error
		ListClinicSchedules(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicSchedule, error)
		DeleteClinicSchedule(ctx context.Context, id uuid.UUID) error

		CreateDoctorSchedule(ctx context.Context, row *model.DoctorSchedule) error
		ListDoctorSchedules(ctx context.Context, doctorID uuid.UUID) ([]*model.DoctorSchedule, error)
		DeleteDoctorSchedule(ctx context.Context, id uuid.UUID) error

		CreateDoctorException(ctx context.Context, row *model.DoctorException) error
		// ListDoctorExceptions returns exceptions for an exact clinic-local
		// date; exceptions never recur.
		ListDoctorExceptions(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.DoctorException, error)
		DeleteDoctorException(ctx context.Context, id uuid.UUID) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		// UpdateStatus persists a transition already validated against the
		// state machine; it is never called with an unchecked status.
		UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListForDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Appointment, error)
		// HasOverlap re-checks for a conflicting booking; callers run it in
		// the same scope as the write to close the read-then-write race.
		HasOverlap(ctx context.Context, doctorID uuid.UUID, date, startTime, endTime string, excludeID *uuid.UUID) (bool, error)

		CreateType(ctx context.Context, t *model.AppointmentType) error
		GetType(ctx context.Context, id uuid.UUID) (*model.AppointmentType, error)
		ListTypes(ctx context.Context, clinicID uuid.UUID) ([]*model.AppointmentType, error)
		DeleteType(ctx context.Context, id uuid.UUID) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)
