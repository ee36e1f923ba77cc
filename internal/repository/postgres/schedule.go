package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// Schedule times are stored as HH:MM clinic-local strings; weekday as 0-6.
// UTC conversion happens at the query boundary in the services, not here.

func (r *scheduleRepository) CreateClinicSchedule(ctx context.Context, row *model.ClinicSchedule) error {
	query := `
		INSERT INTO clinic_schedules (id, clinic_id, weekday, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now()
	row.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.ClinicID,
		int(row.Weekday),
		row.StartTime,
		row.EndTime,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) ListClinicSchedules(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicSchedule, error) {
	query := `
		SELECT id, clinic_id, weekday, start_time, end_time, is_active, created_at, updated_at, deleted_at
		FROM clinic_schedules
		WHERE clinic_id = $1 AND deleted_at IS NULL
		ORDER BY weekday, start_time
	`
	var rows []*model.ClinicSchedule
	if err := r.db.SelectContext(ctx, &rows, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list clinic schedules: %w", err)
	}
	return rows, nil
}

func (r *scheduleRepository) DeleteClinicSchedule(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clinic_schedules SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic schedule: %w", err)
	}
	return requireRow(result, "clinic schedule")
}

func (r *scheduleRepository) CreateDoctorSchedule(ctx context.Context, row *model.DoctorSchedule) error {
	query := `
		INSERT INTO doctor_schedules (id, doctor_id, weekday, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now()
	row.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.DoctorID,
		int(row.Weekday),
		row.StartTime,
		row.EndTime,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) ListDoctorSchedules(ctx context.Context, doctorID uuid.UUID) ([]*model.DoctorSchedule, error) {
	query := `
		SELECT id, doctor_id, weekday, start_time, end_time, is_active, created_at, updated_at, deleted_at
		FROM doctor_schedules
		WHERE doctor_id = $1 AND deleted_at IS NULL
		ORDER BY weekday, start_time
	`
	var rows []*model.DoctorSchedule
	if err := r.db.SelectContext(ctx, &rows, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor schedules: %w", err)
	}
	return rows, nil
}

func (r *scheduleRepository) DeleteDoctorSchedule(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE doctor_schedules SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor schedule: %w", err)
	}
	return requireRow(result, "doctor schedule")
}

func (r *scheduleRepository) CreateDoctorException(ctx context.Context, row *model.DoctorException) error {
	query := `
		INSERT INTO doctor_exceptions (id, doctor_id, date, start_time, end_time, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now()
	row.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.DoctorID,
		row.Date,
		row.StartTime,
		row.EndTime,
		row.Reason,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor exception: %w", err)
	}
	return nil
}

func (r *scheduleRepository) ListDoctorExceptions(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.DoctorException, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, reason, created_at, updated_at, deleted_at
		FROM doctor_exceptions
		WHERE doctor_id = $1 AND date = $2 AND deleted_at IS NULL
		ORDER BY start_time NULLS FIRST
	`
	var rows []*model.DoctorException
	if err := r.db.SelectContext(ctx, &rows, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list doctor exceptions: %w", err)
	}
	return rows, nil
}

func (r *scheduleRepository) DeleteDoctorException(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE doctor_exceptions SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor exception: %w", err)
	}
	return requireRow(result, "doctor exception")
}
