package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const appointmentColumns = `
	a.id, a.clinic_id, a.doctor_id, a.patient_id, a.room_id, a.type_id,
	a.date, a.start_time, a.end_time, a.status, a.custom_price,
	a.payment_method, a.notes, a.is_active, a.created_at, a.updated_at, a.deleted_at
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, clinic_id, doctor_id, patient_id, room_id, type_id,
			date, start_time, end_time, status, custom_price,
			payment_method, notes, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.ClinicID,
		apt.DoctorID,
		apt.PatientID,
		apt.RoomID,
		apt.TypeID,
		apt.Date,
		apt.StartTime,
		apt.EndTime,
		apt.Status,
		apt.CustomPrice,
		apt.PaymentMethod,
		apt.Notes,
		apt.IsActive,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments a WHERE a.id = $1 AND a.deleted_at IS NULL`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if err := r.attachType(ctx, &apt); err != nil {
		return nil, err
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET room_id = $1, type_id = $2, date = $3, start_time = $4, end_time = $5,
		    custom_price = $6, payment_method = $7, notes = $8, updated_at = $9
		WHERE id = $10 AND deleted_at IS NULL
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.RoomID,
		apt.TypeID,
		apt.Date,
		apt.StartTime,
		apt.EndTime,
		apt.CustomPrice,
		apt.PaymentMethod,
		apt.Notes,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return requireRow(result, "appointment")
}

// UpdateStatus guards on the expected current status so a concurrent
// transition loses cleanly instead of silently overwriting.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return requireRow(result, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE appointments
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return requireRow(result, "appointment")
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	conditions = append(conditions, "a.deleted_at IS NULL")
	if filters.ClinicID != uuid.Nil {
		addCondition("a.clinic_id = $%d", filters.ClinicID)
	}
	if filters.DoctorID != uuid.Nil {
		addCondition("a.doctor_id = $%d", filters.DoctorID)
	}
	if filters.PatientID != uuid.Nil {
		addCondition("a.patient_id = $%d", filters.PatientID)
	}
	if filters.Status != "" {
		addCondition("a.status = $%d", filters.Status)
	}
	if filters.StartDate != "" {
		addCondition("a.date >= $%d", filters.StartDate)
	}
	if filters.EndDate != "" {
		addCondition("a.date <= $%d", filters.EndDate)
	}

	query := `SELECT ` + appointmentColumns + `
		FROM appointments a
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY a.date, a.start_time`

	var apts []*model.Appointment
	if err := r.db.SelectContext(ctx, &apts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if err := r.attachTypes(ctx, apts); err != nil {
		return nil, err
	}
	return apts, nil
}

func (r *appointmentRepository) ListForDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments a
		WHERE a.doctor_id = $1 AND a.date = $2 AND a.deleted_at IS NULL
		ORDER BY a.start_time`

	var apts []*model.Appointment
	if err := r.db.SelectContext(ctx, &apts, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list appointments for doctor date: %w", err)
	}
	if err := r.attachTypes(ctx, apts); err != nil {
		return nil, err
	}
	return apts, nil
}

// HasOverlap uses half-open interval logic on HH:MM strings; lexicographic
// comparison is correct for zero-padded 24h clock values.
func (r *appointmentRepository) HasOverlap(ctx context.Context, doctorID uuid.UUID, date, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND date = $2
			  AND start_time < $4
			  AND end_time > $3
			  AND status != $5
			  AND is_active
			  AND deleted_at IS NULL
			  AND ($6::uuid IS NULL OR id != $6)
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query,
		doctorID, date, startTime, endTime, model.AppointmentStatusCancelled, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check appointment overlap: %w", err)
	}
	return exists, nil
}

func (r *appointmentRepository) CreateType(ctx context.Context, t *model.AppointmentType) error {
	query := `
		INSERT INTO appointment_types (id, clinic_id, name, duration_minutes, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ClinicID,
		t.Name,
		t.DurationMinutes,
		t.Price,
		t.IsActive,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment type: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetType(ctx context.Context, id uuid.UUID) (*model.AppointmentType, error) {
	query := `
		SELECT id, clinic_id, name, duration_minutes, price, is_active, created_at, updated_at, deleted_at
		FROM appointment_types
		WHERE id = $1 AND deleted_at IS NULL
	`
	var t model.AppointmentType
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment type: %w", err)
	}
	return &t, nil
}

func (r *appointmentRepository) ListTypes(ctx context.Context, clinicID uuid.UUID) ([]*model.AppointmentType, error) {
	query := `
		SELECT id, clinic_id, name, duration_minutes, price, is_active, created_at, updated_at, deleted_at
		FROM appointment_types
		WHERE clinic_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`
	var types []*model.AppointmentType
	if err := r.db.SelectContext(ctx, &types, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list appointment types: %w", err)
	}
	return types, nil
}

func (r *appointmentRepository) DeleteType(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE appointment_types
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment type: %w", err)
	}
	return requireRow(result, "appointment type")
}

func (r *appointmentRepository) attachType(ctx context.Context, apt *model.Appointment) error {
	if apt.TypeID == nil {
		return nil
	}
	// Soft-deleted types still back revenue fallback for old appointments.
	query := `
		SELECT id, clinic_id, name, duration_minutes, price, is_active, created_at, updated_at, deleted_at
		FROM appointment_types
		WHERE id = $1
	`
	var t model.AppointmentType
	if err := r.db.GetContext(ctx, &t, query, *apt.TypeID); err != nil {
		return fmt.Errorf("failed to load appointment type: %w", err)
	}
	apt.Type = &t
	return nil
}

func (r *appointmentRepository) attachTypes(ctx context.Context, apts []*model.Appointment) error {
	ids := make([]uuid.UUID, 0, len(apts))
	seen := make(map[uuid.UUID]bool)
	for _, apt := range apts {
		if apt.TypeID != nil && !seen[*apt.TypeID] {
			seen[*apt.TypeID] = true
			ids = append(ids, *apt.TypeID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`
		SELECT id, clinic_id, name, duration_minutes, price, is_active, created_at, updated_at, deleted_at
		FROM appointment_types
		WHERE id IN (?)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to build appointment type query: %w", err)
	}

	var types []*model.AppointmentType
	if err := r.db.SelectContext(ctx, &types, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load appointment types: %w", err)
	}

	byID := make(map[uuid.UUID]*model.AppointmentType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}
	for _, apt := range apts {
		if apt.TypeID != nil {
			apt.Type = byID[*apt.TypeID]
		}
	}
	return nil
}
