package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (id, name, timezone, slot_minutes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.Timezone,
		clinic.SlotMinutes,
		clinic.IsActive,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, timezone, slot_minutes, is_active, created_at, updated_at, deleted_at
		FROM clinics
		WHERE id = $1 AND deleted_at IS NULL
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, timezone = $2, slot_minutes = $3, is_active = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`
	clinic.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.Timezone,
		clinic.SlotMinutes,
		clinic.IsActive,
		clinic.UpdatedAt,
		clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}
	return requireRow(result, "clinic")
}

// Delete is a soft delete; the row stays for historical reporting.
func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE clinics
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return requireRow(result, "clinic")
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `
		SELECT id, name, timezone, slot_minutes, is_active, created_at, updated_at, deleted_at
		FROM clinics
		WHERE deleted_at IS NULL
		ORDER BY name
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) CreateRoom(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (id, clinic_id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	room.CreatedAt = time.Now()
	room.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.ClinicID,
		room.Name,
		room.IsActive,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *clinicRepository) ListRooms(ctx context.Context, clinicID uuid.UUID) ([]*model.Room, error) {
	query := `
		SELECT id, clinic_id, name, is_active, created_at, updated_at, deleted_at
		FROM rooms
		WHERE clinic_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`
	var rooms []*model.Room
	if err := r.db.SelectContext(ctx, &rooms, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
