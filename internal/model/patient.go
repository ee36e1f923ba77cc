package model

import (
	"github.com/google/uuid"
)

type Patient struct {
	Base
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	BirthDate *string   `db:"birth_date" json:"birth_date,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

type CreatePatientRequest struct {
	ClinicID  uuid.UUID `json:"clinic_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=255"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone" validate:"omitempty,max=32"`
	BirthDate *string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

type PatientFilters struct {
	ClinicID   uuid.UUID
	SearchTerm string
	Pagination
}
