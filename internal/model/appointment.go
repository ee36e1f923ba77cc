package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodTransfer  PaymentMethod = "transfer"
	PaymentMethodInsurance PaymentMethod = "insurance"
)

// AppointmentType is a booking template. Its price is captured onto the
// appointment at read time: deleting a type never retroactively changes
// revenue attribution for appointments that reference it.
type AppointmentType struct {
	Base
	ClinicID        uuid.UUID       `db:"clinic_id" json:"clinic_id"`
	Name            string          `db:"name" json:"name"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	Price           decimal.Decimal `db:"price" json:"price"`
	IsActive        bool            `db:"is_active" json:"is_active"`
}

type Appointment struct {
	Base
	ClinicID    uuid.UUID         `db:"clinic_id" json:"clinic_id"`
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	RoomID      *uuid.UUID        `db:"room_id" json:"room_id,omitempty"`
	TypeID      *uuid.UUID        `db:"type_id" json:"type_id,omitempty"`
	Date        string            `db:"date" json:"date"`
	StartTime   string            `db:"start_time" json:"start_time"`
	EndTime     string            `db:"end_time" json:"end_time"`
	Status      AppointmentStatus `db:"status" json:"status"`
	CustomPrice *decimal.Decimal  `db:"custom_price" json:"custom_price,omitempty"`
	// Type carries the joined appointment type when the repository loads it;
	// only its Price participates in revenue fallback.
	Type          *AppointmentType `db:"-" json:"type,omitempty"`
	PaymentMethod *PaymentMethod   `db:"payment_method" json:"payment_method,omitempty"`
	Notes         string           `db:"notes" json:"notes,omitempty"`
	IsActive      bool             `db:"is_active" json:"is_active"`
}

// EffectivePrice resolves the revenue attributed to this appointment:
// the captured custom price first, the type's standard price next, zero last.
// A custom price of zero is treated as unset, matching how the booking form
// stores "use the standard price".
func (a *Appointment) EffectivePrice() decimal.Decimal {
	if a.CustomPrice != nil && !a.CustomPrice.IsZero() {
		return *a.CustomPrice
	}
	if a.Type != nil {
		return a.Type.Price
	}
	return decimal.Zero
}

// Billable reports whether the appointment counts toward occupancy and
// revenue: active, not soft-deleted, not cancelled.
func (a *Appointment) Billable() bool {
	return a.IsActive && !a.Deleted() && a.Status != AppointmentStatusCancelled
}

type CreateAppointmentRequest struct {
	ClinicID      uuid.UUID        `json:"clinic_id" validate:"required"`
	DoctorID      uuid.UUID        `json:"doctor_id" validate:"required"`
	PatientID     uuid.UUID        `json:"patient_id" validate:"required"`
	RoomID        *uuid.UUID       `json:"room_id"`
	TypeID        *uuid.UUID       `json:"type_id"`
	Date          string           `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string           `json:"start_time" validate:"required,hhmm"`
	EndTime       string           `json:"end_time" validate:"required,hhmm,gtfield=StartTime"`
	CustomPrice   *decimal.Decimal `json:"custom_price"`
	PaymentMethod *PaymentMethod   `json:"payment_method" validate:"omitempty,oneof=cash card transfer insurance"`
	Notes         string           `json:"notes" validate:"max=1000"`
}

type TransitionRequest struct {
	Status AppointmentStatus `json:"status" validate:"required"`
}

type AppointmentFilters struct {
	ClinicID  uuid.UUID
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	// Clinic-local calendar dates, inclusive.
	StartDate string
	EndDate   string
}
