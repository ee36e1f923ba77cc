package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "PENDING"
	OutboxStatusProcessed OutboxStatus = "PROCESSED"
	OutboxStatusFailed    OutboxStatus = "FAILED"
)

// Appointment lifecycle event types drained to the broker.
const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentTransition  = "appointment.status_changed"
	EventAppointmentRescheduled = "appointment.rescheduled"
)

// OutboxEvent is written in the same transaction scope as the appointment
// change it describes and published asynchronously by the outbox processor.
type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}

// AppointmentEvent is the payload published for every lifecycle event.
type AppointmentEvent struct {
	AppointmentID uuid.UUID          `json:"appointment_id"`
	ClinicID      uuid.UUID          `json:"clinic_id"`
	DoctorID      uuid.UUID          `json:"doctor_id"`
	PatientID     uuid.UUID          `json:"patient_id"`
	Date          string             `json:"date"`
	StartTime     string             `json:"start_time"`
	FromStatus    *AppointmentStatus `json:"from_status,omitempty"`
	ToStatus      AppointmentStatus  `json:"to_status"`
	OccurredAt    time.Time          `json:"occurred_at"`
}
