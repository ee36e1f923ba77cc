package model

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	Base
	ClinicID      uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	Name          string     `db:"name" json:"name"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Acronym       string     `db:"acronym" json:"acronym"`
	DefaultRoomID *uuid.UUID `db:"default_room_id" json:"default_room_id,omitempty"`
	IsActive      bool       `db:"is_active" json:"is_active"`
}

// DoctorSchedule is one weekly availability block owned by a doctor. A doctor
// with at least one row (any weekday) opts out of the clinic template
// entirely; the override is all-or-nothing, never per weekday.
type DoctorSchedule struct {
	Base
	DoctorID  uuid.UUID    `db:"doctor_id" json:"doctor_id"`
	Weekday   time.Weekday `db:"weekday" json:"weekday"`
	StartTime string       `db:"start_time" json:"start_time"`
	EndTime   string       `db:"end_time" json:"end_time"`
	IsActive  bool         `db:"is_active" json:"is_active"`
}

// DoctorException is a date-specific availability override. Both times absent
// means the doctor is blocked for the whole date; both present means the
// sub-interval overrides whatever schedule applies that day. Exceptions never
// recur.
type DoctorException struct {
	Base
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date      string    `db:"date" json:"date"`
	StartTime *string   `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string   `db:"end_time" json:"end_time,omitempty"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
}

// FullDay reports whether the exception blocks the entire date.
func (e *DoctorException) FullDay() bool {
	return e.StartTime == nil && e.EndTime == nil
}

type CreateDoctorRequest struct {
	ClinicID uuid.UUID `json:"clinic_id" validate:"required"`
	Name     string    `json:"name" validate:"required,max=255"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required,min=8"`
	Acronym  string    `json:"acronym" validate:"required,max=8"`
}

type CreateDoctorScheduleRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Weekday   int       `json:"weekday" validate:"min=0,max=6"`
	StartTime string    `json:"start_time" validate:"required,hhmm"`
	EndTime   string    `json:"end_time" validate:"required,hhmm,gtfield=StartTime"`
}

type CreateDoctorExceptionRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime *string   `json:"start_time" validate:"omitempty,hhmm"`
	EndTime   *string   `json:"end_time" validate:"omitempty,hhmm,required_with=StartTime"`
	Reason    *string   `json:"reason" validate:"omitempty,max=500"`
}
