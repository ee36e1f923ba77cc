package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/pkg/clinictime"
)

// DefaultTimezone is the documented fallback for clinics created before
// timezone became a required field. It only applies when the stored value is
// empty; a non-empty but unknown identifier is a configuration error and must
// never be defaulted.
const DefaultTimezone = "America/Mexico_City"

// DefaultSlotMinutes is the slot granularity assumed when a clinic has none
// configured.
const DefaultSlotMinutes = 30

type Clinic struct {
	Base
	Name        string `db:"name" json:"name"`
	Timezone    string `db:"timezone" json:"timezone"`
	SlotMinutes int    `db:"slot_minutes" json:"slot_minutes"`
	IsActive    bool   `db:"is_active" json:"is_active"`
}

// EffectiveTimezone returns the clinic's IANA timezone, falling back to
// DefaultTimezone only when unset.
func (c *Clinic) EffectiveTimezone() string {
	if c.Timezone == "" {
		return DefaultTimezone
	}
	return c.Timezone
}

// Location resolves the clinic timezone. Errors surface to the caller as a
// configuration failure.
func (c *Clinic) Location() (*time.Location, error) {
	return clinictime.Location(c.EffectiveTimezone())
}

// EffectiveSlotMinutes returns the clinic's slot granularity in minutes.
func (c *Clinic) EffectiveSlotMinutes() int {
	if c.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return c.SlotMinutes
}

// ClinicSchedule is one weekly availability block of the clinic template.
// A weekday may carry several rows (e.g. morning and afternoon blocks); the
// day's availability is the union of its rows.
type ClinicSchedule struct {
	Base
	ClinicID  uuid.UUID    `db:"clinic_id" json:"clinic_id"`
	Weekday   time.Weekday `db:"weekday" json:"weekday"`
	StartTime string       `db:"start_time" json:"start_time"`
	EndTime   string       `db:"end_time" json:"end_time"`
	IsActive  bool         `db:"is_active" json:"is_active"`
}

type Room struct {
	Base
	ClinicID uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name     string    `db:"name" json:"name"`
	IsActive bool      `db:"is_active" json:"is_active"`
}

type CreateClinicRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Timezone    string `json:"timezone" validate:"required,timezone"`
	SlotMinutes int    `json:"slot_minutes" validate:"omitempty,min=5,max=240"`
}

type CreateClinicScheduleRequest struct {
	ClinicID  uuid.UUID `json:"clinic_id" validate:"required"`
	Weekday   int       `json:"weekday" validate:"min=0,max=6"`
	StartTime string    `json:"start_time" validate:"required,hhmm"`
	EndTime   string    `json:"end_time" validate:"required,hhmm,gtfield=StartTime"`
}
