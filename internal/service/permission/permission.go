// Package permission is a pure capability oracle: a role/clinic pair in,
// booleans out. It deliberately has no dependency on any session or request
// type so it stays testable and reusable from any transport.
package permission

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

// Actor identifies who is acting and on behalf of which clinic.
type Actor struct {
	Role     Role
	ClinicID uuid.UUID
	// DoctorID is set when the actor is a doctor; doctors may only touch
	// their own schedule.
	DoctorID uuid.UUID
}

// sameClinic guards every capability: nothing crosses clinic boundaries.
func (a Actor) sameClinic(clinicID uuid.UUID) bool {
	return a.ClinicID != uuid.Nil && a.ClinicID == clinicID
}

func (a Actor) CanManageClinic(clinicID uuid.UUID) bool {
	return a.Role == RoleAdmin && a.sameClinic(clinicID)
}

func (a Actor) CanManageDoctors(clinicID uuid.UUID) bool {
	return a.Role == RoleAdmin && a.sameClinic(clinicID)
}

func (a Actor) CanManageSchedule(clinicID, doctorID uuid.UUID) bool {
	if !a.sameClinic(clinicID) {
		return false
	}
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleDoctor:
		return a.DoctorID != uuid.Nil && a.DoctorID == doctorID
	}
	return false
}

func (a Actor) CanBookAppointments(clinicID uuid.UUID) bool {
	return a.sameClinic(clinicID) && (a.Role == RoleAdmin || a.Role == RoleReceptionist || a.Role == RoleDoctor)
}

func (a Actor) CanTransitionAppointments(clinicID uuid.UUID) bool {
	return a.CanBookAppointments(clinicID)
}

func (a Actor) CanManagePatients(clinicID uuid.UUID) bool {
	return a.sameClinic(clinicID) && (a.Role == RoleAdmin || a.Role == RoleReceptionist)
}

func (a Actor) CanViewReports(clinicID uuid.UUID) bool {
	return a.sameClinic(clinicID) && (a.Role == RoleAdmin || a.Role == RoleDoctor)
}
