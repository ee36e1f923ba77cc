package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClinicBoundary(t *testing.T) {
	mine, theirs := uuid.New(), uuid.New()
	admin := Actor{Role: RoleAdmin, ClinicID: mine}

	assert.True(t, admin.CanManageClinic(mine))
	assert.False(t, admin.CanManageClinic(theirs))
	assert.False(t, admin.CanBookAppointments(theirs))
	assert.False(t, admin.CanViewReports(theirs))
}

func TestZeroActorHasNoCapabilities(t *testing.T) {
	var nobody Actor
	clinic := uuid.New()

	assert.False(t, nobody.CanManageClinic(clinic))
	assert.False(t, nobody.CanBookAppointments(clinic))
	assert.False(t, nobody.CanManageSchedule(clinic, uuid.New()))
	// Even against a nil clinic id.
	assert.False(t, nobody.CanManageClinic(uuid.Nil))
}

func TestDoctorOwnScheduleOnly(t *testing.T) {
	clinic := uuid.New()
	self, colleague := uuid.New(), uuid.New()
	doctor := Actor{Role: RoleDoctor, ClinicID: clinic, DoctorID: self}

	assert.True(t, doctor.CanManageSchedule(clinic, self))
	assert.False(t, doctor.CanManageSchedule(clinic, colleague))
	assert.False(t, doctor.CanManageDoctors(clinic))
	assert.True(t, doctor.CanViewReports(clinic))
}

func TestReceptionistCapabilities(t *testing.T) {
	clinic := uuid.New()
	reception := Actor{Role: RoleReceptionist, ClinicID: clinic}

	assert.True(t, reception.CanBookAppointments(clinic))
	assert.True(t, reception.CanTransitionAppointments(clinic))
	assert.True(t, reception.CanManagePatients(clinic))
	assert.False(t, reception.CanManageSchedule(clinic, uuid.New()))
	assert.False(t, reception.CanViewReports(clinic))
}
