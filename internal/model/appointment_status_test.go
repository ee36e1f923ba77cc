package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusInConsultation,
	AppointmentStatusTransferPending,
	AppointmentStatusPaid,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
	AppointmentStatusRequiresReschedule,
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		want []AppointmentStatus
	}{
		{AppointmentStatusPending, []AppointmentStatus{AppointmentStatusConfirmed, AppointmentStatusRequiresReschedule, AppointmentStatusCancelled}},
		{AppointmentStatusConfirmed, []AppointmentStatus{AppointmentStatusInConsultation, AppointmentStatusCancelled, AppointmentStatusNoShow, AppointmentStatusRequiresReschedule}},
		{AppointmentStatusInConsultation, []AppointmentStatus{AppointmentStatusPaid, AppointmentStatusTransferPending}},
		{AppointmentStatusTransferPending, []AppointmentStatus{AppointmentStatusPaid, AppointmentStatusCancelled}},
		{AppointmentStatusPaid, []AppointmentStatus{AppointmentStatusCompleted}},
		{AppointmentStatusRequiresReschedule, []AppointmentStatus{AppointmentStatusPending, AppointmentStatusCancelled}},
		{AppointmentStatusCompleted, []AppointmentStatus{}},
		{AppointmentStatusCancelled, []AppointmentStatus{}},
		{AppointmentStatusNoShow, []AppointmentStatus{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, AvailableTransitions(tt.from))
		})
	}
}

// IsValidTransition must agree with AvailableTransitions for every pair.
func TestTransitionTableClosure(t *testing.T) {
	for _, from := range allStatuses {
		reachable := map[AppointmentStatus]bool{}
		for _, to := range AvailableTransitions(from) {
			reachable[to] = true
		}
		for _, to := range allStatuses {
			assert.Equal(t, reachable[to], IsValidTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestMustPassThroughPaid(t *testing.T) {
	assert.False(t, IsValidTransition(AppointmentStatusInConsultation, AppointmentStatusCompleted))
	assert.True(t, IsValidTransition(AppointmentStatusInConsultation, AppointmentStatusPaid))
	assert.True(t, IsValidTransition(AppointmentStatusPaid, AppointmentStatusCompleted))
}

func TestUnknownStatus(t *testing.T) {
	assert.False(t, IsValidTransition("GARBAGE", AppointmentStatusPending))
	assert.Empty(t, AvailableTransitions("GARBAGE"))
	assert.False(t, IsTerminal("GARBAGE"))
	assert.False(t, KnownStatus("GARBAGE"))
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range allStatuses {
		terminal := s == AppointmentStatusCompleted ||
			s == AppointmentStatusCancelled ||
			s == AppointmentStatusNoShow
		assert.Equal(t, terminal, IsTerminal(s), s)
		if terminal {
			assert.Empty(t, AvailableTransitions(s), s)
		}
		assert.True(t, KnownStatus(s), s)
	}
}

func TestLabelsCoverAllStatuses(t *testing.T) {
	for _, s := range allStatuses {
		assert.NotEmpty(t, s.Label(), s)
		assert.NotEqual(t, string(s), s.Label(), s)
		assert.NotEmpty(t, s.Description(), s)
	}
	// Unknown statuses echo their raw value.
	assert.Equal(t, "weird", AppointmentStatus("weird").Label())
}
