package model

type AppointmentStatus string

const (
	AppointmentStatusPending            AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed          AppointmentStatus = "CONFIRMED"
	AppointmentStatusInConsultation     AppointmentStatus = "IN_CONSULTATION"
	AppointmentStatusTransferPending    AppointmentStatus = "TRANSFER_PENDING"
	AppointmentStatusPaid               AppointmentStatus = "PAID"
	AppointmentStatusCompleted          AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled          AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow             AppointmentStatus = "NO_SHOW"
	AppointmentStatusRequiresReschedule AppointmentStatus = "REQUIRES_RESCHEDULE"
)

// InitialAppointmentStatus is the status every appointment is created with.
const InitialAppointmentStatus = AppointmentStatusPending

// statusTransitions is the authoritative transition table. Terminal states
// have no entry. No component may set an appointment status without checking
// it here first.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed,
		AppointmentStatusRequiresReschedule,
		AppointmentStatusCancelled,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInConsultation,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRequiresReschedule,
	},
	AppointmentStatusInConsultation: {
		AppointmentStatusPaid,
		AppointmentStatusTransferPending,
	},
	AppointmentStatusTransferPending: {
		AppointmentStatusPaid,
		AppointmentStatusCancelled,
	},
	AppointmentStatusPaid: {
		AppointmentStatusCompleted,
	},
	AppointmentStatusRequiresReschedule: {
		AppointmentStatusPending,
		AppointmentStatusCancelled,
	},
}

// IsValidTransition reports whether from → to is a legal status change.
// Unknown source statuses yield false, never a panic.
func IsValidTransition(from, to AppointmentStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the statuses reachable from the given one.
// Terminal and unknown statuses return an empty slice.
func AvailableTransitions(from AppointmentStatus) []AppointmentStatus {
	targets := statusTransitions[from]
	out := make([]AppointmentStatus, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether no further transition is legal from status.
// Only statuses that are part of the state set qualify; an unknown string is
// not "terminal", it is invalid.
func IsTerminal(status AppointmentStatus) bool {
	switch status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// AllAppointmentStatuses returns the closed state set in lifecycle order.
func AllAppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{
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
}

// KnownStatus reports whether status is part of the closed state set.
func KnownStatus(status AppointmentStatus) bool {
	if _, ok := statusTransitions[status]; ok {
		return true
	}
	return IsTerminal(status)
}

var statusLabels = map[AppointmentStatus]string{
	AppointmentStatusPending:            "Pending",
	AppointmentStatusConfirmed:          "Confirmed",
	AppointmentStatusInConsultation:     "In consultation",
	AppointmentStatusTransferPending:    "Awaiting transfer",
	AppointmentStatusPaid:               "Paid",
	AppointmentStatusCompleted:          "Completed",
	AppointmentStatusCancelled:          "Cancelled",
	AppointmentStatusNoShow:             "No-show",
	AppointmentStatusRequiresReschedule: "Needs rescheduling",
}

var statusDescriptions = map[AppointmentStatus]string{
	AppointmentStatusPending:            "Booked but not yet confirmed by the clinic",
	AppointmentStatusConfirmed:          "Confirmed; the patient is expected",
	AppointmentStatusInConsultation:     "The patient is currently with the doctor",
	AppointmentStatusTransferPending:    "Consultation finished; waiting for a bank transfer",
	AppointmentStatusPaid:               "Payment received, pending administrative closure",
	AppointmentStatusCompleted:          "Closed and settled",
	AppointmentStatusCancelled:          "Cancelled before the consultation took place",
	AppointmentStatusNoShow:             "The patient did not attend",
	AppointmentStatusRequiresReschedule: "Needs a new date before it can proceed",
}

// Label returns the short human-readable name for a status. Unknown statuses
// echo their raw value so the UI never renders an empty string.
func (s AppointmentStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Description returns the long-form explanation shown in status tooltips.
func (s AppointmentStatus) Description() string {
	if desc, ok := statusDescriptions[s]; ok {
		return desc
	}
	return string(s)
}
