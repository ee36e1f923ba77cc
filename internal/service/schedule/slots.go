package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
)

// Occupancy is the capacity snapshot for one doctor or one clinic on a date.
type Occupancy struct {
	TotalSlots    int     `json:"total_slots"`
	OccupiedSlots int     `json:"occupied_slots"`
	Rate          float64 `json:"rate"`
}

// TotalSlots counts how many whole slots of slotMinutes fit into the given
// intervals. Intervals are summed independently: overlapping rows double-count
// on purpose (dashboards rely on the existing bias, see DESIGN.md).
func TotalSlots(intervals []model.Interval, slotMinutes int) (int, error) {
	if slotMinutes <= 0 {
		return 0, fmt.Errorf("slot minutes must be positive, got %d", slotMinutes)
	}
	total := 0
	for _, iv := range intervals {
		start, end, err := bounds(iv)
		if err != nil {
			return 0, err
		}
		if end <= start {
			continue
		}
		total += (end - start) / slotMinutes
	}
	return total, nil
}

// CountOccupied counts the appointments holding a slot. One appointment is
// one slot regardless of its duration; accounting is count-based.
func CountOccupied(appointments []*model.Appointment) int {
	occupied := 0
	for _, apt := range appointments {
		if apt.Billable() {
			occupied++
		}
	}
	return occupied
}

// OccupancyRate returns occupied/total as a percentage, zero when there is no
// capacity. Never NaN or Inf.
func OccupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}

// NewOccupancy bundles the three figures.
func NewOccupancy(total, occupied int) Occupancy {
	return Occupancy{
		TotalSlots:    total,
		OccupiedSlots: occupied,
		Rate:          OccupancyRate(occupied, total),
	}
}

// EstimatedIncome sums the effective price of every billable appointment.
// A dashboard estimate, not a billing ledger.
func EstimatedIncome(appointments []*model.Appointment) decimal.Decimal {
	income := decimal.Zero
	for _, apt := range appointments {
		if apt.Billable() {
			income = income.Add(apt.EffectivePrice())
		}
	}
	return income
}

// SlotStarts enumerates the clinic-local start times of every slot in the
// intervals. Used by the booking UI to offer concrete times.
func SlotStarts(intervals []model.Interval, slotMinutes int) ([]string, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot minutes must be positive, got %d", slotMinutes)
	}
	starts := []string{}
	for _, iv := range intervals {
		start, end, err := bounds(iv)
		if err != nil {
			return nil, err
		}
		for t := start; t+slotMinutes <= end; t += slotMinutes {
			starts = append(starts, clinictime.FormatClock(t))
		}
	}
	return starts, nil
}
