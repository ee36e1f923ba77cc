// Package report derives dashboard figures from already-fetched appointment
// windows. Aggregation is a single pass over the slice; no queries happen
// here.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
)

// Period selects the reporting window.
type Period string

const (
	PeriodDay    Period = "day"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// DoctorStats accumulates per-doctor figures.
type DoctorStats struct {
	Total     int             `json:"total"`
	Completed int             `json:"completed"`
	Cancelled int             `json:"cancelled"`
	NoShow    int             `json:"no_show"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TypeStats accumulates per-appointment-type figures.
type TypeStats struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Report is the aggregation result for one window. Grouping keys with no
// matching appointments are absent from the maps, never present as zero.
type Report struct {
	Total            int                                       `json:"total"`
	ByStatus         map[model.AppointmentStatus]int           `json:"by_status"`
	ByDoctor         map[uuid.UUID]*DoctorStats                `json:"by_doctor"`
	ByType           map[uuid.UUID]*TypeStats                  `json:"by_type"`
	ByWeekday        map[string]int                            `json:"by_weekday"`
	ByHour           map[int]int                               `json:"by_hour"`
	RevenueByMethod  map[model.PaymentMethod]decimal.Decimal   `json:"revenue_by_method"`
	EstimatedIncome  decimal.Decimal                           `json:"estimated_income"`
	CancellationRate float64                                   `json:"cancellation_rate"`
	// AppointmentChange is the period-over-period change in total count,
	// filled in by the service when a previous window is known.
	AppointmentChange float64 `json:"appointment_change"`
}

// Aggregate runs the single-pass aggregation over a window of appointments.
// Weekday and hour grouping use the clinic-local date and start time; tz is
// the clinic's timezone.
func Aggregate(appointments []*model.Appointment, tz string) (*Report, error) {
	r := &Report{
		ByStatus:        map[model.AppointmentStatus]int{},
		ByDoctor:        map[uuid.UUID]*DoctorStats{},
		ByType:          map[uuid.UUID]*TypeStats{},
		ByWeekday:       map[string]int{},
		ByHour:          map[int]int{},
		RevenueByMethod: map[model.PaymentMethod]decimal.Decimal{},
		EstimatedIncome: decimal.Zero,
	}

	cancelledLike := 0
	for _, apt := range appointments {
		if apt.Deleted() {
			continue
		}
		r.Total++
		r.ByStatus[apt.Status]++

		if apt.Status == model.AppointmentStatusCancelled || apt.Status == model.AppointmentStatusNoShow {
			cancelledLike++
		}

		stats := r.ByDoctor[apt.DoctorID]
		if stats == nil {
			stats = &DoctorStats{Revenue: decimal.Zero}
			r.ByDoctor[apt.DoctorID] = stats
		}
		stats.Total++
		switch apt.Status {
		case model.AppointmentStatusCompleted:
			stats.Completed++
		case model.AppointmentStatusCancelled:
			stats.Cancelled++
		case model.AppointmentStatusNoShow:
			stats.NoShow++
		}
		if apt.Billable() {
			stats.Revenue = stats.Revenue.Add(apt.EffectivePrice())
			r.EstimatedIncome = r.EstimatedIncome.Add(apt.EffectivePrice())
		}

		if apt.TypeID != nil {
			ts := r.ByType[*apt.TypeID]
			if ts == nil {
				ts = &TypeStats{Revenue: decimal.Zero}
				r.ByType[*apt.TypeID] = ts
			}
			ts.Count++
			if apt.Billable() {
				ts.Revenue = ts.Revenue.Add(apt.EffectivePrice())
			}
		}

		weekday, err := clinictime.Weekday(apt.Date, tz)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", apt.ID, err)
		}
		r.ByWeekday[weekday.String()]++

		minutes, err := clinictime.ParseClock(apt.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", apt.ID, err)
		}
		r.ByHour[minutes/60]++

		// Settled money only: payment-method revenue is restricted to
		// appointments that actually reached PAID or COMPLETED.
		if apt.PaymentMethod != nil &&
			(apt.Status == model.AppointmentStatusCompleted || apt.Status == model.AppointmentStatusPaid) {
			prev, ok := r.RevenueByMethod[*apt.PaymentMethod]
			if !ok {
				prev = decimal.Zero
			}
			r.RevenueByMethod[*apt.PaymentMethod] = prev.Add(apt.EffectivePrice())
		}
	}

	r.CancellationRate = rate(cancelledLike, r.Total)
	return r, nil
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// PercentChange returns the change from previous to current as a percentage.
// An empty previous period reads as 0% change, never infinity.
func PercentChange(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// PeriodDates returns the inclusive clinic-local [start, end] date range for a
// period anchored on today (a clinic-local date). Custom periods pass their
// own range and skip this helper.
func PeriodDates(period Period, today string) (string, string, error) {
	t, err := time.Parse(clinictime.DateLayout, today)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", today, err)
	}

	switch period {
	case PeriodDay:
		return today, today, nil
	case PeriodWeek:
		// Calendar week starting Monday.
		offset := (int(t.Weekday()) + 6) % 7
		start := t.AddDate(0, 0, -offset)
		return start.Format(clinictime.DateLayout), start.AddDate(0, 0, 6).Format(clinictime.DateLayout), nil
	case PeriodMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start.Format(clinictime.DateLayout), start.AddDate(0, 1, -1).Format(clinictime.DateLayout), nil
	case PeriodYear:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return start.Format(clinictime.DateLayout), start.AddDate(1, 0, -1).Format(clinictime.DateLayout), nil
	default:
		return "", "", fmt.Errorf("unknown period %q", period)
	}
}

// PreviousRange returns the immediately preceding range of equal length for
// an inclusive [start, end] date range: a week compares against the week
// starting 7 days earlier, a custom 10-day range against the prior 10 days.
func PreviousRange(start, end string) (string, string, error) {
	s, err := time.Parse(clinictime.DateLayout, start)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", start, err)
	}
	e, err := time.Parse(clinictime.DateLayout, end)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", end, err)
	}
	days := int(e.Sub(s).Hours()/24) + 1
	if days <= 0 {
		return "", "", fmt.Errorf("end %q before start %q", end, start)
	}
	prevStart := s.AddDate(0, 0, -days)
	prevEnd := s.AddDate(0, 0, -1)
	return prevStart.Format(clinictime.DateLayout), prevEnd.Format(clinictime.DateLayout), nil
}
