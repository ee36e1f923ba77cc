package schedule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
)

func TestTotalSlots(t *testing.T) {
	tests := []struct {
		name        string
		intervals   []model.Interval
		slotMinutes int
		want        int
	}{
		{
			name:        "monday morning block",
			intervals:   []model.Interval{{Start: "09:00", End: "13:00"}},
			slotMinutes: 30,
			want:        8,
		},
		{
			name:        "partial slot floors",
			intervals:   []model.Interval{{Start: "09:00", End: "09:50"}},
			slotMinutes: 30,
			want:        1,
		},
		{
			name: "two blocks sum",
			intervals: []model.Interval{
				{Start: "09:00", End: "12:00"},
				{Start: "15:00", End: "18:00"},
			},
			slotMinutes: 60,
			want:        6,
		},
		{
			name: "overlapping blocks double-count",
			intervals: []model.Interval{
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "12:00"},
			},
			slotMinutes: 60,
			want:        4,
		},
		{
			name:        "empty",
			intervals:   []model.Interval{},
			slotMinutes: 30,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalSlots(tt.intervals, tt.slotMinutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalSlotsRejectsNonPositiveGranularity(t *testing.T) {
	_, err := TotalSlots([]model.Interval{{Start: "09:00", End: "10:00"}}, 0)
	assert.Error(t, err)
}

func TestOccupancyRateZeroGuard(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(0, 0))
	assert.Equal(t, 0.0, OccupancyRate(5, 0))
	assert.Equal(t, 50.0, OccupancyRate(4, 8))

	occ := NewOccupancy(0, 0)
	assert.Equal(t, 0.0, occ.Rate)
}

func TestCountOccupied(t *testing.T) {
	appointments := []*model.Appointment{
		{Status: model.AppointmentStatusConfirmed, IsActive: true},
		{Status: model.AppointmentStatusPending, IsActive: true},
		{Status: model.AppointmentStatusCancelled, IsActive: true},
		{Status: model.AppointmentStatusConfirmed, IsActive: false},
	}
	// Cancelled and inactive rows hold no slot; duration is irrelevant.
	assert.Equal(t, 2, CountOccupied(appointments))
}

func TestEstimatedIncome(t *testing.T) {
	price := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	typ := &model.AppointmentType{Price: decimal.NewFromInt(300)}

	appointments := []*model.Appointment{
		{Status: model.AppointmentStatusCompleted, IsActive: true, CustomPrice: price(500)},
		// Zero custom price falls back to the type's standard price.
		{Status: model.AppointmentStatusCompleted, IsActive: true, CustomPrice: price(0), Type: typ},
		// Cancelled revenue never counts.
		{Status: model.AppointmentStatusCancelled, IsActive: true, CustomPrice: price(1000)},
	}

	assert.True(t, EstimatedIncome(appointments).Equal(decimal.NewFromInt(800)))
}

func TestEstimatedIncomeNoPriceAnywhere(t *testing.T) {
	appointments := []*model.Appointment{
		{Status: model.AppointmentStatusConfirmed, IsActive: true},
	}
	assert.True(t, EstimatedIncome(appointments).IsZero())
}

func TestSlotStarts(t *testing.T) {
	starts, err := SlotStarts([]model.Interval{{Start: "09:00", End: "10:30"}}, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, starts)

	// A slot that would overrun the interval end is not offered.
	starts, err = SlotStarts([]model.Interval{{Start: "09:00", End: "09:50"}}, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, starts)
}
