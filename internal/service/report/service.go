package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service/schedule"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

// OccupancyComputer is the slice of the schedule service the dashboard needs.
type OccupancyComputer interface {
	ClinicOccupancy(ctx context.Context, clinicID uuid.UUID, date string) (schedule.Occupancy, error)
}

type Service struct {
	clinicRepo repository.ClinicRepository
	aptRepo    repository.AppointmentRepository
	occupancy  OccupancyComputer
}

func NewService(
	clinicRepo repository.ClinicRepository,
	aptRepo repository.AppointmentRepository,
	occupancy OccupancyComputer,
) *Service {
	return &Service{
		clinicRepo: clinicRepo,
		aptRepo:    aptRepo,
		occupancy:  occupancy,
	}
}

// Overview aggregates the requested window and fills in the change against
// the immediately preceding window of equal length.
func (s *Service) Overview(ctx context.Context, clinicID uuid.UUID, period Period, customStart, customEnd string) (*Report, error) {
	clinic, err := s.clinicRepo.Get(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	tz := clinic.EffectiveTimezone()

	start, end := customStart, customEnd
	if period != PeriodCustom {
		today, err := clinictime.CurrentLocalDate(tz)
		if err != nil {
			return nil, apperrors.Configuration(fmt.Sprintf("clinic %s has an invalid timezone", clinic.ID), err)
		}
		start, end, err = PeriodDates(period, today)
		if err != nil {
			return nil, apperrors.BadRequest("invalid report period", err)
		}
	}
	if start == "" || end == "" {
		return nil, apperrors.BadRequest("custom period requires start and end dates", nil)
	}

	window, err := s.aptRepo.List(ctx, &model.AppointmentFilters{
		ClinicID:  clinicID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	rep, err := Aggregate(window, tz)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd, err := PreviousRange(start, end)
	if err != nil {
		return nil, apperrors.BadRequest("invalid report range", err)
	}
	previous, err := s.aptRepo.List(ctx, &model.AppointmentFilters{
		ClinicID:  clinicID,
		StartDate: prevStart,
		EndDate:   prevEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list previous period: %w", err)
	}
	rep.AppointmentChange = PercentChange(rep.Total, len(previous))

	return rep, nil
}

// TodayReport is the landing dashboard: today's bookings, the clinic-wide
// occupancy and the projected income for the day.
type TodayReport struct {
	Date      string             `json:"date"`
	Report    *Report            `json:"report"`
	Occupancy schedule.Occupancy `json:"occupancy"`
}

func (s *Service) Today(ctx context.Context, clinicID uuid.UUID) (*TodayReport, error) {
	clinic, err := s.clinicRepo.Get(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	tz := clinic.EffectiveTimezone()

	today, err := clinictime.CurrentLocalDate(tz)
	if err != nil {
		return nil, apperrors.Configuration(fmt.Sprintf("clinic %s has an invalid timezone", clinic.ID), err)
	}

	window, err := s.aptRepo.List(ctx, &model.AppointmentFilters{
		ClinicID:  clinicID,
		StartDate: today,
		EndDate:   today,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	rep, err := Aggregate(window, tz)
	if err != nil {
		return nil, err
	}

	occ, err := s.occupancy.ClinicOccupancy(ctx, clinicID, today)
	if err != nil {
		return nil, err
	}

	return &TodayReport{Date: today, Report: rep, Occupancy: occ}, nil
}
