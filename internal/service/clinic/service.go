package clinic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/clinictime"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.ClinicRepository
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	// Validate the timezone up front; a clinic with a broken timezone poisons
	// every availability computation downstream.
	if _, err := clinictime.Location(req.Timezone); err != nil {
		return nil, apperrors.Configuration("invalid clinic timezone", err)
	}

	clinic := &model.Clinic{
		Base:        model.Base{ID: uuid.New()},
		Name:        req.Name,
		Timezone:    req.Timezone,
		SlotMinutes: req.SlotMinutes,
		IsActive:    true,
	}
	if clinic.SlotMinutes == 0 {
		clinic.SlotMinutes = model.DefaultSlotMinutes
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) Update(ctx context.Context, clinic *model.Clinic) error {
	if clinic.Timezone != "" {
		if _, err := clinictime.Location(clinic.Timezone); err != nil {
			return apperrors.Configuration("invalid clinic timezone", err)
		}
	}
	return s.repo.Update(ctx, clinic)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Clinic, error) {
	return s.repo.List(ctx)
}

func (s *Service) CreateRoom(ctx context.Context, room *model.Room) error {
	room.ID = uuid.New()
	room.IsActive = true
	return s.repo.CreateRoom(ctx, room)
}

func (s *Service) ListRooms(ctx context.Context, clinicID uuid.UUID) ([]*model.Room, error) {
	return s.repo.ListRooms(ctx, clinicID)
}
