package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		Base:         model.Base{ID: uuid.New()},
		ClinicID:     req.ClinicID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Acronym:      req.Acronym,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, doctor *model.Doctor) error {
	return s.repo.Update(ctx, doctor)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	return s.repo.List(ctx, clinicID)
}
