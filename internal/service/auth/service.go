package auth

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service/permission"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

type Service struct {
	doctorRepo repository.DoctorRepository
	jwtSvc     *auth.JWTService
}

func NewService(doctorRepo repository.DoctorRepository, jwtSvc *auth.JWTService) *Service {
	return &Service{doctorRepo: doctorRepo, jwtSvc: jwtSvc}
}

type LoginResult struct {
	Token string `json:"token"`
}

// Login authenticates a doctor by email/password and issues an API token.
// The error is identical for unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, email)
	if err != nil || doctor == nil || !doctor.IsActive {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}
	if !security.CheckPassword(password, doctor.PasswordHash) {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	token, err := s.jwtSvc.Generate(doctor.ID, doctor.ClinicID, string(permission.RoleDoctor))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{Token: token}, nil
}

// Verify resolves a bearer token into the acting capability value.
func (s *Service) Verify(tokenString string) (permission.Actor, error) {
	claims, err := s.jwtSvc.Verify(tokenString)
	if err != nil {
		return permission.Actor{}, apperrors.Unauthorized(err)
	}
	return permission.Actor{
		Role:     permission.Role(claims.Role),
		ClinicID: claims.ClinicID,
		DoctorID: claims.DoctorID,
	}, nil
}
