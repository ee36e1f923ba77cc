package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Service sends booking emails. Delivery is best effort: the booking flow
// logs failures and carries on.
type Service struct {
	cfg         SMTPConfig
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	logger      *logger.Logger
	// send is swapped out in tests.
	send func(*gomail.Message) error
}

func NewService(cfg SMTPConfig, patientRepo repository.PatientRepository, doctorRepo repository.DoctorRepository, log *logger.Logger) *Service {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Service{
		cfg:         cfg,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		logger:      log.WithComponent("notification"),
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

func (s *Service) AppointmentCreated(ctx context.Context, apt *model.Appointment) error {
	subject := "Appointment confirmation"
	body := fmt.Sprintf("Your appointment is booked for %s at %s.", apt.Date, apt.StartTime)
	return s.notifyPatient(ctx, apt, subject, body)
}

func (s *Service) AppointmentCancelled(ctx context.Context, apt *model.Appointment) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf("Your appointment on %s at %s has been cancelled.", apt.Date, apt.StartTime)
	return s.notifyPatient(ctx, apt, subject, body)
}

func (s *Service) notifyPatient(ctx context.Context, apt *model.Appointment, subject, body string) error {
	patient, err := s.patientRepo.Get(ctx, apt.PatientID)
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}
	if patient.Email == "" {
		s.logger.Debug("patient has no email, skipping notification", "patient_id", patient.ID.String())
		return nil
	}

	if doctor, err := s.doctorRepo.Get(ctx, apt.DoctorID); err == nil && doctor != nil {
		body = fmt.Sprintf("%s\nDoctor: %s", body, doctor.Name)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", patient.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
