package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/glucocare/glucocare-api/internal/config"
	"github.com/glucocare/glucocare-api/internal/model"
)

type Service interface {
	SendWelcome(to, name string) error
	SendAppointmentStatus(to, patientName string, appointment *model.Appointment) error
}

type service struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewService(cfg config.EmailConfig) Service {
	return &service{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *service) SendWelcome(to, name string) error {
	body := fmt.Sprintf("Hello %s,<br><br>Your GlucoCare account is ready.", name)
	return s.send(to, "Welcome to GlucoCare", body)
}

func (s *service) SendAppointmentStatus(to, patientName string, appointment *model.Appointment) error {
	subject := fmt.Sprintf("Appointment %s", appointment.Status)
	body := fmt.Sprintf(
		"Hello %s,<br><br>Your %s appointment on %s is now %s.",
		patientName,
		appointment.Type,
		appointment.ScheduledAt.Format("Mon, 2 Jan 2006 15:04"),
		appointment.Status,
	)
	return s.send(to, subject, body)
}

func (s *service) send(to, subject, body string) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
