package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/glucocare/glucocare-api/internal/email"
	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

type Service struct {
	repo       repository.AppointmentRepository
	userRepo   repository.UserRepository
	outboxRepo repository.OutboxRepository
	emailSvc   email.Service
}

func NewService(repo repository.AppointmentRepository, userRepo repository.UserRepository,
	outboxRepo repository.OutboxRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:       repo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		emailSvc:   emailSvc,
	}
}

// Request creates a patient-initiated appointment, which always starts
// in REQUESTED with the patient's assigned doctor.
func (s *Service) Request(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.userRepo.Get(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if patient.AssignedDoctorID == nil {
		return nil, apperrors.BadRequest("no doctor assigned", nil)
	}

	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.BadRequest("appointment cannot be scheduled in the past", nil)
	}

	appointment := &model.Appointment{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:   patientID,
		DoctorID:    *patient.AssignedDoctorID,
		ScheduledAt: req.ScheduledAt,
		Type:        req.Type,
		Status:      model.AppointmentStatusRequested,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.emitEvent(ctx, model.EventAppointmentCreated, appointment)
	return appointment, nil
}

// Schedule creates a doctor-initiated appointment, which skips the
// request state and starts CONFIRMED.
func (s *Service) Schedule(ctx context.Context, doctorID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.userRepo.Get(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}
	if patient.AssignedDoctorID == nil || *patient.AssignedDoctorID != doctorID {
		return nil, apperrors.Forbidden("patient is not assigned to you", nil)
	}

	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.BadRequest("appointment cannot be scheduled in the past", nil)
	}

	appointment := &model.Appointment{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:   req.PatientID,
		DoctorID:    doctorID,
		ScheduledAt: req.ScheduledAt,
		Type:        req.Type,
		Status:      model.AppointmentStatusConfirmed,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.emitEvent(ctx, model.EventAppointmentCreated, appointment)
	return appointment, nil
}

// UpdateStatus moves a REQUESTED appointment to CONFIRMED or CANCELLED.
// Both target states are terminal; leaving one is a conflict.
func (s *Service) UpdateStatus(ctx context.Context, doctorID, id uuid.UUID, to model.AppointmentStatus) (*model.Appointment, error) {
	if to != model.AppointmentStatusConfirmed && to != model.AppointmentStatusCancelled {
		return nil, apperrors.BadRequest("invalid target status", nil)
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Internal(err)
	}

	if appointment.DoctorID != doctorID {
		return nil, apperrors.Forbidden("appointment belongs to another doctor", nil)
	}

	if appointment.Status.Terminal() {
		return nil, apperrors.Conflict(fmt.Sprintf("appointment is already %s", appointment.Status), nil)
	}

	updated, err := s.repo.UpdateStatusFrom(ctx, id, model.AppointmentStatusRequested, to)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !updated {
		// Lost the race against another status change.
		return nil, apperrors.Conflict("appointment status already changed", nil)
	}

	appointment.Status = to
	s.emitEvent(ctx, model.EventAppointmentStatusChanged, appointment)
	s.notifyPatient(ctx, appointment)

	return appointment, nil
}

// ListForDoctor returns the doctor's appointments with every REQUESTED
// item ahead of the rest, ascending date within each group.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	SortDoctorView(appointments)
	markPast(appointments, time.Now())
	return appointments, nil
}

// ListForPatient returns the patient's appointments newest first, with
// the derived past flag set.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	markPast(appointments, time.Now())
	return appointments, nil
}

// SortDoctorView orders appointments for the doctor's work list: every
// REQUESTED item before every other status, ascending date within each
// group.
func SortDoctorView(appointments []*model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		iReq := appointments[i].Status == model.AppointmentStatusRequested
		jReq := appointments[j].Status == model.AppointmentStatusRequested
		if iReq != jReq {
			return iReq
		}
		return appointments[i].ScheduledAt.Before(appointments[j].ScheduledAt)
	})
}

func markPast(appointments []*model.Appointment, now time.Time) {
	for _, a := range appointments {
		a.Past = a.ScheduledAt.Before(now)
	}
}

func (s *Service) notifyPatient(ctx context.Context, appointment *model.Appointment) {
	patient, err := s.userRepo.Get(ctx, appointment.PatientID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", appointment.PatientID.String()).Msg("failed to load patient for notification")
		return
	}
	if err := s.emailSvc.SendAppointmentStatus(patient.Email, patient.FullName, appointment); err != nil {
		log.Warn().Err(err).Str("email", patient.Email).Msg("failed to send appointment notification")
	}
}

func (s *Service) emitEvent(ctx context.Context, eventType string, appointment *model.Appointment) {
	raw, err := json.Marshal(appointment)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   raw,
	}); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
