package diet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

type Service struct {
	repo       repository.DietPlanRepository
	userRepo   repository.UserRepository
	outboxRepo repository.OutboxRepository
}

func NewService(repo repository.DietPlanRepository, userRepo repository.UserRepository,
	outboxRepo repository.OutboxRepository) *Service {
	return &Service{repo: repo, userRepo: userRepo, outboxRepo: outboxRepo}
}

// CreatePlan appends an advice note. Only the patient's assigned doctor
// may write one.
func (s *Service) CreatePlan(ctx context.Context, doctorID, patientID uuid.UUID, advice string) (*model.DietPlan, error) {
	patient, err := s.userRepo.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}
	if patient.AssignedDoctorID == nil || *patient.AssignedDoctorID != doctorID {
		return nil, apperrors.Forbidden("patient is not assigned to you", nil)
	}

	plan := &model.DietPlan{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID: patientID,
		DoctorID:  doctorID,
		Advice:    advice,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, apperrors.Internal(err)
	}

	if raw, err := json.Marshal(plan); err == nil {
		if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
			EventType: model.EventDietPlanCreated,
			Payload:   raw,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	return plan, nil
}

// ListPlans returns a patient's advice notes, newest first.
func (s *Service) ListPlans(ctx context.Context, patientID uuid.UUID) ([]*model.DietPlan, error) {
	plans, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return plans, nil
}
