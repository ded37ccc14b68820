package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

const (
	profileCacheTTL     = 5 * time.Minute
	profileCacheCleanup = 10 * time.Minute
)

type Service struct {
	userRepo   repository.UserRepository
	outboxRepo repository.OutboxRepository
	cache      *gocache.Cache
}

func NewService(userRepo repository.UserRepository, outboxRepo repository.OutboxRepository) *Service {
	return &Service{
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		cache:      gocache.New(profileCacheTTL, profileCacheCleanup),
	}
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Profile), nil
	}

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}

	profile := user.ToProfile()
	s.cache.SetDefault(id.String(), profile)
	return profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Clinic != nil {
		user.Clinic = *req.Clinic
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Delete(id.String())
	return user.ToProfile(), nil
}

// ListMyPatients returns the profiles of patients assigned to doctorID.
func (s *Service) ListMyPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Profile, error) {
	patients, err := s.userRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	profiles := make([]*model.Profile, 0, len(patients))
	for _, p := range patients {
		profiles = append(profiles, p.ToProfile())
	}
	return profiles, nil
}

// AssignPatient links the patient found by email to doctorID. The
// at-most-one-doctor invariant lives in the conditional write, not in a
// read-then-write check, so concurrent doctors cannot both succeed.
func (s *Service) AssignPatient(ctx context.Context, doctorID uuid.UUID, patientEmail string) (*model.Profile, error) {
	patient, err := s.userRepo.GetByEmail(ctx, patientEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	if patient.Role != model.RolePatient {
		return nil, apperrors.BadRequest("user is not a patient", nil)
	}

	if patient.AssignedDoctorID != nil && *patient.AssignedDoctorID == doctorID {
		// Already mine, nothing to do.
		return patient.ToProfile(), nil
	}

	assigned, err := s.userRepo.AssignDoctor(ctx, patient.ID, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !assigned {
		// The slot was taken, possibly between our read and the write.
		current, err := s.userRepo.Get(ctx, patient.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if current.AssignedDoctorID != nil && *current.AssignedDoctorID == doctorID {
			return current.ToProfile(), nil
		}
		return nil, apperrors.Conflict("patient is already assigned to another doctor", nil)
	}

	s.cache.Delete(patient.ID.String())
	s.emitEvent(ctx, model.EventPatientAssigned, map[string]string{
		"patient_id": patient.ID.String(),
		"doctor_id":  doctorID.String(),
	})

	patient.AssignedDoctorID = &doctorID
	return patient.ToProfile(), nil
}

func (s *Service) RemovePatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	removed, err := s.userRepo.UnassignDoctor(ctx, patientID, doctorID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !removed {
		if _, err := s.userRepo.Get(ctx, patientID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("patient", err)
			}
			return apperrors.Internal(err)
		}
		return apperrors.Forbidden("patient is not assigned to you", nil)
	}

	s.cache.Delete(patientID.String())
	s.emitEvent(ctx, model.EventPatientUnassigned, map[string]string{
		"patient_id": patientID.String(),
		"doctor_id":  doctorID.String(),
	})
	return nil
}

// CanAccessPatient reports whether userID may read patientID's data:
// the patient themselves or their assigned doctor.
func (s *Service) CanAccessPatient(ctx context.Context, userID, patientID uuid.UUID) (bool, error) {
	if userID == patientID {
		return true, nil
	}

	patient, err := s.userRepo.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperrors.NotFound("patient", err)
		}
		return false, apperrors.Internal(err)
	}

	return patient.AssignedDoctorID != nil && *patient.AssignedDoctorID == userID, nil
}

func (s *Service) emitEvent(ctx context.Context, eventType string, payload interface{}) {
	raw, err := json.Marshal(payload)
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
