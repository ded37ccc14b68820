package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glucocare/glucocare-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles profile storage for patients and doctors
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error)
		// AssignDoctor is a conditional write: it succeeds only when the
		// patient has no doctor yet. Returns false when no row matched.
		AssignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)
		// UnassignDoctor clears the link only when it points at doctorID.
		UnassignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)
	}

	RecordRepository interface {
		Create(ctx context.Context, record *model.GlucoseRecord) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.GlucoseRecord, error)
		ListRecent(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.GlucoseRecord, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		// UpdateStatusFrom transitions status only when the stored status
		// still equals from. Returns false when no row matched.
		UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) (bool, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	}

	DietPlanRepository interface {
		Create(ctx context.Context, plan *model.DietPlan) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DietPlan, error)
	}

	MessageRepository interface {
		Create(ctx context.Context, msg *model.ChatMessage) error
		ListWindow(ctx context.Context, conversationID string, limit int, before *time.Time) ([]*model.ChatMessage, error)
	}

	TokenRepository interface {
		InvalidateToken(ctx context.Context, token string, expiresAt time.Time) error
		IsInvalidated(ctx context.Context, token string) (bool, error)
		DeleteExpired(ctx context.Context) (int64, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	}
)
