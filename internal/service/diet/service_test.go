package diet

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucocare/glucocare-api/internal/model"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

type fakeDietPlanRepo struct {
	plans []*model.DietPlan
}

func (r *fakeDietPlanRepo) Create(ctx context.Context, plan *model.DietPlan) error {
	r.plans = append([]*model.DietPlan{plan}, r.plans...)
	return nil
}

func (r *fakeDietPlanRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DietPlan, error) {
	var out []*model.DietPlan
	for _, p := range r.plans {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (r *fakeUserRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) AssignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) UnassignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	return false, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	return nil
}

func TestCreatePlan(t *testing.T) {
	ctx := context.Background()
	doctor := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleDoctor}
	patient := &model.User{
		Base:             model.Base{ID: uuid.New()},
		Role:             model.RolePatient,
		AssignedDoctorID: &doctor.ID,
	}

	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		doctor.ID:  doctor,
		patient.ID: patient,
	}}
	outbox := &fakeOutboxRepo{}
	svc := NewService(&fakeDietPlanRepo{}, users, outbox)

	plan, err := svc.CreatePlan(ctx, doctor.ID, patient.ID, "less sugar, more fiber")
	require.NoError(t, err)
	assert.Equal(t, patient.ID, plan.PatientID)
	assert.Equal(t, doctor.ID, plan.DoctorID)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventDietPlanCreated, outbox.events[0].EventType)

	// A doctor the patient is not assigned to cannot write advice.
	_, err = svc.CreatePlan(ctx, uuid.New(), patient.ID, "nope")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))

	_, err = svc.CreatePlan(ctx, doctor.ID, uuid.New(), "nope")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestListPlans(t *testing.T) {
	ctx := context.Background()
	doctor := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleDoctor}
	patient := &model.User{
		Base:             model.Base{ID: uuid.New()},
		Role:             model.RolePatient,
		AssignedDoctorID: &doctor.ID,
	}

	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		doctor.ID:  doctor,
		patient.ID: patient,
	}}
	svc := NewService(&fakeDietPlanRepo{}, users, &fakeOutboxRepo{})

	for _, advice := range []string{"first", "second"} {
		_, err := svc.CreatePlan(ctx, doctor.ID, patient.ID, advice)
		require.NoError(t, err)
	}

	plans, err := svc.ListPlans(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "second", plans[0].Advice)
}
