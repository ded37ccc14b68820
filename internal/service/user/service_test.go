package user

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

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (r *fakeUserRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		if u.AssignedDoctorID != nil && *u.AssignedDoctorID == doctorID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AssignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	u, ok := r.users[patientID]
	if !ok || u.Role != model.RolePatient || u.AssignedDoctorID != nil {
		return false, nil
	}
	d := doctorID
	u.AssignedDoctorID = &d
	return true, nil
}

func (r *fakeUserRepo) UnassignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	u, ok := r.users[patientID]
	if !ok || u.AssignedDoctorID == nil || *u.AssignedDoctorID != doctorID {
		return false, nil
	}
	u.AssignedDoctorID = nil
	return true, nil
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

func newPatient(email string) *model.User {
	return &model.User{
		Base:     model.Base{ID: uuid.New()},
		Role:     model.RolePatient,
		FullName: "Test Patient",
		Email:    email,
	}
}

func newDoctor(email string) *model.User {
	return &model.User{
		Base:     model.Base{ID: uuid.New()},
		Role:     model.RoleDoctor,
		FullName: "Test Doctor",
		Email:    email,
	}
}

func TestAssignPatient(t *testing.T) {
	ctx := context.Background()
	patient := newPatient("patient@example.com")
	doctorA := newDoctor("doctor.a@example.com")
	doctorB := newDoctor("doctor.b@example.com")

	repo := newFakeUserRepo(patient, doctorA, doctorB)
	outbox := &fakeOutboxRepo{}
	svc := NewService(repo, outbox)

	profile, err := svc.AssignPatient(ctx, doctorA.ID, patient.Email)
	require.NoError(t, err)
	require.Len(t, profile.AssignedDoctorIDs, 1)
	assert.Equal(t, doctorA.ID, profile.AssignedDoctorIDs[0])

	// A second doctor cannot take an already assigned patient.
	_, err = svc.AssignPatient(ctx, doctorB.ID, patient.Email)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))

	// Re-assigning to the same doctor is a no-op, not an error.
	profile, err = svc.AssignPatient(ctx, doctorA.ID, patient.Email)
	require.NoError(t, err)
	assert.Equal(t, doctorA.ID, profile.AssignedDoctorIDs[0])

	// Once released, the patient can be claimed by another doctor.
	require.NoError(t, svc.RemovePatient(ctx, doctorA.ID, patient.ID))
	profile, err = svc.AssignPatient(ctx, doctorB.ID, patient.Email)
	require.NoError(t, err)
	assert.Equal(t, doctorB.ID, profile.AssignedDoctorIDs[0])
}

func TestAssignPatientValidation(t *testing.T) {
	ctx := context.Background()
	doctorA := newDoctor("doctor.a@example.com")
	doctorB := newDoctor("doctor.b@example.com")

	repo := newFakeUserRepo(doctorA, doctorB)
	svc := NewService(repo, &fakeOutboxRepo{})

	_, err := svc.AssignPatient(ctx, doctorA.ID, "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))

	_, err = svc.AssignPatient(ctx, doctorA.ID, doctorB.Email)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.Code(err))
}

func TestRemovePatient(t *testing.T) {
	ctx := context.Background()
	patient := newPatient("patient@example.com")
	doctorA := newDoctor("doctor.a@example.com")
	doctorB := newDoctor("doctor.b@example.com")
	patient.AssignedDoctorID = &doctorA.ID

	repo := newFakeUserRepo(patient, doctorA, doctorB)
	svc := NewService(repo, &fakeOutboxRepo{})

	// Another doctor cannot release a patient that is not theirs.
	err := svc.RemovePatient(ctx, doctorB.ID, patient.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))

	err = svc.RemovePatient(ctx, doctorB.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))

	require.NoError(t, svc.RemovePatient(ctx, doctorA.ID, patient.ID))
}

func TestCanAccessPatient(t *testing.T) {
	ctx := context.Background()
	patient := newPatient("patient@example.com")
	doctorA := newDoctor("doctor.a@example.com")
	doctorB := newDoctor("doctor.b@example.com")
	patient.AssignedDoctorID = &doctorA.ID

	repo := newFakeUserRepo(patient, doctorA, doctorB)
	svc := NewService(repo, &fakeOutboxRepo{})

	ok, err := svc.CanAccessPatient(ctx, patient.ID, patient.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccessPatient(ctx, doctorA.ID, patient.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccessPatient(ctx, doctorB.ID, patient.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssignPatientEmitsEvent(t *testing.T) {
	ctx := context.Background()
	patient := newPatient("patient@example.com")
	doctorA := newDoctor("doctor.a@example.com")

	repo := newFakeUserRepo(patient, doctorA)
	outbox := &fakeOutboxRepo{}
	svc := NewService(repo, outbox)

	_, err := svc.AssignPatient(ctx, doctorA.ID, patient.Email)
	require.NoError(t, err)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventPatientAssigned, outbox.events[0].EventType)
}
