package chat

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
	"github.com/glucocare/glucocare-api/pkg/metrics"
)

// Prometheus collectors register globally, so share one instance across
// the package's tests.
var testMetrics = metrics.NewMetrics("glucocare", "chat_test")

type fakeMessageRepo struct {
	messages []*model.ChatMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	// Newest first, like the storage query.
	r.messages = append([]*model.ChatMessage{msg}, r.messages...)
	return nil
}

func (r *fakeMessageRepo) ListWindow(ctx context.Context, conversationID string, limit int, before *time.Time) ([]*model.ChatMessage, error) {
	var out []*model.ChatMessage
	for _, m := range r.messages {
		if m.ConversationID != conversationID {
			continue
		}
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
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

type fakeBroker struct {
	published map[string][]interface{}
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][]interface{})}
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.published[channel] = append(b.published[channel], message)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (b *fakeBroker) Close() error { return nil }

func setupService() (*Service, *fakeMessageRepo, *fakeBroker, *model.User, *model.User) {
	doctor := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleDoctor}
	patient := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RolePatient}

	repo := &fakeMessageRepo{}
	broker := newFakeBroker()
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		doctor.ID:  doctor,
		patient.ID: patient,
	}}
	return NewService(repo, users, broker, testMetrics), repo, broker, doctor, patient
}

func TestConversationIDSymmetric(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, ConversationID(a, b), ConversationID(b, a))
	assert.Contains(t, ConversationID(a, b), "_")
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	svc, repo, broker, doctor, patient := setupService()

	msg, err := svc.Send(ctx, patient.ID, model.RolePatient, doctor.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, ConversationID(patient.ID, doctor.ID), msg.ConversationID)
	assert.Equal(t, "hello", msg.Text)

	require.Len(t, repo.messages, 1)
	require.Len(t, broker.published[Channel(msg.ConversationID)], 1)
}

func TestSendRejectsSelfAndSameRole(t *testing.T) {
	ctx := context.Background()
	svc, _, _, doctor, patient := setupService()

	_, err := svc.Send(ctx, patient.ID, model.RolePatient, patient.ID, "hi me")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.Code(err))

	otherDoctor := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleDoctor}
	svcUsers := &fakeUserRepo{users: map[uuid.UUID]*model.User{otherDoctor.ID: otherDoctor}}
	svc2 := NewService(&fakeMessageRepo{}, svcUsers, newFakeBroker(), testMetrics)

	_, err = svc2.Send(ctx, doctor.ID, model.RoleDoctor, otherDoctor.ID, "shop talk")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))

	_, err = svc2.Send(ctx, doctor.ID, model.RoleDoctor, uuid.New(), "anyone there")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestHistoryWindow(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, doctor, patient := setupService()

	convID := ConversationID(patient.ID, doctor.ID)
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < model.MaxWindowLimit+20; i++ {
		repo.messages = append([]*model.ChatMessage{{
			Base:           model.Base{ID: uuid.New(), CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			ConversationID: convID,
			SenderID:       patient.ID,
			RecipientID:    doctor.ID,
			Text:           "msg",
		}}, repo.messages...)
	}

	// No explicit limit: the default window applies.
	messages, err := svc.History(ctx, patient.ID, doctor.ID, 0, nil)
	require.NoError(t, err)
	assert.Len(t, messages, model.DefaultWindowLimit)

	// Requests above the cap are clamped.
	messages, err = svc.History(ctx, patient.ID, doctor.ID, model.MaxWindowLimit+50, nil)
	require.NoError(t, err)
	assert.Len(t, messages, model.MaxWindowLimit)
}
