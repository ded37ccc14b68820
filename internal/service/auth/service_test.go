package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/pkg/auth"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
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
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.LastLoginAt = &at
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

type fakeTokenRepo struct {
	revoked map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{revoked: make(map[string]bool)}
}

func (r *fakeTokenRepo) InvalidateToken(ctx context.Context, token string, expiresAt time.Time) error {
	r.revoked[token] = true
	return nil
}

func (r *fakeTokenRepo) IsInvalidated(ctx context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

type fakeEmailService struct {
	welcomes int
}

func (s *fakeEmailService) SendWelcome(to, name string) error {
	s.welcomes++
	return nil
}

func (s *fakeEmailService) SendAppointmentStatus(to, patientName string, appointment *model.Appointment) error {
	return nil
}

func setupService() (*Service, *fakeUserRepo, *fakeTokenRepo, *fakeEmailService) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	emailSvc := &fakeEmailService{}
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
	return NewService(users, tokens, jwtSvc, emailSvc, time.Hour), users, tokens, emailSvc
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Role:     model.RolePatient,
		FullName: "Test Patient",
		Email:    "patient@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _, _, emailSvc := setupService()

	profile, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, profile.Role)
	assert.Equal(t, 1, emailSvc.welcomes)

	// The same email cannot register twice.
	_, err = svc.Register(ctx, registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setupService()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "patient@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, model.RolePatient, resp.User.Role)

	_, err = svc.Login(ctx, "patient@example.com", "wrong-pass")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

func TestLoginRejectsRolelessAccount(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := setupService()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	for _, u := range users.users {
		u.Role = ""
	}

	// No role means no access at all, never a default view.
	_, err = svc.Login(ctx, "patient@example.com", "s3cret-pass")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setupService()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "patient@example.com", "s3cret-pass")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a refresh token.
	_, err = svc.Refresh(ctx, resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setupService()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "patient@example.com", "s3cret-pass")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "patient@example.com", claims.Email)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))

	_, err = svc.ValidateToken(ctx, resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}
