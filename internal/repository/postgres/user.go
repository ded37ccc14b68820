package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, role, full_name, email, password_hash, phone, clinic, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Role,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Clinic,
		user.Address,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM users WHERE email = $1`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET full_name = $1, phone = $2, clinic = $3, address = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		user.FullName, user.Phone, user.Clinic, user.Address, time.Now(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

func (r *userRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error) {
	query := `
		SELECT * FROM users
		WHERE role = $1 AND assigned_doctor_id = $2
		ORDER BY full_name
	`
	var users []*model.User
	err := r.db.SelectContext(ctx, &users, query, model.RolePatient, doctorID)
	return users, err
}

// AssignDoctor is the compare-and-swap the assignment invariant relies
// on: the write only happens while the slot is still empty, so two
// doctors racing for the same patient cannot both win.
func (r *userRepository) AssignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	query := `
		UPDATE users
		SET assigned_doctor_id = $1, updated_at = $2
		WHERE id = $3 AND role = $4 AND assigned_doctor_id IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, doctorID, time.Now(), patientID, model.RolePatient)
	if err != nil {
		return false, fmt.Errorf("failed to assign doctor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) UnassignDoctor(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	query := `
		UPDATE users
		SET assigned_doctor_id = NULL, updated_at = $1
		WHERE id = $2 AND assigned_doctor_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, time.Now(), patientID, doctorID)
	if err != nil {
		return false, fmt.Errorf("failed to unassign doctor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
