package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
)

type dietPlanRepository struct {
	db *sqlx.DB
}

func NewDietPlanRepository(db *sqlx.DB) repository.DietPlanRepository {
	return &dietPlanRepository{db: db}
}

func (r *dietPlanRepository) Create(ctx context.Context, plan *model.DietPlan) error {
	query := `
		INSERT INTO diet_plans (id, patient_id, doctor_id, advice, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.PatientID,
		plan.DoctorID,
		plan.Advice,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create diet plan: %w", err)
	}
	return nil
}

func (r *dietPlanRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DietPlan, error) {
	query := `
		SELECT * FROM diet_plans
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var plans []*model.DietPlan
	err := r.db.SelectContext(ctx, &plans, query, patientID)
	return plans, err
}
