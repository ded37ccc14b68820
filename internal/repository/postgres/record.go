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

type recordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *model.GlucoseRecord) error {
	query := `
		INSERT INTO glucose_records (id, patient_id, recorded_by, glucose_level, blood_pressure, weight, measured_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.RecordedBy,
		record.GlucoseLevel,
		record.BloodPressure,
		record.Weight,
		record.MeasuredAt,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

func (r *recordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.GlucoseRecord, error) {
	query := `
		SELECT * FROM glucose_records
		WHERE patient_id = $1
		ORDER BY measured_at DESC
	`
	var records []*model.GlucoseRecord
	err := r.db.SelectContext(ctx, &records, query, patientID)
	return records, err
}

func (r *recordRepository) ListRecent(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.GlucoseRecord, error) {
	query := `
		SELECT * FROM glucose_records
		WHERE patient_id = $1
		ORDER BY measured_at DESC
		LIMIT $2
	`
	var records []*model.GlucoseRecord
	err := r.db.SelectContext(ctx, &records, query, patientID, limit)
	return records, err
}
