package record

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

// DefaultChartPoints matches what the dashboard chart renders.
const DefaultChartPoints = 7

type Service struct {
	repo       repository.RecordRepository
	outboxRepo repository.OutboxRepository
}

func NewService(repo repository.RecordRepository, outboxRepo repository.OutboxRepository) *Service {
	return &Service{repo: repo, outboxRepo: outboxRepo}
}

func (s *Service) AddRecord(ctx context.Context, patientID, recordedBy uuid.UUID, req *model.CreateRecordRequest) (*model.GlucoseRecord, error) {
	record := &model.GlucoseRecord{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:     patientID,
		RecordedBy:    recordedBy,
		GlucoseLevel:  req.GlucoseLevel,
		BloodPressure: req.BloodPressure,
		Weight:        req.Weight,
		MeasuredAt:    req.MeasuredAt,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, apperrors.Internal(err)
	}

	if raw, err := json.Marshal(record); err == nil {
		if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
			EventType: model.EventRecordCreated,
			Payload:   raw,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	return record, nil
}

// ListRecords returns all of a patient's records, newest first.
func (s *Service) ListRecords(ctx context.Context, patientID uuid.UUID) ([]*model.GlucoseRecord, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

// ChartSeries returns the most recent points measurements in
// chronological order, ready to plot.
func (s *Service) ChartSeries(ctx context.Context, patientID uuid.UUID, points int) ([]model.ChartPoint, error) {
	if points <= 0 {
		points = DefaultChartPoints
	}

	records, err := s.repo.ListRecent(ctx, patientID, points)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return BuildChartSeries(records), nil
}

// SpikeAnalysis scans the patient's records for the highest glucose
// reading and reports when it was taken.
func (s *Service) SpikeAnalysis(ctx context.Context, patientID uuid.UUID) (*model.GlucoseSpike, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	spike := FindSpike(records)
	if spike == nil {
		return nil, apperrors.NotFound("glucose records", nil)
	}
	return spike, nil
}

// BuildChartSeries reverses a newest-first record list into a
// chronological point series.
func BuildChartSeries(records []*model.GlucoseRecord) []model.ChartPoint {
	series := make([]model.ChartPoint, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		series = append(series, model.ChartPoint{
			Date:    r.MeasuredAt,
			Glucose: r.GlucoseLevel,
			Weight:  r.Weight,
		})
	}
	return series
}

// FindSpike is a linear max-scan over all records. Returns nil when
// there are no records.
func FindSpike(records []*model.GlucoseRecord) *model.GlucoseSpike {
	if len(records) == 0 {
		return nil
	}

	max := records[0]
	for _, r := range records[1:] {
		if r.GlucoseLevel > max.GlucoseLevel {
			max = r
		}
	}

	return &model.GlucoseSpike{
		GlucoseLevel: max.GlucoseLevel,
		MeasuredAt:   max.MeasuredAt,
		RecordID:     max.ID,
	}
}
