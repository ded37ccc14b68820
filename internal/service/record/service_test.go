package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucocare/glucocare-api/internal/model"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

type fakeRecordRepo struct {
	records []*model.GlucoseRecord
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *model.GlucoseRecord) error {
	// Newest first, like the storage query.
	r.records = append([]*model.GlucoseRecord{record}, r.records...)
	return nil
}

func (r *fakeRecordRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.GlucoseRecord, error) {
	var out []*model.GlucoseRecord
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) ListRecent(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.GlucoseRecord, error) {
	out, _ := r.ListByPatient(ctx, patientID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
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

func recordsFromLevels(patientID uuid.UUID, levels ...float64) []*model.GlucoseRecord {
	base := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	out := make([]*model.GlucoseRecord, 0, len(levels))
	// Build newest first like the repository returns them.
	for i := len(levels) - 1; i >= 0; i-- {
		out = append(out, &model.GlucoseRecord{
			Base:         model.Base{ID: uuid.New()},
			PatientID:    patientID,
			GlucoseLevel: levels[i],
			MeasuredAt:   base.AddDate(0, 0, i),
		})
	}
	return out
}

func TestFindSpike(t *testing.T) {
	patientID := uuid.New()
	records := recordsFromLevels(patientID, 90, 140, 88, 205, 110)

	spike := FindSpike(records)
	require.NotNil(t, spike)
	assert.Equal(t, float64(205), spike.GlucoseLevel)
	assert.Equal(t, time.Date(2025, time.March, 4, 8, 0, 0, 0, time.UTC), spike.MeasuredAt)

	assert.Nil(t, FindSpike(nil))
}

func TestBuildChartSeries(t *testing.T) {
	patientID := uuid.New()
	records := recordsFromLevels(patientID, 90, 140, 88)

	series := BuildChartSeries(records)
	require.Len(t, series, 3)

	// Chronological order even though records arrive newest first.
	assert.Equal(t, float64(90), series[0].Glucose)
	assert.Equal(t, float64(140), series[1].Glucose)
	assert.Equal(t, float64(88), series[2].Glucose)
	assert.True(t, series[0].Date.Before(series[1].Date))
	assert.True(t, series[1].Date.Before(series[2].Date))

	assert.Empty(t, BuildChartSeries(nil))
}

func TestAddRecordEmitsEvent(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRecordRepo{}
	outbox := &fakeOutboxRepo{}
	svc := NewService(repo, outbox)

	patientID := uuid.New()
	record, err := svc.AddRecord(ctx, patientID, patientID, &model.CreateRecordRequest{
		GlucoseLevel:  132,
		BloodPressure: "120/80",
		Weight:        81.5,
		MeasuredAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, patientID, record.PatientID)
	assert.NotEqual(t, uuid.Nil, record.ID)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventRecordCreated, outbox.events[0].EventType)
}

func TestChartSeriesLimitsPoints(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRecordRepo{}
	svc := NewService(repo, &fakeOutboxRepo{})

	patientID := uuid.New()
	repo.records = recordsFromLevels(patientID, 100, 105, 110, 115, 120, 125, 130, 135, 140)

	series, err := svc.ChartSeries(ctx, patientID, 0)
	require.NoError(t, err)
	require.Len(t, series, DefaultChartPoints)

	// The most recent points, chronological.
	assert.Equal(t, float64(110), series[0].Glucose)
	assert.Equal(t, float64(140), series[len(series)-1].Glucose)
}

func TestSpikeAnalysisEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRecordRepo{}, &fakeOutboxRepo{})

	_, err := svc.SpikeAnalysis(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}
