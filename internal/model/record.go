package model

import (
	"time"

	"github.com/google/uuid"
)

// GlucoseRecord is an immutable health measurement for one patient.
// Records are never updated or deleted through the API.
type GlucoseRecord struct {
	Base
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	RecordedBy    uuid.UUID `db:"recorded_by" json:"recorded_by"`
	GlucoseLevel  float64   `db:"glucose_level" json:"glucose_level"`
	BloodPressure string    `db:"blood_pressure" json:"blood_pressure"`
	Weight        float64   `db:"weight" json:"weight"`
	MeasuredAt    time.Time `db:"measured_at" json:"measured_at"`
}

type CreateRecordRequest struct {
	GlucoseLevel  float64   `json:"glucose_level" binding:"required,gt=0,lte=1000"`
	BloodPressure string    `json:"blood_pressure" binding:"required,bloodpressure"`
	Weight        float64   `json:"weight" binding:"required,gt=0,lte=500"`
	MeasuredAt    time.Time `json:"measured_at" binding:"required"`
}

// ChartPoint is one element of the chronological series fed to charts.
type ChartPoint struct {
	Date    time.Time `json:"date"`
	Glucose float64   `json:"glucose"`
	Weight  float64   `json:"weight"`
}

// GlucoseSpike is the highest glucose measurement on file and when it
// was taken.
type GlucoseSpike struct {
	GlucoseLevel float64   `json:"glucose_level"`
	MeasuredAt   time.Time `json:"measured_at"`
	RecordID     uuid.UUID `json:"record_id"`
}
