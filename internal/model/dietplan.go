package model

import (
	"github.com/google/uuid"
)

// DietPlan is a free-text advice note a doctor writes for a patient.
// Plans are append-only.
type DietPlan struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Advice    string    `db:"advice" json:"advice"`
}

type CreateDietPlanRequest struct {
	Advice string `json:"advice" binding:"required,min=1,max=5000"`
}
