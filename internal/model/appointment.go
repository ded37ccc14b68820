package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusRequested AppointmentStatus = "REQUESTED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Terminal reports whether no further status transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusConfirmed || s == AppointmentStatusCancelled
}

type AppointmentType string

const (
	AppointmentTypeCheckup      AppointmentType = "Checkup"
	AppointmentTypeFollowUp     AppointmentType = "Follow-up"
	AppointmentTypeUrgent       AppointmentType = "Urgent"
	AppointmentTypeConsultation AppointmentType = "Consultation"
)

type Appointment struct {
	Base
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	ScheduledAt time.Time         `db:"scheduled_at" json:"scheduled_at"`
	Type        AppointmentType   `db:"type" json:"type"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Past        bool              `db:"-" json:"past"`
}

type CreateAppointmentRequest struct {
	DoctorID    uuid.UUID       `json:"doctor_id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	ScheduledAt time.Time       `json:"scheduled_at" binding:"required"`
	Type        AppointmentType `json:"type" binding:"required,oneof=Checkup Follow-up Urgent Consultation"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=CONFIRMED CANCELLED"`
}
