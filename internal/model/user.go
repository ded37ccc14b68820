package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User is a patient or doctor profile. A patient is linked to at most
// one doctor; the nullable column makes that cardinality structural.
type User struct {
	Base
	Role             Role       `db:"role" json:"role"`
	FullName         string     `db:"full_name" json:"full_name"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	Clinic           string     `db:"clinic" json:"clinic,omitempty"`
	Address          string     `db:"address" json:"address,omitempty"`
	AssignedDoctorID *uuid.UUID `db:"assigned_doctor_id" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

// AssignedDoctorIDs keeps the wire shape the mobile clients expect:
// an array with at most one element.
func (u *User) AssignedDoctorIDs() []uuid.UUID {
	if u.AssignedDoctorID == nil {
		return []uuid.UUID{}
	}
	return []uuid.UUID{*u.AssignedDoctorID}
}

// Profile is the JSON projection of a user returned by the API.
type Profile struct {
	ID                uuid.UUID   `json:"id"`
	Role              Role        `json:"role"`
	FullName          string      `json:"full_name"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone,omitempty"`
	Clinic            string      `json:"clinic,omitempty"`
	Address           string      `json:"address,omitempty"`
	AssignedDoctorIDs []uuid.UUID `json:"assigned_doctor_ids"`
	CreatedAt         time.Time   `json:"created_at"`
}

func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:                u.ID,
		Role:              u.Role,
		FullName:          u.FullName,
		Email:             u.Email,
		Phone:             u.Phone,
		Clinic:            u.Clinic,
		Address:           u.Address,
		AssignedDoctorIDs: u.AssignedDoctorIDs(),
		CreatedAt:         u.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Clinic   *string `json:"clinic" binding:"omitempty,max=200"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
}

type AssignPatientRequest struct {
	Email string `json:"email" binding:"required,email"`
}
