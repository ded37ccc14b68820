package model

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=PATIENT DOCTOR"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Clinic   string `json:"clinic" binding:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *Profile `json:"user"`
}

type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}
