package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/glucocare/glucocare-api/internal/email"
	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
	"github.com/glucocare/glucocare-api/pkg/auth"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const bcryptCost = 12

type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSvc    auth.JWTService
	emailSvc  email.Service
	accessTTL time.Duration
}

func NewService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, emailSvc email.Service, accessTTL time.Duration) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSvc:    jwtSvc,
		emailSvc:  emailSvc,
		accessTTL: accessTTL,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already registered", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Base: model.Base{
			ID: uuid.New(),
		},
		Role:         req.Role,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Phone:        req.Phone,
		Clinic:       req.Clinic,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.emailSvc.SendWelcome(user.Email, user.FullName); err != nil {
		// Registration already succeeded; the mail is best-effort.
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}

	return user.ToProfile(), nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	// A credentials row without a usable role never falls back to a
	// default view; the account is unusable until fixed.
	if !user.Role.Valid() {
		return nil, apperrors.Forbidden("account has no role assigned", nil)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to update login timestamp")
	}

	return s.generateTokens(user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.generateTokens(user)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	expiresAt := time.Now().Add(s.accessTTL)
	if err := s.tokenRepo.InvalidateToken(ctx, token, expiresAt); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ValidateToken verifies the signature and rejects revoked tokens.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	revoked, err := s.tokenRepo.IsInvalidated(ctx, token)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if revoked {
		return nil, apperrors.Unauthorized(errors.New("token revoked"))
	}

	return claims, nil
}

func (s *Service) generateTokens(user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToProfile(),
	}, nil
}
