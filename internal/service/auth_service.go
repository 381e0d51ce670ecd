package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolcore/admin-service/internal/auth"
	"github.com/schoolcore/admin-service/internal/config"
	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	cfg       config.AuthConfig
	logger    zerolog.Logger
}

func NewAuthService(adminRepo repository.AdminRepository, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		adminRepo: adminRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.Issue(admin.ID, s.cfg.Issuer, s.cfg.SigningKey, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("admin_id", admin.ID).Msg("Admin logged in")

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Admin:       admin,
	}, nil
}
