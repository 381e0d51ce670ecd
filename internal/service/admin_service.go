package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
)

type AdminService interface {
	Create(ctx context.Context, req *models.CreateAdminRequest) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetAll(ctx context.Context) ([]models.Admin, error)
	Update(ctx context.Context, id string, req *models.UpdateAdminRequest) (*models.Admin, error)
	SoftDelete(ctx context.Context, id string) error
}

type adminService struct {
	adminRepo repository.AdminRepository
	logger    zerolog.Logger
}

func NewAdminService(adminRepo repository.AdminRepository, logger zerolog.Logger) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		logger:    logger,
	}
}

func (s *adminService) Create(ctx context.Context, req *models.CreateAdminRequest) (*models.Admin, error) {
	existing, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Image:        req.Image,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("Admin created")

	return admin, nil
}

func (s *adminService) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return admin, nil
}

func (s *adminService) GetAll(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.adminRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get admins: %w", err)
	}

	return admins, nil
}

func (s *adminService) Update(ctx context.Context, id string, req *models.UpdateAdminRequest) (*models.Admin, error) {
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != admin.Email {
		existing, err := s.adminRepo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check admin email: %w", err)
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		admin.Email = *req.Email
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Image != nil {
		admin.Image = req.Image
	}

	now := time.Now().UTC()
	admin.UpdatedAt = &now

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}

	return admin, nil
}

func (s *adminService) SoftDelete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	deleted, err := s.adminRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if !deleted {
		return ErrAdminNotFound
	}

	return nil
}
