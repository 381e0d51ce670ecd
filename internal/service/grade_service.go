package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
)

type GradeService interface {
	Create(ctx context.Context, req *models.CreateGradeRequest) (*models.Grade, error)
	GetByID(ctx context.Context, id string) (*models.Grade, error)
	GetAll(ctx context.Context) ([]models.Grade, error)
	Update(ctx context.Context, id string, req *models.UpdateGradeRequest) (*models.Grade, error)
	SoftDelete(ctx context.Context, id string) error
}

type gradeService struct {
	gradeRepo repository.GradeRepository
	logger    zerolog.Logger
}

func NewGradeService(gradeRepo repository.GradeRepository, logger zerolog.Logger) GradeService {
	return &gradeService{
		gradeRepo: gradeRepo,
		logger:    logger,
	}
}

func (s *gradeService) Create(ctx context.Context, req *models.CreateGradeRequest) (*models.Grade, error) {
	existing, err := s.gradeRepo.GetByLevel(ctx, req.GradeLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to check grade level: %w", err)
	}
	if existing != nil {
		return nil, ErrGradeLevelTaken
	}

	grade := &models.Grade{
		ID:          uuid.New().String(),
		GradeLevel:  req.GradeLevel,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to create grade: %w", err)
	}

	s.logger.Info().Str("grade_id", grade.ID).Int("level", grade.GradeLevel).Msg("Grade created")

	return grade, nil
}

func (s *gradeService) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get grade: %w", err)
	}
	if grade == nil {
		return nil, ErrGradeNotFound
	}

	return grade, nil
}

func (s *gradeService) GetAll(ctx context.Context) ([]models.Grade, error) {
	grades, err := s.gradeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get grades: %w", err)
	}

	return grades, nil
}

func (s *gradeService) Update(ctx context.Context, id string, req *models.UpdateGradeRequest) (*models.Grade, error) {
	grade, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GradeLevel != nil && *req.GradeLevel != grade.GradeLevel {
		existing, err := s.gradeRepo.GetByLevel(ctx, *req.GradeLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to check grade level: %w", err)
		}
		if existing != nil {
			return nil, ErrGradeLevelTaken
		}
		grade.GradeLevel = *req.GradeLevel
	}
	if req.Description != nil {
		grade.Description = req.Description
	}

	now := time.Now().UTC()
	grade.UpdatedAt = &now

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to update grade: %w", err)
	}

	return grade, nil
}

func (s *gradeService) SoftDelete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	deleted, err := s.gradeRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete grade: %w", err)
	}
	if !deleted {
		return ErrGradeNotFound
	}

	return nil
}
