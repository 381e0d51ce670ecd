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

type ClassService interface {
	Create(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	GetAll(ctx context.Context) ([]models.Class, error)
	GetByGrade(ctx context.Context, gradeID string) ([]models.Class, error)
	Update(ctx context.Context, id string, req *models.UpdateClassRequest) (*models.Class, error)
	SoftDelete(ctx context.Context, id string) error
}

type classService struct {
	classRepo repository.ClassRepository
	gradeRepo repository.GradeRepository
	logger    zerolog.Logger
}

func NewClassService(classRepo repository.ClassRepository, gradeRepo repository.GradeRepository, logger zerolog.Logger) ClassService {
	return &classService{
		classRepo: classRepo,
		gradeRepo: gradeRepo,
		logger:    logger,
	}
}

func (s *classService) Create(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error) {
	gradeExists, err := s.gradeRepo.Exists(ctx, req.GradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check grade: %w", err)
	}
	if !gradeExists {
		return nil, ErrGradeNotFound
	}

	existing, err := s.classRepo.GetByGradeAndSection(ctx, req.GradeID, req.SectionName)
	if err != nil {
		return nil, fmt.Errorf("failed to check class: %w", err)
	}
	if existing != nil {
		return nil, ErrClassTaken
	}

	description := req.Description
	if description == nil {
		d := fmt.Sprintf("Class %s for grade %s", req.SectionName, req.GradeID)
		description = &d
	}

	class := &models.Class{
		ID:          uuid.New().String(),
		GradeID:     req.GradeID,
		SectionName: req.SectionName,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.logger.Info().
		Str("class_id", class.ID).
		Str("grade_id", class.GradeID).
		Str("section", class.SectionName).
		Msg("Class created")

	return class, nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*models.Class, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	return class, nil
}

func (s *classService) GetAll(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes: %w", err)
	}

	return classes, nil
}

func (s *classService) GetByGrade(ctx context.Context, gradeID string) ([]models.Class, error) {
	if _, err := uuid.Parse(gradeID); err != nil {
		return nil, ErrInvalidID
	}

	classes, err := s.classRepo.GetByGrade(ctx, gradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes by grade: %w", err)
	}

	return classes, nil
}

func (s *classService) Update(ctx context.Context, id string, req *models.UpdateClassRequest) (*models.Class, error) {
	class, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SectionName != nil && *req.SectionName != class.SectionName {
		existing, err := s.classRepo.GetByGradeAndSection(ctx, class.GradeID, *req.SectionName)
		if err != nil {
			return nil, fmt.Errorf("failed to check class: %w", err)
		}
		if existing != nil {
			return nil, ErrClassTaken
		}
		class.SectionName = *req.SectionName
	}
	if req.Description != nil {
		class.Description = req.Description
	}

	now := time.Now().UTC()
	class.UpdatedAt = &now

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	return class, nil
}

func (s *classService) SoftDelete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	deleted, err := s.classRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	if !deleted {
		return ErrClassNotFound
	}

	return nil
}
