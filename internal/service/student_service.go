package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
	"github.com/schoolcore/admin-service/pkg/clock"
)

type StudentService interface {
	Create(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByIndexNumber(ctx context.Context, indexNumber string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, id string, req *models.UpdateStudentRequest) (*models.Student, error)
	SoftDelete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, ids []string) (int64, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	logger      zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *studentService) Create(ctx context.Context, req *models.CreateStudentRequest) (*models.Student, error) {
	existing, err := s.studentRepo.GetByIndexNumber(ctx, req.IndexNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check index number: %w", err)
	}
	if existing != nil {
		return nil, ErrIndexNumberTaken
	}

	dob, err := time.Parse(clock.DateLayout, req.DOB)
	if err != nil {
		return nil, ErrInvalidDate
	}

	student := &models.Student{
		ID:          uuid.New().String(),
		Name:        req.Name,
		IndexNumber: req.IndexNumber,
		DOB:         dob,
		Address:     req.Address,
		City:        req.City,
		NIC:         req.NIC,
		Image:       req.Image,
		Status:      true,
		JoinYear:    req.JoinYear,
		CreatedAt:   time.Now().UTC(),
	}

	for _, g := range req.Guardians {
		student.Guardians = append(student.Guardians, models.Guardian{
			ID:            uuid.New().String(),
			StudentID:     student.ID,
			Name:          g.Name,
			Relationship:  g.Relationship,
			ContactNumber: g.ContactNumber,
			Email:         g.Email,
		})
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Str("student_id", student.ID).
		Str("index_number", student.IndexNumber).
		Msg("Student created")

	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil || !student.Status {
		return nil, ErrStudentNotFound
	}

	return student, nil
}

func (s *studentService) GetByIndexNumber(ctx context.Context, indexNumber string) (*models.Student, error) {
	student, err := s.studentRepo.GetByIndexNumber(ctx, indexNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get student by index number: %w", err)
	}
	if student == nil || !student.Status {
		return nil, ErrStudentNotFound
	}

	return student, nil
}

func (s *studentService) GetAll(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}
	if len(students) == 0 {
		return nil, ErrNoStudents
	}

	return students, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *models.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.DOB != nil {
		dob, err := time.Parse(clock.DateLayout, *req.DOB)
		if err != nil {
			return nil, ErrInvalidDate
		}
		student.DOB = dob
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.City != nil {
		student.City = *req.City
	}
	if req.NIC != nil {
		student.NIC = req.NIC
	}
	if req.Image != nil {
		student.Image = req.Image
	}
	if req.LeavingYear != nil {
		student.LeavingYear = req.LeavingYear
	}

	now := time.Now().UTC()
	student.UpdatedAt = &now

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return student, nil
}

func (s *studentService) SoftDelete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	deleted, err := s.studentRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if !deleted {
		return ErrStudentNotFound
	}

	s.logger.Info().Str("student_id", id).Msg("Student soft-deleted")

	return nil
}

// Deactivate flips status to inactive for one or many students.
func (s *studentService) Deactivate(ctx context.Context, ids []string) (int64, error) {
	ids = dedupe(ids)
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return 0, ErrInvalidID
		}
	}

	updated, err := s.studentRepo.Deactivate(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate students: %w", err)
	}
	if updated == 0 {
		return 0, ErrStudentNotFound
	}

	return updated, nil
}
