package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
)

type AssignmentService interface {
	Assign(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error)
	ListUnassigned(ctx context.Context, academicYear *int) ([]models.StudentSummary, error)
	Update(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.ClassAssignment, error)
	Remove(ctx context.Context, studentID string) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	studentRepo    repository.StudentRepository
	gradeRepo      repository.GradeRepository
	classRepo      repository.ClassRepository
	logger         zerolog.Logger
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	studentRepo repository.StudentRepository,
	gradeRepo repository.GradeRepository,
	classRepo repository.ClassRepository,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		studentRepo:    studentRepo,
		gradeRepo:      gradeRepo,
		classRepo:      classRepo,
		logger:         logger,
	}
}

// Assign places one or many students into a class for an academic year.
// Students already holding an assignment for that year are skipped rather
// than duplicated, so re-invoking with an overlapping set is safe.
func (s *assignmentService) Assign(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error) {
	studentIDs := dedupe(req.StudentIDs)

	for _, id := range studentIDs {
		if _, err := uuid.Parse(id); err != nil {
			return nil, ErrInvalidID
		}
	}
	if _, err := uuid.Parse(req.GradeID); err != nil {
		return nil, ErrInvalidID
	}
	if _, err := uuid.Parse(req.ClassID); err != nil {
		return nil, ErrInvalidID
	}

	validStudents, err := s.studentRepo.GetActiveByIDs(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to validate students: %w", err)
	}
	if len(validStudents) != len(studentIDs) {
		return nil, ErrStudentsInactive
	}

	alreadyAssigned, err := s.assignmentRepo.GetAssignedStudentIDs(ctx, studentIDs, req.AcademicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing assignments: %w", err)
	}

	now := time.Now().UTC()
	var assignments []models.ClassAssignment
	for _, studentID := range studentIDs {
		if alreadyAssigned[studentID] {
			continue
		}
		assignments = append(assignments, models.ClassAssignment{
			ID:           uuid.New().String(),
			StudentID:    studentID,
			GradeID:      req.GradeID,
			ClassID:      req.ClassID,
			AcademicYear: req.AcademicYear,
			CreatedAt:    now,
		})
	}

	if err := s.assignmentRepo.CreateBatch(ctx, assignments); err != nil {
		return nil, fmt.Errorf("failed to create assignments: %w", err)
	}

	result := &models.AssignStudentsResult{
		AssignedCount: len(assignments),
		Skipped:       len(studentIDs) - len(assignments),
	}

	s.logger.Info().
		Int("academic_year", req.AcademicYear).
		Str("class_id", req.ClassID).
		Int("assigned", result.AssignedCount).
		Int("skipped", result.Skipped).
		Msg("Students assigned to class")

	return result, nil
}

// ListUnassigned returns active students holding no assignment. With no year
// given it considers assignments from every academic year; a year narrows the
// check to that year only.
func (s *assignmentService) ListUnassigned(ctx context.Context, academicYear *int) ([]models.StudentSummary, error) {
	activeStudents, err := s.studentRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active students: %w", err)
	}

	assigned, err := s.assignmentRepo.GetAllAssignedStudentIDs(ctx, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned students: %w", err)
	}

	unassigned := []models.StudentSummary{}
	for _, student := range activeStudents {
		if assigned[student.ID] {
			continue
		}
		unassigned = append(unassigned, models.StudentSummary{
			ID:          student.ID,
			Name:        student.Name,
			IndexNumber: student.IndexNumber,
		})
	}

	return unassigned, nil
}

func (s *assignmentService) Update(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.ClassAssignment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}

	if req.GradeID != nil {
		exists, err := s.gradeRepo.Exists(ctx, *req.GradeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check grade: %w", err)
		}
		if !exists {
			return nil, ErrGradeNotFound
		}
		assignment.GradeID = *req.GradeID
	}
	if req.ClassID != nil {
		exists, err := s.classRepo.Exists(ctx, *req.ClassID)
		if err != nil {
			return nil, fmt.Errorf("failed to check class: %w", err)
		}
		if !exists {
			return nil, ErrClassNotFound
		}
		assignment.ClassID = *req.ClassID
	}
	if req.AcademicYear != nil {
		assignment.AcademicYear = *req.AcademicYear
	}

	now := time.Now().UTC()
	assignment.UpdatedAt = &now

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return assignment, nil
}

// Remove unassigns the student from their most recent class. One assignment
// row is deleted per call.
func (s *assignmentService) Remove(ctx context.Context, studentID string) error {
	if _, err := uuid.Parse(studentID); err != nil {
		return ErrInvalidID
	}

	deleted, err := s.assignmentRepo.DeleteByStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	if deleted == 0 {
		return ErrAssignmentNotFound
	}

	s.logger.Info().Str("student_id", studentID).Msg("Student assignment removed")

	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
