package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/metrics"
	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
	"github.com/schoolcore/admin-service/pkg/clock"
)

type AttendanceService interface {
	MarkPresent(ctx context.Context, req *models.MarkAttendanceRequest) (*models.Attendance, error)
	SweepAbsences(ctx context.Context, asOf string) (*models.SweepSummary, error)
	GetByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	studentRepo    repository.StudentRepository
	gradeRepo      repository.GradeRepository
	classRepo      repository.ClassRepository
	clock          clock.Clock
	logger         zerolog.Logger
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	studentRepo repository.StudentRepository,
	gradeRepo repository.GradeRepository,
	classRepo repository.ClassRepository,
	clk clock.Clock,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		gradeRepo:      gradeRepo,
		classRepo:      classRepo,
		clock:          clk,
		logger:         logger,
	}
}

// MarkPresent records a present scan. Only this entry point may write status
// "P", and at most one record may exist per student per calendar date.
func (s *attendanceService) MarkPresent(ctx context.Context, req *models.MarkAttendanceRequest) (*models.Attendance, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	grade, err := s.gradeRepo.Exists(ctx, req.GradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check grade: %w", err)
	}
	if !grade {
		return nil, ErrGradeNotFound
	}

	class, err := s.classRepo.Exists(ctx, req.ClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to check class: %w", err)
	}
	if !class {
		return nil, ErrClassNotFound
	}

	exists, err := s.attendanceRepo.ExistsForDate(ctx, req.StudentID, req.ScanDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAttendance
	}

	record := &models.Attendance{
		ID:        uuid.New().String(),
		StudentID: req.StudentID,
		GradeID:   &req.GradeID,
		ClassID:   &req.ClassID,
		ScanDate:  req.ScanDate,
		ScanTime:  req.Time,
		Status:    models.AttendancePresent,
		CreatedAt: time.Now().UTC(),
	}

	inserted, err := s.attendanceRepo.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to insert attendance: %w", err)
	}
	if !inserted {
		// Lost the race to a concurrent scan for the same student and date.
		return nil, ErrDuplicateAttendance
	}

	metrics.PresentScans.Inc()

	s.logger.Info().
		Str("student_id", record.StudentID).
		Str("scan_date", record.ScanDate).
		Str("time", record.ScanTime).
		Msg("Attendance marked")

	return record, nil
}

// SweepAbsences inserts an absent record for every non-deleted student
// lacking a record for the given date. Each write is a conditional insert,
// so running the sweep twice on the same date, or concurrently with scans,
// produces no duplicates.
func (s *attendanceService) SweepAbsences(ctx context.Context, asOf string) (*models.SweepSummary, error) {
	if asOf == "" {
		asOf = s.clock.Today()
	}
	if !clock.ValidDate(asOf) {
		return nil, ErrInvalidDate
	}

	students, err := s.studentRepo.GetAllRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students for sweep: %w", err)
	}

	summary := &models.SweepSummary{Date: asOf}
	for _, student := range students {
		record := &models.Attendance{
			ID:        uuid.New().String(),
			StudentID: student.ID,
			GradeID:   student.GradeID,
			ClassID:   student.ClassID,
			ScanDate:  asOf,
			ScanTime:  models.AbsentSentinelTime,
			Status:    models.AttendanceAbsent,
			CreatedAt: time.Now().UTC(),
		}

		inserted, err := s.attendanceRepo.Insert(ctx, record)
		if err != nil {
			return summary, fmt.Errorf("failed to insert absent record for student %s: %w", student.ID, err)
		}
		if inserted {
			summary.Marked++
		} else {
			summary.Skipped++
		}
	}

	metrics.SweepRuns.Inc()
	metrics.AbsentsMarked.Add(float64(summary.Marked))

	s.logger.Info().
		Str("date", asOf).
		Int("marked", summary.Marked).
		Int("skipped", summary.Skipped).
		Msg("Absence sweep completed")

	return summary, nil
}

// GetByStudent returns the student's attendance history, newest first. A
// student with no records yields ErrNoAttendanceRecords.
func (s *attendanceService) GetByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, ErrInvalidID
	}

	records, err := s.attendanceRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoAttendanceRecords
	}

	return records, nil
}
