package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
)

type AttendanceRepository interface {
	Insert(ctx context.Context, record *models.Attendance) (bool, error)
	ExistsForDate(ctx context.Context, studentID, scanDate string) (bool, error)
	GetByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
}

type attendanceRepository struct {
	*PostgresRepository
}

func NewAttendanceRepository(db *sql.DB, logger zerolog.Logger) AttendanceRepository {
	return &attendanceRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Insert writes an attendance record if none exists for the student and date.
// The conditional insert rides on the unique index over (student_id,
// scan_date), so concurrent scans and sweep runs cannot double-insert. Returns
// whether a row was actually written.
func (r *attendanceRepository) Insert(ctx context.Context, record *models.Attendance) (bool, error) {
	query := `
		INSERT INTO attendance (id, student_id, grade_id, class_id, scan_date, scan_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (student_id, scan_date) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.StudentID,
		record.GradeID,
		record.ClassID,
		record.ScanDate,
		record.ScanTime,
		record.Status.String(),
		record.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *attendanceRepository) ExistsForDate(ctx context.Context, studentID, scanDate string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM attendance WHERE student_id = $1 AND scan_date = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, studentID, scanDate).Scan(&exists)
	return exists, err
}

func (r *attendanceRepository) GetByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	query := `
		SELECT id, student_id, grade_id, class_id, scan_date, scan_time, status, created_at, updated_at, deleted_at
		FROM attendance
		WHERE student_id = $1
		ORDER BY scan_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var rec models.Attendance
		var scanDate time.Time
		var status string
		if err := rows.Scan(
			&rec.ID,
			&rec.StudentID,
			&rec.GradeID,
			&rec.ClassID,
			&scanDate,
			&rec.ScanTime,
			&status,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.DeletedAt,
		); err != nil {
			return nil, err
		}
		rec.ScanDate = scanDate.Format("2006-01-02")
		rec.Status = models.AttendanceStatus(status)
		records = append(records, rec)
	}

	return records, rows.Err()
}
