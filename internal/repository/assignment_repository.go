package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
)

type AssignmentRepository interface {
	CreateBatch(ctx context.Context, assignments []models.ClassAssignment) error
	GetByID(ctx context.Context, id string) (*models.ClassAssignment, error)
	GetAssignedStudentIDs(ctx context.Context, studentIDs []string, academicYear int) (map[string]bool, error)
	GetAllAssignedStudentIDs(ctx context.Context, academicYear *int) (map[string]bool, error)
	Update(ctx context.Context, assignment *models.ClassAssignment) error
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) CreateBatch(ctx context.Context, assignments []models.ClassAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The unique index on (student_id, academic_year) backs the service-level
	// pre-check, so a concurrent assign cannot slip a duplicate in between
	// check and insert.
	query := `
		INSERT INTO class_assignments (id, student_id, grade_id, class_id, academic_year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, academic_year) DO NOTHING
	`

	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, query,
			a.ID, a.StudentID, a.GradeID, a.ClassID, a.AcademicYear, a.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*models.ClassAssignment, error) {
	query := `
		SELECT id, student_id, grade_id, class_id, academic_year, created_at, updated_at, deleted_at
		FROM class_assignments
		WHERE id = $1
	`

	a := &models.ClassAssignment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.StudentID,
		&a.GradeID,
		&a.ClassID,
		&a.AcademicYear,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return a, err
}

// GetAssignedStudentIDs returns, out of the requested ids, the set already
// holding an assignment for the academic year regardless of grade or class.
func (r *assignmentRepository) GetAssignedStudentIDs(ctx context.Context, studentIDs []string, academicYear int) (map[string]bool, error) {
	query := `
		SELECT student_id
		FROM class_assignments
		WHERE student_id = ANY($1) AND academic_year = $2
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(studentIDs), academicYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		assigned[id] = true
	}

	return assigned, rows.Err()
}

// GetAllAssignedStudentIDs returns every student id holding at least one
// assignment, optionally scoped to one academic year.
func (r *assignmentRepository) GetAllAssignedStudentIDs(ctx context.Context, academicYear *int) (map[string]bool, error) {
	query := `SELECT DISTINCT student_id FROM class_assignments`
	args := []any{}
	if academicYear != nil {
		query += ` WHERE academic_year = $1`
		args = append(args, *academicYear)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		assigned[id] = true
	}

	return assigned, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.ClassAssignment) error {
	query := `
		UPDATE class_assignments
		SET grade_id = $1, class_id = $2, academic_year = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.GradeID,
		assignment.ClassID,
		assignment.AcademicYear,
		assignment.UpdatedAt,
		assignment.ID,
	)
	if isUniqueViolation(err) {
		// Moving the row onto a (student_id, academic_year) pair that already
		// has an assignment trips the unique index.
		return ErrDuplicateKey
	}

	return err
}

// DeleteByStudent hard-deletes the student's most recent assignment, one row
// per call. Unassignment is intentionally a hard delete, unlike the soft
// delete used elsewhere.
func (r *assignmentRepository) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	query := `
		DELETE FROM class_assignments
		WHERE id = (
			SELECT id FROM class_assignments
			WHERE student_id = $1
			ORDER BY academic_year DESC
			LIMIT 1
		)
	`

	result, err := r.db.ExecContext(ctx, query, studentID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
