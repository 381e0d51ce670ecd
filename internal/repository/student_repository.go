package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByIndexNumber(ctx context.Context, indexNumber string) (*models.Student, error)
	GetAllActive(ctx context.Context) ([]models.Student, error)
	GetActiveByIDs(ctx context.Context, ids []string) ([]models.Student, error)
	GetAllRefs(ctx context.Context) ([]models.StudentRef, error)
	Update(ctx context.Context, student *models.Student) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	Deactivate(ctx context.Context, ids []string) (int64, error)
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const studentColumns = `
	id, name, index_number, dob, address, city, nic, image, grade_id, class_id,
	status, join_year, leaving_year, created_at, updated_at, deleted_at
`

func scanStudent(row interface{ Scan(...any) error }, s *models.Student) error {
	return row.Scan(
		&s.ID,
		&s.Name,
		&s.IndexNumber,
		&s.DOB,
		&s.Address,
		&s.City,
		&s.NIC,
		&s.Image,
		&s.GradeID,
		&s.ClassID,
		&s.Status,
		&s.JoinYear,
		&s.LeavingYear,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO students (id, name, index_number, dob, address, city, nic, image,
			grade_id, class_id, status, join_year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = tx.ExecContext(ctx, query,
		student.ID,
		student.Name,
		student.IndexNumber,
		student.DOB,
		student.Address,
		student.City,
		student.NIC,
		student.Image,
		student.GradeID,
		student.ClassID,
		student.Status,
		student.JoinYear,
		student.CreatedAt,
	)
	if err != nil {
		return err
	}

	guardianQuery := `
		INSERT INTO guardians (id, student_id, name, relationship, contact_number, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, g := range student.Guardians {
		if _, err := tx.ExecContext(ctx, guardianQuery,
			g.ID, student.ID, g.Name, g.Relationship, g.ContactNumber, g.Email,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_at IS NULL`

	student := &models.Student{}
	err := scanStudent(r.db.QueryRowContext(ctx, query, id), student)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	guardians, err := r.getGuardians(ctx, id)
	if err != nil {
		return nil, err
	}
	student.Guardians = guardians

	return student, nil
}

func (r *studentRepository) GetByIndexNumber(ctx context.Context, indexNumber string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE index_number = $1 AND deleted_at IS NULL`

	student := &models.Student{}
	err := scanStudent(r.db.QueryRowContext(ctx, query, indexNumber), student)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	guardians, err := r.getGuardians(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	student.Guardians = guardians

	return student, nil
}

func (r *studentRepository) GetAllActive(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE status = TRUE AND deleted_at IS NULL
		ORDER BY index_number
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) GetActiveByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE id = ANY($1) AND status = TRUE AND deleted_at IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// GetAllRefs returns id and last-known placement for every non-deleted
// student. The absence sweep iterates this set.
func (r *studentRepository) GetAllRefs(ctx context.Context) ([]models.StudentRef, error) {
	query := `SELECT id, grade_id, class_id FROM students WHERE deleted_at IS NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []models.StudentRef
	for rows.Next() {
		var ref models.StudentRef
		if err := rows.Scan(&ref.ID, &ref.GradeID, &ref.ClassID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, dob = $2, address = $3, city = $4, nic = $5, image = $6,
			grade_id = $7, class_id = $8, leaving_year = $9, updated_at = $10
		WHERE id = $11 AND deleted_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query,
		student.Name,
		student.DOB,
		student.Address,
		student.City,
		student.NIC,
		student.Image,
		student.GradeID,
		student.ClassID,
		student.LeavingYear,
		student.UpdatedAt,
		student.ID,
	)

	return err
}

func (r *studentRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `UPDATE students SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *studentRepository) Deactivate(ctx context.Context, ids []string) (int64, error) {
	query := `UPDATE students SET status = FALSE, updated_at = NOW() WHERE id = ANY($1) AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *studentRepository) getGuardians(ctx context.Context, studentID string) ([]models.Guardian, error) {
	query := `
		SELECT id, student_id, name, relationship, contact_number, email
		FROM guardians
		WHERE student_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guardians []models.Guardian
	for rows.Next() {
		var g models.Guardian
		if err := rows.Scan(&g.ID, &g.StudentID, &g.Name, &g.Relationship, &g.ContactNumber, &g.Email); err != nil {
			return nil, err
		}
		guardians = append(guardians, g)
	}

	return guardians, rows.Err()
}
