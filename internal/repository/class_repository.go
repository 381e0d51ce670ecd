package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
)

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id string) (*models.Class, error)
	GetByGradeAndSection(ctx context.Context, gradeID, sectionName string) (*models.Class, error)
	GetAll(ctx context.Context) ([]models.Class, error)
	GetByGrade(ctx context.Context, gradeID string) ([]models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type classRepository struct {
	*PostgresRepository
}

func NewClassRepository(db *sql.DB, logger zerolog.Logger) ClassRepository {
	return &classRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (id, grade_id, section_name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		class.ID,
		class.GradeID,
		class.SectionName,
		class.Description,
		class.CreatedAt,
	)

	return err
}

func (r *classRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	query := `
		SELECT id, grade_id, section_name, description, created_at, updated_at, deleted_at
		FROM classes
		WHERE id = $1 AND deleted_at IS NULL
	`

	class := &models.Class{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&class.ID,
		&class.GradeID,
		&class.SectionName,
		&class.Description,
		&class.CreatedAt,
		&class.UpdatedAt,
		&class.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return class, err
}

func (r *classRepository) GetByGradeAndSection(ctx context.Context, gradeID, sectionName string) (*models.Class, error) {
	query := `
		SELECT id, grade_id, section_name, description, created_at, updated_at, deleted_at
		FROM classes
		WHERE grade_id = $1 AND section_name = $2 AND deleted_at IS NULL
	`

	class := &models.Class{}
	err := r.db.QueryRowContext(ctx, query, gradeID, sectionName).Scan(
		&class.ID,
		&class.GradeID,
		&class.SectionName,
		&class.Description,
		&class.CreatedAt,
		&class.UpdatedAt,
		&class.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return class, err
}

func (r *classRepository) GetAll(ctx context.Context) ([]models.Class, error) {
	query := `
		SELECT id, grade_id, section_name, description, created_at, updated_at, deleted_at
		FROM classes
		WHERE deleted_at IS NULL
		ORDER BY section_name
	`

	return r.queryClasses(ctx, query)
}

func (r *classRepository) GetByGrade(ctx context.Context, gradeID string) ([]models.Class, error) {
	query := `
		SELECT id, grade_id, section_name, description, created_at, updated_at, deleted_at
		FROM classes
		WHERE grade_id = $1 AND deleted_at IS NULL
		ORDER BY section_name
	`

	return r.queryClasses(ctx, query, gradeID)
}

func (r *classRepository) queryClasses(ctx context.Context, query string, args ...any) ([]models.Class, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(
			&class.ID,
			&class.GradeID,
			&class.SectionName,
			&class.Description,
			&class.CreatedAt,
			&class.UpdatedAt,
			&class.DeletedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

func (r *classRepository) Update(ctx context.Context, class *models.Class) error {
	query := `
		UPDATE classes
		SET section_name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query,
		class.SectionName,
		class.Description,
		class.UpdatedAt,
		class.ID,
	)

	return err
}

func (r *classRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `UPDATE classes SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *classRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
