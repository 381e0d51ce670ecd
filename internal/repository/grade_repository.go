package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
)

type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id string) (*models.Grade, error)
	GetByLevel(ctx context.Context, level int) (*models.Grade, error)
	GetAll(ctx context.Context) ([]models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type gradeRepository struct {
	*PostgresRepository
}

func NewGradeRepository(db *sql.DB, logger zerolog.Logger) GradeRepository {
	return &gradeRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (id, grade_level, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		grade.ID,
		grade.GradeLevel,
		grade.Description,
		grade.CreatedAt,
	)

	return err
}

func (r *gradeRepository) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	query := `
		SELECT id, grade_level, description, created_at, updated_at, deleted_at
		FROM grades
		WHERE id = $1 AND deleted_at IS NULL
	`

	grade := &models.Grade{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&grade.ID,
		&grade.GradeLevel,
		&grade.Description,
		&grade.CreatedAt,
		&grade.UpdatedAt,
		&grade.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return grade, err
}

func (r *gradeRepository) GetByLevel(ctx context.Context, level int) (*models.Grade, error) {
	query := `
		SELECT id, grade_level, description, created_at, updated_at, deleted_at
		FROM grades
		WHERE grade_level = $1 AND deleted_at IS NULL
	`

	grade := &models.Grade{}
	err := r.db.QueryRowContext(ctx, query, level).Scan(
		&grade.ID,
		&grade.GradeLevel,
		&grade.Description,
		&grade.CreatedAt,
		&grade.UpdatedAt,
		&grade.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return grade, err
}

func (r *gradeRepository) GetAll(ctx context.Context) ([]models.Grade, error) {
	query := `
		SELECT id, grade_level, description, created_at, updated_at, deleted_at
		FROM grades
		WHERE deleted_at IS NULL
		ORDER BY grade_level
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(
			&grade.ID,
			&grade.GradeLevel,
			&grade.Description,
			&grade.CreatedAt,
			&grade.UpdatedAt,
			&grade.DeletedAt,
		); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}

	return grades, rows.Err()
}

func (r *gradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET grade_level = $1, description = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query,
		grade.GradeLevel,
		grade.Description,
		grade.UpdatedAt,
		grade.ID,
	)

	return err
}

func (r *gradeRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `UPDATE grades SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *gradeRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM grades WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
