package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/models"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAll(ctx context.Context) ([]models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type adminRepository struct {
	*PostgresRepository
}

func NewAdminRepository(db *sql.DB, logger zerolog.Logger) AdminRepository {
	return &adminRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, name, email, password_hash, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Image,
		admin.CreatedAt,
	)

	return err
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, image, created_at, updated_at, deleted_at
		FROM admins
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.queryAdmin(ctx, query, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, image, created_at, updated_at, deleted_at
		FROM admins
		WHERE email = $1 AND deleted_at IS NULL
	`

	return r.queryAdmin(ctx, query, email)
}

func (r *adminRepository) queryAdmin(ctx context.Context, query string, arg any) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Image,
		&admin.CreatedAt,
		&admin.UpdatedAt,
		&admin.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return admin, err
}

func (r *adminRepository) GetAll(ctx context.Context) ([]models.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, image, created_at, updated_at, deleted_at
		FROM admins
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var admin models.Admin
		if err := rows.Scan(
			&admin.ID,
			&admin.Name,
			&admin.Email,
			&admin.PasswordHash,
			&admin.Image,
			&admin.CreatedAt,
			&admin.UpdatedAt,
			&admin.DeletedAt,
		); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}

	return admins, rows.Err()
}

func (r *adminRepository) Update(ctx context.Context, admin *models.Admin) error {
	query := `
		UPDATE admins
		SET name = $1, email = $2, image = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query,
		admin.Name,
		admin.Email,
		admin.Image,
		admin.UpdatedAt,
		admin.ID,
	)

	return err
}

func (r *adminRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `UPDATE admins SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
