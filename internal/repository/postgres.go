package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// ErrDuplicateKey reports a unique-constraint violation. The driver error is
// translated here so the service layer never inspects pq codes.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

// PostgresRepository carries the shared connection pool and logger embedded by
// every table-specific repository.
type PostgresRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPostgresRepository(db *sql.DB, logger zerolog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

// Ping verifies the database connection. Bounded so a stalled pool cannot
// hang the health endpoint.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
