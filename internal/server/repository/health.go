package repository

import (
	"context"
	"database/sql"

	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// HealthRepository проверяет доступность базы данных для GET /health.
type HealthRepository struct {
	db *sql.DB
}

// NewHealthRepository создаёт новый HealthRepository.
func NewHealthRepository(db *sql.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// Ping проверяет соединение с базой.
func (r *HealthRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return serr.ErrInternal
	}
	return nil
}
