package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) Create(ctx context.Context, email, displayName, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, display_name, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		email, displayName, passwordHash,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return uuid.Nil, serr.ErrAlreadyExists
			}
		}
		return uuid.Nil, serr.ErrInternal
	}

	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (uuid.UUID, string, string, error) {
	var (
		id          uuid.UUID
		displayName string
		hash        string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, display_name, password_hash FROM users WHERE email=$1`,
		email,
	).Scan(&id, &displayName, &hash)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, "", "", serr.ErrNotFound
		}
		return uuid.Nil, "", "", serr.ErrInternal
	}

	return id, displayName, hash, nil
}

// GetByID возвращает профиль пользователя для GET /me.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (string, string, time.Time, error) {
	var (
		email       string
		displayName string
		createdAt   time.Time
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT email, display_name, created_at FROM users WHERE id=$1`,
		id,
	).Scan(&email, &displayName, &createdAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", time.Time{}, serr.ErrNotFound
		}
		return "", "", time.Time{}, serr.ErrInternal
	}

	return email, displayName, createdAt, nil
}
