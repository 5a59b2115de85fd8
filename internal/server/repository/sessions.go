// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// SessionsRepository работает с таблицей sessions, где readlist хранит
// refresh-сессии пользователей.
//
// Сам refresh-токен в базу не попадает, хранится только его SHA-256 хэш.
// Цепочка replaced_by между сессиями позволяет при повторном использовании
// уже заменённого токена отозвать все сессии пользователя.
type SessionsRepository struct {
	db *sql.DB
}

// NewSessionsRepository создает новый SessionsRepository.
func NewSessionsRepository(db *sql.DB) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// Create записывает новую refresh-сессию: владельца, хэш токена
// и срок действия (auth.refresh_ttl из конфига).
//
// Возвращает id созданной сессии. Коллизия хэша даёт ErrConflict,
// остальные ошибки БД приводятся к ErrInternal.
func (r *SessionsRepository) Create(ctx context.Context, userID uuid.UUID, refreshHash []byte, expiresAt time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sessions (user_id, refresh_hash, expires_at)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		userID, refreshHash, expiresAt,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return uuid.Nil, serr.ErrConflict
		}
		return uuid.Nil, serr.ErrInternal
	}
	return id, nil
}

// GetByRefreshHash ищет сессию по хэшу предъявленного refresh-токена.
// Так сервис на POST /auth/refresh решает, жив ли токен и не был ли он
// уже заменён ротацией.
//
// Помимо id сессии и пользователя возвращает expiresAt, revokedAt
// (nil, пока сессия активна) и replacedBy (nil, пока токен не ротировали).
// Неизвестный хэш даёт ErrUnauthorized, ошибка БД даёт ErrInternal.
func (r *SessionsRepository) GetByRefreshHash(ctx context.Context, refreshHash []byte) (uuid.UUID, uuid.UUID, time.Time, *time.Time, *uuid.UUID, error) {
	var (
		sessID    uuid.UUID
		userID    uuid.UUID
		expiresAt time.Time

		revokedAt sql.NullTime
		replaced  sql.NullString
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, revoked_at, replaced_by
		   FROM sessions
		  WHERE refresh_hash=$1`,
		refreshHash,
	).Scan(&sessID, &userID, &expiresAt, &revokedAt, &replaced)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, uuid.Nil, time.Time{}, nil, nil, serr.ErrUnauthorized
		}
		return uuid.Nil, uuid.Nil, time.Time{}, nil, nil, serr.ErrInternal
	}

	var revokedPtr *time.Time
	if revokedAt.Valid {
		t := revokedAt.Time
		revokedPtr = &t
	}

	var replacedPtr *uuid.UUID
	if replaced.Valid {
		if id, e := uuid.Parse(replaced.String); e == nil {
			replacedPtr = &id
		}
	}

	return sessID, userID, expiresAt, revokedPtr, replacedPtr, nil
}

// RevokeAndReplace закрывает старую сессию при ротации refresh-токена:
// ставит revoked_at и записывает в replaced_by id новой сессии.
// Уже отозванную сессию повторно не трогает.
func (r *SessionsRepository) RevokeAndReplace(ctx context.Context, oldID, newID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		    SET revoked_at = now(),
		        replaced_by = $2
		  WHERE id = $1
		    AND revoked_at IS NULL`,
		oldID, newID,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// RevokeAllForUser разом отзывает все активные сессии пользователя.
// Вызывается на logout и при обнаружении повторного использования
// уже ротированного refresh-токена.
func (r *SessionsRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		    SET revoked_at = now()
		  WHERE user_id = $1
		    AND revoked_at IS NULL`,
		userID,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}
