package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// TagsRepository отвечает за метки и их привязку к элементам.
//
// Метки живут в рамках пользователя: (user_id, name) уникальна,
// одна и та же метка переиспользуется всеми элементами пользователя.
type TagsRepository struct {
	db *sql.DB
}

// NewTagsRepository создаёт новый экземпляр TagsRepository.
func NewTagsRepository(db *sql.DB) *TagsRepository {
	return &TagsRepository{db: db}
}

// replaceItemTags заменяет набор меток элемента внутри уже открытой транзакции:
//   - создаёт недостающие метки пользователя (upsert);
//   - снимает старые привязки;
//   - привязывает новый набор.
//
// Коммит и откат остаются на вызывающей стороне: запись элемента и его меток
// должна становиться видимой одним коммитом. Пустой names просто снимает
// все привязки.
func replaceItemTags(ctx context.Context, tx *sql.Tx, userID, itemID uuid.UUID, names []string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id = $1`,
		itemID,
	); err != nil {
		return serr.ErrInternal
	}

	for _, name := range names {
		var tagID uuid.UUID

		// DO UPDATE вместо DO NOTHING, чтобы RETURNING отработал и для существующей метки
		err := tx.QueryRowContext(ctx, `
			INSERT INTO tags (user_id, name)
			VALUES ($1, $2)
			ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`,
			userID, name,
		).Scan(&tagID)
		if err != nil {
			return serr.ErrInternal
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO item_tags (item_id, tag_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			itemID, tagID,
		); err != nil {
			return serr.ErrInternal
		}
	}

	return nil
}

// ListForItem возвращает метки одного элемента в порядке их создания.
func (r *TagsRepository) ListForItem(ctx context.Context, itemID uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.name
		  FROM item_tags it
		  JOIN tags t ON t.id = it.tag_id
		 WHERE it.item_id = $1
		 ORDER BY t.created_at, t.name
	`, itemID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, serr.ErrInternal
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return names, nil
}

// ListPairsByUser возвращает привязки (item_id -> метки) сразу для всех
// элементов пользователя. Используется списком, чтобы не ходить в базу
// по разу на элемент.
func (r *TagsRepository) ListPairsByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT it.item_id, t.name
		  FROM item_tags it
		  JOIN tags t ON t.id = it.tag_id
		 WHERE t.user_id = $1
		 ORDER BY it.item_id, t.created_at, t.name
	`, userID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	pairs := make(map[uuid.UUID][]string)
	for rows.Next() {
		var (
			itemID uuid.UUID
			name   string
		)
		if err := rows.Scan(&itemID, &name); err != nil {
			return nil, serr.ErrInternal
		}
		pairs[itemID] = append(pairs[itemID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return pairs, nil
}

// ListForUser возвращает все метки пользователя по алфавиту.
func (r *TagsRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name FROM tags WHERE user_id = $1 ORDER BY name
	`, userID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, serr.ErrInternal
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return names, nil
}
