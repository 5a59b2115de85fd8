package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mvoronkova/readlist/internal/server/models"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// ItemsRepository реализует доступ к хранилищу элементов списка чтения (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
//
// Все запросы скоупятся по user_id: элемент другого пользователя для
// репозитория не существует.
type ItemsRepository struct {
	db *sql.DB
}

// NewItemsRepository создаёт новый экземпляр ItemsRepository.
func NewItemsRepository(db *sql.DB) *ItemsRepository {
	return &ItemsRepository{db: db}
}

// Create сохраняет новый элемент списка чтения вместе с его метками.
//
// Вставка элемента и привязка меток идут в одной транзакции: элемент без
// своих меток в базе не появляется, при ошибке на метках откатывается всё.
//
// Возвращает:
//   - id        — UUID созданного элемента
//   - createdAt — время создания
//   - updatedAt — время обновления (равно createdAt при создании)
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *ItemsRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	kind models.Kind,
	status models.Status,
	priority models.Priority,
	notes string,
	tags []string,
) (uuid.UUID, time.Time, time.Time, error) {

	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, serr.ErrInternal
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO items (user_id, title, kind, status, priority, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		userID,
		title,
		string(kind),
		string(status),
		string(priority),
		notes,
	).Scan(&id, &createdAt, &updatedAt)

	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, serr.ErrInternal
	}

	if len(tags) > 0 {
		if err := replaceItemTags(ctx, tx, userID, id, tags); err != nil {
			return uuid.Nil, time.Time{}, time.Time{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, serr.ErrInternal
	}

	return id, createdAt, updatedAt, nil
}

// GetByID возвращает элемент пользователя, включая удалённые.
//
// Флаг IsDeleted отдаётся как есть: решение вернуть 410 принимает сервис.
// Чужой или несуществующий элемент — ErrNotFound.
func (r *ItemsRepository) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*models.Item, error) {
	var it models.Item

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, kind, status, priority, notes, is_deleted, created_at, updated_at
		  FROM items
		 WHERE id = $1 AND user_id = $2
	`,
		itemID, userID,
	).Scan(
		&it.ID, &it.UserID, &it.Title, &it.Kind, &it.Status,
		&it.Priority, &it.Notes, &it.IsDeleted, &it.CreatedAt, &it.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return &it, nil
}

// сортировки, которые разрешено подставлять в ORDER BY
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	// low < normal < high, по алфавиту сортировать нельзя
	"priority": "CASE priority WHEN 'low' THEN 1 WHEN 'normal' THEN 2 WHEN 'high' THEN 3 END",
}

// List возвращает страницу элементов пользователя по фильтру.
//
// Удалённые элементы в выдачу не попадают. Метки элементов этот метод
// не загружает, их одним запросом добирает TagsRepository.ListPairsByUser.
func (r *ItemsRepository) List(ctx context.Context, userID uuid.UUID, f models.ItemFilter) ([]models.Item, error) {
	var (
		where []string
		args  []any
	)

	args = append(args, userID)
	where = append(where, "user_id = $1", "is_deleted = false")

	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.Kind != nil {
		add("kind = $%d", string(*f.Kind))
	}
	if f.Priority != nil {
		add("priority = $%d", string(*f.Priority))
	}
	if f.TitleSubstr != nil {
		add("title ILIKE $%d", "%"+*f.TitleSubstr+"%")
	}
	if f.CreatedFrom != nil {
		add("created_at >= $%d", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		add("created_at <= $%d", *f.CreatedTo)
	}

	// Фильтр по меткам: элемент должен иметь каждую из перечисленных.
	for _, tag := range f.Tags {
		args = append(args, tag)
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM item_tags it
			           JOIN tags t ON t.id = it.tag_id
			          WHERE it.item_id = items.id AND t.name = $%d)`,
			len(args),
		))
	}

	orderBy, ok := sortColumns[f.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, user_id, title, kind, status, priority, notes, is_deleted, created_at, updated_at
		  FROM items
		 WHERE %s
		 ORDER BY %s %s, id %s
		 LIMIT $%d OFFSET $%d`,
		strings.Join(where, " AND "),
		orderBy, dir, dir,
		len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Title, &it.Kind, &it.Status,
			&it.Priority, &it.Notes, &it.IsDeleted, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, serr.ErrInternal
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return items, nil
}

// Update перезаписывает изменяемые поля элемента и двигает updated_at.
//
// Слияние старых и новых значений делает сервис, сюда приходит уже готовое
// состояние. tags == nil означает "метки не трогать", иначе набор меток
// заменяется в той же транзакции, что и поля элемента: частичное обновление
// либо коммитится целиком, либо откатывается целиком.
// Удалённый элемент не обновляется.
//
// Возвращает новое значение updated_at или ErrNotFound.
func (r *ItemsRepository) Update(
	ctx context.Context,
	userID, itemID uuid.UUID,
	title string,
	kind models.Kind,
	status models.Status,
	priority models.Priority,
	notes string,
	tags *[]string,
) (time.Time, error) {

	var updatedAt time.Time

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, serr.ErrInternal
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		UPDATE items
		   SET title = $3,
		       kind = $4,
		       status = $5,
		       priority = $6,
		       notes = $7,
		       updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND is_deleted = false
		 RETURNING updated_at
	`,
		itemID, userID,
		title, string(kind), string(status), string(priority), notes,
	).Scan(&updatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, serr.ErrNotFound
		}
		return time.Time{}, serr.ErrInternal
	}

	if tags != nil {
		if err := replaceItemTags(ctx, tx, userID, itemID, *tags); err != nil {
			return time.Time{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return time.Time{}, serr.ErrInternal
	}

	return updatedAt, nil
}

// SetDeleted помечает элемент удалённым (soft delete).
//
// Повторное удаление не находит строку и возвращает ErrNotFound,
// сервис по флагу IsDeleted превращает это в 410.
func (r *ItemsRepository) SetDeleted(ctx context.Context, userID, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items
		   SET is_deleted = true,
		       updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND is_deleted = false
	`,
		itemID, userID,
	)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
