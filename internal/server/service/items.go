package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mvoronkova/readlist/internal/server/config"
	"github.com/mvoronkova/readlist/internal/server/models"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// ItemsService реализует бизнес-логику списка чтения.
//
// Ответственность:
//   - валидация названий, заметок и меток
//   - доменные правила (done требует заметок, статья не бывает high)
//   - слияние частичных обновлений
//   - soft delete и превращение удалённых элементов в ErrGone
type ItemsService struct {
	items ItemsRepo
	tags  TagsRepo

	defaultLimit int
	maxLimit     int
}

// NewItemsService создаёт ItemsService.
func NewItemsService(items ItemsRepo, tags TagsRepo, cfg *config.Config) *ItemsService {
	return &ItemsService{
		items:        items,
		tags:         tags,
		defaultLimit: cfg.Items.DefaultLimit,
		maxLimit:     cfg.Items.MaxLimit,
	}
}

// CreateItemInput — входные данные POST /items.
// Пустые Status/Priority означают дефолты (planned/normal).
type CreateItemInput struct {
	Title    string
	Kind     string
	Status   string
	Priority string
	Notes    string
	Tags     []string
}

// UpdateItemInput — частичное обновление PATCH /items/{id}.
// nil-поле означает "не трогать". Tags == nil — метки не меняются,
// пустой срез — снять все метки.
type UpdateItemInput struct {
	Title    *string
	Kind     *string
	Status   *string
	Priority *string
	Notes    *string
	Tags     *[]string
}

// ListItemsInput — параметры GET /items до валидации.
type ListItemsInput struct {
	Status      string
	Kind        string
	Priority    string
	Tags        []string
	Title       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string
	SortOrder   string
	Limit       *int
	Offset      int
}

// символы, запрещённые в метках
const forbiddenTagChars = `<>&"'\/;`

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < 2 || n > 100 {
		return "", serr.ErrInvalidInput
	}
	if strings.Contains(title, "  ") {
		return "", serr.ErrInvalidInput
	}
	return title, nil
}

func validateNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "", nil
	}
	if n := utf8.RuneCountInString(notes); n < 2 || n > 2500 {
		return "", serr.ErrInvalidInput
	}
	return notes, nil
}

// normalizeTags валидирует метки и убирает дубликаты, сохраняя порядок.
// Лимит в 20 меток считается по уникальным значениям, уже после дедупликации.
func normalizeTags(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if n := utf8.RuneCountInString(tag); n < 2 || n > 50 {
			return nil, serr.ErrInvalidInput
		}
		if strings.ContainsAny(tag, forbiddenTagChars) {
			return nil, serr.ErrInvalidInput
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) > 20 {
		return nil, serr.ErrInvalidInput
	}
	return out, nil
}

// checkDomainRules проверяет инварианты готового состояния элемента.
func checkDomainRules(kind models.Kind, status models.Status, priority models.Priority, notes string) error {
	// прочитанное без заметок не бывает
	if status == models.StatusDone && notes == "" {
		return serr.ErrInvalidInput
	}
	// статьи не получают высокий приоритет
	if kind == models.KindArticle && priority == models.PriorityHigh {
		return serr.ErrInvalidInput
	}
	return nil
}

// Create добавляет элемент в список чтения пользователя.
//
// Дефолты: status=planned, priority=normal.
//
// Ошибки:
//   - ErrInvalidInput при нарушении валидации или доменных правил
func (s *ItemsService) Create(ctx context.Context, userID uuid.UUID, in CreateItemInput) (*models.Item, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	kind := models.Kind(in.Kind)
	if !models.ValidKind(kind) {
		return nil, serr.ErrInvalidInput
	}

	status := models.StatusPlanned
	if in.Status != "" {
		status = models.Status(in.Status)
		if !models.ValidStatus(status) {
			return nil, serr.ErrInvalidInput
		}
	}

	priority := models.PriorityNormal
	if in.Priority != "" {
		priority = models.Priority(in.Priority)
		if !models.ValidPriority(priority) {
			return nil, serr.ErrInvalidInput
		}
	}

	notes, err := validateNotes(in.Notes)
	if err != nil {
		return nil, err
	}

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	if err := checkDomainRules(kind, status, priority, notes); err != nil {
		return nil, err
	}

	// элемент и его метки пишутся одной транзакцией
	id, createdAt, updatedAt, err := s.items.Create(ctx, userID, title, kind, status, priority, notes, tags)
	if err != nil {
		return nil, err
	}

	return &models.Item{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Kind:      kind,
		Status:    status,
		Priority:  priority,
		Notes:     notes,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Get возвращает элемент пользователя.
//
// Ошибки:
//   - ErrNotFound — нет такого элемента (или он чужой)
//   - ErrGone — элемент был удалён
func (s *ItemsService) Get(ctx context.Context, userID, itemID uuid.UUID) (*models.Item, error) {
	it, err := s.items.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsDeleted {
		return nil, serr.ErrGone
	}

	tags, err := s.tags.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	it.Tags = tags
	return it, nil
}

// List возвращает страницу списка чтения по фильтру.
//
// limit ограничивается maxLimit, отсутствующий limit заменяется дефолтом.
// Метки всех элементов добираются одним запросом.
func (s *ItemsService) List(ctx context.Context, userID uuid.UUID, in ListItemsInput) ([]models.Item, error) {
	var f models.ItemFilter

	if in.Status != "" {
		st := models.Status(in.Status)
		if !models.ValidStatus(st) {
			return nil, serr.ErrInvalidInput
		}
		f.Status = &st
	}
	if in.Kind != "" {
		k := models.Kind(in.Kind)
		if !models.ValidKind(k) {
			return nil, serr.ErrInvalidInput
		}
		f.Kind = &k
	}
	if in.Priority != "" {
		p := models.Priority(in.Priority)
		if !models.ValidPriority(p) {
			return nil, serr.ErrInvalidInput
		}
		f.Priority = &p
	}
	if in.Title != "" {
		t := strings.TrimSpace(in.Title)
		f.TitleSubstr = &t
	}
	f.Tags = in.Tags
	f.CreatedFrom = in.CreatedFrom
	f.CreatedTo = in.CreatedTo

	switch in.SortBy {
	case "", "created_at", "updated_at", "title", "priority":
		f.SortBy = in.SortBy
	default:
		return nil, serr.ErrInvalidInput
	}
	switch strings.ToLower(in.SortOrder) {
	case "", "asc", "desc":
		f.SortOrder = in.SortOrder
	default:
		return nil, serr.ErrInvalidInput
	}

	f.Limit = s.defaultLimit
	if in.Limit != nil {
		if *in.Limit <= 0 || *in.Limit > s.maxLimit {
			return nil, serr.ErrInvalidInput
		}
		f.Limit = *in.Limit
	}
	if in.Offset < 0 {
		return nil, serr.ErrInvalidInput
	}
	f.Offset = in.Offset

	items, err := s.items.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	pairs, err := s.tags.ListPairsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Tags = pairs[items[i].ID]
	}
	return items, nil
}

// Update выполняет частичное обновление элемента.
//
// Сначала читаем текущее состояние, накладываем пришедшие поля,
// затем валидируем итог целиком: доменные правила должны выполняться
// для результата, а не для дельты.
//
// Ошибки:
//   - ErrInvalidInput — пустое обновление или нарушение правил
//   - ErrNotFound / ErrGone
func (s *ItemsService) Update(ctx context.Context, userID, itemID uuid.UUID, in UpdateItemInput) (*models.Item, error) {
	if in.Title == nil && in.Kind == nil && in.Status == nil &&
		in.Priority == nil && in.Notes == nil && in.Tags == nil {
		return nil, serr.ErrInvalidInput
	}

	it, err := s.items.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsDeleted {
		return nil, serr.ErrGone
	}

	if in.Title != nil {
		title, err := validateTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		it.Title = title
	}
	if in.Kind != nil {
		k := models.Kind(*in.Kind)
		if !models.ValidKind(k) {
			return nil, serr.ErrInvalidInput
		}
		it.Kind = k
	}
	if in.Status != nil {
		st := models.Status(*in.Status)
		if !models.ValidStatus(st) {
			return nil, serr.ErrInvalidInput
		}
		it.Status = st
	}
	if in.Priority != nil {
		p := models.Priority(*in.Priority)
		if !models.ValidPriority(p) {
			return nil, serr.ErrInvalidInput
		}
		it.Priority = p
	}
	if in.Notes != nil {
		notes, err := validateNotes(*in.Notes)
		if err != nil {
			return nil, err
		}
		it.Notes = notes
	}

	var newTags *[]string
	if in.Tags != nil {
		normalized, err := normalizeTags(*in.Tags)
		if err != nil {
			return nil, err
		}
		newTags = &normalized
	}

	if err := checkDomainRules(it.Kind, it.Status, it.Priority, it.Notes); err != nil {
		return nil, err
	}

	// поля и метки уходят в репозиторий вместе и коммитятся одной транзакцией
	updatedAt, err := s.items.Update(ctx, userID, itemID, it.Title, it.Kind, it.Status, it.Priority, it.Notes, newTags)
	if err != nil {
		return nil, err
	}
	it.UpdatedAt = updatedAt

	if newTags != nil {
		it.Tags = *newTags
	} else {
		tags, err := s.tags.ListForItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		it.Tags = tags
	}

	return it, nil
}

// Delete помечает элемент удалённым и возвращает его последнее состояние.
//
// Повторное удаление — ErrGone, чужой или несуществующий — ErrNotFound.
func (s *ItemsService) Delete(ctx context.Context, userID, itemID uuid.UUID) (*models.Item, error) {
	it, err := s.items.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsDeleted {
		return nil, serr.ErrGone
	}

	tags, err := s.tags.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	it.Tags = tags

	if err := s.items.SetDeleted(ctx, userID, itemID); err != nil {
		// между чтением и удалением элемент мог удалить параллельный запрос
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.ErrGone
		}
		return nil, err
	}

	it.IsDeleted = true
	return it, nil
}

// Tags возвращает все метки пользователя.
func (s *ItemsService) Tags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.tags.ListForUser(ctx, userID)
}
