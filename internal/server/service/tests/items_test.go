package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mvoronkova/readlist/internal/server/models"
	"github.com/mvoronkova/readlist/internal/server/service"
	"github.com/mvoronkova/readlist/internal/server/service/mocks"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
	"github.com/mvoronkova/readlist/internal/shared/utils"
)

func newItemsService(t *testing.T) (*service.ItemsService, *mocks.MockItemsRepo, *mocks.MockTagsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)

	items := mocks.NewMockItemsRepo(ctrl)
	tags := mocks.NewMockTagsRepo(ctrl)

	svc := service.NewItemsService(items, tags, testConfig())
	return svc, items, tags
}

// Создание с дефолтами и метками
func TestItemsService_Create_OK(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	// дубликат метки отбрасывается с сохранением порядка,
	// метки уходят в репозиторий вместе с полями элемента
	items.EXPECT().
		Create(ctx, userID, "Чистый код", models.KindBook, models.StatusPlanned, models.PriorityNormal, "", []string{"go", "книги"}).
		Return(itemID, now, now, nil)

	it, err := svc.Create(ctx, userID, service.CreateItemInput{
		Title: "Чистый код",
		Kind:  "book",
		Tags:  []string{"go", "книги", "go"},
	})

	require.NoError(t, err)
	require.Equal(t, itemID, it.ID)
	require.Equal(t, models.StatusPlanned, it.Status)
	require.Equal(t, models.PriorityNormal, it.Priority)
	require.Equal(t, []string{"go", "книги"}, it.Tags)
}

// Валидация входных данных
func TestItemsService_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newItemsService(t)

	cases := []struct {
		name string
		in   service.CreateItemInput
	}{
		{"title too short", service.CreateItemInput{Title: "a", Kind: "book"}},
		{"title double space", service.CreateItemInput{Title: "два  пробела", Kind: "book"}},
		{"unknown kind", service.CreateItemInput{Title: "Название", Kind: "movie"}},
		{"unknown status", service.CreateItemInput{Title: "Название", Kind: "book", Status: "paused"}},
		{"unknown priority", service.CreateItemInput{Title: "Название", Kind: "book", Priority: "urgent"}},
		{"notes too short", service.CreateItemInput{Title: "Название", Kind: "book", Notes: "a"}},
		{"tag forbidden chars", service.CreateItemInput{Title: "Название", Kind: "book", Tags: []string{"<script>"}}},
		{"tag too short", service.CreateItemInput{Title: "Название", Kind: "book", Tags: []string{"x"}}},
		// прочитанное без заметок не бывает
		{"done without notes", service.CreateItemInput{Title: "Название", Kind: "book", Status: "done"}},
		// статья не получает высокий приоритет
		{"article high priority", service.CreateItemInput{Title: "Название", Kind: "article", Priority: "high"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, uuid.New(), tc.in)
			require.ErrorIs(t, err, serr.ErrInvalidInput)
		})
	}
}

// Больше 20 уникальных меток
func TestItemsService_Create_TooManyTags(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newItemsService(t)

	tags := make([]string, 21)
	for i := range tags {
		tags[i] = "метка" + string(rune('а'+i))
	}

	_, err := svc.Create(ctx, uuid.New(), service.CreateItemInput{
		Title: "Название",
		Kind:  "book",
		Tags:  tags,
	})
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Лимит меток считается после дедупликации: 21 значение с дубликатом —
// это 20 уникальных, такой элемент создаётся
func TestItemsService_Create_TagLimitCountsUnique(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	raw := make([]string, 0, 21)
	for i := 0; i < 20; i++ {
		raw = append(raw, "метка"+string(rune('а'+i)))
	}
	raw = append(raw, raw[0]) // 21-я — дубликат первой

	items.EXPECT().
		Create(ctx, userID, "Название", models.KindBook, models.StatusPlanned, models.PriorityNormal, "", gomock.Len(20)).
		Return(itemID, now, now, nil)

	it, err := svc.Create(ctx, userID, service.CreateItemInput{
		Title: "Название",
		Kind:  "book",
		Tags:  raw,
	})

	require.NoError(t, err)
	require.Len(t, it.Tags, 20)
}

// Получение элемента с метками
func TestItemsService_Get_OK(t *testing.T) {
	ctx := context.Background()
	svc, items, tags := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{ID: itemID, UserID: userID, Title: "Книга"}, nil)

	tags.EXPECT().
		ListForItem(ctx, itemID).
		Return([]string{"go"}, nil)

	it, err := svc.Get(ctx, userID, itemID)

	require.NoError(t, err)
	require.Equal(t, []string{"go"}, it.Tags)
}

// Удалённый элемент отдаётся как Gone
func TestItemsService_Get_Deleted(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{ID: itemID, IsDeleted: true}, nil)

	_, err := svc.Get(ctx, userID, itemID)

	require.ErrorIs(t, err, serr.ErrGone)
}

// Чужой элемент — NotFound, без раскрытия чей он
func TestItemsService_Get_Foreign(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	items.EXPECT().
		GetByID(ctx, gomock.Any(), gomock.Any()).
		Return(nil, serr.ErrNotFound)

	_, err := svc.Get(ctx, uuid.New(), uuid.New())

	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Список: дефолтный limit и метки одним запросом
func TestItemsService_List_OK(t *testing.T) {
	ctx := context.Background()
	svc, items, tags := newItemsService(t)

	userID := uuid.New()
	item1 := uuid.New()
	item2 := uuid.New()

	items.EXPECT().
		List(ctx, userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, f models.ItemFilter) ([]models.Item, error) {
			require.Equal(t, 20, f.Limit) // дефолт из конфига
			return []models.Item{{ID: item1}, {ID: item2}}, nil
		})

	tags.EXPECT().
		ListPairsByUser(ctx, userID).
		Return(map[uuid.UUID][]string{item1: {"go"}}, nil)

	got, err := svc.List(ctx, userID, service.ListItemsInput{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []string{"go"}, got[0].Tags)
	require.Nil(t, got[1].Tags)
}

// Валидация параметров списка
func TestItemsService_List_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newItemsService(t)

	cases := []struct {
		name string
		in   service.ListItemsInput
	}{
		{"bad status", service.ListItemsInput{Status: "paused"}},
		{"bad kind", service.ListItemsInput{Kind: "movie"}},
		{"bad priority", service.ListItemsInput{Priority: "urgent"}},
		{"bad sort column", service.ListItemsInput{SortBy: "notes"}},
		{"bad sort order", service.ListItemsInput{SortOrder: "sideways"}},
		{"limit above max", service.ListItemsInput{Limit: utils.Ptr(101)}},
		{"zero limit", service.ListItemsInput{Limit: utils.Ptr(0)}},
		{"negative offset", service.ListItemsInput{Offset: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(ctx, uuid.New(), tc.in)
			require.ErrorIs(t, err, serr.ErrInvalidInput)
		})
	}
}

// Пустое обновление запрещено
func TestItemsService_Update_EmptyUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newItemsService(t)

	_, err := svc.Update(ctx, uuid.New(), uuid.New(), service.UpdateItemInput{})

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Частичное обновление: правила проверяются на итоговом состоянии
func TestItemsService_Update_MergeOK(t *testing.T) {
	ctx := context.Background()
	svc, items, tags := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	// у элемента уже есть заметки, поэтому done пройдёт
	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{
			ID: itemID, UserID: userID,
			Title: "Книга", Kind: models.KindBook,
			Status: models.StatusReading, Priority: models.PriorityNormal,
			Notes: "на середине",
		}, nil)

	items.EXPECT().
		Update(ctx, userID, itemID, "Книга", models.KindBook, models.StatusDone, models.PriorityNormal, "на середине", gomock.Nil()).
		Return(now, nil)

	tags.EXPECT().
		ListForItem(ctx, itemID).
		Return([]string{"go"}, nil)

	it, err := svc.Update(ctx, userID, itemID, service.UpdateItemInput{
		Status: utils.StrPtr("done"),
	})

	require.NoError(t, err)
	require.Equal(t, models.StatusDone, it.Status)
	require.Equal(t, now, it.UpdatedAt)
	require.Equal(t, []string{"go"}, it.Tags)
}

// Перевод в done без заметок на итоговом состоянии
func TestItemsService_Update_DoneWithoutNotes(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{
			ID: itemID, Title: "Книга", Kind: models.KindBook,
			Status: models.StatusReading, Priority: models.PriorityNormal,
		}, nil)

	_, err := svc.Update(ctx, userID, itemID, service.UpdateItemInput{
		Status: utils.StrPtr("done"),
	})

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Замена меток: пустой срез снимает все, метки едут в репозиторий
// одним вызовом с полями элемента
func TestItemsService_Update_ClearTags(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{
			ID: itemID, Title: "Книга", Kind: models.KindBook,
			Status: models.StatusPlanned, Priority: models.PriorityNormal,
		}, nil)

	items.EXPECT().
		Update(ctx, userID, itemID, "Книга", models.KindBook, models.StatusPlanned, models.PriorityNormal, "", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _ string, _ models.Kind, _ models.Status, _ models.Priority, _ string, tags *[]string) (time.Time, error) {
			require.NotNil(t, tags)
			require.Empty(t, *tags)
			return now, nil
		})

	it, err := svc.Update(ctx, userID, itemID, service.UpdateItemInput{
		Tags: &[]string{},
	})

	require.NoError(t, err)
	require.Empty(t, it.Tags)
}

// Обновление удалённого
func TestItemsService_Update_Deleted(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	items.EXPECT().
		GetByID(ctx, gomock.Any(), gomock.Any()).
		Return(&models.Item{IsDeleted: true}, nil)

	_, err := svc.Update(ctx, uuid.New(), uuid.New(), service.UpdateItemInput{
		Status: utils.StrPtr("reading"),
	})

	require.ErrorIs(t, err, serr.ErrGone)
}

// Удаление возвращает последний снапшот
func TestItemsService_Delete_OK(t *testing.T) {
	ctx := context.Background()
	svc, items, tags := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{ID: itemID, Title: "Книга"}, nil)

	tags.EXPECT().
		ListForItem(ctx, itemID).
		Return([]string{"go"}, nil)

	items.EXPECT().
		SetDeleted(ctx, userID, itemID).
		Return(nil)

	it, err := svc.Delete(ctx, userID, itemID)

	require.NoError(t, err)
	require.True(t, it.IsDeleted)
	require.Equal(t, "Книга", it.Title)
	require.Equal(t, []string{"go"}, it.Tags)
}

// Повторное удаление
func TestItemsService_Delete_AlreadyDeleted(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemsService(t)

	items.EXPECT().
		GetByID(ctx, gomock.Any(), gomock.Any()).
		Return(&models.Item{IsDeleted: true}, nil)

	_, err := svc.Delete(ctx, uuid.New(), uuid.New())

	require.ErrorIs(t, err, serr.ErrGone)
}

// Гонка: элемент удалили между чтением и SetDeleted
func TestItemsService_Delete_Race(t *testing.T) {
	ctx := context.Background()
	svc, items, tags := newItemsService(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(ctx, userID, itemID).
		Return(&models.Item{ID: itemID}, nil)

	tags.EXPECT().
		ListForItem(ctx, itemID).
		Return(nil, nil)

	items.EXPECT().
		SetDeleted(ctx, userID, itemID).
		Return(serr.ErrNotFound)

	_, err := svc.Delete(ctx, userID, itemID)

	require.ErrorIs(t, err, serr.ErrGone)
}

// Все метки пользователя
func TestItemsService_Tags(t *testing.T) {
	ctx := context.Background()
	svc, _, tags := newItemsService(t)

	userID := uuid.New()

	tags.EXPECT().
		ListForUser(ctx, userID).
		Return([]string{"go", "книги"}, nil)

	got, err := svc.Tags(ctx, userID)

	require.NoError(t, err)
	require.Equal(t, []string{"go", "книги"}, got)
}
