package tests

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/mvoronkova/readlist/internal/server/repository"
)

// Метки одного элемента
func TestTagsRepository_ListForItem_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewTagsRepository(db)

	itemID := uuid.New()

	mock.ExpectQuery(`SELECT t.name`).
		WithArgs(itemID).
		WillReturnRows(
			sqlmock.NewRows([]string{"name"}).AddRow("go").AddRow("базы данных"),
		)

	names, err := repo.ListForItem(context.Background(), itemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "go" {
		t.Fatalf("unexpected names: %v", names)
	}
}

// Привязки всех элементов пользователя одним запросом
func TestTagsRepository_ListPairsByUser_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewTagsRepository(db)

	userID := uuid.New()
	item1 := uuid.New()
	item2 := uuid.New()

	mock.ExpectQuery(`SELECT it.item_id, t.name`).
		WithArgs(userID).
		WillReturnRows(
			sqlmock.NewRows([]string{"item_id", "name"}).
				AddRow(item1, "go").
				AddRow(item1, "книги").
				AddRow(item2, "go"),
		)

	pairs, err := repo.ListPairsByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs[item1]) != 2 || len(pairs[item2]) != 1 {
		t.Fatalf("unexpected pairs: %v", pairs)
	}
}

// Все метки пользователя
func TestTagsRepository_ListForUser_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewTagsRepository(db)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT name FROM tags`).
		WithArgs(userID).
		WillReturnRows(
			sqlmock.NewRows([]string{"name"}).AddRow("go").AddRow("книги"),
		)

	names, err := repo.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("unexpected names: %v", names)
	}
}
