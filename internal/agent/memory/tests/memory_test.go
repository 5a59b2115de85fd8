package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/mvoronkova/readlist/internal/agent/memory"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

func TestNewItems_Empty(t *testing.T) {
	s := memory.NewItems()
	if s == nil {
		t.Fatalf("expected non-nil store")
	}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestItemsStore_Get_NotFound(t *testing.T) {
	s := memory.NewItems()
	_, err := s.Get("missing")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemsStore_ReplaceAll_AndGet(t *testing.T) {
	s := memory.NewItems()
	now := time.Now()

	it := memory.Item{
		ID:        "id1",
		Title:     "Чистый код",
		Kind:      "book",
		Status:    "planned",
		Priority:  "normal",
		Tags:      []string{"go"},
		UpdatedAt: now,
		CreatedAt: now,
	}

	s.ReplaceAll([]memory.Item{it})

	got, err := s.Get("id1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "id1" || got.Kind != "book" || got.Status != "planned" {
		t.Fatalf("unexpected item: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "go" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
}

func TestItemsStore_ReplaceAll_DropsOldState(t *testing.T) {
	s := memory.NewItems()
	now := time.Now()

	s.ReplaceAll([]memory.Item{
		{ID: "a", Title: "A", Kind: "book", Status: "planned", Priority: "normal", UpdatedAt: now, CreatedAt: now},
	})
	s.ReplaceAll([]memory.Item{
		{ID: "b", Title: "B", Kind: "article", Status: "reading", Priority: "low", UpdatedAt: now, CreatedAt: now},
	})

	if _, err := s.Get("a"); !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected old item to be gone, got %v", err)
	}
	if _, err := s.Get("b"); err != nil {
		t.Fatalf("expected new item to exist, got %v", err)
	}
}

func TestItemsStore_List_ReturnsAll(t *testing.T) {
	s := memory.NewItems()
	now := time.Now()

	s.ReplaceAll([]memory.Item{
		{ID: "a", Title: "A", Kind: "book", Status: "planned", Priority: "normal", UpdatedAt: now, CreatedAt: now},
		{ID: "b", Title: "B", Kind: "article", Status: "done", Priority: "low", Notes: "ок", UpdatedAt: now, CreatedAt: now},
	})

	items := s.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	// проверяем, что оба ID присутствуют
	seen := map[string]bool{}
	for _, it := range items {
		seen[it.ID] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Fatalf("expected ids a and b, got %+v", seen)
	}
}

func TestItemsStore_Upsert_InsertsAndOverwrites(t *testing.T) {
	s := memory.NewItems()
	now := time.Now()

	s.Upsert(memory.Item{ID: "id1", Title: "Чистый код", Kind: "book", Status: "planned", Priority: "normal", UpdatedAt: now, CreatedAt: now})

	got, err := s.Get("id1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Status != "planned" {
		t.Fatalf("expected status planned, got %q", got.Status)
	}

	// перезапись тем же ID
	got.Status = "done"
	got.Notes = "дочитала"
	s.Upsert(got)

	after, err := s.Get("id1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if after.Status != "done" || after.Notes != "дочитала" {
		t.Fatalf("expected overwritten item, got %+v", after)
	}
	if len(s.List()) != 1 {
		t.Fatalf("expected single item after upsert, got %d", len(s.List()))
	}
}

func TestItemsStore_Delete_Success(t *testing.T) {
	s := memory.NewItems()
	now := time.Now()

	s.ReplaceAll([]memory.Item{
		{ID: "id1", Title: "t1", Kind: "book", Status: "planned", Priority: "normal", UpdatedAt: now, CreatedAt: now},
	})

	if err := s.Delete("id1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	_, err := s.Get("id1")
	if err == nil {
		t.Fatalf("expected not found after delete")
	}
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemsStore_Delete_NotFound(t *testing.T) {
	s := memory.NewItems()
	err := s.Delete("missing")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
