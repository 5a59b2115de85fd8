package memory

import (
	"sync"
	"time"

	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// Item — локальная модель элемента списка чтения, хранимая агентом.
//
// Поля соответствуют данным, которые приходят от сервера при sync.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	Notes     string    `json:"notes"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemsStore — потокобезопасное in-memory хранилище списка чтения.
//
// Используется CLI/агентом для:
//   - выдачи элементов по ID (Get)
//   - получения локального списка (List)
//   - полной замены локального состояния после sync (ReplaceAll)
//   - точечного обновления из ответа сервера (Upsert)
//   - удаления элемента (Delete)
type ItemsStore struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewItems создаёт пустое хранилище элементов.
func NewItems() *ItemsStore {
	return &ItemsStore{
		items: make(map[string]Item),
	}
}

// Get возвращает элемент по ID.
//
// Если элемент отсутствует — возвращает serr.ErrNotFound.
func (s *ItemsStore) Get(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.items[id]
	if !ok {
		return Item{}, serr.ErrNotFound
	}
	return result, nil
}

// ReplaceAll полностью заменяет содержимое стора переданным списком.
//
// Используется после sync, чтобы локальное состояние строго соответствовало серверу.
// Если в списке есть дубликаты по ID, последнее значение перезапишет предыдущее.
func (s *ItemsStore) ReplaceAll(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]Item, len(items))
	for _, it := range items {
		s.items[it.ID] = it
	}
}

// List возвращает список всех элементов из стора.
//
// Порядок элементов не гарантируется (map).
func (s *ItemsStore) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		result = append(result, it)
	}
	return result
}

// Upsert кладёт элемент в стор, перезаписывая существующий с тем же ID.
//
// Используется после create/update/get, чтобы локальная копия
// совпадала с серверной.
func (s *ItemsStore) Upsert(it Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[it.ID] = it
}

// Delete удаляет элемент по ID.
//
// Если элемент отсутствует — возвращает serr.ErrNotFound.
func (s *ItemsStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return serr.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
