package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ItemsDump — формат файла локальной копии списка чтения.
//
// Файл содержит объект вида:
//
//	{ "items": [ ... ] }
type ItemsDump struct {
	Items []Item `json:"items"`
}

// DefaultItemsPath возвращает путь по умолчанию для локального файла списка.
//
// Путь формируется как:
//
//	$HOME/.readlist/items.json
//
// Ошибки:
//   - возвращает ошибку, если не удаётся определить домашнюю директорию пользователя.
func DefaultItemsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".readlist", "items.json"), nil
}

// SaveToFile сериализует текущее состояние store в JSON и сохраняет в файл по пути path.
//
// Поведение:
//   - читает store под RLock (потокобезопасно);
//   - создаёт директорию для файла (MkdirAll) с правами 0700;
//   - сохраняет файл с правами 0600;
//   - формат JSON: ItemsDump{Items:[...]} с отступами (MarshalIndent).
//
// Важно:
//   - порядок элементов в JSON не гарантируется (map).
func SaveToFile(path string, store *ItemsStore) error {
	store.mu.RLock()
	defer store.mu.RUnlock()

	out := ItemsDump{Items: make([]Item, 0, len(store.items))}
	for _, it := range store.items {
		out.Items = append(out.Items, it)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// LoadFromFile загружает элементы из JSON-файла в store.
//
// Поведение:
//   - если файл не существует — возвращает nil (нормальная ситуация при первом запуске);
//   - если JSON некорректный — возвращает ошибку Unmarshal;
//   - при успешной загрузке полностью заменяет содержимое store.
func LoadFromFile(path string, store *ItemsStore) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var dump ItemsDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	// заменяем полностью — после sync это удобно
	store.items = make(map[string]Item, len(dump.Items))
	for _, it := range dump.Items {
		store.items[it.ID] = it
	}

	return nil
}
