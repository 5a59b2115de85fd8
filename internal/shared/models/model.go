package models

import "time"

// Item — плоская модель элемента списка чтения, используемая в HTTP API.
//
// Item описывает книгу или статью пользователя вместе с прогрессом чтения.
//
// Поля:
//   - ID: уникальный идентификатор элемента (UUID в виде строки)
//   - Title: название книги или статьи
//   - Kind: тип элемента (book | article)
//   - Status: статус чтения (planned | reading | done)
//   - Priority: приоритет чтения (low | normal | high)
//   - Notes: заметки пользователя (может быть пустой строкой)
//   - Tags: список тегов элемента (имена, без дубликатов)
//   - UpdatedAt: время последнего изменения (серверное)
//   - CreatedAt: время создания (серверное)
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

// ListItemsResponse — ответ эндпоинта получения элементов пользователя.
//
// Используется в:
//
//	GET /items
type ListItemsResponse struct {
	Items []Item `json:"items"`
}

// CreateItemRequest — запрос на создание нового элемента списка чтения.
//
// Используется в:
//
//	POST /items
//
// Поля:
//   - Title и Kind обязательны
//   - Status по умолчанию planned, Priority по умолчанию normal
//   - Tags опциональны (до 20 штук, дубликаты отбрасываются)
type CreateItemRequest struct {
	Title    string   `json:"title"`
	Kind     string   `json:"kind"`
	Status   string   `json:"status,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateItemRequest — запрос на частичное обновление элемента по ID.
//
// Используется в:
//
//	PATCH /items/{id}
//
// Все поля — указатели, чтобы отличать "не передано" от пустого значения
// (omitempty работает корректно). Tags == nil означает "теги не менять",
// пустой список — "убрать все теги". Хотя бы одно поле должно быть задано.
type UpdateItemRequest struct {
	Title    *string   `json:"title,omitempty"`
	Kind     *string   `json:"kind,omitempty"`
	Status   *string   `json:"status,omitempty"`
	Priority *string   `json:"priority,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// ListTagsResponse — ответ эндпоинта получения тегов пользователя.
//
// Используется в:
//
//	GET /tags
type ListTagsResponse struct {
	Tags []string `json:"tags"`
}
