package models

import "time"

// ItemFilter — параметры выборки списка чтения.
//
// nil-поля означают "фильтр не задан". Tags объединяются по принципу AND:
// элемент должен иметь все перечисленные метки.
type ItemFilter struct {
	Status   *Status
	Kind     *Kind
	Priority *Priority
	Tags     []string
	// TitleSubstr — подстрока названия, регистронезависимо.
	TitleSubstr *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// SortBy — одно из: created_at, updated_at, title, priority.
	SortBy string
	// SortOrder — asc|desc.
	SortOrder string

	Limit  int
	Offset int
}
