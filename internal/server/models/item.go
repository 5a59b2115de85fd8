// Серверные модели элементов списка чтения
package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind — тип элемента списка чтения.
type Kind string

const (
	KindBook    Kind = "book"
	KindArticle Kind = "article"
)

// Status — статус чтения элемента.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusReading Status = "reading"
	StatusDone    Status = "done"
)

// Priority — приоритет чтения элемента.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ValidKind сообщает, входит ли значение в фиксированный набор типов.
func ValidKind(k Kind) bool {
	return k == KindBook || k == KindArticle
}

// ValidStatus сообщает, входит ли значение в фиксированный набор статусов.
func ValidStatus(s Status) bool {
	return s == StatusPlanned || s == StatusReading || s == StatusDone
}

// ValidPriority сообщает, входит ли значение в фиксированный набор приоритетов.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityNormal || p == PriorityHigh
}

// Item — строка таблицы items вместе с именами тегов.
//
// IsDeleted — флаг мягкого удаления: такие строки остаются в БД,
// но наружу отдаются только как 410 Gone.
type Item struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Kind      Kind
	Status    Status
	Priority  Priority
	Notes     string
	IsDeleted bool
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag — строка таблицы tags. Имя уникально в пределах пользователя.
type Tag struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
}
