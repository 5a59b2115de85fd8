// Package service содержит бизнес-логику приложения (readlist).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mvoronkova/readlist/internal/server/config"
	"github.com/mvoronkova/readlist/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Items    ItemsRepo
	Tags     TagsRepo
	Sessions SessionsRepo
	Health   HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Items  *ItemsService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля) и ItemsService (пагинация).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.Users, repos.Sessions, cfg),
		Items:  NewItemsService(repos.Items, repos.Tags, cfg),
		Health: NewHealthService(repos.Health),
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login/me).
type UsersRepo interface {
	Create(ctx context.Context, email, displayName, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (id uuid.UUID, displayName, passwordHash string, err error)
	GetByID(ctx context.Context, id uuid.UUID) (email, displayName string, createdAt time.Time, err error)
}

// ItemsRepo — репозиторий элементов списка чтения.
//
// Create и Update принимают метки вместе с полями элемента и пишут их
// в одной транзакции: элемент без своих меток в базе не появляется.
// В Update tags == nil означает "метки не трогать".
type ItemsRepo interface {
	Create(ctx context.Context, userID uuid.UUID, title string, kind models.Kind, status models.Status, priority models.Priority, notes string, tags []string) (id uuid.UUID, createdAt, updatedAt time.Time, err error)
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*models.Item, error)
	List(ctx context.Context, userID uuid.UUID, f models.ItemFilter) ([]models.Item, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, title string, kind models.Kind, status models.Status, priority models.Priority, notes string, tags *[]string) (updatedAt time.Time, err error)
	SetDeleted(ctx context.Context, userID, itemID uuid.UUID) error
}

// TagsRepo — чтение меток. Запись меток идёт через ItemsRepo,
// чтобы элемент и его метки коммитились вместе.
type TagsRepo interface {
	ListForItem(ctx context.Context, itemID uuid.UUID) ([]string, error)
	ListPairsByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]string, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type SessionsRepo interface {
	Create(ctx context.Context, userID uuid.UUID, refreshHash []byte, expiresAt time.Time) (uuid.UUID, error)
	GetByRefreshHash(ctx context.Context, refreshHash []byte) (id uuid.UUID, userID uuid.UUID, expiresAt time.Time, revokedAt *time.Time, replacedBy *uuid.UUID, err error)
	RevokeAndReplace(ctx context.Context, oldID, newID uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// HealthService — сервис проверки живости.
type HealthService struct {
	health HealthRepo
}

// NewHealthService создаёт HealthService.
func NewHealthService(health HealthRepo) *HealthService {
	return &HealthService{health: health}
}

// Check возвращает ошибку, если база недоступна.
func (s *HealthService) Check(ctx context.Context) error {
	return s.health.Ping(ctx)
}
