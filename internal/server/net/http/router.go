// Package http реализует маршрутизацию HTTP-слоя сервера readlist.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - rate limit по IP (если включён в конфиге);
//   - выполняет проверку JWT access-токенов;
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mvoronkova/readlist/internal/server/api"
	"github.com/mvoronkova/readlist/internal/server/config"
	"github.com/mvoronkova/readlist/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты аутентификации под префиксом /auth;
//   - health-check и swagger;
//   - middleware логирования, лимит размера тела и rate limit (если включены) для всех запросов;
//   - группу защищённых JWT эндпоинтов: /items, /tags, /me, /auth/logout.
func NewRouter(h *api.Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())

	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	}

	if cfg.Security.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst)
		r.Use(rl.Middleware())
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// живость сервера и базы
	r.Get("/health", h.Health)
	// Публичные пути
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
	})
	// защищены пути
	r.Group(func(r chi.Router) {
		// проверка access токена
		r.Use(h.Verifier.AuthMiddleware())

		r.Post("/auth/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Get("/tags", h.ListTags)

		// CRUD списка чтения
		r.Route("/items", func(r chi.Router) {
			r.Post("/", h.CreateItem)        // создание элемента
			r.Get("/", h.ListItems)          // список с фильтрами и пагинацией
			r.Get("/{id}", h.GetItem)        // один элемент, 410 для удалённых
			r.Patch("/{id}", h.UpdateItem)   // частичное обновление
			r.Delete("/{id}", h.DeleteItem)  // soft delete, возвращает снапшот
		})
	})

	return r
}
