// HTTP-хендлеры CRUD списка чтения
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvoronkova/readlist/internal/server/middleware"
	"github.com/mvoronkova/readlist/internal/server/models"
	"github.com/mvoronkova/readlist/internal/server/service"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
	sharedmodels "github.com/mvoronkova/readlist/internal/shared/models"
)

// toWireItem переводит доменный элемент в формат ответа API.
func toWireItem(it *models.Item) sharedmodels.Item {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return sharedmodels.Item{
		ID:        it.ID.String(),
		Title:     it.Title,
		Kind:      string(it.Kind),
		Status:    string(it.Status),
		Priority:  string(it.Priority),
		Notes:     it.Notes,
		Tags:      tags,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// CreateItem добавляет элемент в список чтения пользователя.
//
// Ответы:
//   - 201 Created: элемент создан;
//   - 400 Bad Request: неверный JSON или нарушение валидации;
//   - 401 Unauthorized;
//   - 500 Internal Server Error.
//
// @Summary      Create reading list item
// @Description  Adds a new book or article to the authenticated user's reading list.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body sharedmodels.CreateItemRequest true "Create item request"
// @Success      201 {object} sharedmodels.Item
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /items [post]
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req sharedmodels.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	it, err := h.Svc.Items.Create(r.Context(), userID, service.CreateItemInput{
		Title:    req.Title,
		Kind:     req.Kind,
		Status:   req.Status,
		Priority: req.Priority,
		Notes:    req.Notes,
		Tags:     req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Logger.Sugar().Errorw(
				"create item failed",
				"error", err,
				"user_id", userID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toWireItem(it))
}

// GetItem возвращает один элемент списка чтения.
//
// Чужой элемент неотличим от несуществующего (404).
// Удалённый элемент отдаёт 410 Gone.
//
// @Summary      Get reading list item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID (UUID)"
// @Success      200 {object} sharedmodels.Item
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      410 {object} ErrorResponse "Deleted"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /items/{id} [get]
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	it, err := h.Svc.Items.Get(r.Context(), userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		case errors.Is(err, serr.ErrGone):
			WriteError(w, http.StatusGone, serr.ErrGone)
		default:
			h.Log.Logger.Sugar().Errorw(
				"get item failed",
				"error", err,
				"user_id", userID.String(),
				"item_id", itemID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(toWireItem(it))
}

// ListItems возвращает страницу списка чтения по фильтрам.
//
// Поддерживаемые query-параметры:
//   - status, kind, priority — фильтры по enum-полям;
//   - tag — метка, можно повторять (?tag=go&tag=db);
//   - title — подстрока названия;
//   - created_from, created_to — границы по времени создания (RFC3339);
//   - sort_by (created_at|updated_at|title|priority), sort_order (asc|desc);
//   - limit, offset.
//
// @Summary      List reading list items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        status   query string false "planned|reading|done"
// @Param        kind     query string false "book|article"
// @Param        priority query string false "low|normal|high"
// @Param        tag      query []string false "Tag filter, repeatable (AND)"
// @Param        title    query string false "Title substring"
// @Param        created_from query string false "RFC3339 lower bound"
// @Param        created_to   query string false "RFC3339 upper bound"
// @Param        sort_by    query string false "created_at|updated_at|title|priority"
// @Param        sort_order query string false "asc|desc"
// @Param        limit  query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Page offset"
// @Success      200 {object} sharedmodels.ListItemsResponse
// @Failure      400 {object} ErrorResponse "Invalid filter"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /items [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	q := r.URL.Query()

	in := service.ListItemsInput{
		Status:    q.Get("status"),
		Kind:      q.Get("kind"),
		Priority:  q.Get("priority"),
		Tags:      q["tag"],
		Title:     q.Get("title"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	if v := q.Get("created_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
			return
		}
		in.CreatedFrom = &t
	}
	if v := q.Get("created_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
			return
		}
		in.CreatedTo = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
			return
		}
		in.Limit = &n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
			return
		}
		in.Offset = n
	}

	items, err := h.Svc.Items.List(r.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		default:
			h.Log.Logger.Sugar().Errorw(
				"list items failed",
				"error", err,
				"user_id", userID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	resp := sharedmodels.ListItemsResponse{Items: make([]sharedmodels.Item, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, toWireItem(&items[i]))
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(resp)
}

// UpdateItem выполняет частичное обновление элемента.
//
// Тело должно содержать хотя бы одно поле. Доменные правила
// проверяются для итогового состояния.
//
// @Summary      Update reading list item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID (UUID)"
// @Param        request body sharedmodels.UpdateItemRequest true "Partial update"
// @Success      200 {object} sharedmodels.Item
// @Failure      400 {object} ErrorResponse "Invalid input, empty update or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      410 {object} ErrorResponse "Deleted"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /items/{id} [patch]
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	var req sharedmodels.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	it, err := h.Svc.Items.Update(r.Context(), userID, itemID, service.UpdateItemInput{
		Title:    req.Title,
		Kind:     req.Kind,
		Status:   req.Status,
		Priority: req.Priority,
		Notes:    req.Notes,
		Tags:     req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		case errors.Is(err, serr.ErrGone):
			WriteError(w, http.StatusGone, serr.ErrGone)
		default:
			h.Log.Logger.Sugar().Errorw(
				"update item failed",
				"error", err,
				"user_id", userID.String(),
				"item_id", itemID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(toWireItem(it))
}

// DeleteItem помечает элемент удалённым и возвращает его последнее состояние.
//
// Повторное удаление — 410 Gone.
//
// @Summary      Delete reading list item
// @Description  Soft delete. Returns the final snapshot of the item.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID (UUID)"
// @Success      200 {object} sharedmodels.Item
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      410 {object} ErrorResponse "Already deleted"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /items/{id} [delete]
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	it, err := h.Svc.Items.Delete(r.Context(), userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		case errors.Is(err, serr.ErrGone):
			WriteError(w, http.StatusGone, serr.ErrGone)
		default:
			h.Log.Logger.Sugar().Errorw(
				"delete item failed",
				"error", err,
				"user_id", userID.String(),
				"item_id", itemID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(toWireItem(it))
}
