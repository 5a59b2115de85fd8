package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/mvoronkova/readlist/internal/server/api"
	"github.com/mvoronkova/readlist/internal/server/config"
	"github.com/mvoronkova/readlist/internal/server/middleware"
	"github.com/mvoronkova/readlist/internal/server/models"
	"github.com/mvoronkova/readlist/internal/server/service"
	svcmocks "github.com/mvoronkova/readlist/internal/server/service/mocks"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
	"github.com/mvoronkova/readlist/internal/shared/logger"
	sharedmodels "github.com/mvoronkova/readlist/internal/shared/models"
	"github.com/mvoronkova/readlist/internal/shared/utils"
)

// newItemsHandler собирает Handler с моками репозиториев элементов и меток
func newItemsHandler(t *testing.T) (*api.Handler, *svcmocks.MockItemsRepo, *svcmocks.MockTagsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	items := svcmocks.NewMockItemsRepo(ctrl)
	tags := svcmocks.NewMockTagsRepo(ctrl)

	cfg := &config.Config{
		Items: config.ItemsConfig{
			DefaultLimit: 20,
			MaxLimit:     100,
		},
	}

	svc := &service.Services{Items: service.NewItemsService(items, tags, cfg)}
	verifier := middleware.NewJWTVerifier("supersecretkeysupersecretkey123456", "readlist", "readlist-api")

	return api.NewHandler(svc, logger.NewHTTPLogger(), verifier), items, tags
}

// itemRouter монтирует хендлеры на chi-роутер, чтобы работали {id}-параметры
func itemRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/items/{id}", h.GetItem)
	r.Patch("/items/{id}", h.UpdateItem)
	r.Delete("/items/{id}", h.DeleteItem)
	return r
}

func TestHandler_CreateItem_Success(t *testing.T) {
	t.Parallel()

	h, items, _ := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	items.EXPECT().
		Create(gomock.Any(), userID, "Чистый код", models.KindBook, models.StatusPlanned, models.PriorityNormal, "", []string{"go", "книги"}).
		Return(itemID, now, now, nil)

	body, _ := json.Marshal(sharedmodels.CreateItemRequest{
		Title: "Чистый код",
		Kind:  "book",
		Tags:  []string{"go", "книги", "go"},
	})
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	h.CreateItem(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp sharedmodels.Item
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != itemID.String() || resp.Status != "planned" || resp.Priority != "normal" {
		t.Fatalf("unexpected item: %+v", resp)
	}
	if len(resp.Tags) != 2 {
		t.Fatalf("expected deduplicated tags, got %v", resp.Tags)
	}
}

func TestHandler_CreateItem_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _ := newItemsHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString("{bad json"))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	h.CreateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_CreateItem_InvalidInput(t *testing.T) {
	t.Parallel()

	h, _, _ := newItemsHandler(t)

	// статья с высоким приоритетом запрещена
	body, _ := json.Marshal(sharedmodels.CreateItemRequest{
		Title:    "Go memory model",
		Kind:     "article",
		Priority: "high",
	})
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	h.CreateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_CreateItem_Unauthorized(t *testing.T) {
	t.Parallel()

	h, _, _ := newItemsHandler(t)

	body, _ := json.Marshal(sharedmodels.CreateItemRequest{Title: "Чистый код", Kind: "book"})
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateItem(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandler_GetItem_Success(t *testing.T) {
	t.Parallel()

	h, items, tags := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(&models.Item{
			ID:        itemID,
			UserID:    userID,
			Title:     "Чистый код",
			Kind:      models.KindBook,
			Status:    models.StatusReading,
			Priority:  models.PriorityHigh,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil)

	tags.EXPECT().
		ListForItem(gomock.Any(), itemID).
		Return([]string{"go"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/items/"+itemID.String(), nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp sharedmodels.Item
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != itemID.String() || resp.Status != "reading" || len(resp.Tags) != 1 {
		t.Fatalf("unexpected item: %+v", resp)
	}
}

func TestHandler_GetItem_InvalidID(t *testing.T) {
	t.Parallel()

	h, _, _ := newItemsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_GetItem_NotFound(t *testing.T) {
	t.Parallel()

	h, items, _ := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(nil, serr.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/items/"+itemID.String(), nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandler_GetItem_Deleted(t *testing.T) {
	t.Parallel()

	h, items, _ := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(&models.Item{ID: itemID, UserID: userID, IsDeleted: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/items/"+itemID.String(), nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusGone {
		t.Fatalf("expected %d, got %d", http.StatusGone, rec.Code)
	}
}

func TestHandler_ListItems_Success(t *testing.T) {
	t.Parallel()

	h, items, tags := newItemsHandler(t)

	userID := uuid.New()
	item1 := uuid.New()
	item2 := uuid.New()
	now := time.Now().UTC()

	items.EXPECT().
		List(gomock.Any(), userID, gomock.Any()).
		Return([]models.Item{
			{ID: item1, UserID: userID, Title: "Чистый код", Kind: models.KindBook, Status: models.StatusPlanned, Priority: models.PriorityNormal, CreatedAt: now, UpdatedAt: now},
			{ID: item2, UserID: userID, Title: "Go memory model", Kind: models.KindArticle, Status: models.StatusDone, Priority: models.PriorityLow, Notes: "перечитать", CreatedAt: now, UpdatedAt: now},
		}, nil)

	tags.EXPECT().
		ListPairsByUser(gomock.Any(), userID).
		Return(map[uuid.UUID][]string{item1: {"go"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/items?status=planned&limit=10", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	h.ListItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp sharedmodels.ListItemsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if len(resp.Items[0].Tags) != 1 {
		t.Fatalf("expected tags on first item, got %v", resp.Items[0].Tags)
	}
	// у элементов без меток отдаётся пустой срез, не null
	if resp.Items[1].Tags == nil {
		t.Fatalf("expected empty tags slice, got nil")
	}
}

func TestHandler_ListItems_InvalidFilter(t *testing.T) {
	t.Parallel()

	h, _, _ := newItemsHandler(t)

	cases := []struct {
		name  string
		query string
	}{
		{"unknown status", "/items?status=finished"},
		{"limit over max", "/items?limit=101"},
		{"bad limit", "/items?limit=abc"},
		{"bad created_from", "/items?created_from=yesterday"},
		{"unknown sort", "/items?sort_by=notes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			req = req.WithContext(middleware.ContextWithUserID(req.Context(), uuid.New()))
			rec := httptest.NewRecorder()

			h.ListItems(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestHandler_UpdateItem_Success(t *testing.T) {
	t.Parallel()

	h, items, tags := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(&models.Item{
			ID:       itemID,
			UserID:   userID,
			Title:    "Чистый код",
			Kind:     models.KindBook,
			Status:   models.StatusReading,
			Priority: models.PriorityNormal,
			Notes:    "глава 4",
		}, nil)

	items.EXPECT().
		Update(gomock.Any(), userID, itemID, "Чистый код", models.KindBook, models.StatusDone, models.PriorityNormal, "глава 4", gomock.Nil()).
		Return(now, nil)

	tags.EXPECT().
		ListForItem(gomock.Any(), itemID).
		Return([]string{"go"}, nil)

	body, _ := json.Marshal(sharedmodels.UpdateItemRequest{Status: utils.StrPtr("done")})
	req := httptest.NewRequest(http.MethodPatch, "/items/"+itemID.String(), bytes.NewReader(body))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp sharedmodels.Item
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "done" {
		t.Fatalf("expected status done, got %q", resp.Status)
	}
}

func TestHandler_UpdateItem_EmptyBody(t *testing.T) {
	t.Parallel()

	h, _, _ := newItemsHandler(t)

	req := httptest.NewRequest(http.MethodPatch, "/items/"+uuid.NewString(), bytes.NewBufferString("{}"))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_UpdateItem_Deleted(t *testing.T) {
	t.Parallel()

	h, items, _ := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(&models.Item{ID: itemID, UserID: userID, IsDeleted: true}, nil)

	body, _ := json.Marshal(sharedmodels.UpdateItemRequest{Status: utils.StrPtr("reading")})
	req := httptest.NewRequest(http.MethodPatch, "/items/"+itemID.String(), bytes.NewReader(body))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusGone {
		t.Fatalf("expected %d, got %d", http.StatusGone, rec.Code)
	}
}

func TestHandler_DeleteItem_Success(t *testing.T) {
	t.Parallel()

	h, items, tags := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(&models.Item{
			ID:        itemID,
			UserID:    userID,
			Title:     "Чистый код",
			Kind:      models.KindBook,
			Status:    models.StatusPlanned,
			Priority:  models.PriorityNormal,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil)

	tags.EXPECT().
		ListForItem(gomock.Any(), itemID).
		Return([]string{"go"}, nil)

	items.EXPECT().
		SetDeleted(gomock.Any(), userID, itemID).
		Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/items/"+itemID.String(), nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	// в ответе последний снимок элемента
	var resp sharedmodels.Item
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != itemID.String() || resp.Title != "Чистый код" {
		t.Fatalf("unexpected snapshot: %+v", resp)
	}
}

func TestHandler_DeleteItem_AlreadyDeleted(t *testing.T) {
	t.Parallel()

	h, items, _ := newItemsHandler(t)

	userID := uuid.New()
	itemID := uuid.New()

	items.EXPECT().
		GetByID(gomock.Any(), userID, itemID).
		Return(&models.Item{ID: itemID, UserID: userID, IsDeleted: true}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/items/"+itemID.String(), nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	itemRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusGone {
		t.Fatalf("expected %d, got %d", http.StatusGone, rec.Code)
	}
}
