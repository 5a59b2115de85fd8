// Методы клиента для работы со списком чтения: создание, получение,
// список с фильтрами, частичное обновление, удаление и метки.
package api

import (
	"fmt"
	"net/url"
	"strconv"

	sharedModels "github.com/mvoronkova/readlist/internal/shared/models"
)

// ListItemsQuery — фильтры для запроса списка элементов.
//
// Пустые строки и нулевые значения не попадают в query string.
type ListItemsQuery struct {
	Status    string
	Kind      string
	Priority  string
	Tags      []string
	Title     string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// encode собирает query string вида ?status=planned&tag=go&tag=db.
func (q ListItemsQuery) encode() string {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Kind != "" {
		v.Set("kind", q.Kind)
	}
	if q.Priority != "" {
		v.Set("priority", q.Priority)
	}
	for _, tag := range q.Tags {
		v.Add("tag", tag)
	}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// CreateItem создаёт новый элемент списка чтения на сервере.
//
// Выполняет запрос:
//
//	POST /items
//
// Возвращает созданный элемент (с серверным ID и timestamps).
func (c *Client) CreateItem(accessToken string, req sharedModels.CreateItemRequest) (sharedModels.Item, error) {
	var resp sharedModels.Item
	err := c.PostJSON("/items", req, &resp, accessToken)
	return resp, err
}

// GetItem запрашивает один элемент по ID.
//
// Выполняет запрос:
//
//	GET /items/{id}
func (c *Client) GetItem(accessToken, id string) (sharedModels.Item, error) {
	var resp sharedModels.Item
	err := c.GetJSON(fmt.Sprintf("/items/%s", id), &resp, accessToken)
	return resp, err
}

// ListItems запрашивает страницу списка чтения по фильтрам.
//
// Выполняет запрос:
//
//	GET /items?status=...&tag=...&limit=...
func (c *Client) ListItems(accessToken string, q ListItemsQuery) (sharedModels.ListItemsResponse, error) {
	var resp sharedModels.ListItemsResponse
	err := c.GetJSON("/items"+q.encode(), &resp, accessToken)
	return resp, err
}

// UpdateItem выполняет частичное обновление элемента по ID.
//
// Выполняет запрос:
//
//	PATCH /items/{id}
//
// Возвращает обновлённый элемент.
func (c *Client) UpdateItem(accessToken, id string, req sharedModels.UpdateItemRequest) (sharedModels.Item, error) {
	var resp sharedModels.Item
	err := c.PatchJSON(fmt.Sprintf("/items/%s", id), req, &resp, accessToken)
	return resp, err
}

// DeleteItem удаляет элемент по ID (soft delete на сервере).
//
// Выполняет запрос:
//
//	DELETE /items/{id}
//
// Сервер возвращает последний снапшот удалённого элемента.
func (c *Client) DeleteItem(accessToken, id string) (sharedModels.Item, error) {
	var resp sharedModels.Item
	err := c.DeleteJSON(fmt.Sprintf("/items/%s", id), &resp, accessToken)
	return resp, err
}

// ListTags запрашивает все метки пользователя.
//
// Выполняет запрос:
//
//	GET /tags
func (c *Client) ListTags(accessToken string) (sharedModels.ListTagsResponse, error) {
	var resp sharedModels.ListTagsResponse
	err := c.GetJSON("/tags", &resp, accessToken)
	return resp, err
}
