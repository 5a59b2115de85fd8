package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvoronkova/readlist/internal/server/middleware"
)

// Тело в пределах лимита читается полностью
func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	var got []byte
	handler := middleware.BodyLimit(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = b
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"title":"ok"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, `{"title":"ok"}`, string(got))
}

// Чтение тела длиннее лимита возвращает ошибку
func TestBodyLimit_RejectsOversizedBody(t *testing.T) {
	handler := middleware.BodyLimit(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		require.Error(t, err)

		var maxErr *http.MaxBytesError
		require.ErrorAs(t, err, &maxErr)
		w.WriteHeader(http.StatusBadRequest)
	}))

	body := strings.Repeat("a", 1024)
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
