// HTTP-хендлер health-check
package api

import (
	"encoding/json"
	"net/http"

	serr "github.com/mvoronkova/readlist/internal/shared/errors"
)

// HealthResponse — ответ health-check.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health проверяет живость сервера и доступность базы.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} ErrorResponse "Database unavailable"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, serr.ErrInternal)
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}
