// HTTP-хендлер меток
package api

import (
	"encoding/json"
	"net/http"

	"github.com/mvoronkova/readlist/internal/server/middleware"
	serr "github.com/mvoronkova/readlist/internal/shared/errors"
	sharedmodels "github.com/mvoronkova/readlist/internal/shared/models"
)

// ListTags возвращает все метки текущего пользователя.
//
// @Summary      List tags
// @Description  Returns all tags of the authenticated user, sorted by name.
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} sharedmodels.ListTagsResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	tags, err := h.Svc.Items.Tags(r.Context(), userID)
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list tags failed", "user_id", userID.String())
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}
	if tags == nil {
		tags = []string{}
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(sharedmodels.ListTagsResponse{Tags: tags})
}
