package report

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	reportService "github.com/AI-killer-project-team/backend/internal/service/report"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// Handler serves the session report endpoint.
type Handler struct {
	builder *reportService.Builder
}

// New creates the report handler.
func New(builder *reportService.Builder) *Handler {
	return &Handler{builder: builder}
}

// RegisterRoutes mounts the report route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/report/{sessionID}", h.handleGet)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	rep, err := h.builder.Build(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	utils.RespondJSON(w, http.StatusOK, rep)
}
