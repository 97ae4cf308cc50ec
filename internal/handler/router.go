package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	documentHandler "github.com/AI-killer-project-team/backend/internal/handler/document"
	questionHandler "github.com/AI-killer-project-team/backend/internal/handler/question"
	reportHandler "github.com/AI-killer-project-team/backend/internal/handler/report"
	sessionHandler "github.com/AI-killer-project-team/backend/internal/handler/session"
	speechHandler "github.com/AI-killer-project-team/backend/internal/handler/speech"
	middlewarePkg "github.com/AI-killer-project-team/backend/internal/middleware"
	questionService "github.com/AI-killer-project-team/backend/internal/service/question"
	reportService "github.com/AI-killer-project-team/backend/internal/service/report"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
	speechService "github.com/AI-killer-project-team/backend/internal/service/speech"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. speechSvc may be nil when no
// speech credentials are configured.
func NewRouter(store *sessionService.Store, generator *questionService.Generator, builder *reportService.Builder, speechSvc *speechService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		sessionHandler.New(store, generator).RegisterRoutes(api)
		questionHandler.New(store, speechSvc).RegisterRoutes(api)
		reportHandler.New(builder).RegisterRoutes(api)
		documentHandler.New().RegisterRoutes(api)
		speechHandler.New(store, speechSvc).RegisterRoutes(api)
	})

	return r
}
