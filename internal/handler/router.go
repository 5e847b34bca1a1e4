package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analysisHandler "github.com/orbsocial/backend/internal/handler/analysis"
	feedbackHandler "github.com/orbsocial/backend/internal/handler/feedback"
	"github.com/orbsocial/backend/internal/handler/live"
	middlewarePkg "github.com/orbsocial/backend/internal/middleware"
	analysisService "github.com/orbsocial/backend/internal/service/analysis"
	feedbackService "github.com/orbsocial/backend/internal/service/feedback"
	"github.com/orbsocial/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(analysisSvc *analysisService.Service, feedbackSvc *feedbackService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		analysisHandler.New(analysisSvc).RegisterRoutes(api)
		feedbackHandler.New(feedbackSvc).RegisterRoutes(api)
		live.New(analysisSvc).RegisterRoutes(api)
	})

	return r
}
