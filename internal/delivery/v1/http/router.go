package http

import (
	_ "github.com/authentika/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(analysisUC usecase.AnalysisUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(analysisUC, r.logger)
		registerProductRoutes(v1, prHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/analyze", prHandler.analyzeProduct)
		pr.Get("/verified", prHandler.listRecentVerified)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Post("/{id}/verify", prHandler.verifyProduct)
	})
}
