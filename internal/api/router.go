package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(apiHandler *APIHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.Get("/", apiHandler.RootHandler)
	r.Get("/health", apiHandler.HealthHandler)
	r.Get("/disclaimer", apiHandler.DisclaimerHandler)

	r.Post("/translate", apiHandler.TranslateHandler)
	r.Post("/embeddings", apiHandler.EmbeddingsHandler)
	r.Post("/analyze-themes", apiHandler.AnalyzeThemesHandler)

	r.Post("/share", apiHandler.CreateShareHandler)
	r.Get("/share/{shareID}", apiHandler.GetShareHandler)

	r.Route("/cloud", func(r chi.Router) {
		r.Get("/health", apiHandler.CloudHealthHandler)
		r.Get("/", apiHandler.CloudDownloadHandler)
		r.Post("/", apiHandler.CloudUploadHandler)
		r.Delete("/", apiHandler.CloudDeleteHandler)
	})

	return r
}
