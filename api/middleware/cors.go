package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/shopsight-ai/shopsight-backend/pkg/config"
)

// CORS reflects the request origin per the configured allow list and lets
// preflights fall through to the router's 204 handler.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true,
	}).Handler
}

// Preflight terminates OPTIONS requests with an empty 204 after the CORS
// headers have been applied.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
