package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/projectopen-signup/internal/logger"
)

// NewRouter creates and configures the chi router.
func NewRouter(service RegistrationService, logger *logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLogging(logger).Handle)
	r.Use(middleware.Recoverer)

	// Only preflight goes through the CORS middleware; regular responses
	// carry their CORS headers from the presenter, which omits them on faults.
	preflight := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	registration := NewRegistration(service, logger)

	r.Get("/healthz", Health)

	for _, path := range []string{"/", "/register"} {
		r.Post(path, registration.Register)
		r.With(preflight).Options(path, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	}

	return r
}
