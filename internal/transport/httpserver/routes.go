package httpserver

import (
	"net/http"
	"time"

	"qr-manager-go/internal/transport/httpserver/handler"
	corsmw "qr-manager-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	// The guard and resident apps are native clients, but the admin dashboard
	// is a browser app served from anywhere.
	r.Use(corsmw.NewCORS([]string{"*"}))

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register-code", handlers.RegisterCode)
		r.Post("/validate-qr", handlers.ValidateCode)
		r.Post("/register-worker", handlers.RegisterWorker)
		r.Get("/get-history", handlers.GetHistory)
		r.Get("/counters", handlers.GetCounters)
	})

	return r
}
