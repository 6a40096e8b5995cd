package routers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/K4elthaz/readify/internal/handlers"
	"github.com/K4elthaz/readify/internal/metrics"
)

// New wires every route of the realtime service. The request timeout applies
// to the REST subtree only: WebSocket connections are long-lived and must not
// inherit it.
func New(ws *handlers.WSHandler, msgs *handlers.MessageHandler, notifs *handlers.NotificationHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(metrics.Middleware("realtime"))

	r.Get("/healthz", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/ws/collaborate/{slug}", ws.CollabWS)
	r.Get("/ws/chat/{userID}", ws.ChatWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/messages/{userID}", msgs.GetThreadHandler)

		r.Get("/notifications", notifs.ListHandler)
		r.Get("/notifications/count", notifs.CountHandler)
		r.Post("/notifications/{id}/read", notifs.MarkReadHandler)
	})

	return r
}
