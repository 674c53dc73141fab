package httpserver

import (
	"net/http"
	"time"

	"campus-events-go/internal/config"
	"campus-events-go/internal/transport/httpserver/handler"
	"campus-events-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", handlers.CreateUser)
			r.Get("/", handlers.ListUsers)
			r.Get("/{user_id}", handlers.GetUser)
			r.Patch("/{user_id}", handlers.UpdateUser)
			r.Delete("/{user_id}", handlers.DeleteUser)
			r.Get("/{user_id}/friendships", handlers.ListUserFriendships)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", handlers.CreateEvent)
			r.Get("/", handlers.ListEvents)
			r.Get("/categories", handlers.ListEventCategories)
			r.Get("/{event_id}", handlers.GetEvent)
			r.Patch("/{event_id}", handlers.UpdateEvent)
			r.Delete("/{event_id}", handlers.DeleteEvent)
			r.Post("/{event_id}/join", handlers.JoinEvent)
			r.Delete("/{event_id}/leave/{user_id}", handlers.LeaveEvent)
			r.Get("/{event_id}/participants", handlers.ListEventParticipants)
		})

		r.Route("/friendships", func(r chi.Router) {
			r.Post("/", handlers.CreateFriendship)
			r.Patch("/{friendship_id}", handlers.RespondFriendship)
			r.Delete("/{friendship_id}", handlers.DeleteFriendship)
		})

		r.Route("/moments", func(r chi.Router) {
			r.Post("/", handlers.CreateMoment)
			r.Get("/", handlers.ListMoments)
			r.Get("/{moment_id}", handlers.GetMoment)
			r.Delete("/{moment_id}", handlers.DeleteMoment)
		})
	})

	return r
}
