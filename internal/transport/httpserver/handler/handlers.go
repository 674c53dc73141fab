package handler

import (
	"net/http"

	eventdomain "campus-events-go/internal/domain/event"
	friendshipdomain "campus-events-go/internal/domain/friendship"
	momentdomain "campus-events-go/internal/domain/moment"
	userdomain "campus-events-go/internal/domain/user"
	"campus-events-go/pkg/logger"
)

type Handlers struct {
	Users       *userdomain.Service
	Events      *eventdomain.Service
	Friendships *friendshipdomain.Service
	Moments     *momentdomain.Service
	log         logger.Logger
}

func New(users *userdomain.Service, events *eventdomain.Service, friendships *friendshipdomain.Service, moments *momentdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:       users,
		Events:      events,
		Friendships: friendships,
		Moments:     moments,
		log:         log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
