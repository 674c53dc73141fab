package handler

import (
	"errors"
	"net/http"
	"time"

	eventdomain "campus-events-go/internal/domain/event"
	"github.com/go-chi/chi/v5"
)

type createEventRequest struct {
	CreatorID       string     `json:"creator_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Category        string     `json:"category"`
	Location        string     `json:"location"`
	ImageURL        *string    `json:"image_url"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	MaxParticipants *int       `json:"max_participants"`
}

type updateEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"`
	Location        *string    `json:"location"`
	ImageURL        *string    `json:"image_url"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	MaxParticipants *int       `json:"max_participants"`
	Status          *string    `json:"status"`
}

type joinEventRequest struct {
	UserID string `json:"user_id"`
}

type eventResponse struct {
	ID              string     `json:"id"`
	CreatorID       string     `json:"creator_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Category        string     `json:"category"`
	Location        string     `json:"location"`
	ImageURL        *string    `json:"image_url"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	MaxParticipants *int       `json:"max_participants"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

type participantPreviewResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Photo  string `json:"photo"`
}

type eventDetailResponse struct {
	eventResponse
	ParticipantCount    int64                        `json:"participant_count"`
	Participants        []participantPreviewResponse `json:"participants"`
	OrganizerID         string                       `json:"organizer_id"`
	OrganizerName       string                       `json:"organizer_name"`
	OrganizerPhoto      *string                      `json:"organizer_photo"`
	OrganizerDepartment *string                      `json:"organizer_department"`
	CurrentUserJoined   bool                         `json:"current_user_joined"`
}

type participantResponse struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
	Status   string    `json:"status"`
}

type participantInfoResponse struct {
	participantResponse
	Name  string  `json:"name"`
	Photo *string `json:"photo"`
}

func toEventResponse(event *eventdomain.Event) eventResponse {
	return eventResponse{
		ID:              event.ID,
		CreatorID:       event.CreatorID,
		Title:           event.Title,
		Description:     event.Description,
		Category:        event.Category,
		Location:        event.Location,
		ImageURL:        event.ImageURL,
		StartTime:       event.StartTime,
		EndTime:         event.EndTime,
		MaxParticipants: event.MaxParticipants,
		Status:          event.Status,
		CreatedAt:       event.CreatedAt,
	}
}

func toEventDetailResponse(detail *eventdomain.Detail) eventDetailResponse {
	previews := make([]participantPreviewResponse, 0, len(detail.Participants))
	for _, preview := range detail.Participants {
		previews = append(previews, participantPreviewResponse(preview))
	}
	return eventDetailResponse{
		eventResponse:       toEventResponse(&detail.Event),
		ParticipantCount:    detail.ParticipantCount,
		Participants:        previews,
		OrganizerID:         detail.CreatorID,
		OrganizerName:       detail.OrganizerName,
		OrganizerPhoto:      detail.OrganizerPhoto,
		OrganizerDepartment: detail.OrganizerDepartment,
		CurrentUserJoined:   detail.CurrentUserJoined,
	}
}

func toParticipantResponse(participant *eventdomain.Participant) participantResponse {
	return participantResponse{
		ID:       participant.ID,
		EventID:  participant.EventID,
		UserID:   participant.UserID,
		JoinedAt: participant.JoinedAt,
		Status:   participant.Status,
	}
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Events.Create(r.Context(), eventdomain.CreateInput{
		CreatorID:       req.CreatorID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		ImageURL:        req.ImageURL,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		switch {
		case errors.Is(err, eventdomain.ErrUserNotFound):
			h.log.BusinessError("events.create: creator not found", err, "creator_id", req.CreatorID)
			writeError(w, http.StatusNotFound, "user_not_found", "creator not found")
		case errors.Is(err, eventdomain.ErrInvalidInput):
			h.log.BusinessError("events.create: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("events.create: create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(result))
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	skip, limit, err := parsePagination(query.Get("skip"), query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Events.List(r.Context(), eventdomain.ListFilter{
		Category:      query.Get("category"),
		Search:        query.Get("search"),
		CreatorID:     query.Get("creator_id"),
		CurrentUserID: query.Get("current_user_id"),
		Skip:          skip,
		Limit:         limit,
	})
	if err != nil {
		h.log.InternalError("events.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	responses := make([]eventDetailResponse, 0, len(result))
	for i := range result {
		responses = append(responses, toEventDetailResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handlers) ListEventCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Events.ListCategories(r.Context())
	if err != nil {
		h.log.InternalError("events.categories: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")

	result, err := h.Events.GetDetail(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			h.log.BusinessError("events.get: not found", err, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return
		}
		h.log.InternalError("events.get: get failed", err, "event_id", eventID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toEventDetailResponse(result))
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Events.Update(r.Context(), eventID, eventdomain.UpdateInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		ImageURL:        req.ImageURL,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, eventdomain.ErrNotFound):
			h.log.BusinessError("events.update: not found", err, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
		case errors.Is(err, eventdomain.ErrInvalidInput):
			h.log.BusinessError("events.update: invalid input", err, "event_id", eventID)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("events.update: update failed", err, "event_id", eventID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(result))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")

	if err := h.Events.Delete(r.Context(), eventID); err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			h.log.BusinessError("events.delete: not found", err, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return
		}
		h.log.InternalError("events.delete: delete failed", err, "event_id", eventID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) JoinEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")

	var req joinEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	result, err := h.Events.Join(r.Context(), eventID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, eventdomain.ErrNotFound):
			h.log.BusinessError("events.join: event not found", err, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
		case errors.Is(err, eventdomain.ErrUserNotFound):
			h.log.BusinessError("events.join: user not found", err, "user_id", req.UserID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, eventdomain.ErrNotActive):
			h.log.BusinessError("events.join: event not active", err, "event_id", eventID)
			writeError(w, http.StatusConflict, "event_not_active", "event is not active")
		case errors.Is(err, eventdomain.ErrAlreadyJoined):
			h.log.BusinessError("events.join: already joined", err, "event_id", eventID, "user_id", req.UserID)
			writeError(w, http.StatusConflict, "already_joined", "already joined this event")
		case errors.Is(err, eventdomain.ErrEventFull):
			h.log.BusinessError("events.join: event full", err, "event_id", eventID)
			writeError(w, http.StatusConflict, "event_full", "event is full")
		default:
			h.log.InternalError("events.join: join failed", err, "event_id", eventID, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toParticipantResponse(result))
}

func (h *Handlers) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")
	userID := chi.URLParam(r, "user_id")

	if err := h.Events.Leave(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, eventdomain.ErrNotJoined) {
			h.log.BusinessError("events.leave: not joined", err, "event_id", eventID, "user_id", userID)
			writeError(w, http.StatusNotFound, "not_joined", "participant not found")
			return
		}
		h.log.InternalError("events.leave: leave failed", err, "event_id", eventID, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListEventParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")

	result, err := h.Events.ListParticipants(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			h.log.BusinessError("events.participants: event not found", err, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return
		}
		h.log.InternalError("events.participants: list failed", err, "event_id", eventID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	responses := make([]participantInfoResponse, 0, len(result))
	for i := range result {
		responses = append(responses, participantInfoResponse{
			participantResponse: toParticipantResponse(&result[i].Participant),
			Name:                result[i].Name,
			Photo:               result[i].Photo,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}
