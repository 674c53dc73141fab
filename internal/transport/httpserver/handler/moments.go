package handler

import (
	"errors"
	"net/http"
	"time"

	momentdomain "campus-events-go/internal/domain/moment"
	"github.com/go-chi/chi/v5"
)

type createMomentRequest struct {
	UserID   string  `json:"user_id"`
	EventID  string  `json:"event_id"`
	PhotoURL string  `json:"photo_url"`
	Caption  *string `json:"caption"`
}

type momentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	PhotoURL  string    `json:"photo_url"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type momentDetailResponse struct {
	momentResponse
	EventTitle     string     `json:"event_title"`
	EventLocation  string     `json:"event_location"`
	EventStartTime *time.Time `json:"event_start_time"`
}

func toMomentResponse(moment *momentdomain.Moment) momentResponse {
	return momentResponse{
		ID:        moment.ID,
		UserID:    moment.UserID,
		EventID:   moment.EventID,
		PhotoURL:  moment.PhotoURL,
		Caption:   moment.Caption,
		CreatedAt: moment.CreatedAt,
	}
}

func toMomentDetailResponse(detail *momentdomain.Detail) momentDetailResponse {
	return momentDetailResponse{
		momentResponse: toMomentResponse(&detail.Moment),
		EventTitle:     detail.EventTitle,
		EventLocation:  detail.EventLocation,
		EventStartTime: detail.EventStartTime,
	}
}

func (h *Handlers) CreateMoment(w http.ResponseWriter, r *http.Request) {
	var req createMomentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == "" || req.EventID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id and event_id are required")
		return
	}

	result, err := h.Moments.Create(r.Context(), momentdomain.CreateInput{
		UserID:   req.UserID,
		EventID:  req.EventID,
		PhotoURL: req.PhotoURL,
		Caption:  req.Caption,
	})
	if err != nil {
		switch {
		case errors.Is(err, momentdomain.ErrUserNotFound):
			h.log.BusinessError("moments.create: user not found", err, "user_id", req.UserID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, momentdomain.ErrEventNotFound):
			h.log.BusinessError("moments.create: event not found", err, "event_id", req.EventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
		case errors.Is(err, momentdomain.ErrNotParticipant):
			h.log.BusinessError("moments.create: not a participant", err, "user_id", req.UserID, "event_id", req.EventID)
			writeError(w, http.StatusBadRequest, "invalid_request", "user did not participate in this event")
		case errors.Is(err, momentdomain.ErrInvalidInput):
			h.log.BusinessError("moments.create: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("moments.create: create failed", err, "user_id", req.UserID, "event_id", req.EventID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toMomentResponse(result))
}

func (h *Handlers) ListMoments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	skip, limit, err := parsePagination(query.Get("skip"), query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Moments.List(r.Context(), momentdomain.ListFilter{
		UserID:  query.Get("user_id"),
		EventID: query.Get("event_id"),
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		h.log.InternalError("moments.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	responses := make([]momentDetailResponse, 0, len(result))
	for i := range result {
		responses = append(responses, toMomentDetailResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handlers) GetMoment(w http.ResponseWriter, r *http.Request) {
	momentID := chi.URLParam(r, "moment_id")

	result, err := h.Moments.Get(r.Context(), momentID)
	if err != nil {
		if errors.Is(err, momentdomain.ErrNotFound) {
			h.log.BusinessError("moments.get: not found", err, "moment_id", momentID)
			writeError(w, http.StatusNotFound, "moment_not_found", "moment not found")
			return
		}
		h.log.InternalError("moments.get: get failed", err, "moment_id", momentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMomentDetailResponse(result))
}

func (h *Handlers) DeleteMoment(w http.ResponseWriter, r *http.Request) {
	momentID := chi.URLParam(r, "moment_id")

	if err := h.Moments.Delete(r.Context(), momentID); err != nil {
		if errors.Is(err, momentdomain.ErrNotFound) {
			h.log.BusinessError("moments.delete: not found", err, "moment_id", momentID)
			writeError(w, http.StatusNotFound, "moment_not_found", "moment not found")
			return
		}
		h.log.InternalError("moments.delete: delete failed", err, "moment_id", momentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
