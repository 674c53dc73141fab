package handler

import (
	"errors"
	"net/http"
	"time"

	userdomain "campus-events-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	ProfilePhoto *string `json:"profile_photo"`
	Department   *string `json:"department"`
	Bio          *string `json:"bio"`
}

type updateUserRequest struct {
	Email        *string `json:"email"`
	FullName     *string `json:"full_name"`
	ProfilePhoto *string `json:"profile_photo"`
	Department   *string `json:"department"`
	Bio          *string `json:"bio"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	ProfilePhoto *string   `json:"profile_photo"`
	Department   *string   `json:"department"`
	Bio          *string   `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type userProfileResponse struct {
	userResponse
	EventsCreated int64 `json:"events_created_count"`
	EventsJoined  int64 `json:"events_joined_count"`
	Friends       int64 `json:"friends_count"`
}

func toUserResponse(user *userdomain.User) userResponse {
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		ProfilePhoto: user.ProfilePhoto,
		Department:   user.Department,
		Bio:          user.Bio,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Users.Create(r.Context(), userdomain.CreateInput{
		Email:        req.Email,
		FullName:     req.FullName,
		ProfilePhoto: req.ProfilePhoto,
		Department:   req.Department,
		Bio:          req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("users.create: email taken", err, "email", req.Email)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.writeUserError(w, "users.create", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(result))
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Users.List(r.Context(), userdomain.ListFilter{
		Search: r.URL.Query().Get("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		h.log.InternalError("users.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	responses := make([]userResponse, 0, len(result))
	for i := range result {
		responses = append(responses, toUserResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	result, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			h.log.BusinessError("users.get: not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.get: get failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, userProfileResponse{
		userResponse:  toUserResponse(&result.User),
		EventsCreated: result.EventsCreated,
		EventsJoined:  result.EventsJoined,
		Friends:       result.Friends,
	})
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Users.Update(r.Context(), userID, userdomain.UpdateInput{
		Email:        req.Email,
		FullName:     req.FullName,
		ProfilePhoto: req.ProfilePhoto,
		Department:   req.Department,
		Bio:          req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrNotFound):
			h.log.BusinessError("users.update: not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("users.update: email taken", err, "user_id", userID)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.writeUserError(w, "users.update", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(result))
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	if err := h.Users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			h.log.BusinessError("users.delete: not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.delete: delete failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeUserError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, userdomain.ErrInvalidInput) {
		h.log.BusinessError(op+": invalid input", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	h.log.InternalError(op+": failed", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
