package handler

import (
	"errors"
	"net/http"
	"time"

	friendshipdomain "campus-events-go/internal/domain/friendship"
	"github.com/go-chi/chi/v5"
)

type createFriendshipRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

type respondFriendshipRequest struct {
	// UserID identifies the caller; when present it must match the request
	// recipient.
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

type friendshipResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toFriendshipResponse(friendship *friendshipdomain.Friendship) friendshipResponse {
	return friendshipResponse{
		ID:        friendship.ID,
		UserID:    friendship.UserID,
		FriendID:  friendship.FriendID,
		Status:    friendship.Status,
		CreatedAt: friendship.CreatedAt,
	}
}

func (h *Handlers) CreateFriendship(w http.ResponseWriter, r *http.Request) {
	var req createFriendshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == "" || req.FriendID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id and friend_id are required")
		return
	}

	result, err := h.Friendships.Create(r.Context(), req.UserID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, friendshipdomain.ErrSelfFriendship):
			h.log.BusinessError("friendships.create: self request", err, "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, "invalid_request", "cannot send a friend request to yourself")
		case errors.Is(err, friendshipdomain.ErrUserNotFound):
			h.log.BusinessError("friendships.create: user not found", err, "user_id", req.UserID, "friend_id", req.FriendID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, friendshipdomain.ErrAlreadyExists):
			h.log.BusinessError("friendships.create: already exists", err, "user_id", req.UserID, "friend_id", req.FriendID)
			writeError(w, http.StatusConflict, "friendship_exists", "friendship already exists")
		default:
			h.log.InternalError("friendships.create: create failed", err, "user_id", req.UserID, "friend_id", req.FriendID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toFriendshipResponse(result))
}

func (h *Handlers) RespondFriendship(w http.ResponseWriter, r *http.Request) {
	friendshipID := chi.URLParam(r, "friendship_id")

	var req respondFriendshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Friendships.Respond(r.Context(), friendshipID, req.UserID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, friendshipdomain.ErrInvalidStatus):
			h.log.BusinessError("friendships.respond: invalid status", err, "friendship_id", friendshipID, "status", req.Status)
			writeError(w, http.StatusBadRequest, "invalid_request", "status must be accepted or rejected")
		case errors.Is(err, friendshipdomain.ErrNotFound):
			h.log.BusinessError("friendships.respond: not found", err, "friendship_id", friendshipID)
			writeError(w, http.StatusNotFound, "friendship_not_found", "friendship not found")
		case errors.Is(err, friendshipdomain.ErrNotRecipient):
			h.log.BusinessError("friendships.respond: not recipient", err, "friendship_id", friendshipID, "user_id", req.UserID)
			writeError(w, http.StatusForbidden, "not_recipient", "only the recipient can respond")
		case errors.Is(err, friendshipdomain.ErrInvalidTransition):
			h.log.BusinessError("friendships.respond: not pending", err, "friendship_id", friendshipID)
			writeError(w, http.StatusConflict, "invalid_transition", "friendship is not pending")
		default:
			h.log.InternalError("friendships.respond: respond failed", err, "friendship_id", friendshipID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toFriendshipResponse(result))
}

func (h *Handlers) DeleteFriendship(w http.ResponseWriter, r *http.Request) {
	friendshipID := chi.URLParam(r, "friendship_id")

	if err := h.Friendships.Delete(r.Context(), friendshipID); err != nil {
		if errors.Is(err, friendshipdomain.ErrNotFound) {
			h.log.BusinessError("friendships.delete: not found", err, "friendship_id", friendshipID)
			writeError(w, http.StatusNotFound, "friendship_not_found", "friendship not found")
			return
		}
		h.log.InternalError("friendships.delete: delete failed", err, "friendship_id", friendshipID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListUserFriendships(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	status := r.URL.Query().Get("status")

	result, err := h.Friendships.ListByUser(r.Context(), userID, status)
	if err != nil {
		switch {
		case errors.Is(err, friendshipdomain.ErrInvalidStatus):
			h.log.BusinessError("friendships.list: invalid status", err, "user_id", userID, "status", status)
			writeError(w, http.StatusBadRequest, "invalid_request", "unknown status filter")
		case errors.Is(err, friendshipdomain.ErrUserNotFound):
			h.log.BusinessError("friendships.list: user not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("friendships.list: list failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	responses := make([]friendshipResponse, 0, len(result))
	for i := range result {
		responses = append(responses, toFriendshipResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}
