package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MontaQLabs/PolkArena-sub001/internal/room"
	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// statusFor maps the service error taxonomy onto HTTP statuses: not-found,
// authority violation, state conflict, resource exhaustion, in that order.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, room.ErrParticipantNotFound),
		errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, room.ErrAlreadyJoined),
		errors.Is(err, room.ErrAlreadyActed),
		errors.Is(err, services.ErrRoomNotJoinable),
		errors.Is(err, services.ErrRoomNotActive),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrQuestionNotActive),
		errors.Is(err, services.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, room.ErrPINExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
