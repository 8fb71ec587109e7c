package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

type BuzzerHandler struct {
	buzzer *services.BuzzerService
}

func NewBuzzerHandler(buzzer *services.BuzzerService) *BuzzerHandler {
	return &BuzzerHandler{buzzer: buzzer}
}

type CreateBuzzerRoomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type JoinRoomRequest struct {
	PIN string `json:"pin" binding:"required,len=6,numeric"`
}

// CreateRoom godoc
// @Summary      Create a buzzer room
// @Tags         buzzer
// @Accept       json
// @Produce      json
// @Param        request body CreateBuzzerRoomRequest true "Room details"
// @Success      201 {object} object
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms [post]
func (h *BuzzerHandler) CreateRoom(c *gin.Context) {
	var req CreateBuzzerRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snap, err := h.buzzer.CreateRoom(c.GetString("user_id"), c.GetString("display_name"), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// ListRooms godoc
// @Summary      List the caller's buzzer rooms
// @Tags         buzzer
// @Produce      json
// @Success      200 {array} object
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms [get]
func (h *BuzzerHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.buzzer.ListRooms(c.GetString("user_id")))
}

// GetRoom godoc
// @Summary      Get a buzzer room snapshot
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id} [get]
func (h *BuzzerHandler) GetRoom(c *gin.Context) {
	snap, err := h.buzzer.GetRoom(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Join godoc
// @Summary      Join a buzzer room by PIN
// @Tags         buzzer
// @Accept       json
// @Produce      json
// @Param        request body JoinRoomRequest true "Room PIN"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/join [post]
func (h *BuzzerHandler) Join(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snap, err := h.buzzer.Join(req.PIN, c.GetString("user_id"), c.GetString("display_name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Leave godoc
// @Summary      Leave a buzzer room
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id}/leave [post]
func (h *BuzzerHandler) Leave(c *gin.Context) {
	if err := h.buzzer.Leave(c.Param("id"), c.GetString("user_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "left room"})
}

// Start godoc
// @Summary      Start the round (host only)
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id}/start [post]
func (h *BuzzerHandler) Start(c *gin.Context) {
	snap, err := h.buzzer.Start(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Stop godoc
// @Summary      End the round (host only)
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id}/stop [post]
func (h *BuzzerHandler) Stop(c *gin.Context) {
	snap, err := h.buzzer.Stop(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Reset godoc
// @Summary      Clear all buzzes and return to waiting (host only)
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id}/reset [post]
func (h *BuzzerHandler) Reset(c *gin.Context) {
	snap, err := h.buzzer.Reset(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type BuzzResponse struct {
	Order int `json:"order"`
}

// Buzz godoc
// @Summary      Press the buzzer
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} BuzzResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id}/buzz [post]
func (h *BuzzerHandler) Buzz(c *gin.Context) {
	order, err := h.buzzer.Buzz(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, BuzzResponse{Order: order})
}

// DeleteRoom godoc
// @Summary      Delete a buzzer room (host only)
// @Tags         buzzer
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/buzzer/rooms/{id} [delete]
func (h *BuzzerHandler) DeleteRoom(c *gin.Context) {
	if err := h.buzzer.DeleteRoom(c.Param("id"), c.GetString("user_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room deleted"})
}
