package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

type QuizHandler struct {
	quiz *services.QuizService
}

func NewQuizHandler(quiz *services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

type CreateQuizRoomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	QuizID      uint   `json:"quiz_id" binding:"required"`
}

type SubmitAnswerRequest struct {
	QuestionIndex *int   `json:"question_index" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
}

// CreateRoom godoc
// @Summary      Create a quiz room bound to a question bank
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body CreateQuizRoomRequest true "Room details"
// @Success      201 {object} object
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms [post]
func (h *QuizHandler) CreateRoom(c *gin.Context) {
	var req CreateQuizRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snap, err := h.quiz.CreateRoom(c.GetString("user_id"), c.GetString("display_name"), req.Name, req.Description, req.QuizID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// ListRooms godoc
// @Summary      List the caller's quiz rooms
// @Tags         quiz
// @Produce      json
// @Success      200 {array} object
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms [get]
func (h *QuizHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.quiz.ListRooms(c.GetString("user_id")))
}

// GetRoom godoc
// @Summary      Get a quiz room snapshot
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id} [get]
func (h *QuizHandler) GetRoom(c *gin.Context) {
	snap, err := h.quiz.GetRoom(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Join godoc
// @Summary      Join a quiz room by PIN
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body JoinRoomRequest true "Room PIN"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/join [post]
func (h *QuizHandler) Join(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snap, err := h.quiz.Join(req.PIN, c.GetString("user_id"), c.GetString("display_name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Leave godoc
// @Summary      Leave a quiz room
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/leave [post]
func (h *QuizHandler) Leave(c *gin.Context) {
	if err := h.quiz.Leave(c.Param("id"), c.GetString("user_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "left room"})
}

// Start godoc
// @Summary      Start the quiz session (host only)
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/start [post]
func (h *QuizHandler) Start(c *gin.Context) {
	snap, err := h.quiz.Start(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Finish godoc
// @Summary      Finish the quiz session (host only)
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/finish [post]
func (h *QuizHandler) Finish(c *gin.Context) {
	snap, err := h.quiz.Finish(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Reset godoc
// @Summary      Reset scores and return the room to waiting (host only)
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/reset [post]
func (h *QuizHandler) Reset(c *gin.Context) {
	snap, err := h.quiz.Reset(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// StartQuestion godoc
// @Summary      Open a question for answers (host only)
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        index path int true "Question index"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/questions/{index}/start [post]
func (h *QuizHandler) StartQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question index"})
		return
	}

	snap, err := h.quiz.StartQuestion(c.Param("id"), c.GetString("user_id"), index)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// EndQuestion godoc
// @Summary      Close a question (host only)
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        index path int true "Question index"
// @Success      200 {object} object
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/questions/{index}/end [post]
func (h *QuizHandler) EndQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question index"})
		return
	}

	snap, err := h.quiz.EndQuestion(c.Param("id"), c.GetString("user_id"), index)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitAnswer godoc
// @Summary      Submit an answer for the open question
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body SubmitAnswerRequest true "Answer"
// @Success      200 {object} services.AnswerResult
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/answer [post]
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.quiz.SubmitAnswer(c.Param("id"), c.GetString("user_id"), *req.QuestionIndex, req.Answer)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Leaderboard godoc
// @Summary      Ranked standings for a quiz room
// @Tags         quiz
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {array} object
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quiz/rooms/{id}/leaderboard [get]
func (h *QuizHandler) Leaderboard(c *gin.Context) {
	entries, err := h.quiz.Leaderboard(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
