package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

// QuizBankHandler manages the durable question banks that quiz rooms are
// bound to. Rooms themselves are in-memory; the banks live in Postgres.
type QuizBankHandler struct {
	bank *services.QuestionBankService
}

func NewQuizBankHandler(bank *services.QuestionBankService) *QuizBankHandler {
	return &QuizBankHandler{bank: bank}
}

type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

type AddQuestionRequest struct {
	Text      string                 `json:"text" binding:"required"`
	Points    int                    `json:"points" binding:"required,min=1"`
	TimeLimit int                    `json:"time_limit" binding:"required,min=5"`
	Options   []services.OptionInput `json:"options" binding:"required,min=2,dive"`
}

// CreateQuiz godoc
// @Summary      Create a question bank
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body CreateQuizRequest true "Quiz details"
// @Success      201 {object} models.Quiz
// @Security     BearerAuth
// @Router       /api/v1/quizzes [post]
func (h *QuizBankHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.bank.CreateQuiz(c.GetString("user_id"), req.Title, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzes godoc
// @Summary      List the caller's question banks
// @Tags         quizzes
// @Produce      json
// @Success      200 {array} models.Quiz
// @Security     BearerAuth
// @Router       /api/v1/quizzes [get]
func (h *QuizBankHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.bank.ListQuizzes(c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary      Get a question bank with its questions
// @Tags         quizzes
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} models.Quiz
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quizzes/{id} [get]
func (h *QuizBankHandler) GetQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	quiz, err := h.bank.GetQuiz(uint(quizID))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// AddQuestion godoc
// @Summary      Append a question to a bank
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body AddQuestionRequest true "Question"
// @Success      201 {object} models.Question
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/quizzes/{id}/questions [post]
func (h *QuizBankHandler) AddQuestion(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.bank.AddQuestion(uint(quizID), c.GetString("user_id"), req.Text, req.Points, req.TimeLimit, req.Options)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}
