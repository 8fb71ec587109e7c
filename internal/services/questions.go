package services

import (
	"github.com/MontaQLabs/PolkArena-sub001/internal/models"

	"gorm.io/gorm"
)

// QuestionSource is what the quiz room engine needs from the durable
// question banks: content by quiz id and zero-based question index.
type QuestionSource interface {
	GetQuiz(quizID uint) (*models.Quiz, error)
	GetQuestion(quizID uint, index int) (*models.Question, error)
}

// QuestionBankService is the gorm-backed QuestionSource plus the minimal
// host-facing management operations for the banks themselves.
type QuestionBankService struct {
	db *gorm.DB
}

func NewQuestionBankService(db *gorm.DB) *QuestionBankService {
	return &QuestionBankService{db: db}
}

func (s *QuestionBankService) CreateQuiz(ownerID, title, description string) (*models.Quiz, error) {
	quiz := models.Quiz{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

type OptionInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

func (s *QuestionBankService) AddQuestion(quizID uint, ownerID, text string, points, timeLimit int, options []OptionInput) (*models.Question, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND owner_id = ?", quizID, ownerID).First(&quiz).Error; err != nil {
		return nil, ErrQuizNotFound
	}

	var count int64
	s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&count)

	question := models.Question{
		QuizID:    quizID,
		Text:      text,
		OrderNum:  int(count),
		Points:    points,
		TimeLimit: timeLimit,
	}
	for _, o := range options {
		question.Options = append(question.Options, models.Option{
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
		})
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionBankService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).Preload("Questions.Options").First(&quiz, quizID).Error; err != nil {
		return nil, ErrQuizNotFound
	}
	return &quiz, nil
}

func (s *QuestionBankService) GetQuestion(quizID uint, index int) (*models.Question, error) {
	var question models.Question
	if err := s.db.Where("quiz_id = ? AND order_num = ?", quizID, index).
		Preload("Options").First(&question).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	return &question, nil
}

func (s *QuestionBankService) ListQuizzes(ownerID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}
