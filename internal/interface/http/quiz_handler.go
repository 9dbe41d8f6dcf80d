package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/interface/middleware"
	"github.com/univloop/univloop-api/pkg/response"
	"github.com/univloop/univloop-api/pkg/validation"
)

type QuizHandler struct {
	Svc        *application.QuizService
	Engagement *application.EngagementService
	Logger     *logrus.Logger
}

func NewQuizHandler(svc *application.QuizService, engagement *application.EngagementService, logger *logrus.Logger) *QuizHandler {
	return &QuizHandler{Svc: svc, Engagement: engagement, Logger: logger}
}

type quizQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer int      `json:"correct_answer" binding:"gte=0"`
	Explanation   string   `json:"explanation"`
}

type createQuizRequest struct {
	Title      string                `json:"title" binding:"required,min=3,max=200"`
	SubjectID  string                `json:"subject_id" binding:"required"`
	Questions  []quizQuestionRequest `json:"questions" binding:"required,min=1,dive"`
	Duration   int                   `json:"duration" binding:"gte=0"`
	Difficulty string                `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

func (h *QuizHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	quizzes, err := h.Svc.List(c.Request.Context(), c.Query("subject_id"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, quizzes, "quizzes", nil)
}

func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, quiz, "quiz", nil)
}

func (h *QuizHandler) Create(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	questions := make([]application.QuizQuestionInput, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, application.QuizQuestionInput{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	quiz, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateQuizInput{
		Title:      req.Title,
		SubjectID:  req.SubjectID,
		Questions:  questions,
		Duration:   req.Duration,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, quiz, "quiz created", nil)
}

// Attempt records one quiz attempt and returns the running total.
func (h *QuizHandler) Attempt(c *gin.Context) {
	attempts, err := h.Engagement.RecordQuizAttempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempts": attempts}, "attempt recorded", nil)
}
