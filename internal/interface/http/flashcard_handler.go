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

type FlashcardHandler struct {
	Svc        *application.FlashcardService
	Engagement *application.EngagementService
	Logger     *logrus.Logger
}

func NewFlashcardHandler(svc *application.FlashcardService, engagement *application.EngagementService, logger *logrus.Logger) *FlashcardHandler {
	return &FlashcardHandler{Svc: svc, Engagement: engagement, Logger: logger}
}

type flashcardItemRequest struct {
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

type createFlashcardRequest struct {
	Title     string                 `json:"title" binding:"required,min=3,max=200"`
	SubjectID string                 `json:"subject_id" binding:"required"`
	Cards     []flashcardItemRequest `json:"cards" binding:"required,min=1,dive"`
}

func (h *FlashcardHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	sets, err := h.Svc.List(c.Request.Context(), c.Query("subject_id"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sets, "flashcards", nil)
}

// Get returns one flashcard set and counts the view.
func (h *FlashcardHandler) Get(c *gin.Context) {
	fc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if views, err := h.Engagement.ViewFlashcard(c.Request.Context(), fc.ID); err == nil {
		fc.Views = views
	}
	response.Success(c, http.StatusOK, fc, "flashcard set", nil)
}

func (h *FlashcardHandler) Create(c *gin.Context) {
	var req createFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cards := make([]application.FlashcardItemInput, 0, len(req.Cards))
	for _, item := range req.Cards {
		cards = append(cards, application.FlashcardItemInput{Front: item.Front, Back: item.Back})
	}

	fc, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateFlashcardInput{
		Title:     req.Title,
		SubjectID: req.SubjectID,
		Cards:     cards,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, fc, "flashcard set created", nil)
}
