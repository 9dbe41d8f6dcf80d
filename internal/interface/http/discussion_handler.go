package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/internal/interface/middleware"
	"github.com/univloop/univloop-api/pkg/response"
	"github.com/univloop/univloop-api/pkg/validation"
)

type DiscussionHandler struct {
	Svc        *application.DiscussionService
	Engagement *application.EngagementService
	Logger     *logrus.Logger
}

func NewDiscussionHandler(svc *application.DiscussionService, engagement *application.EngagementService, logger *logrus.Logger) *DiscussionHandler {
	return &DiscussionHandler{Svc: svc, Engagement: engagement, Logger: logger}
}

type createDiscussionRequest struct {
	Title     string `json:"title" binding:"required,min=3,max=200"`
	Content   string `json:"content" binding:"required,max=10000"`
	SubjectID string `json:"subject_id"`
	GroupType string `json:"group_type" binding:"required,oneof=global department faculty year"`
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

func (h *DiscussionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	discussions, err := h.Svc.List(c.Request.Context(), middleware.CurrentUser(c), repository.DiscussionFilter{
		SubjectID: c.Query("subject_id"),
		GroupType: c.Query("group_type"),
		Search:    c.Query("search"),
		Limit:     limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, discussions, "discussions", nil)
}

// Get returns one discussion with its comments and counts the view.
func (h *DiscussionHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if views, err := h.Engagement.ViewDiscussion(c.Request.Context(), d.ID); err == nil {
		d.Views = views
	}
	response.Success(c, http.StatusOK, d, "discussion", nil)
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	var req createDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	d, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateDiscussionInput{
		Title:     req.Title,
		Content:   req.Content,
		SubjectID: req.SubjectID,
		GroupType: req.GroupType,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d, "discussion created", nil)
}

func (h *DiscussionHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Engagement.AddComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment added", nil)
}

func (h *DiscussionHandler) MarkSolved(c *gin.Context) {
	d, err := h.Svc.MarkSolved(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "discussion solved", nil)
}

func (h *DiscussionHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "discussion deleted", nil)
}
