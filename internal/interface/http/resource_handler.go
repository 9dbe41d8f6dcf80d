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

type ResourceHandler struct {
	Svc        *application.ResourceService
	Engagement *application.EngagementService
	Logger     *logrus.Logger
}

func NewResourceHandler(svc *application.ResourceService, engagement *application.EngagementService, logger *logrus.Logger) *ResourceHandler {
	return &ResourceHandler{Svc: svc, Engagement: engagement, Logger: logger}
}

type createResourceRequest struct {
	Title        string `json:"title" binding:"required,min=3,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	SubjectID    string `json:"subject_id" binding:"required"`
	Type         string `json:"type" binding:"required,oneof=pdf video image document other"`
	FileURL      string `json:"file_url" binding:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
}

type updateResourceRequest struct {
	Title        string `json:"title" binding:"omitempty,min=3,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
}

func (h *ResourceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resources, err := h.Svc.List(c.Request.Context(), repository.ResourceFilter{
		SubjectID: c.Query("subject_id"),
		AuthorID:  c.Query("author_id"),
		Search:    c.Query("search"),
		Limit:     limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resources, "resources", nil)
}

// Get returns one resource and counts the view.
func (h *ResourceHandler) Get(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if views, err := h.Engagement.ViewResource(c.Request.Context(), res.ID); err == nil {
		res.Views = views
	}
	response.Success(c, http.StatusOK, res, "resource", nil)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateResourceInput{
		Title:        req.Title,
		Description:  req.Description,
		SubjectID:    req.SubjectID,
		Type:         req.Type,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "resource created", nil)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	var req updateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.UpdateResourceInput{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "resource updated", nil)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "resource deleted", nil)
}

// ToggleLike flips the caller's like on a resource.
func (h *ResourceHandler) ToggleLike(c *gin.Context) {
	result, err := h.Engagement.ToggleLike(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "like toggled", nil)
}
