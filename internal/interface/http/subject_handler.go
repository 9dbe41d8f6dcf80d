package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/interface/middleware"
	"github.com/univloop/univloop-api/pkg/response"
	"github.com/univloop/univloop-api/pkg/validation"
)

type SubjectHandler struct {
	Svc    *application.SubjectService
	Logger *logrus.Logger
}

func NewSubjectHandler(svc *application.SubjectService, logger *logrus.Logger) *SubjectHandler {
	return &SubjectHandler{Svc: svc, Logger: logger}
}

type createSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Icon        string `json:"icon" binding:"max=50"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}

func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subjects, "subjects", nil)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	subj, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subj, "subject", nil)
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	subj, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateSubjectInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, subj, "subject created", nil)
}
