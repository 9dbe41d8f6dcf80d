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

const maxAvatarSize = 5 << 20 // 5 MiB

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=100"`
	Department  string `json:"department" binding:"max=100"`
	Faculty     string `json:"faculty" binding:"max=100"`
	YearOfStudy string `json:"year_of_study" binding:"max=20"`
	Bio         string `json:"bio" binding:"max=1000"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), application.UpdateProfileInput{
		Name:        req.Name,
		Department:  req.Department,
		Faculty:     req.Faculty,
		YearOfStudy: req.YearOfStudy,
		Bio:         req.Bio,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "profile updated", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "avatar too large", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), middleware.CurrentUser(c), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), f)
	if err != nil {
		h.Logger.WithError(err).Warn("avatar upload failed")
		response.Error[any](c, http.StatusBadGateway, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar": url}, "avatar uploaded", nil)
}
