package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/interface/middleware"
	"github.com/univloop/univloop-api/pkg/response"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	user := middleware.CurrentUser(c)
	notifications, err := h.Svc.List(c.Request.Context(), user.ID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, notifications, "notifications", nil)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.Svc.MarkRead(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"read": true}, "notification read", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.Svc.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "notification deleted", nil)
}
