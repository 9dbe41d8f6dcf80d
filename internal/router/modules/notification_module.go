package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// NotificationModule wires the per-user notification feed. Every route
// requires an identity; each user only ever sees their own rows.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Auth    *application.AuthService
}

func NewNotificationModule(h *handlers.NotificationHandler, auth *application.AuthService) *NotificationModule {
	return &NotificationModule{Handler: h, Auth: auth}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.GET("/notifications", m.Handler.List)
		auth.PUT("/notifications/:id/read", m.Handler.MarkRead)
		auth.DELETE("/notifications/:id", m.Handler.Delete)
	}
}
