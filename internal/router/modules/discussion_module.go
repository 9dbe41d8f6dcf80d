package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// DiscussionModule wires community routes. The list personalizes group feeds
// for authenticated callers, so it runs behind the tolerant middleware.
type DiscussionModule struct {
	Handler *handlers.DiscussionHandler
	Auth    *application.AuthService
}

func NewDiscussionModule(h *handlers.DiscussionHandler, auth *application.AuthService) *DiscussionModule {
	return &DiscussionModule{Handler: h, Auth: auth}
}

func (m *DiscussionModule) Register(rg *gin.RouterGroup) {
	rg.GET("/discussions", middleware.OptionalAuth(m.Auth), m.Handler.List)
	rg.GET("/discussions/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.POST("/discussions", m.Handler.Create)
		auth.POST("/discussions/:id/comments", m.Handler.AddComment)
		auth.POST("/discussions/:id/solve", m.Handler.MarkSolved)
		auth.DELETE("/discussions/:id", m.Handler.Delete)
	}
}
