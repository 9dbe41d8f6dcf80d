package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// UserModule wires profile routes.
// Public: GET /api/users/:id
// Protected: PUT /api/profile, POST /api/profile/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    *application.AuthService
}

func NewUserModule(h *handlers.UserHandler, auth *application.AuthService) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/:id", m.Handler.GetProfile)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
