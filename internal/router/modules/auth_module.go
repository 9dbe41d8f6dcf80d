package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// AuthModule wires registration, login and identity routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
