package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// ResourceModule wires resource routes. Reads are public; writes and likes
// require an identity.
type ResourceModule struct {
	Handler *handlers.ResourceHandler
	Auth    *application.AuthService
}

func NewResourceModule(h *handlers.ResourceHandler, auth *application.AuthService) *ResourceModule {
	return &ResourceModule{Handler: h, Auth: auth}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	rg.GET("/resources", m.Handler.List)
	rg.GET("/resources/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.POST("/resources", m.Handler.Create)
		auth.PUT("/resources/:id", m.Handler.Update)
		auth.DELETE("/resources/:id", m.Handler.Delete)
		auth.POST("/resources/:id/like", m.Handler.ToggleLike)
	}
}
