package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// SubjectModule wires the subject taxonomy routes.
// Public: GET /api/subjects, GET /api/subjects/:id
// Protected: POST /api/subjects
type SubjectModule struct {
	Handler *handlers.SubjectHandler
	Auth    *application.AuthService
}

func NewSubjectModule(h *handlers.SubjectHandler, auth *application.AuthService) *SubjectModule {
	return &SubjectModule{Handler: h, Auth: auth}
}

func (m *SubjectModule) Register(rg *gin.RouterGroup) {
	rg.GET("/subjects", m.Handler.List)
	rg.GET("/subjects/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.POST("/subjects", m.Handler.Create)
	}
}
