package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/interface/middleware"
)

// StudyModule wires quiz and flashcard routes. Attempts and views are
// anonymous; creation requires an identity.
type StudyModule struct {
	Quizzes    *handlers.QuizHandler
	Flashcards *handlers.FlashcardHandler
	Auth       *application.AuthService
}

func NewStudyModule(q *handlers.QuizHandler, f *handlers.FlashcardHandler, auth *application.AuthService) *StudyModule {
	return &StudyModule{Quizzes: q, Flashcards: f, Auth: auth}
}

func (m *StudyModule) Register(rg *gin.RouterGroup) {
	rg.GET("/quizzes", m.Quizzes.List)
	rg.GET("/quizzes/:id", m.Quizzes.Get)
	rg.POST("/quizzes/:id/attempt", m.Quizzes.Attempt)

	rg.GET("/flashcards", m.Flashcards.List)
	rg.GET("/flashcards/:id", m.Flashcards.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth))
	{
		auth.POST("/quizzes", m.Quizzes.Create)
		auth.POST("/flashcards", m.Flashcards.Create)
	}
}
