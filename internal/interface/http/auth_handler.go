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

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Department  string `json:"department" binding:"max=100"`
	Faculty     string `json:"faculty" binding:"max=100"`
	YearOfStudy string `json:"year_of_study" binding:"max=20"`
	Bio         string `json:"bio" binding:"max=1000"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, user, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Department:  req.Department,
		Faculty:     req.Faculty,
		YearOfStudy: req.YearOfStudy,
		Bio:         req.Bio,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"token": token, "user": user}, "registered", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "user": user}, "login successful", nil)
}

// Me returns the caller's own record resolved from the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, user, "me", nil)
}

// Logout is a no-op on the server side. Tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}
