package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/pkg/response"
)

// fail maps application errors onto HTTP statuses. Anything unmapped is a 500
// with a generic body so internals never leak.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound), errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, application.ErrSubjectExists):
		response.Error[any](c, http.StatusConflict, "subject already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUnauthenticated), errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
