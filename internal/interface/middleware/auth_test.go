package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/pkg/helpers"
)

type stubUserRepo struct {
	user *entity.User
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) Update(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) ListIDsExcept(context.Context, string, repository.AudienceFilter) ([]string, error) {
	return nil, nil
}
func (r *stubUserRepo) Count(context.Context) (int, error) { return 1, nil }

func testAuthService(user *entity.User) (*application.AuthService, *helpers.TokenManager) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	return application.NewAuthService(&stubUserRepo{user: user}, tokens, logger), tokens
}

func performRequest(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := &entity.User{ID: "u1", Name: "Alice"}
	svc, tokens := testAuthService(user)

	r := gin.New()
	r.GET("/ping", RequireAuth(svc), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).ID)
	})

	token, _, err := tokens.Issue("u1")
	require.NoError(t, err)

	t.Run("valid bearer token", func(t *testing.T) {
		w := performRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := performRequest(r, "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := performRequest(r, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for a vanished user", func(t *testing.T) {
		orphan, _, err := tokens.Issue("gone")
		require.NoError(t, err)
		w := performRequest(r, "Bearer "+orphan)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := &entity.User{ID: "u1", Name: "Alice"}
	svc, tokens := testAuthService(user)

	r := gin.New()
	r.GET("/ping", OptionalAuth(svc), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.ID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	token, _, err := tokens.Issue("u1")
	require.NoError(t, err)

	t.Run("authenticated caller is identified", func(t *testing.T) {
		w := performRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})

	t.Run("anonymous caller proceeds", func(t *testing.T) {
		w := performRequest(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("bad token proceeds anonymously", func(t *testing.T) {
		w := performRequest(r, "Bearer garbage")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}
