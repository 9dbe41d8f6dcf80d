package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/pkg/helpers"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(users, helpers.NewTokenManager("test-secret", time.Hour), testLogger())
}

// blindLookupUserRepo misses on the pre-insert email lookup, so the insert
// itself hits the uniqueness constraint. Models two registrations racing
// past each other's existence check.
type blindLookupUserRepo struct{ *fakeUserRepo }

func (r *blindLookupUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	token, user, err := svc.Register(ctx, RegisterInput{
		Name:       "Alice",
		Email:      "alice@example.com",
		Password:   "secret123",
		Department: "Informatique",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "alice@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("registration losing an insert race is still rejected as taken", func(t *testing.T) {
		racing := NewAuthService(&blindLookupUserRepo{users}, helpers.NewTokenManager("test-secret", time.Hour), testLogger())
		_, _, err := racing.Register(ctx, RegisterInput{Name: "Mallory", Email: "alice@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login with correct password", func(t *testing.T) {
		token, u, err := svc.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, u.ID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, err1 := svc.Login(ctx, "alice@example.com", "wrongpass")
		_, _, err2 := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err1, ErrInvalidCredentials)
		assert.ErrorIs(t, err2, ErrInvalidCredentials)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	token, user, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid token resolves the user", func(t *testing.T) {
		resolved, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("empty credential", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("valid token for a vanished user", func(t *testing.T) {
		orphaned := newAuthService(users)
		tok, _, err := orphaned.Tokens.Issue("ghost-id")
		require.NoError(t, err)
		_, err = orphaned.Resolve(ctx, tok)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("optional resolution swallows failures", func(t *testing.T) {
		assert.Nil(t, svc.ResolveOptional(ctx, ""))
		assert.Nil(t, svc.ResolveOptional(ctx, "garbage"))
		assert.NotNil(t, svc.ResolveOptional(ctx, token))
	})
}
