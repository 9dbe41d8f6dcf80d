package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/pkg/helpers"
)

// AuthService owns registration, login and identity resolution. Tokens are
// stateless: any valid signature with an unexpired subject claim is
// authoritative, there is no revocation.
type AuthService struct {
	Users  repository.UserRepository
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens *helpers.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Logger: logger}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Department  string
	Faculty     string
	YearOfStudy string
	Bio         string
	Avatar      string
}

// Register creates a user and returns a freshly issued token for them.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *entity.User, error) {
	existing, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	u := &entity.User{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		Department:  in.Department,
		Faculty:     in.Faculty,
		YearOfStudy: in.YearOfStudy,
		Bio:         in.Bio,
		Avatar:      in.Avatar,
		Role:        entity.RoleStudent,
		Reputation:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user registered")
	return token, u, nil
}

// Login verifies the email/password pair and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !helpers.CheckPassword(u.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Resolve turns a raw bearer credential into a full user record.
// An empty credential is ErrUnauthenticated, a rejected token is
// ErrInvalidToken, and a valid token whose subject has vanished from the
// store is ErrUserNotFound.
func (s *AuthService) Resolve(ctx context.Context, credential string) (*entity.User, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}
	subject, err := s.Tokens.Verify(credential)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Users.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ResolveOptional is the tolerant variant used by endpoints that personalize
// for authenticated callers without requiring authentication: every failure
// collapses to nil.
func (s *AuthService) ResolveOptional(ctx context.Context, credential string) *entity.User {
	u, err := s.Resolve(ctx, credential)
	if err != nil {
		return nil
	}
	return u
}
