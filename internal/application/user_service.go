package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/pkg/helpers"
)

// UserService serves profiles and profile edits.
type UserService struct {
	Users       repository.UserRepository
	Resources   repository.ResourceRepository
	Discussions repository.DiscussionRepository
	Logger      *logrus.Logger

	GCS       *storage.Client
	GCSBucket string
}

type UpdateProfileInput struct {
	Name        string
	Department  string
	Faculty     string
	YearOfStudy string
	Bio         string
}

// GetProfile returns a user's public projection with contribution counters.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resources, err := s.Resources.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	discussions, err := s.Discussions.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.Discussions.CountCommentsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.Profile{
		User:             *u,
		ResourcesCount:   resources,
		DiscussionsCount: discussions,
		CommentsCount:    comments,
	}, nil
}

// UpdateProfile applies the actor's own profile edits. Changing an audience
// attribute affects future fan-out only; stored snapshots keep the old value.
func (s *UserService) UpdateProfile(ctx context.Context, actor *entity.User, in UpdateProfileInput) (*entity.User, error) {
	if in.Name != "" {
		actor.Name = in.Name
	}
	actor.Department = in.Department
	actor.Faculty = in.Faculty
	actor.YearOfStudy = in.YearOfStudy
	actor.Bio = in.Bio
	actor.UpdatedAt = time.Now().UTC()

	if err := s.Users.Update(ctx, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return actor, nil
}

// UploadAvatar stores the image in the bucket and saves its public URL on the
// actor's profile.
func (s *UserService) UploadAvatar(ctx context.Context, actor *entity.User, filename, contentType string, r io.Reader) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage is not configured")
	}

	objectPath := fmt.Sprintf("avatars/%s/%s%s", actor.ID, uuid.NewString(), path.Ext(filename))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	actor.Avatar = url
	actor.UpdatedAt = time.Now().UTC()
	if err := s.Users.Update(ctx, actor); err != nil {
		return "", err
	}
	return url, nil
}
