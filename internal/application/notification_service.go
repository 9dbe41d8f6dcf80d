package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

// NotificationService serves each user's own notification feed. All
// operations are scoped to the caller; acting on another user's notification
// reads as not found.
type NotificationService struct {
	Notifications repository.NotificationRepository
	Logger        *logrus.Logger
}

func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	return s.Notifications.ListByUser(ctx, userID, repository.ClampLimit(limit))
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.Notifications.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Notifications.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
