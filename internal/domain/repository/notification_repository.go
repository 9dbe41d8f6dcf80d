package repository

import (
	"context"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

// NotificationRepository defines notification store operations. MarkRead and
// Delete are scoped to the recipient: a mismatched user id behaves like a
// missing row.
type NotificationRepository interface {
	// CreateBatch inserts the whole batch in one round trip and returns
	// the number of rows actually inserted. Rows inserted before a
	// failing statement are not rolled back.
	CreateBatch(ctx context.Context, ns []entity.Notification) (int, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}
