package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// CreateBatch inserts notifications one statement at a time, outside any
// transaction. Rows written before a failing insert stay written, so the
// returned count always reflects what actually landed. A pgx.Batch would
// run as one implicit transaction and roll everything back on the first
// failure, which is not the contract here.
func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []entity.Notification) (int, error) {
	for i, n := range ns {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO notifications (id, user_id, type, title, message, link, read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.Read, n.CreatedAt)
		if err != nil {
			return i, fmt.Errorf("insert %d/%d notifications: %w", i, len(ns), err)
		}
	}
	return len(ns), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, title, message, link, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, repository.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM notifications WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
