package repository

import (
	"context"
	"time"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

// DiscussionFilter narrows a discussion list scan. The attribute fields match
// the author snapshot columns, not live profiles.
type DiscussionFilter struct {
	SubjectID  string
	GroupType  string
	Department string
	Faculty    string
	Year       string
	Search     string
	Limit      int
}

// DiscussionRepository defines discussion store operations. AppendComment and
// IncrementViews must execute as single atomic statements; a comment append
// is never a read-modify-write of the whole list.
type DiscussionRepository interface {
	Create(ctx context.Context, d *entity.Discussion) error
	GetByID(ctx context.Context, id string) (*entity.Discussion, error)
	List(ctx context.Context, f DiscussionFilter) ([]entity.Discussion, error)
	Update(ctx context.Context, d *entity.Discussion) error
	Delete(ctx context.Context, id string) error
	AppendComment(ctx context.Context, id string, c entity.Comment, updatedAt time.Time) error
	IncrementViews(ctx context.Context, id string) (int, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	// CountCommentsByAuthor counts embedded comments authored by the user
	// across all discussions.
	CountCommentsByAuthor(ctx context.Context, authorID string) (int, error)
	Count(ctx context.Context) (int, error)
}
