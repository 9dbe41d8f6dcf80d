package repository

import (
	"context"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

// ResourceFilter narrows a resource list scan. Search matches title or
// description case-insensitively.
type ResourceFilter struct {
	SubjectID string
	AuthorID  string
	Search    string
	Limit     int
}

// ResourceRepository defines resource store operations. ToggleLike and
// IncrementViews must execute as single atomic statements so concurrent
// callers against the same row never race.
type ResourceRepository interface {
	Create(ctx context.Context, r *entity.Resource) error
	GetByID(ctx context.Context, id string) (*entity.Resource, error)
	List(ctx context.Context, f ResourceFilter) ([]entity.Resource, error)
	Update(ctx context.Context, r *entity.Resource) error
	Delete(ctx context.Context, id string) error
	// ToggleLike flips userID's membership in liked_by and adjusts the
	// likes counter in the same conditional statement. It returns the
	// post-toggle membership.
	ToggleLike(ctx context.Context, id, userID string) (liked bool, err error)
	// IncrementViews bumps the view counter by one and returns the
	// post-increment value.
	IncrementViews(ctx context.Context, id string) (int, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	Count(ctx context.Context) (int, error)
}
