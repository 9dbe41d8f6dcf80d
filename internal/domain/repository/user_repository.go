package repository

import (
	"context"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

// AudienceFilter narrows an audience scan to users sharing one profile
// attribute. At most one field is set; the zero value means no constraint.
type AudienceFilter struct {
	Department  string
	Faculty     string
	YearOfStudy string
}

// IsZero reports whether the filter carries no constraint.
func (f AudienceFilter) IsZero() bool {
	return f.Department == "" && f.Faculty == "" && f.YearOfStudy == ""
}

// UserRepository defines user store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// ListIDsExcept returns the ids of every user except the given one,
	// optionally constrained by an audience filter. Used by fan-out.
	ListIDsExcept(ctx context.Context, exceptID string, f AudienceFilter) ([]string, error)
	Count(ctx context.Context) (int, error)
}
