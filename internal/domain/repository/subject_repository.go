package repository

import (
	"context"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

// SubjectRepository defines subject taxonomy store operations.
type SubjectRepository interface {
	Create(ctx context.Context, s *entity.Subject) error
	GetByID(ctx context.Context, id string) (*entity.Subject, error)
	GetByName(ctx context.Context, name string) (*entity.Subject, error)
	List(ctx context.Context) ([]entity.Subject, error)
	Count(ctx context.Context) (int, error)
}
