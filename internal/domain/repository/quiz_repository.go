package repository

import (
	"context"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

// QuizRepository defines quiz store operations.
type QuizRepository interface {
	Create(ctx context.Context, q *entity.Quiz) error
	GetByID(ctx context.Context, id string) (*entity.Quiz, error)
	List(ctx context.Context, subjectID string, limit int) ([]entity.Quiz, error)
	// IncrementAttempts bumps the attempts counter by one and returns the
	// post-increment value.
	IncrementAttempts(ctx context.Context, id string) (int, error)
	Count(ctx context.Context) (int, error)
}

// FlashcardRepository defines flashcard store operations.
type FlashcardRepository interface {
	Create(ctx context.Context, f *entity.Flashcard) error
	GetByID(ctx context.Context, id string) (*entity.Flashcard, error)
	List(ctx context.Context, subjectID string, limit int) ([]entity.Flashcard, error)
	IncrementViews(ctx context.Context, id string) (int, error)
	Count(ctx context.Context) (int, error)
}
