package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

type SubjectService struct {
	Subjects repository.SubjectRepository
	Logger   *logrus.Logger
}

type CreateSubjectInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
}

// Create adds a custom subject. Names are unique case-insensitively.
func (s *SubjectService) Create(ctx context.Context, actor *entity.User, in CreateSubjectInput) (*entity.Subject, error) {
	name := strings.TrimSpace(in.Name)
	if existing, err := s.Subjects.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrSubjectExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = "#6B7280"
	}
	subj := &entity.Subject{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       color,
		IsCustom:    true,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Subjects.Create(ctx, subj); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSubjectExists
		}
		return nil, err
	}
	return subj, nil
}

func (s *SubjectService) Get(ctx context.Context, id string) (*entity.Subject, error) {
	subj, err := s.Subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subj, nil
}

func (s *SubjectService) List(ctx context.Context) ([]entity.Subject, error) {
	return s.Subjects.List(ctx)
}
