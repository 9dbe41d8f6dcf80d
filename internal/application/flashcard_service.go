package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

type FlashcardService struct {
	Flashcards repository.FlashcardRepository
	Subjects   repository.SubjectRepository
	Notifier   *Notifier
	Logger     *logrus.Logger
}

type FlashcardItemInput struct {
	Front string
	Back  string
}

type CreateFlashcardInput struct {
	Title     string
	SubjectID string
	Cards     []FlashcardItemInput
}

// Create stores a flashcard set and broadcasts a creation notification.
func (s *FlashcardService) Create(ctx context.Context, actor *entity.User, in CreateFlashcardInput) (*entity.Flashcard, error) {
	subj, err := s.Subjects.GetByID(ctx, in.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cards := make([]entity.FlashcardItem, 0, len(in.Cards))
	for _, c := range in.Cards {
		cards = append(cards, entity.FlashcardItem{Front: c.Front, Back: c.Back})
	}

	now := time.Now().UTC()
	fc := &entity.Flashcard{
		ID:          uuid.NewString(),
		Title:       in.Title,
		SubjectID:   in.SubjectID,
		SubjectName: subj.Name,
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		Cards:       cards,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Flashcards.Create(ctx, fc); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, Event{Type: entity.NotifFlashcard, Actor: actor, Title: fc.Title})
	return fc, nil
}

func (s *FlashcardService) Get(ctx context.Context, id string) (*entity.Flashcard, error) {
	fc, err := s.Flashcards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fc, nil
}

func (s *FlashcardService) List(ctx context.Context, subjectID string, limit int) ([]entity.Flashcard, error) {
	return s.Flashcards.List(ctx, subjectID, repository.ClampLimit(limit))
}
