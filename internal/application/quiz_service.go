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

type QuizService struct {
	Quizzes  repository.QuizRepository
	Subjects repository.SubjectRepository
	Notifier *Notifier
	Logger   *logrus.Logger
}

type QuizQuestionInput struct {
	Question      string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

type CreateQuizInput struct {
	Title      string
	SubjectID  string
	Questions  []QuizQuestionInput
	Duration   int
	Difficulty string
}

// Create stores a quiz and broadcasts a creation notification.
func (s *QuizService) Create(ctx context.Context, actor *entity.User, in CreateQuizInput) (*entity.Quiz, error) {
	subj, err := s.Subjects.GetByID(ctx, in.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	questions := make([]entity.QuizQuestion, 0, len(in.Questions))
	for _, q := range in.Questions {
		if q.CorrectAnswer >= len(q.Options) {
			return nil, errors.New("correct_answer index out of range")
		}
		questions = append(questions, entity.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	now := time.Now().UTC()
	quiz := &entity.Quiz{
		ID:          uuid.NewString(),
		Title:       in.Title,
		SubjectID:   in.SubjectID,
		SubjectName: subj.Name,
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		Questions:   questions,
		Duration:    in.Duration,
		Difficulty:  in.Difficulty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, Event{Type: entity.NotifQuiz, Actor: actor, Title: quiz.Title})
	return quiz, nil
}

func (s *QuizService) Get(ctx context.Context, id string) (*entity.Quiz, error) {
	quiz, err := s.Quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) List(ctx context.Context, subjectID string, limit int) ([]entity.Quiz, error) {
	return s.Quizzes.List(ctx, subjectID, repository.ClampLimit(limit))
}
