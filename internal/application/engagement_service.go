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

// EngagementService performs like, view, comment and attempt mutations.
// Every mutation is a single atomic statement in the repository; concurrent
// callers interleave without losing updates.
type EngagementService struct {
	Resources   repository.ResourceRepository
	Discussions repository.DiscussionRepository
	Quizzes     repository.QuizRepository
	Flashcards  repository.FlashcardRepository
	Notifier    *Notifier
	Logger      *logrus.Logger
}

func NewEngagementService(
	resources repository.ResourceRepository,
	discussions repository.DiscussionRepository,
	quizzes repository.QuizRepository,
	flashcards repository.FlashcardRepository,
	notifier *Notifier,
	logger *logrus.Logger,
) *EngagementService {
	return &EngagementService{
		Resources:   resources,
		Discussions: discussions,
		Quizzes:     quizzes,
		Flashcards:  flashcards,
		Notifier:    notifier,
		Logger:      logger,
	}
}

// LikeResult reports the outcome of a like toggle. Likes is projected from
// the state read just before the toggle, so under concurrent toggles it is a
// point-in-time estimate; the stored counter stays exact.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike flips the actor's membership in a resource's liker set and
// adjusts the counter in the same statement. Liking someone else's resource
// notifies its author; unliking and self-liking notify nobody.
func (s *EngagementService) ToggleLike(ctx context.Context, actor *entity.User, resourceID string) (*LikeResult, error) {
	res, err := s.Resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, err := s.Resources.ToggleLike(ctx, resourceID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	likes := res.Likes
	if liked {
		likes++
		s.Notifier.Notify(ctx, Event{
			Type:            entity.NotifLike,
			Actor:           actor,
			Title:           res.Title,
			ContentAuthorID: res.AuthorID,
		})
	} else if likes > 0 {
		likes--
	}

	return &LikeResult{Liked: liked, Likes: likes}, nil
}

// ViewResource bumps a resource's view counter and returns the new value.
// Views are anonymous and unconditional; repeat views count.
func (s *EngagementService) ViewResource(ctx context.Context, resourceID string) (int, error) {
	views, err := s.Resources.IncrementViews(ctx, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return views, nil
}

// ViewDiscussion bumps a discussion's view counter and returns the new value.
func (s *EngagementService) ViewDiscussion(ctx context.Context, discussionID string) (int, error) {
	views, err := s.Discussions.IncrementViews(ctx, discussionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return views, nil
}

// ViewFlashcard bumps a flashcard set's view counter.
func (s *EngagementService) ViewFlashcard(ctx context.Context, flashcardID string) (int, error) {
	views, err := s.Flashcards.IncrementViews(ctx, flashcardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return views, nil
}

// RecordQuizAttempt bumps a quiz's attempt counter.
func (s *EngagementService) RecordQuizAttempt(ctx context.Context, quizID string) (int, error) {
	attempts, err := s.Quizzes.IncrementAttempts(ctx, quizID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return attempts, nil
}

// AddComment appends a comment to a discussion atomically. Commenting on
// someone else's discussion notifies its author.
func (s *EngagementService) AddComment(ctx context.Context, actor *entity.User, discussionID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("comment content is empty")
	}

	disc, err := s.Discussions.GetByID(ctx, discussionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	comment := entity.Comment{
		ID:           uuid.NewString(),
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		AuthorAvatar: actor.Avatar,
		Content:      content,
		CreatedAt:    now,
	}
	if err := s.Discussions.AppendComment(ctx, discussionID, comment, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Notifier.Notify(ctx, Event{
		Type:            entity.NotifComment,
		Actor:           actor,
		Title:           disc.Title,
		ContentAuthorID: disc.AuthorID,
	})

	return &comment, nil
}
