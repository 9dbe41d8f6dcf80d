package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/pkg/helpers"
)

const statsCacheKey = "stats:platform"

// PlatformStats is the public counters snapshot.
type PlatformStats struct {
	Users       int `json:"users"`
	Subjects    int `json:"subjects"`
	Resources   int `json:"resources"`
	Discussions int `json:"discussions"`
	Quizzes     int `json:"quizzes"`
	Flashcards  int `json:"flashcards"`
}

// StatsService aggregates platform counters with a short Redis cache in
// front. Counters may lag by up to the cache TTL.
type StatsService struct {
	Users       repository.UserRepository
	Subjects    repository.SubjectRepository
	Resources   repository.ResourceRepository
	Discussions repository.DiscussionRepository
	Quizzes     repository.QuizRepository
	Flashcards  repository.FlashcardRepository
	Redis       *redis.Client
	CacheTTL    time.Duration
	Logger      *logrus.Logger
}

func (s *StatsService) Get(ctx context.Context) (*PlatformStats, error) {
	if s.Redis != nil {
		var cached PlatformStats
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, statsCacheKey, &cached)
		if err != nil {
			s.Logger.WithError(err).Warn("stats cache read failed")
		} else if ok {
			return &cached, nil
		}
	}

	var stats PlatformStats
	var err error
	if stats.Users, err = s.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Subjects, err = s.Subjects.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Resources, err = s.Resources.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Discussions, err = s.Discussions.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Quizzes, err = s.Quizzes.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Flashcards, err = s.Flashcards.Count(ctx); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, statsCacheKey, stats, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return &stats, nil
}
