package router

import (
	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/container"
	pginfra "github.com/univloop/univloop-api/internal/infrastructure/postgres"
	handlers "github.com/univloop/univloop-api/internal/interface/http"
	"github.com/univloop/univloop-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	subjects := pginfra.NewSubjectRepository(pool)
	resources := pginfra.NewResourceRepository(pool)
	discussions := pginfra.NewDiscussionRepository(pool)
	quizzes := pginfra.NewQuizRepository(pool)
	flashcards := pginfra.NewFlashcardRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)

	notifier := application.NewNotifier(users, notifications, container.GetRabbitPub(), logger)
	authSvc := application.NewAuthService(users, container.GetTokens(), logger)
	engagement := application.NewEngagementService(resources, discussions, quizzes, flashcards, notifier, logger)

	userSvc := &application.UserService{
		Users:       users,
		Resources:   resources,
		Discussions: discussions,
		Logger:      logger,
		GCS:         container.GetGCS(),
		GCSBucket:   cfg.GCSBucket,
	}
	subjectSvc := &application.SubjectService{Subjects: subjects, Logger: logger}
	resourceSvc := &application.ResourceService{
		Resources: resources,
		Subjects:  subjects,
		Notifier:  notifier,
		Logger:    logger,
		ES:        container.GetES(),
		ESIndex:   cfg.ESResourcesIndex,
	}
	discussionSvc := &application.DiscussionService{
		Discussions: discussions,
		Subjects:    subjects,
		Notifier:    notifier,
		Logger:      logger,
		ES:          container.GetES(),
		ESIndex:     cfg.ESDiscussionsIndex,
	}
	quizSvc := &application.QuizService{Quizzes: quizzes, Subjects: subjects, Notifier: notifier, Logger: logger}
	flashcardSvc := &application.FlashcardService{Flashcards: flashcards, Subjects: subjects, Notifier: notifier, Logger: logger}
	notificationSvc := &application.NotificationService{Notifications: notifications, Logger: logger}
	statsSvc := &application.StatsService{
		Users:       users,
		Subjects:    subjects,
		Resources:   resources,
		Discussions: discussions,
		Quizzes:     quizzes,
		Flashcards:  flashcards,
		Redis:       container.GetRedis(),
		CacheTTL:    cfg.StatsCacheTTL,
		Logger:      logger,
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), authSvc))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), authSvc))
	r.Add(modules.NewSubjectModule(handlers.NewSubjectHandler(subjectSvc, logger), authSvc))
	r.Add(modules.NewResourceModule(handlers.NewResourceHandler(resourceSvc, engagement, logger), authSvc))
	r.Add(modules.NewDiscussionModule(handlers.NewDiscussionHandler(discussionSvc, engagement, logger), authSvc))
	r.Add(modules.NewStudyModule(
		handlers.NewQuizHandler(quizSvc, engagement, logger),
		handlers.NewFlashcardHandler(flashcardSvc, engagement, logger),
		authSvc,
	))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(notificationSvc, logger), authSvc))
	r.Add(modules.NewStatsModule(handlers.NewStatsHandler(statsSvc, logger)))
}
