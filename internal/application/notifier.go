package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
	"github.com/univloop/univloop-api/pkg/helpers"
)

// Event is one content action that may fan out into notifications.
// ContentAuthorID is only meaningful for like and comment events; GroupType
// only for discussion events.
type Event struct {
	Type            string
	Actor           *entity.User
	Title           string
	GroupType       string
	ContentAuthorID string
}

// ActivityEvent is the JSON payload published to RabbitMQ after a fan-out
// persists, consumed by the notify worker. Fire-and-forget: losing one is
// acceptable, the notifications themselves are already stored.
type ActivityEvent struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Link       string    `json:"link,omitempty"`
	Recipients []string  `json:"recipients"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier computes the audience for an event and persists one notification
// per recipient.
type Notifier struct {
	Users         repository.UserRepository
	Notifications repository.NotificationRepository
	Pub           *helpers.RabbitPublisher // optional
	Logger        *logrus.Logger
}

func NewNotifier(users repository.UserRepository, notifications repository.NotificationRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *Notifier {
	return &Notifier{Users: users, Notifications: notifications, Pub: pub, Logger: logger}
}

// SelectAudience computes the recipient set for an event, always excluding
// the actor.
//
// Creation events broadcast to every other user; a scoped discussion narrows
// the broadcast to users sharing the actor's matching attribute. When the
// actor lacks the attribute the filter is skipped and the event broadcasts
// unfiltered — a documented edge case, not a silent no-op. Like and comment
// events address only the content author, and nobody when the actor is the
// author.
func (n *Notifier) SelectAudience(ctx context.Context, ev Event) ([]string, error) {
	switch ev.Type {
	case entity.NotifLike, entity.NotifComment:
		if ev.ContentAuthorID == "" || ev.ContentAuthorID == ev.Actor.ID {
			return nil, nil
		}
		return []string{ev.ContentAuthorID}, nil
	}

	var filter repository.AudienceFilter
	if ev.Type == entity.NotifDiscussion {
		switch ev.GroupType {
		case entity.GroupDepartment:
			filter.Department = ev.Actor.Department
		case entity.GroupFaculty:
			filter.Faculty = ev.Actor.Faculty
		case entity.GroupYear:
			filter.YearOfStudy = ev.Actor.YearOfStudy
		}
	}
	return n.Users.ListIDsExcept(ctx, ev.Actor.ID, filter)
}

// Dispatch materializes and persists one notification per recipient.
// Delivery is at-most-once per call: on partial failure the rows already
// inserted stay, nothing is retried, and ErrDispatchPartial is returned for
// observability.
func (n *Notifier) Dispatch(ctx context.Context, ev Event, audience []string) error {
	if len(audience) == 0 {
		return nil
	}

	title, message, link := composeNotification(ev)
	now := time.Now().UTC()
	batch := make([]entity.Notification, 0, len(audience))
	for _, userID := range audience {
		batch = append(batch, entity.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      ev.Type,
			Title:     title,
			Message:   message,
			Link:      link,
			Read:      false,
			CreatedAt: now,
		})
	}

	inserted, err := n.Notifications.CreateBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("%w: %d of %d persisted: %v", ErrDispatchPartial, inserted, len(batch), err)
	}

	if n.Pub != nil {
		activity := ActivityEvent{
			Type:       ev.Type,
			ActorID:    ev.Actor.ID,
			ActorName:  ev.Actor.Name,
			Title:      title,
			Message:    message,
			Link:       link,
			Recipients: audience,
			CreatedAt:  now,
		}
		if pubErr := n.Pub.PublishJSON(ctx, activity); pubErr != nil {
			n.Logger.WithError(pubErr).WithField("type", ev.Type).Warn("activity publish failed")
		}
	}
	return nil
}

// Notify runs audience selection and dispatch for an event that already
// committed. Failures are logged and swallowed: fan-out never fails the
// triggering write.
func (n *Notifier) Notify(ctx context.Context, ev Event) {
	audience, err := n.SelectAudience(ctx, ev)
	if err != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{
			"type":  ev.Type,
			"actor": ev.Actor.ID,
		}).Warn("audience selection failed")
		return
	}
	if err := n.Dispatch(ctx, ev, audience); err != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{
			"type":  ev.Type,
			"actor": ev.Actor.ID,
		}).Warn("notification dispatch failed")
	}
}

func composeNotification(ev Event) (title, message, link string) {
	actor := ev.Actor.Name
	switch ev.Type {
	case entity.NotifResource:
		return "Nouvelle ressource", fmt.Sprintf("%s a partagé: %s", actor, ev.Title), "/resources"
	case entity.NotifDiscussion:
		return "Nouvelle discussion", fmt.Sprintf("%s a posté: %s", actor, ev.Title), "/community"
	case entity.NotifQuiz:
		return "Nouveau quiz", fmt.Sprintf("%s a créé un quiz: %s", actor, ev.Title), "/quiz"
	case entity.NotifFlashcard:
		return "Nouvelles flashcards", fmt.Sprintf("%s a créé des flashcards: %s", actor, ev.Title), "/flashcards"
	case entity.NotifLike:
		return "Nouveau like", fmt.Sprintf("%s a aimé votre ressource: %s", actor, ev.Title), "/resources"
	case entity.NotifComment:
		return "Nouveau commentaire", fmt.Sprintf("%s a commenté votre discussion: %s", actor, ev.Title), "/community"
	default:
		return "Notification", fmt.Sprintf("%s: %s", actor, ev.Title), ""
	}
}
