package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univloop/univloop-api/internal/domain/entity"
)

func engagementFixture() (*EngagementService, *fakeResourceRepo, *fakeDiscussionRepo, *fakeNotificationRepo, *entity.User) {
	actor := &entity.User{ID: "a", Name: "Alice"}
	author := &entity.User{ID: "b", Name: "Bob"}
	users := newFakeUserRepo(actor, author)

	resources := newFakeResourceRepo(&entity.Resource{
		ID: "r1", Title: "Cours de Go", AuthorID: "b", AuthorName: "Bob", LikedBy: []string{},
	})
	discussions := newFakeDiscussionRepo(&entity.Discussion{
		ID: "d1", Title: "Examen", AuthorID: "b", AuthorName: "Bob",
	})
	quizzes := newFakeQuizRepo(&entity.Quiz{ID: "q1", Title: "Quiz Go"})
	flashcards := newFakeFlashcardRepo(&entity.Flashcard{ID: "f1", Title: "Cartes Go"})

	store := &fakeNotificationRepo{}
	notifier := NewNotifier(users, store, nil, testLogger())
	svc := NewEngagementService(resources, discussions, quizzes, flashcards, notifier, testLogger())
	return svc, resources, discussions, store, actor
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("like then unlike round trip", func(t *testing.T) {
		svc, resources, _, store, actor := engagementFixture()

		res, err := svc.ToggleLike(ctx, actor, "r1")
		require.NoError(t, err)
		assert.True(t, res.Liked)
		assert.Equal(t, 1, res.Likes)

		stored, err := resources.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, stored.Likes, len(stored.LikedBy))
		assert.Contains(t, stored.LikedBy, actor.ID)

		created := store.all()
		require.Len(t, created, 1, "liking another user's resource notifies its author")
		assert.Equal(t, "b", created[0].UserID)
		assert.Equal(t, entity.NotifLike, created[0].Type)

		res, err = svc.ToggleLike(ctx, actor, "r1")
		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Equal(t, 0, res.Likes)

		stored, err = resources.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, stored.Likes, len(stored.LikedBy))
		assert.NotContains(t, stored.LikedBy, actor.ID)

		assert.Len(t, store.all(), 1, "unliking does not notify")
	})

	t.Run("self-like stays silent", func(t *testing.T) {
		svc, _, _, store, _ := engagementFixture()
		owner := &entity.User{ID: "b", Name: "Bob"}

		res, err := svc.ToggleLike(ctx, owner, "r1")
		require.NoError(t, err)
		assert.True(t, res.Liked)
		assert.Empty(t, store.all())
	})

	t.Run("odd number of concurrent toggles leaves one like", func(t *testing.T) {
		svc, resources, _, _, actor := engagementFixture()

		const toggles = 7
		var wg sync.WaitGroup
		for i := 0; i < toggles; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.ToggleLike(ctx, actor, "r1")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := resources.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Likes)
		assert.Equal(t, []string{actor.ID}, stored.LikedBy)
	})

	t.Run("missing resource", func(t *testing.T) {
		svc, _, _, _, actor := engagementFixture()
		_, err := svc.ToggleLike(ctx, actor, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestViewCounters(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := engagementFixture()

	v1, err := svc.ViewResource(ctx, "r1")
	require.NoError(t, err)
	v2, err := svc.ViewResource(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)

	dv, err := svc.ViewDiscussion(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, dv)

	fv, err := svc.ViewFlashcard(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, 1, fv)

	qa, err := svc.RecordQuizAttempt(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 1, qa)

	_, err = svc.ViewResource(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("append and notify the discussion author", func(t *testing.T) {
		svc, _, discussions, store, actor := engagementFixture()

		comment, err := svc.AddComment(ctx, actor, "d1", "Bonne question")
		require.NoError(t, err)
		assert.Equal(t, actor.ID, comment.AuthorID)
		assert.NotEmpty(t, comment.ID)

		stored, err := discussions.GetByID(ctx, "d1")
		require.NoError(t, err)
		require.Len(t, stored.Comments, 1)
		assert.Equal(t, "Bonne question", stored.Comments[0].Content)
		assert.Equal(t, stored.UpdatedAt, stored.Comments[0].CreatedAt)

		created := store.all()
		require.Len(t, created, 1)
		assert.Equal(t, "b", created[0].UserID)
		assert.Equal(t, entity.NotifComment, created[0].Type)
		assert.Equal(t, "Alice a commenté votre discussion: Examen", created[0].Message)
	})

	t.Run("self-comment appends without notifying", func(t *testing.T) {
		svc, _, discussions, store, _ := engagementFixture()
		owner := &entity.User{ID: "b", Name: "Bob"}

		_, err := svc.AddComment(ctx, owner, "d1", "Je précise")
		require.NoError(t, err)

		stored, err := discussions.GetByID(ctx, "d1")
		require.NoError(t, err)
		assert.Len(t, stored.Comments, 1)
		assert.Empty(t, store.all())
	})

	t.Run("concurrent appends all land", func(t *testing.T) {
		svc, _, discussions, _, actor := engagementFixture()

		const writers = 10
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.AddComment(ctx, actor, "d1", "ping")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := discussions.GetByID(ctx, "d1")
		require.NoError(t, err)
		assert.Len(t, stored.Comments, writers)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		svc, _, _, _, actor := engagementFixture()
		_, err := svc.AddComment(ctx, actor, "d1", "   ")
		assert.Error(t, err)
	})

	t.Run("missing discussion", func(t *testing.T) {
		svc, _, _, _, actor := engagementFixture()
		_, err := svc.AddComment(ctx, actor, "nope", "hello")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
