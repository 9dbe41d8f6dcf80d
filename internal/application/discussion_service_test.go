package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

func discussionFixture() (*DiscussionService, *fakeNotificationRepo, *entity.User) {
	actor := &entity.User{ID: "a", Name: "Alice", Department: "Informatique"}
	users := newFakeUserRepo(
		actor,
		&entity.User{ID: "b", Name: "Bob", Department: "Informatique"},
		&entity.User{ID: "c", Name: "Chloé", Department: "Droit"},
	)
	subjects := newFakeSubjectRepo(&entity.Subject{ID: "s1", Name: "Informatique"})
	store := &fakeNotificationRepo{}

	svc := &DiscussionService{
		Discussions: newFakeDiscussionRepo(),
		Subjects:    subjects,
		Notifier:    NewNotifier(users, store, nil, testLogger()),
		Logger:      testLogger(),
	}
	return svc, store, actor
}

func TestCreateDiscussion(t *testing.T) {
	ctx := context.Background()

	t.Run("department scope reaches only the department", func(t *testing.T) {
		svc, store, actor := discussionFixture()

		d, err := svc.Create(ctx, actor, CreateDiscussionInput{
			Title:     "Examen de janvier",
			Content:   "Qui a les annales?",
			SubjectID: "s1",
			GroupType: entity.GroupDepartment,
		})
		require.NoError(t, err)
		assert.Equal(t, "Informatique", d.AuthorDepartment, "author attributes are snapshotted")
		assert.Equal(t, "Informatique", d.SubjectName)

		created := store.all()
		require.Len(t, created, 1)
		assert.Equal(t, "b", created[0].UserID)
		assert.Equal(t, "/community", created[0].Link)
	})

	t.Run("global scope broadcasts", func(t *testing.T) {
		svc, store, actor := discussionFixture()

		_, err := svc.Create(ctx, actor, CreateDiscussionInput{
			Title: "Bienvenue", Content: "Salut à tous", GroupType: entity.GroupGlobal,
		})
		require.NoError(t, err)
		assert.Len(t, store.all(), 2)
	})

	t.Run("author without a department still posts scoped", func(t *testing.T) {
		svc, store, _ := discussionFixture()
		bare := &entity.User{ID: "a", Name: "Alice"}

		_, err := svc.Create(ctx, bare, CreateDiscussionInput{
			Title: "Sans département", Content: "..", GroupType: entity.GroupDepartment,
		})
		require.NoError(t, err)
		assert.Len(t, store.all(), 2, "missing attribute falls back to broadcast")
	})
}

func TestDiscussionListScoping(t *testing.T) {
	ctx := context.Background()
	svc, _, actor := discussionFixture()

	_, err := svc.Create(ctx, actor, CreateDiscussionInput{
		Title: "Dept only", Content: "..", GroupType: entity.GroupDepartment,
	})
	require.NoError(t, err)

	other := &entity.User{ID: "c", Name: "Chloé", Department: "Droit"}
	_, err = svc.Create(ctx, other, CreateDiscussionInput{
		Title: "Droit only", Content: "..", GroupType: entity.GroupDepartment,
	})
	require.NoError(t, err)

	viewer := &entity.User{ID: "b", Name: "Bob", Department: "Informatique"}
	list, err := svc.List(ctx, viewer, repository.DiscussionFilter{GroupType: entity.GroupDepartment})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dept only", list[0].Title)
}

func TestMarkSolved(t *testing.T) {
	ctx := context.Background()
	svc, _, actor := discussionFixture()

	d, err := svc.Create(ctx, actor, CreateDiscussionInput{
		Title: "Question", Content: "..", GroupType: entity.GroupGlobal,
	})
	require.NoError(t, err)

	stranger := &entity.User{ID: "b", Name: "Bob"}
	_, err = svc.MarkSolved(ctx, stranger, d.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	solved, err := svc.MarkSolved(ctx, actor, d.ID)
	require.NoError(t, err)
	assert.True(t, solved.Solved)
}
