package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	order []string
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ListIDsExcept(_ context.Context, exceptID string, f repository.AudienceFilter) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, id := range r.order {
		u := r.users[id]
		if u.ID == exceptID {
			continue
		}
		if f.Department != "" && u.Department != f.Department {
			continue
		}
		if f.Faculty != "" && u.Faculty != f.Faculty {
			continue
		}
		if f.YearOfStudy != "" && u.YearOfStudy != f.YearOfStudy {
			continue
		}
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

type fakeSubjectRepo struct {
	mu       sync.Mutex
	subjects map[string]*entity.Subject
}

func newFakeSubjectRepo(subjects ...*entity.Subject) *fakeSubjectRepo {
	r := &fakeSubjectRepo{subjects: make(map[string]*entity.Subject)}
	for _, s := range subjects {
		r.subjects[s.ID] = s
	}
	return r
}

func (r *fakeSubjectRepo) Create(_ context.Context, s *entity.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.subjects[s.ID] = &cp
	return nil
}

func (r *fakeSubjectRepo) GetByID(_ context.Context, id string) (*entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubjectRepo) GetByName(_ context.Context, name string) (*entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subjects {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSubjectRepo) List(_ context.Context) ([]entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Subject
	for _, s := range r.subjects {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSubjectRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subjects), nil
}

type fakeResourceRepo struct {
	mu        sync.Mutex
	resources map[string]*entity.Resource
}

func newFakeResourceRepo(resources ...*entity.Resource) *fakeResourceRepo {
	r := &fakeResourceRepo{resources: make(map[string]*entity.Resource)}
	for _, res := range resources {
		r.resources[res.ID] = res
	}
	return r
}

func (r *fakeResourceRepo) Create(_ context.Context, res *entity.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id string) (*entity.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resources[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *res
	cp.LikedBy = append([]string(nil), res.LikedBy...)
	return &cp, nil
}

func (r *fakeResourceRepo) List(_ context.Context, f repository.ResourceFilter) ([]entity.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Resource
	for _, res := range r.resources {
		if f.SubjectID != "" && res.SubjectID != f.SubjectID {
			continue
		}
		if f.AuthorID != "" && res.AuthorID != f.AuthorID {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (r *fakeResourceRepo) Update(_ context.Context, res *entity.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[res.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func (r *fakeResourceRepo) ToggleLike(_ context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resources[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	for i, uid := range res.LikedBy {
		if uid == userID {
			res.LikedBy = append(res.LikedBy[:i], res.LikedBy[i+1:]...)
			res.Likes--
			return false, nil
		}
	}
	res.LikedBy = append(res.LikedBy, userID)
	res.Likes++
	return true, nil
}

func (r *fakeResourceRepo) IncrementViews(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resources[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	res.Views++
	return res.Views, nil
}

func (r *fakeResourceRepo) CountByAuthor(_ context.Context, authorID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, res := range r.resources {
		if res.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *fakeResourceRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resources), nil
}

type fakeDiscussionRepo struct {
	mu          sync.Mutex
	discussions map[string]*entity.Discussion
}

func newFakeDiscussionRepo(discussions ...*entity.Discussion) *fakeDiscussionRepo {
	r := &fakeDiscussionRepo{discussions: make(map[string]*entity.Discussion)}
	for _, d := range discussions {
		r.discussions[d.ID] = d
	}
	return r
}

func (r *fakeDiscussionRepo) Create(_ context.Context, d *entity.Discussion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.discussions[d.ID] = &cp
	return nil
}

func (r *fakeDiscussionRepo) GetByID(_ context.Context, id string) (*entity.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	cp.Comments = append([]entity.Comment(nil), d.Comments...)
	return &cp, nil
}

func (r *fakeDiscussionRepo) List(_ context.Context, f repository.DiscussionFilter) ([]entity.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Discussion
	for _, d := range r.discussions {
		if f.GroupType != "" && d.GroupType != f.GroupType {
			continue
		}
		if f.Department != "" && d.AuthorDepartment != f.Department {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDiscussionRepo) Update(_ context.Context, d *entity.Discussion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discussions[d.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *d
	r.discussions[d.ID] = &cp
	return nil
}

func (r *fakeDiscussionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discussions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.discussions, id)
	return nil
}

func (r *fakeDiscussionRepo) AppendComment(_ context.Context, id string, c entity.Comment, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Comments = append(d.Comments, c)
	d.UpdatedAt = updatedAt
	return nil
}

func (r *fakeDiscussionRepo) IncrementViews(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	d.Views++
	return d.Views, nil
}

func (r *fakeDiscussionRepo) CountByAuthor(_ context.Context, authorID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.discussions {
		if d.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *fakeDiscussionRepo) CountCommentsByAuthor(_ context.Context, authorID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.discussions {
		for _, c := range d.Comments {
			if c.AuthorID == authorID {
				n++
			}
		}
	}
	return n, nil
}

func (r *fakeDiscussionRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.discussions), nil
}

type fakeQuizRepo struct {
	mu      sync.Mutex
	quizzes map[string]*entity.Quiz
}

func newFakeQuizRepo(quizzes ...*entity.Quiz) *fakeQuizRepo {
	r := &fakeQuizRepo{quizzes: make(map[string]*entity.Quiz)}
	for _, q := range quizzes {
		r.quizzes[q.ID] = q
	}
	return r
}

func (r *fakeQuizRepo) Create(_ context.Context, q *entity.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.quizzes[q.ID] = &cp
	return nil
}

func (r *fakeQuizRepo) GetByID(_ context.Context, id string) (*entity.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuizRepo) List(_ context.Context, subjectID string, _ int) ([]entity.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Quiz
	for _, q := range r.quizzes {
		if subjectID != "" && q.SubjectID != subjectID {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

func (r *fakeQuizRepo) IncrementAttempts(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	q.Attempts++
	return q.Attempts, nil
}

func (r *fakeQuizRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quizzes), nil
}

type fakeFlashcardRepo struct {
	mu   sync.Mutex
	sets map[string]*entity.Flashcard
}

func newFakeFlashcardRepo(sets ...*entity.Flashcard) *fakeFlashcardRepo {
	r := &fakeFlashcardRepo{sets: make(map[string]*entity.Flashcard)}
	for _, fc := range sets {
		r.sets[fc.ID] = fc
	}
	return r
}

func (r *fakeFlashcardRepo) Create(_ context.Context, fc *entity.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *fc
	r.sets[fc.ID] = &cp
	return nil
}

func (r *fakeFlashcardRepo) GetByID(_ context.Context, id string) (*entity.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fc, ok := r.sets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *fc
	return &cp, nil
}

func (r *fakeFlashcardRepo) List(_ context.Context, subjectID string, _ int) ([]entity.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Flashcard
	for _, fc := range r.sets {
		if subjectID != "" && fc.SubjectID != subjectID {
			continue
		}
		out = append(out, *fc)
	}
	return out, nil
}

func (r *fakeFlashcardRepo) IncrementViews(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fc, ok := r.sets[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	fc.Views++
	return fc.Views, nil
}

func (r *fakeFlashcardRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets), nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	created   []entity.Notification
	failAll   bool
	failAfter int // when > 0, CreateBatch keeps that many rows then fails
}

func (r *fakeNotificationRepo) CreateBatch(_ context.Context, ns []entity.Notification) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return 0, context.DeadlineExceeded
	}
	if r.failAfter > 0 && len(ns) > r.failAfter {
		r.created = append(r.created, ns[:r.failAfter]...)
		return r.failAfter, context.DeadlineExceeded
	}
	r.created = append(r.created, ns...)
	return len(ns), nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, _ int) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.created {
		if r.created[i].ID == id && r.created[i].UserID == userID {
			r.created[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.created {
		if r.created[i].ID == id && r.created[i].UserID == userID {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeNotificationRepo) all() []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Notification(nil), r.created...)
}
