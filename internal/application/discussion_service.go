package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

// DiscussionService manages community threads. A discussion's group scope is
// fixed at creation time from the author's profile snapshot.
type DiscussionService struct {
	Discussions repository.DiscussionRepository
	Subjects    repository.SubjectRepository
	Notifier    *Notifier
	Logger      *logrus.Logger

	ES      *elasticsearch.Client
	ESIndex string
}

type CreateDiscussionInput struct {
	Title     string
	Content   string
	SubjectID string
	GroupType string
}

// Create stores a new discussion with the author's attribute snapshots and
// fans out to the group's audience. An author missing the scoping attribute
// still posts; the fan-out then broadcasts unfiltered.
func (s *DiscussionService) Create(ctx context.Context, actor *entity.User, in CreateDiscussionInput) (*entity.Discussion, error) {
	var subjectName string
	if in.SubjectID != "" {
		subj, err := s.Subjects.GetByID(ctx, in.SubjectID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		subjectName = subj.Name
	}

	now := time.Now().UTC()
	d := &entity.Discussion{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Content:          in.Content,
		SubjectID:        in.SubjectID,
		SubjectName:      subjectName,
		AuthorID:         actor.ID,
		AuthorName:       actor.Name,
		AuthorAvatar:     actor.Avatar,
		AuthorDepartment: actor.Department,
		AuthorFaculty:    actor.Faculty,
		AuthorYear:       actor.YearOfStudy,
		GroupType:        in.GroupType,
		Comments:         []entity.Comment{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Discussions.Create(ctx, d); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, Event{
		Type:      entity.NotifDiscussion,
		Actor:     actor,
		Title:     d.Title,
		GroupType: d.GroupType,
	})
	s.indexDiscussion(ctx, d)
	return d, nil
}

func (s *DiscussionService) Get(ctx context.Context, id string) (*entity.Discussion, error) {
	d, err := s.Discussions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns discussions matching the filter. Group-scoped filters use the
// viewer's own attributes so each user sees their department, faculty or year
// feed. Search falls back to the store scan when the index is unavailable.
func (s *DiscussionService) List(ctx context.Context, viewer *entity.User, f repository.DiscussionFilter) ([]entity.Discussion, error) {
	if viewer != nil {
		switch f.GroupType {
		case entity.GroupDepartment:
			f.Department = viewer.Department
		case entity.GroupFaculty:
			f.Faculty = viewer.Faculty
		case entity.GroupYear:
			f.Year = viewer.YearOfStudy
		}
	}

	if f.Search != "" && s.ES != nil && s.ESIndex != "" {
		ids, err := s.searchIDs(ctx, f.Search, repository.ClampLimit(f.Limit))
		if err == nil {
			out := make([]entity.Discussion, 0, len(ids))
			for _, id := range ids {
				d, err := s.Discussions.GetByID(ctx, id)
				if err != nil {
					continue
				}
				out = append(out, *d)
			}
			return out, nil
		}
		s.Logger.WithError(err).Warn("discussion search fell back to store scan")
	}
	return s.Discussions.List(ctx, f)
}

// MarkSolved flags a discussion as resolved. Only the author may do so.
func (s *DiscussionService) MarkSolved(ctx context.Context, actor *entity.User, id string) (*entity.Discussion, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.AuthorID != actor.ID {
		return nil, ErrForbidden
	}
	d.Solved = true
	d.UpdatedAt = time.Now().UTC()
	if err := s.Discussions.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Delete removes a discussion. The author or an admin may delete.
func (s *DiscussionService) Delete(ctx context.Context, actor *entity.User, id string) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if d.AuthorID != actor.ID && actor.Role != entity.RoleAdmin {
		return ErrForbidden
	}
	if err := s.Discussions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteIndexed(ctx, id)
	return nil
}

func (s *DiscussionService) indexDiscussion(ctx context.Context, d *entity.Discussion) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"title":       d.Title,
		"content":     d.Content,
		"subject_id":  d.SubjectID,
		"author_name": d.AuthorName,
		"group_type":  d.GroupType,
		"created_at":  d.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: d.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("discussion_id", d.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("discussion_id", d.ID).Warn("es index response error")
	}
}

func (s *DiscussionService) deleteIndexed(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("discussion_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

func (s *DiscussionService) searchIDs(ctx context.Context, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New("search response: " + res.Status())
	}

	return decodeHitIDs(res.Body)
}
