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

// ResourceService manages shared study materials. Search goes through
// Elasticsearch when a client is wired and falls back to the store's ILIKE
// scan otherwise.
type ResourceService struct {
	Resources repository.ResourceRepository
	Subjects  repository.SubjectRepository
	Notifier  *Notifier
	Logger    *logrus.Logger

	ES      *elasticsearch.Client
	ESIndex string
}

type CreateResourceInput struct {
	Title        string
	Description  string
	SubjectID    string
	Type         string
	FileURL      string
	ThumbnailURL string
}

type UpdateResourceInput struct {
	Title        string
	Description  string
	ThumbnailURL string
}

// Create stores a new resource with the author snapshot taken from the actor,
// then fans out a broadcast notification and indexes the document for search.
func (s *ResourceService) Create(ctx context.Context, actor *entity.User, in CreateResourceInput) (*entity.Resource, error) {
	if _, err := s.Subjects.GetByID(ctx, in.SubjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	res := &entity.Resource{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		SubjectID:    in.SubjectID,
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		AuthorAvatar: actor.Avatar,
		Type:         in.Type,
		FileURL:      in.FileURL,
		ThumbnailURL: in.ThumbnailURL,
		LikedBy:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Resources.Create(ctx, res); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, Event{Type: entity.NotifResource, Actor: actor, Title: res.Title})
	s.indexResource(ctx, res)
	return res, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*entity.Resource, error) {
	res, err := s.Resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// List returns resources matching the filter, newest first. A search term is
// resolved through Elasticsearch when available; any search failure falls
// back to the store scan so listing never breaks with the index down.
func (s *ResourceService) List(ctx context.Context, f repository.ResourceFilter) ([]entity.Resource, error) {
	if f.Search != "" && s.ES != nil && s.ESIndex != "" {
		ids, err := s.searchIDs(ctx, f.Search, repository.ClampLimit(f.Limit))
		if err == nil {
			out := make([]entity.Resource, 0, len(ids))
			for _, id := range ids {
				res, err := s.Resources.GetByID(ctx, id)
				if err != nil {
					continue
				}
				out = append(out, *res)
			}
			return out, nil
		}
		s.Logger.WithError(err).Warn("resource search fell back to store scan")
	}
	return s.Resources.List(ctx, f)
}

// Update modifies a resource's mutable fields. Only the author may update.
func (s *ResourceService) Update(ctx context.Context, actor *entity.User, id string, in UpdateResourceInput) (*entity.Resource, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.AuthorID != actor.ID {
		return nil, ErrForbidden
	}

	if in.Title != "" {
		res.Title = in.Title
	}
	if in.Description != "" {
		res.Description = in.Description
	}
	if in.ThumbnailURL != "" {
		res.ThumbnailURL = in.ThumbnailURL
	}
	res.UpdatedAt = time.Now().UTC()

	if err := s.Resources.Update(ctx, res); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.indexResource(ctx, res)
	return res, nil
}

// Delete removes a resource. The author or an admin may delete.
func (s *ResourceService) Delete(ctx context.Context, actor *entity.User, id string) error {
	res, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if res.AuthorID != actor.ID && actor.Role != entity.RoleAdmin {
		return ErrForbidden
	}
	if err := s.Resources.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteIndexed(ctx, id)
	return nil
}

// indexResource mirrors the searchable fields into Elasticsearch.
// Best-effort: failures are logged, never surfaced.
func (s *ResourceService) indexResource(ctx context.Context, r *entity.Resource) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"title":       r.Title,
		"description": r.Description,
		"subject_id":  r.SubjectID,
		"author_name": r.AuthorName,
		"type":        r.Type,
		"created_at":  r.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: r.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("resource_id", r.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("resource_id", r.ID).Warn("es index response error")
	}
}

func (s *ResourceService) deleteIndexed(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("resource_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

func (s *ResourceService) searchIDs(ctx context.Context, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
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
