package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

const resourceColumns = `id, title, description, subject_id, author_id, author_name, author_avatar, type, file_url, thumbnail_url, likes, views, liked_by, created_at, updated_at`

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func scanResource(row pgx.Row) (*entity.Resource, error) {
	res := &entity.Resource{}
	err := row.Scan(&res.ID, &res.Title, &res.Description, &res.SubjectID, &res.AuthorID,
		&res.AuthorName, &res.AuthorAvatar, &res.Type, &res.FileURL, &res.ThumbnailURL,
		&res.Likes, &res.Views, &res.LikedBy, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if res.LikedBy == nil {
		res.LikedBy = []string{}
	}
	return res, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res *entity.Resource) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO resources (id, title, description, subject_id, author_id, author_name, author_avatar, type, file_url, thumbnail_url, likes, views, liked_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, res.ID, res.Title, res.Description, res.SubjectID, res.AuthorID, res.AuthorName,
		res.AuthorAvatar, res.Type, res.FileURL, res.ThumbnailURL, res.Likes, res.Views,
		res.LikedBy, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*entity.Resource, error) {
	return scanResource(r.pool.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
}

func (r *ResourceRepository) List(ctx context.Context, f repository.ResourceFilter) ([]entity.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM resources WHERE true`
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		q += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.SubjectID != "" {
		add("subject_id = $%d", f.SubjectID)
	}
	if f.AuthorID != "" {
		add("author_id = $%d", f.AuthorID)
	}
	if f.Search != "" {
		add("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%[1]d || '%%')", f.Search)
	}
	args = append(args, repository.ClampLimit(f.Limit))
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *ResourceRepository) Update(ctx context.Context, res *entity.Resource) error {
	res.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE resources
		SET title = $1, description = $2, subject_id = $3, updated_at = $4
		WHERE id = $5
	`, res.Title, res.Description, res.SubjectID, res.UpdatedAt, res.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleLike flips membership and adjusts the counter in one conditional
// statement. The CASE expressions evaluate against the pre-update row, the
// RETURNING clause against the post-update row, so two concurrent toggles by
// the same user serialize on the row lock and likes always equals the set
// cardinality afterwards.
func (r *ResourceRepository) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx, `
		UPDATE resources
		SET liked_by = CASE WHEN $2 = ANY(liked_by) THEN array_remove(liked_by, $2) ELSE array_append(liked_by, $2) END,
		    likes    = CASE WHEN $2 = ANY(liked_by) THEN likes - 1 ELSE likes + 1 END
		WHERE id = $1
		RETURNING $2 = ANY(liked_by)
	`, id, userID).Scan(&liked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, repository.ErrNotFound
	}
	return liked, err
}

func (r *ResourceRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx, `
		UPDATE resources SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return views, err
}

func (r *ResourceRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM resources WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}

func (r *ResourceRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM resources`).Scan(&n)
	return n, err
}

var _ repository.ResourceRepository = (*ResourceRepository)(nil)
