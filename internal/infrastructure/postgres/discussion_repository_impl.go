package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

const discussionColumns = `id, title, content, subject_id, subject_name, author_id, author_name, author_avatar, author_department, author_faculty, author_year, group_type, comments, views, solved, created_at, updated_at`

type DiscussionRepository struct {
	pool *pgxpool.Pool
}

func NewDiscussionRepository(pool *pgxpool.Pool) *DiscussionRepository {
	return &DiscussionRepository{pool: pool}
}

func scanDiscussion(row pgx.Row) (*entity.Discussion, error) {
	d := &entity.Discussion{}
	err := row.Scan(&d.ID, &d.Title, &d.Content, &d.SubjectID, &d.SubjectName, &d.AuthorID,
		&d.AuthorName, &d.AuthorAvatar, &d.AuthorDepartment, &d.AuthorFaculty, &d.AuthorYear,
		&d.GroupType, &d.Comments, &d.Views, &d.Solved, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if d.Comments == nil {
		d.Comments = []entity.Comment{}
	}
	return d, nil
}

func (r *DiscussionRepository) Create(ctx context.Context, d *entity.Discussion) error {
	comments, err := json.Marshal(d.Comments)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO discussions (id, title, content, subject_id, subject_name, author_id, author_name, author_avatar, author_department, author_faculty, author_year, group_type, comments, views, solved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, d.ID, d.Title, d.Content, d.SubjectID, d.SubjectName, d.AuthorID, d.AuthorName,
		d.AuthorAvatar, d.AuthorDepartment, d.AuthorFaculty, d.AuthorYear, d.GroupType,
		comments, d.Views, d.Solved, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DiscussionRepository) GetByID(ctx context.Context, id string) (*entity.Discussion, error) {
	return scanDiscussion(r.pool.QueryRow(ctx, `SELECT `+discussionColumns+` FROM discussions WHERE id = $1`, id))
}

func (r *DiscussionRepository) List(ctx context.Context, f repository.DiscussionFilter) ([]entity.Discussion, error) {
	q := `SELECT ` + discussionColumns + ` FROM discussions WHERE true`
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		q += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.SubjectID != "" {
		add("subject_id = $%d", f.SubjectID)
	}
	if f.GroupType != "" {
		add("group_type = $%d", f.GroupType)
	}
	if f.Department != "" {
		add("author_department = $%d", f.Department)
	}
	if f.Faculty != "" {
		add("author_faculty = $%d", f.Faculty)
	}
	if f.Year != "" {
		add("author_year = $%d", f.Year)
	}
	if f.Search != "" {
		add("(title ILIKE '%%' || $%d || '%%' OR content ILIKE '%%' || $%[1]d || '%%')", f.Search)
	}
	args = append(args, repository.ClampLimit(f.Limit))
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Discussion
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *DiscussionRepository) Update(ctx context.Context, d *entity.Discussion) error {
	d.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE discussions
		SET title = $1, content = $2, solved = $3, updated_at = $4
		WHERE id = $5
	`, d.Title, d.Content, d.Solved, d.UpdatedAt, d.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DiscussionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendComment pushes one comment onto the jsonb array in a single
// statement. Concurrent appends serialize on the row lock, so no append can
// overwrite another.
func (r *DiscussionRepository) AppendComment(ctx context.Context, id string, c entity.Comment, updatedAt time.Time) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE discussions
		SET comments = comments || $2::jsonb, updated_at = $3
		WHERE id = $1
	`, id, b, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DiscussionRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx, `
		UPDATE discussions SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return views, err
}

func (r *DiscussionRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM discussions WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}

func (r *DiscussionRepository) CountCommentsByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM discussions, jsonb_array_elements(comments) AS c
		WHERE c->>'author_id' = $1
	`, authorID).Scan(&n)
	return n, err
}

func (r *DiscussionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM discussions`).Scan(&n)
	return n, err
}

var _ repository.DiscussionRepository = (*DiscussionRepository)(nil)
