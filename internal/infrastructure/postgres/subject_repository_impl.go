package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

const subjectColumns = `id, name, description, icon, color, is_custom, coalesce(created_by, ''), created_at`

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func scanSubject(row pgx.Row) (*entity.Subject, error) {
	s := &entity.Subject{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.Color, &s.IsCustom, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SubjectRepository) Create(ctx context.Context, s *entity.Subject) error {
	var createdBy any
	if s.CreatedBy != "" {
		createdBy = s.CreatedBy
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subjects (id, name, description, icon, color, is_custom, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.Name, s.Description, s.Icon, s.Color, s.IsCustom, createdBy, s.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*entity.Subject, error) {
	return scanSubject(r.pool.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id))
}

func (r *SubjectRepository) GetByName(ctx context.Context, name string) (*entity.Subject, error) {
	return scanSubject(r.pool.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE name = $1`, name))
}

func (r *SubjectRepository) List(ctx context.Context) ([]entity.Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SubjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM subjects`).Scan(&n)
	return n, err
}

var _ repository.SubjectRepository = (*SubjectRepository)(nil)
