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

const userColumns = `id, name, email, password, department, faculty, year_of_study, bio, avatar, role, reputation, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Department, &u.Faculty,
		&u.YearOfStudy, &u.Bio, &u.Avatar, &u.Role, &u.Reputation, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password, department, faculty, year_of_study, bio, avatar, role, reputation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, u.ID, u.Name, u.Email, u.Password, u.Department, u.Faculty, u.YearOfStudy,
		u.Bio, u.Avatar, u.Role, u.Reputation, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, bio = $2, department = $3, faculty = $4, year_of_study = $5, avatar = $6, updated_at = $7
		WHERE id = $8
	`, u.Name, u.Bio, u.Department, u.Faculty, u.YearOfStudy, u.Avatar, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListIDsExcept(ctx context.Context, exceptID string, f repository.AudienceFilter) ([]string, error) {
	q := `SELECT id FROM users WHERE id <> $1`
	args := []any{exceptID}
	add := func(col, val string) {
		args = append(args, val)
		q += fmt.Sprintf(" AND %s = $%d", col, len(args))
	}
	switch {
	case f.Department != "":
		add("department", f.Department)
	case f.Faculty != "":
		add("faculty", f.Faculty)
	case f.YearOfStudy != "":
		add("year_of_study", f.YearOfStudy)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

var _ repository.UserRepository = (*UserRepository)(nil)
