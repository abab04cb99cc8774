package projects

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by Get when no project matches the id.
var ErrNotFound = errors.New("project not found")

type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Store is what the HTTP layer needs from project persistence. The pgx
// repo implements it in production; tests substitute an in-memory fake.
type Store interface {
	Create(ctx context.Context, title, description string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id int64) (*Project, error)
	Update(ctx context.Context, id int64, title, description string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, title, description string) (*Project, error) {
	const q = `
insert into projects (title, description)
values ($1, $2)
returning id, title, description;
`
	var p Project
	err := r.db.QueryRow(ctx, q, title, description).
		Scan(&p.ID, &p.Title, &p.Description)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Project, error) {
	const q = `
select id, title, description
from projects
order by id;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Project, error) {
	const q = `
select id, title, description
from projects
where id = $1;
`
	var p Project
	err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites title and description in place. A missing id is not an
// error; the caller sees ok=false and the table is untouched.
func (r *Repo) Update(ctx context.Context, id int64, title, description string) (bool, error) {
	const q = `
update projects
set title = $2, description = $3
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, id, title, description)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Delete is idempotent: deleting an absent id reports ok=false, no error.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `
delete from projects
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
