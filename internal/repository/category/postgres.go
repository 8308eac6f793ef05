package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"storefront/internal/db"
	"storefront/internal/domain"
)

const columns = `id, name, slug, created_at, updated_at`

type postgresRepo struct {
	db db.DBTX
}

func NewPostgres(conn db.DBTX) Repository {
	return &postgresRepo{db: conn}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING ` + columns
	out, err := scanCategory(r.db.QueryRow(ctx, q, c.Name, c.Slug))
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const q = `SELECT ` + columns + ` FROM categories WHERE id = $1`
	out, err := scanCategory(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "category", ID: id}
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT ` + columns + ` FROM categories ORDER BY name ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $2, slug = $3, updated_at = now()
WHERE id = $1
RETURNING ` + columns
	out, err := scanCategory(r.db.QueryRow(ctx, q, c.ID, c.Name, c.Slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "category", ID: c.ID}
		}
		return nil, db.TranslateError(err)
	}
	return out, nil
}

func (r *postgresRepo) UpsertBySlug(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
ON CONFLICT ON CONSTRAINT categories_slug_key DO UPDATE
SET name = EXCLUDED.name,
    updated_at = now()
RETURNING ` + columns
	out, err := scanCategory(r.db.QueryRow(ctx, q, c.Name, c.Slug))
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "category", ID: id}
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
