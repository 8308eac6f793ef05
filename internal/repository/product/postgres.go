package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/logging"
)

// Numeric columns are read back as text so they round-trip through decimal.Decimal exactly.
const columns = `id, name, description, image_url, price::text, weight::text, stock, is_active, category_id, created_at, updated_at`

type postgresRepo struct {
	db     db.DBTX
	logger logrus.FieldLogger
}

func NewPostgres(conn db.DBTX, logger logrus.FieldLogger) Repository {
	return &postgresRepo{db: conn, logger: logging.OrDiscard(logger)}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	out, err := insert(ctx, r.db, p)
	if err != nil {
		r.logger.WithField("name", p.Name).WithError(err).Warn("product repo: create failed")
		return nil, db.TranslateError(err)
	}
	r.logger.WithFields(logrus.Fields{"id": out.ID, "category_id": out.CategoryID}).Debug("product repo: created")
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + columns + ` FROM products WHERE id = $1`
	out, err := scanProduct(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WithField("id", id).Debug("product repo: not found")
			return nil, &domain.NotFoundError{Entity: "product", ID: id}
		}
		r.logger.WithField("id", id).WithError(err).Error("product repo: get failed")
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	q := `SELECT ` + columns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY id ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		r.logger.WithError(err).Error("product repo: list failed")
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.WithField("count", len(result)).Debug("product repo: listed")
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	out, err := update(ctx, r.db, p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "product", ID: p.ID}
		}
		return nil, db.TranslateError(err)
	}
	return out, nil
}

func (r *postgresRepo) UpsertByName(ctx context.Context, p domain.Product) (*domain.Product, bool, error) {
	var (
		out     *domain.Product
		created bool
	)
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var existingID int64
		err := tx.QueryRow(ctx, `SELECT id FROM products WHERE name = $1 ORDER BY id ASC LIMIT 1 FOR UPDATE`, p.Name).Scan(&existingID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			created = true
			out, err = insert(ctx, tx, p)
			return err
		case err != nil:
			return err
		}
		p.ID = existingID
		out, err = update(ctx, tx, p)
		return err
	})
	if err != nil {
		r.logger.WithField("name", p.Name).WithError(err).Warn("product repo: upsert failed")
		return nil, false, db.TranslateError(err)
	}
	r.logger.WithFields(logrus.Fields{"id": out.ID, "created": created}).Debug("product repo: upserted")
	return out, created, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// querier is the subset of DBTX shared with pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insert(ctx context.Context, q querier, p domain.Product) (*domain.Product, error) {
	const stmt = `
INSERT INTO products (name, description, image_url, price, weight, stock, is_active, category_id)
VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8)
RETURNING ` + columns
	return scanProduct(q.QueryRow(ctx, stmt,
		p.Name,
		p.Description,
		p.ImageURL,
		p.Price.StringFixed(domain.MoneyScale),
		weightArg(p.Weight),
		p.Stock,
		p.IsActive,
		p.CategoryID,
	))
}

func update(ctx context.Context, q querier, p domain.Product) (*domain.Product, error) {
	const stmt = `
UPDATE products
SET name = $2,
    description = $3,
    image_url = $4,
    price = $5::numeric,
    weight = $6::numeric,
    stock = $7,
    is_active = $8,
    category_id = $9,
    updated_at = now()
WHERE id = $1
RETURNING ` + columns
	return scanProduct(q.QueryRow(ctx, stmt,
		p.ID,
		p.Name,
		p.Description,
		p.ImageURL,
		p.Price.StringFixed(domain.MoneyScale),
		weightArg(p.Weight),
		p.Stock,
		p.IsActive,
		p.CategoryID,
	))
}

func weightArg(w *decimal.Decimal) *string {
	if w == nil {
		return nil
	}
	s := w.StringFixed(domain.MoneyScale)
	return &s
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p      domain.Product
		price  string
		weight *string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ImageURL,
		&price,
		&weight,
		&p.Stock,
		&p.IsActive,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	if weight != nil {
		w, err := decimal.NewFromString(*weight)
		if err != nil {
			return nil, fmt.Errorf("parse weight %q: %w", *weight, err)
		}
		p.Weight = &w
	}
	return &p, nil
}
