package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/logging"
)

const columns = `id, first_name, last_name, email, phone, birth_date, is_premium, created_at, updated_at`

type postgresRepo struct {
	db     db.DBTX
	logger logrus.FieldLogger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(conn db.DBTX, logger logrus.FieldLogger) Repository {
	return &postgresRepo{db: conn, logger: logging.OrDiscard(logger)}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (first_name, last_name, email, phone, birth_date, is_premium)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + columns
	out, err := scanCustomer(r.db.QueryRow(ctx, q,
		c.FirstName,
		c.LastName,
		strings.ToLower(c.Email),
		c.Phone,
		c.BirthDate,
		c.IsPremium,
	))
	if err != nil {
		r.logger.WithField("email", c.Email).WithError(err).Warn("customer repo: create failed")
		return nil, db.TranslateError(err)
	}
	r.logger.WithField("id", out.ID).Debug("customer repo: created")
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `SELECT ` + columns + ` FROM customers WHERE id = $1`
	out, err := scanCustomer(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "customer", ID: id}
		}
		r.logger.WithField("id", id).WithError(err).Error("customer repo: get failed")
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `SELECT ` + columns + ` FROM customers WHERE email = lower($1) LIMIT 1`
	out, err := scanCustomer(r.db.QueryRow(ctx, q, email))
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `SELECT ` + columns + ` FROM customers ORDER BY id ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
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

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET first_name = $2,
    last_name = $3,
    email = $4,
    phone = $5,
    birth_date = $6,
    is_premium = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + columns
	out, err := scanCustomer(r.db.QueryRow(ctx, q,
		c.ID,
		c.FirstName,
		c.LastName,
		strings.ToLower(c.Email),
		c.Phone,
		c.BirthDate,
		c.IsPremium,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "customer", ID: c.ID}
		}
		return nil, db.TranslateError(err)
	}
	return out, nil
}

func (r *postgresRepo) UpsertByEmail(ctx context.Context, c domain.Customer) (*domain.Customer, bool, error) {
	const q = `
INSERT INTO customers (first_name, last_name, email, phone, birth_date, is_premium)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT ON CONSTRAINT customers_email_key DO UPDATE
SET first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    phone = COALESCE(EXCLUDED.phone, customers.phone),
    birth_date = COALESCE(EXCLUDED.birth_date, customers.birth_date),
    is_premium = EXCLUDED.is_premium,
    updated_at = now()
RETURNING ` + columns + `, (xmax = 0) AS inserted`
	var (
		out      domain.Customer
		inserted bool
	)
	err := r.db.QueryRow(ctx, q,
		c.FirstName,
		c.LastName,
		strings.ToLower(c.Email),
		c.Phone,
		c.BirthDate,
		c.IsPremium,
	).Scan(append(customerDest(&out), &inserted)...)
	if err != nil {
		r.logger.WithField("email", c.Email).WithError(err).Warn("customer repo: upsert failed")
		return nil, false, db.TranslateError(err)
	}
	r.logger.WithFields(logrus.Fields{"id": out.ID, "created": inserted}).Debug("customer repo: upserted")
	return &out, inserted, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "customer", ID: id}
	}
	r.logger.WithField("id", id).Debug("customer repo: deleted")
	return nil
}

func customerDest(c *domain.Customer) []any {
	return []any{
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.BirthDate,
		&c.IsPremium,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(customerDest(&c)...); err != nil {
		return nil, err
	}
	return &c, nil
}
