package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront/internal/domain"
)

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// constraintFields maps schema constraint names to the field they guard.
var constraintFields = map[string]string{
	domain.CustomerEmailConstraint: "email",
	domain.CategorySlugConstraint:  "slug",
	domain.ReviewPairConstraint:    "customer_id",
	"products_category_id_fkey":    "category_id",
	"reviews_product_id_fkey":      "product_id",
	"reviews_customer_id_fkey":     "customer_id",
	"reviews_rating_check":         "rating",
	"products_price_check":         "price",
	"products_stock_check":         "stock",
}

// TranslateError maps pgx and Postgres errors onto the domain taxonomy.
// Errors it does not recognise are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	field := constraintFields[pgErr.ConstraintName]
	switch pgErr.Code {
	case codeUniqueViolation:
		return &domain.ConstraintViolation{Constraint: pgErr.ConstraintName, Field: field, Err: err}
	case codeForeignKeyViolation:
		return &domain.ReferentialError{Field: field}
	case codeCheckViolation:
		return domain.NewValidationError(field, "violates "+pgErr.ConstraintName)
	}
	return err
}
