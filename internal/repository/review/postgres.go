package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/logging"
)

const columns = `id, product_id, customer_id, rating, comment, is_verified_purchase, reviewed_at, created_at, updated_at`

type postgresRepo struct {
	db     db.DBTX
	logger logrus.FieldLogger
}

func NewPostgres(conn db.DBTX, logger logrus.FieldLogger) Repository {
	return &postgresRepo{db: conn, logger: logging.OrDiscard(logger)}
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Review) (*domain.Review, bool, error) {
	var (
		out     *domain.Review
		created bool
	)
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var existingID int64
		err := tx.QueryRow(ctx, `
SELECT id FROM reviews
WHERE product_id = $1 AND customer_id = $2
FOR UPDATE`, in.ProductID, in.CustomerID).Scan(&existingID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			created = true
			out, err = scanReview(tx.QueryRow(ctx, `
INSERT INTO reviews (product_id, customer_id, rating, comment, is_verified_purchase, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+columns,
				in.ProductID,
				in.CustomerID,
				in.Rating,
				in.Comment,
				in.IsVerifiedPurchase,
				in.ReviewedAt,
			))
			return err
		case err != nil:
			return err
		}
		out, err = scanReview(tx.QueryRow(ctx, `
UPDATE reviews
SET rating = $2,
    comment = $3,
    is_verified_purchase = $4,
    reviewed_at = $5,
    updated_at = now()
WHERE id = $1
RETURNING `+columns,
			existingID,
			in.Rating,
			in.Comment,
			in.IsVerifiedPurchase,
			in.ReviewedAt,
		))
		return err
	})
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"product_id":  in.ProductID,
			"customer_id": in.CustomerID,
		}).WithError(err).Warn("review repo: upsert failed")
		return nil, false, db.TranslateError(err)
	}
	r.logger.WithFields(logrus.Fields{"id": out.ID, "created": created}).Debug("review repo: upserted")
	return out, created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	const q = `SELECT ` + columns + ` FROM reviews WHERE id = $1`
	out, err := scanReview(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "review", ID: id}
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	const q = `SELECT ` + columns + ` FROM reviews WHERE product_id = $1 ORDER BY reviewed_at DESC, id DESC`
	return r.list(ctx, q, productID)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Review, error) {
	const q = `SELECT ` + columns + ` FROM reviews WHERE customer_id = $1 ORDER BY reviewed_at DESC, id DESC`
	return r.list(ctx, q, customerID)
}

func (r *postgresRepo) list(ctx context.Context, q string, id int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Summary reads the average and count in one statement. AVG over zero rows is NULL.
func (r *postgresRepo) Summary(ctx context.Context, productID int64) (domain.ReviewSummary, error) {
	const q = `SELECT AVG(rating)::float8, COUNT(*) FROM reviews WHERE product_id = $1`
	var s domain.ReviewSummary
	if err := r.db.QueryRow(ctx, q, productID).Scan(&s.AverageRating, &s.ReviewCount); err != nil {
		return domain.ReviewSummary{}, err
	}
	return s, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "review", ID: id}
	}
	return nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.CustomerID,
		&rv.Rating,
		&rv.Comment,
		&rv.IsVerifiedPurchase,
		&rv.ReviewedAt,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
