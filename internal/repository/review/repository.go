package review

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists reviews. Upsert is keyed on the full (product, customer) pair.
type Repository interface {
	// Upsert overwrites the review for r's (ProductID, CustomerID) pair or inserts it,
	// inside one transaction. A lost insert race surfaces as a ConstraintViolation on
	// domain.ReviewPairConstraint.
	Upsert(ctx context.Context, r domain.Review) (review *domain.Review, created bool, err error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Review, error)
	Summary(ctx context.Context, productID int64) (domain.ReviewSummary, error)
	Delete(ctx context.Context, id int64) error
}
