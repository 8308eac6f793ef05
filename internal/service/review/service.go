package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/logging"
	"storefront/internal/metrics"
	reviewrepo "storefront/internal/repository/review"
)

// ProductLookup resolves review parents on the product side.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// CustomerLookup resolves review parents on the customer side.
type CustomerLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// UpsertInput is the attribute set for a review write. A zero ReviewedAt means now.
type UpsertInput struct {
	ProductID          int64
	CustomerID         int64
	Rating             int
	Comment            *string
	ReviewedAt         time.Time
	IsVerifiedPurchase bool
}

type Service struct {
	repo      reviewrepo.Repository
	products  ProductLookup
	customers CustomerLookup
	metrics   *metrics.Reviews
	logger    logrus.FieldLogger
	now       func() time.Time
}

func New(repo reviewrepo.Repository, products ProductLookup, customers CustomerLookup, m *metrics.Reviews, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		customers: customers,
		metrics:   m,
		logger:    logging.OrDiscard(logger),
		now:       time.Now,
	}
}

// Upsert writes the review for the (ProductID, CustomerID) pair, updating it in
// place when one exists. created reports whether a new row was inserted.
//
// An insert that loses the race against a concurrent writer of the same pair is
// retried once, at which point the row is visible and gets updated.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*domain.Review, bool, error) {
	rv, err := s.build(in)
	if err != nil {
		s.metrics.ObserveUpsert(false, err)
		return nil, false, err
	}
	if err := s.parentsExist(ctx, rv.ProductID, rv.CustomerID); err != nil {
		s.metrics.ObserveUpsert(false, err)
		return nil, false, err
	}

	out, created, err := s.repo.Upsert(ctx, rv)
	if domain.IsConstraint(err, domain.ReviewPairConstraint) {
		s.metrics.ObserveRaceRetry()
		s.logger.WithFields(logrus.Fields{
			"product_id":  rv.ProductID,
			"customer_id": rv.CustomerID,
		}).Info("review upsert lost insert race, retrying as update")
		out, created, err = s.repo.Upsert(ctx, rv)
	}
	s.metrics.ObserveUpsert(created, err)
	if err != nil {
		return nil, false, fmt.Errorf("upsert review product=%d customer=%d: %w", rv.ProductID, rv.CustomerID, err)
	}
	return out, created, nil
}

func (s *Service) build(in UpsertInput) (domain.Review, error) {
	if in.ProductID <= 0 {
		return domain.Review{}, domain.NewValidationError("product_id", "is required")
	}
	if in.CustomerID <= 0 {
		return domain.Review{}, domain.NewValidationError("customer_id", "is required")
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return domain.Review{}, domain.NewValidationError("rating",
			fmt.Sprintf("must be an integer between %d and %d", domain.MinRating, domain.MaxRating))
	}
	comment := in.Comment
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	reviewedAt := in.ReviewedAt
	if reviewedAt.IsZero() {
		reviewedAt = s.now()
	}
	return domain.Review{
		ProductID:          in.ProductID,
		CustomerID:         in.CustomerID,
		Rating:             in.Rating,
		Comment:            comment,
		IsVerifiedPurchase: in.IsVerifiedPurchase,
		ReviewedAt:         reviewedAt.UTC(),
	}, nil
}

func (s *Service) parentsExist(ctx context.Context, productID, customerID int64) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferentialError{Field: "product_id", ID: productID}
		}
		return fmt.Errorf("lookup product %d: %w", productID, err)
	}
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferentialError{Field: "customer_id", ID: customerID}
		}
		return fmt.Errorf("lookup customer %d: %w", customerID, err)
	}
	return nil
}

// Summary recomputes the rating aggregate for a product. The product must exist.
func (s *Service) Summary(ctx context.Context, productID int64) (domain.ReviewSummary, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return domain.ReviewSummary{}, err
	}
	return s.repo.Summary(ctx, productID)
}

// AverageRating returns the mean rating, or nil when the product has no reviews.
func (s *Service) AverageRating(ctx context.Context, productID int64) (*float64, error) {
	sum, err := s.Summary(ctx, productID)
	if err != nil {
		return nil, err
	}
	return sum.AverageRating, nil
}

func (s *Service) ReviewCount(ctx context.Context, productID int64) (int, error) {
	sum, err := s.Summary(ctx, productID)
	if err != nil {
		return 0, err
	}
	return sum.ReviewCount, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Review, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
