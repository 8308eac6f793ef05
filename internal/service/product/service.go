package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/logging"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/validate"
)

// CategoryLookup is the slice of the category repository the product service needs.
type CategoryLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

type Service struct {
	repo       productrepo.Repository
	categories CategoryLookup
	logger     logrus.FieldLogger
}

func New(repo productrepo.Repository, categories CategoryLookup, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, categories: categories, logger: logging.OrDiscard(logger)}
}

func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"product_id": out.ID, "category_id": out.CategoryID}).Info("product created")
	return out, nil
}

// UpsertByName overwrites the product with p's name or inserts p.
func (s *Service) UpsertByName(ctx context.Context, p domain.Product) (*domain.Product, bool, error) {
	if err := s.prepare(ctx, &p); err != nil {
		return nil, false, err
	}
	out, created, err := s.repo.UpsertByName(ctx, p)
	if err != nil {
		return nil, false, fmt.Errorf("upsert product %q: %w", p.Name, err)
	}
	return out, created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	if err := s.prepare(ctx, current); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return out, nil
}

// Delete removes the product together with its reviews.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) prepare(ctx context.Context, p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.ImageURL != nil && strings.TrimSpace(*p.ImageURL) == "" {
		p.ImageURL = nil
	}
	if err := validate.Struct(*p); err != nil {
		return err
	}
	price, err := money("price", p.Price, domain.MaxPrice)
	if err != nil {
		return err
	}
	p.Price = price
	if p.Weight != nil {
		w, err := money("weight", *p.Weight, domain.MaxWeight)
		if err != nil {
			return err
		}
		p.Weight = &w
	}
	return s.categoryExists(ctx, p.CategoryID)
}

func (s *Service) categoryExists(ctx context.Context, id int64) error {
	_, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ReferentialError{Field: "category_id", ID: id}
	}
	if err != nil {
		return fmt.Errorf("lookup category %d: %w", id, err)
	}
	return nil
}

// money rounds d to the column scale and checks it is in [0, max).
func money(field string, d, limit decimal.Decimal) (decimal.Decimal, error) {
	d = d.Round(domain.MoneyScale)
	if d.IsNegative() {
		return d, domain.NewValidationError(field, "must not be negative")
	}
	if d.GreaterThanOrEqual(limit) {
		return d, domain.NewValidationError(field, "must be less than "+limit.String())
	}
	return d, nil
}
