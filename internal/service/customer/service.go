package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/logging"
	custrepo "storefront/internal/repository/customer"
	"storefront/internal/validate"
)

// Service handles customer records. Duplicate emails fail Create with a
// ConstraintViolation; UpsertByEmail is the reconciling variant.
type Service struct {
	repo   custrepo.Repository
	logger logrus.FieldLogger
}

func New(repo custrepo.Repository, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, logger: logging.OrDiscard(logger)}
}

// Create validates and inserts a new customer.
func (s *Service) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	normalize(&c)
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.logger.WithField("customer_id", out.ID).Info("customer created")
	return out, nil
}

// UpsertByEmail creates the customer or overwrites the one with the same email.
func (s *Service) UpsertByEmail(ctx context.Context, c domain.Customer) (*domain.Customer, bool, error) {
	normalize(&c)
	if err := validate.Struct(c); err != nil {
		return nil, false, err
	}
	out, created, err := s.repo.UpsertByEmail(ctx, c)
	if err != nil {
		return nil, false, fmt.Errorf("upsert customer %s: %w", c.Email, err)
	}
	return out, created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

// Update merges patch onto the stored customer and saves the result.
func (s *Service) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	normalize(current)
	if err := validate.Struct(*current); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}
	return out, nil
}

// Delete removes the customer together with every review they wrote.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("customer_id", id).Info("customer deleted")
	return nil
}

func normalize(c *domain.Customer) {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	if c.Phone != nil && strings.TrimSpace(*c.Phone) == "" {
		c.Phone = nil
	}
	if c.BirthDate != nil {
		d := c.BirthDate.UTC().Truncate(24 * time.Hour)
		c.BirthDate = &d
	}
}
