package category

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository/category"
	"storefront/internal/validate"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	normalize(&c)
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
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
	return s.repo.Update(ctx, *current)
}

func (s *Service) UpsertBySlug(ctx context.Context, c domain.Category) (*domain.Category, error) {
	normalize(&c)
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	out, err := s.repo.UpsertBySlug(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("upsert category %s: %w", c.Slug, err)
	}
	return out, nil
}

// Delete removes the category, its products and their reviews.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// normalize derives a slug from the name when none is given.
func normalize(c *domain.Category) {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
}

// Slugify lower-cases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
