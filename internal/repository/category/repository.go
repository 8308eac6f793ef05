package category

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	UpsertBySlug(ctx context.Context, c domain.Category) (*domain.Category, error)
	// Delete removes the category; its products and their reviews go with it.
	Delete(ctx context.Context, id int64) error
}
