package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	// UpsertByName overwrites the oldest product with the same name, or inserts p.
	UpsertByName(ctx context.Context, p domain.Product) (product *domain.Product, created bool, err error)
	// Delete removes the product and, through the schema, its reviews.
	Delete(ctx context.Context, id int64) error
}
