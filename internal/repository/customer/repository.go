package customer

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches customers.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	// UpsertByEmail inserts c or overwrites the customer holding the same email.
	// created is false when an existing row was updated.
	UpsertByEmail(ctx context.Context, c domain.Customer) (customer *domain.Customer, created bool, err error)
	Delete(ctx context.Context, id int64) error
}
