package httpserver

import (
	"context"

	"storefront/internal/domain"
	reviewsvc "storefront/internal/service/review"
)

// Deps are the services the handlers call.
type Deps struct {
	CustomerSvc CustomerService
	CategorySvc CategoryService
	ProductSvc  ProductService
	ReviewSvc   ReviewService
}

type CustomerService interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type ProductService interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewService interface {
	Upsert(ctx context.Context, in reviewsvc.UpsertInput) (*domain.Review, bool, error)
	Get(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Review, error)
	Summary(ctx context.Context, productID int64) (domain.ReviewSummary, error)
	Delete(ctx context.Context, id int64) error
}
