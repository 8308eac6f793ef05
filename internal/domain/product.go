package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scale of the price and weight columns.
const MoneyScale = 2

var (
	// MaxPrice is the exclusive upper bound of NUMERIC(10,2).
	MaxPrice = decimal.New(1, 8)
	// MaxWeight is the exclusive upper bound of NUMERIC(5,2).
	MaxWeight = decimal.New(1, 3)
)

// Product is a catalog item belonging to exactly one category.
type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	Price       decimal.Decimal  `json:"price"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Stock       int              `json:"stock" validate:"gte=0"`
	IsActive    bool             `json:"is_active"`
	CategoryID  int64            `json:"category_id" validate:"required,gt=0"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductPatch carries a partial product update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url,max=2048"`
	Price       *decimal.Decimal `json:"price"`
	Weight      *decimal.Decimal `json:"weight"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
}

func (p ProductPatch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.ImageURL != nil {
		prod.ImageURL = p.ImageURL
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Weight != nil {
		prod.Weight = p.Weight
	}
	if p.Stock != nil {
		prod.Stock = *p.Stock
	}
	if p.IsActive != nil {
		prod.IsActive = *p.IsActive
	}
	if p.CategoryID != nil {
		prod.CategoryID = *p.CategoryID
	}
}

// ProductFilter narrows product listings. Zero values match everything.
type ProductFilter struct {
	CategoryID int64
	Active     *bool
}
