package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5

	// ReviewPairConstraint is the unique index allowing one review per customer per product.
	ReviewPairConstraint = "reviews_product_id_customer_id_key"
)

// Review is a customer's rating of a product. Both parents are referenced by id only.
type Review struct {
	ID                 int64     `json:"id"`
	ProductID          int64     `json:"product_id"`
	CustomerID         int64     `json:"customer_id"`
	Rating             int       `json:"rating"`
	Comment            *string   `json:"comment,omitempty"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	ReviewedAt         time.Time `json:"reviewed_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ReviewSummary holds the on-demand aggregate of a product's reviews.
// AverageRating is nil when the product has no reviews.
type ReviewSummary struct {
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
}
