package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	reviewsvc "storefront/internal/service/review"
)

type reviewRequest struct {
	Rating             *int       `json:"rating"`
	Comment            *string    `json:"comment"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	IsVerifiedPurchase bool       `json:"is_verified_purchase"`
}

// upsertReview writes the review keyed by the product and customer in the path.
// It answers 201 when a review was created and 200 when an existing one was replaced.
func (h *handlers) upsertReview(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	customerID, err := parseID(c, "customerId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req reviewRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	if req.Rating == nil {
		h.writeError(c, domain.NewValidationError("rating", "is required"))
		return
	}
	in := reviewsvc.UpsertInput{
		ProductID:          productID,
		CustomerID:         customerID,
		Rating:             *req.Rating,
		Comment:            req.Comment,
		IsVerifiedPurchase: req.IsVerifiedPurchase,
	}
	if req.ReviewedAt != nil {
		in.ReviewedAt = *req.ReviewedAt
	}
	out, created, err := h.deps.ReviewSvc.Upsert(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, out)
}

func (h *handlers) listProductReviews(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	list, err := h.deps.ReviewSvc.ListByProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *handlers) productRating(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	sum, err := h.deps.ReviewSvc.Summary(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *handlers) getReview(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.ReviewSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) deleteReview(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.deps.ReviewSvc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
