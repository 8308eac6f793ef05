package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

// parseID reads a positive int64 path parameter.
func parseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(param, "must be a positive integer")
	}
	return id, nil
}

type customerRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	IsPremium bool    `json:"is_premium"`
}

func (r customerRequest) toDomain() (domain.Customer, error) {
	c := domain.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		IsPremium: r.IsPremium,
	}
	if r.BirthDate != nil && *r.BirthDate != "" {
		d, err := parseDate(*r.BirthDate)
		if err != nil {
			return c, domain.NewValidationError("birth_date", "must be a date (YYYY-MM-DD)")
		}
		c.BirthDate = &d
	}
	return c, nil
}

func (h *handlers) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	in, err := req.toDomain()
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.CustomerSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *handlers) listCustomers(c *gin.Context) {
	list, err := h.deps.CustomerSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *handlers) getCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.CustomerSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type customerPatchRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	IsPremium *bool   `json:"is_premium"`
}

func (h *handlers) updateCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req customerPatchRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	patch := domain.CustomerPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsPremium: req.IsPremium,
	}
	if req.BirthDate != nil {
		d, err := parseDate(*req.BirthDate)
		if err != nil {
			h.writeError(c, domain.NewValidationError("birth_date", "must be a date (YYYY-MM-DD)"))
			return
		}
		patch.BirthDate = &d
	}
	out, err := h.deps.CustomerSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.deps.CustomerSvc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listCustomerReviews(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	list, err := h.deps.ReviewSvc.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
