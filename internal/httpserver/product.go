package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *handlers) createProduct(c *gin.Context) {
	var in domain.Product
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, err)
		return
	}
	in.ID = 0
	out, err := h.deps.ProductSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// listProducts accepts optional category_id and active query filters.
func (h *handlers) listProducts(c *gin.Context) {
	var filter domain.ProductFilter
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			h.writeError(c, domain.NewValidationError("category_id", "must be a positive integer"))
			return
		}
		filter.CategoryID = id
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(c, domain.NewValidationError("active", "must be true or false"))
			return
		}
		filter.Active = &active
	}
	list, err := h.deps.ProductSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.ProductSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var patch domain.ProductPatch
	if err := bindJSON(c, &patch); err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.ProductSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
