package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type categoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *handlers) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.CategorySvc.Create(c.Request.Context(), domain.Category{Name: req.Name, Slug: req.Slug})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *handlers) listCategories(c *gin.Context) {
	list, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *handlers) getCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.CategorySvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) updateCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var patch domain.CategoryPatch
	if err := bindJSON(c, &patch); err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.deps.CategorySvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// deleteCategory removes the category along with its products and their reviews.
func (h *handlers) deleteCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.deps.CategorySvc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
