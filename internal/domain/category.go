package domain

import "time"

// CategorySlugConstraint is the unique index guarding category slugs.
const CategorySlugConstraint = "categories_slug_key"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=255"`
	Slug      string    `json:"slug" validate:"required,max=255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CategoryPatch struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Slug *string `json:"slug" validate:"omitempty,max=255"`
}

func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
}
