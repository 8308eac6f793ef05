package domain

import "time"

// CustomerEmailConstraint is the unique index guarding customer emails.
const CustomerEmailConstraint = "customers_email_key"

// Customer represents a shopper who may review products.
type Customer struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	Email     string     `json:"email" validate:"required,email,max=255"`
	Phone     *string    `json:"phone,omitempty" validate:"omitempty,max=255"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	IsPremium bool       `json:"is_premium"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CustomerPatch carries a partial customer update; nil fields are left untouched.
type CustomerPatch struct {
	FirstName *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=100"`
	Email     *string    `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string    `json:"phone" validate:"omitempty,max=255"`
	BirthDate *time.Time `json:"birth_date"`
	IsPremium *bool      `json:"is_premium"`
}

// Apply merges the non-nil patch fields onto c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = p.Phone
	}
	if p.BirthDate != nil {
		c.BirthDate = p.BirthDate
	}
	if p.IsPremium != nil {
		c.IsPremium = *p.IsPremium
	}
}
