// Package partner provides the Partner catalog (الجهات).
// Partners are the suppliers and customers referenced by documents.
package partner

import (
	"context"
	"regexp"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Type defines the kind of partner.
type Type string

const (
	TypeSupplier Type = "SUPPLIER" // مورد
	TypeCustomer Type = "CUSTOMER" // عميل
)

// Valid reports whether t is a known partner type.
func (t Type) Valid() bool {
	switch t {
	case TypeSupplier, TypeCustomer:
		return true
	}
	return false
}

// Partner represents a supplier or customer.
type Partner struct {
	// ID is immutable once created.
	ID id.ID `json:"id"`

	// Name is the display name (required).
	Name string `json:"name"`

	// Type determines which document kinds reference this partner.
	Type Type `json:"type"`

	// Phone is used for WhatsApp sharing.
	Phone string `json:"phone"`

	// Email is optional.
	Email string `json:"email,omitempty"`
}

// New creates a Partner with a generated id.
func New(name string, partnerType Type, phone, email string) *Partner {
	return &Partner{
		ID:    id.New(),
		Name:  name,
		Type:  partnerType,
		Phone: phone,
		Email: email,
	}
}

// Validate checks partner invariants.
func (p *Partner) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !p.Type.Valid() {
		return apperror.NewValidation("invalid partner type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.Email != "" && !emailRE.MatchString(p.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
