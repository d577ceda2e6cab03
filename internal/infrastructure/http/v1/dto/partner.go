package dto

import (
	"makhzan/internal/domain/catalogs/partner"
)

// CreatePartnerRequest for creating partners.
type CreatePartnerRequest struct {
	Name  string       `json:"name" binding:"required"`
	Type  partner.Type `json:"type" binding:"required"`
	Phone string       `json:"phone"`
	Email string       `json:"email"`
}

// ToEntity builds a new Partner.
func (r CreatePartnerRequest) ToEntity() *partner.Partner {
	return partner.New(r.Name, r.Type, r.Phone, r.Email)
}

// UpdatePartnerRequest for updating partners. All fields are replaced.
type UpdatePartnerRequest struct {
	Name  string       `json:"name" binding:"required"`
	Type  partner.Type `json:"type" binding:"required"`
	Phone string       `json:"phone"`
	Email string       `json:"email"`
}

// ApplyTo overwrites the partner's mutable fields.
func (r UpdatePartnerRequest) ApplyTo(p *partner.Partner) {
	p.Name = r.Name
	p.Type = r.Type
	p.Phone = r.Phone
	p.Email = r.Email
}
