// internal/core/domain/supplier.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a source of purchased stock.
type Supplier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierForm is the supplier create/edit form table.
func SupplierForm() FormSpec {
	return FormSpec{
		Entity: EntitySupplier,
		Fields: []Field{
			{Name: "name", Kind: KindText},
			{Name: "company", Kind: KindText},
			{Name: "phone", Kind: KindPhone},
			{Name: "email", Kind: KindEmail},
			{Name: "address", Kind: KindText},
			{Name: "active", Kind: KindBool, Default: true},
		},
		Rules: []Rule{
			{Field: "name", Tag: "required", Message: "Name is required"},
			{Field: "name", Tag: "min=2", Message: "Name must be at least 2 characters"},
			{Field: "phone", Tag: "phone", Message: "Phone number is invalid"},
			{Field: "email", Tag: "omitempty,email", Message: "Email address is invalid"},
		},
	}
}

// SupplierFromForm builds the supplier payload submitted to the backend.
func SupplierFromForm(s *FormState) *Supplier {
	return &Supplier{
		Name:    s.String("name"),
		Company: s.String("company"),
		Phone:   s.String("phone"),
		Email:   s.String("email"),
		Address: s.String("address"),
		Active:  s.Bool("active"),
	}
}

// FormValues flattens an existing supplier into form fields for editing.
func (s *Supplier) FormValues() map[string]any {
	return map[string]any{
		"name":    s.Name,
		"company": s.Company,
		"phone":   s.Phone,
		"email":   s.Email,
		"address": s.Address,
		"active":  s.Active,
	}
}

// OptionLabel renders the picker label for this supplier.
func (s *Supplier) OptionLabel() OptionRef {
	return OptionRef{Value: s.ID.String(), Label: s.Name}
}
