// internal/core/domain/customer.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer tracked by the client.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerForm is the customer create/edit form table.
func CustomerForm() FormSpec {
	return FormSpec{
		Entity: EntityCustomer,
		Fields: []Field{
			{Name: "name", Kind: KindText},
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

// CustomerFromForm builds the customer payload submitted to the backend.
func CustomerFromForm(s *FormState) *Customer {
	return &Customer{
		Name:    s.String("name"),
		Phone:   s.String("phone"),
		Email:   s.String("email"),
		Address: s.String("address"),
		Active:  s.Bool("active"),
	}
}

// FormValues flattens an existing customer into form fields for editing.
func (c *Customer) FormValues() map[string]any {
	return map[string]any{
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
		"active":  c.Active,
	}
}

// OptionLabel renders the picker label for this customer.
func (c *Customer) OptionLabel() OptionRef {
	return OptionRef{Value: c.ID.String(), Label: c.Name}
}
