// internal/core/domain/product.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry backed by stock.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Barcode     string          `json:"barcode,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ForSale     bool            `json:"for_sale"`
	InRepair    bool            `json:"in_repair"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductForm is the product create/edit form table.
func ProductForm() FormSpec {
	return FormSpec{
		Entity: EntityProduct,
		Fields: []Field{
			{Name: "name", Kind: KindText},
			{Name: "barcode", Kind: KindText},
			{Name: "price", Kind: KindDecimal},
			{Name: "forSale", Kind: KindBool, Default: true},
			{Name: "description", Kind: KindText},
		},
		Rules: []Rule{
			{Field: "name", Tag: "required", Message: "Name is required"},
			{Field: "name", Tag: "min=2", Message: "Name must be at least 2 characters"},
			{Field: "price", Tag: "gte=0", Message: "Price cannot be negative"},
		},
	}
}

// ProductFromForm builds the product payload submitted to the backend.
func ProductFromForm(s *FormState) *Product {
	return &Product{
		Name:        s.String("name"),
		Barcode:     s.String("barcode"),
		Price:       s.Decimal("price"),
		ForSale:     s.Bool("forSale"),
		Description: s.String("description"),
	}
}

// FormValues flattens an existing product into form fields for editing.
func (p *Product) FormValues() map[string]any {
	return map[string]any{
		"name":        p.Name,
		"barcode":     p.Barcode,
		"price":       p.Price,
		"forSale":     p.ForSale,
		"description": p.Description,
	}
}
