// internal/core/domain/stock.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is a purchased lot held for resale.
type Stock struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Active        bool            `json:"active"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockForm mirrors the order form's two derivation directions for the
// cost side: quantity and purchasePrice drive totalCost, a direct
// totalCost edit drives purchasePrice while quantity is positive.
func StockForm() FormSpec {
	return FormSpec{
		Entity: EntityStock,
		Fields: []Field{
			{Name: "name", Kind: KindText},
			{Name: "supplier", Kind: KindOption},
			{Name: "quantity", Kind: KindInt, Default: 1},
			{Name: "purchasePrice", Kind: KindDecimal},
			{Name: "sellPrice", Kind: KindDecimal},
			{Name: "totalCost", Kind: KindDecimal},
			{Name: "active", Kind: KindBool, Default: true},
			{Name: "note", Kind: KindText},
		},
		Derivations: []Derivation{
			{
				Triggers: []string{"quantity", "purchasePrice"},
				Target:   "totalCost",
				Compute: func(s *FormState) any {
					q := decimal.NewFromInt(int64(s.Int("quantity")))
					return Round4(q.Mul(s.Decimal("purchasePrice")))
				},
			},
			{
				Triggers: []string{"totalCost"},
				Target:   "purchasePrice",
				Compute: func(s *FormState) any {
					q := s.Int("quantity")
					if q <= 0 {
						return s.Decimal("purchasePrice")
					}
					return Round4(s.Decimal("totalCost").Div(decimal.NewFromInt(int64(q))))
				},
			},
		},
		Rules: []Rule{
			{Field: "name", Tag: "required", Message: "Name is required"},
			{Field: "name", Tag: "min=2", Message: "Name must be at least 2 characters"},
			{Field: "quantity", Tag: "gte=0", Message: "Quantity cannot be negative"},
			{Field: "purchasePrice", Tag: "gte=0", Message: "Purchase price cannot be negative"},
			{Field: "sellPrice", Tag: "gt=0", Message: "Sell price must be positive"},
		},
	}
}

// StockFromForm builds the stock payload submitted to the backend.
func StockFromForm(s *FormState) *Stock {
	supplier, _ := uuid.Parse(s.Option("supplier").Value)
	return &Stock{
		Name:          s.String("name"),
		SupplierID:    supplier,
		Quantity:      s.Int("quantity"),
		PurchasePrice: s.Decimal("purchasePrice"),
		SellPrice:     s.Decimal("sellPrice"),
		TotalCost:     s.Decimal("totalCost"),
		Active:        s.Bool("active"),
		Note:          s.String("note"),
	}
}

// FormValues flattens an existing stock into form fields for editing.
func (st *Stock) FormValues() map[string]any {
	return map[string]any{
		"name":          st.Name,
		"supplier":      OptionRef{Value: st.SupplierID.String()},
		"quantity":      st.Quantity,
		"purchasePrice": st.PurchasePrice,
		"sellPrice":     st.SellPrice,
		"totalCost":     st.TotalCost,
		"active":        st.Active,
		"note":          st.Note,
	}
}

// OrderDefaults seeds a dependent order form from this stock's live price
// and quantity, resolved via getById just before the order is created.
func (st *Stock) OrderDefaults() map[string]any {
	return map[string]any{
		"stock":         OptionRef{Value: st.ID.String(), Label: st.Name},
		"unitPrice":     st.SellPrice,
		"baseUnitPrice": st.PurchasePrice,
		"totalPrice":    st.SellPrice,
		"quantity":      1,
	}
}
