// internal/core/domain/order.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// Order status constants
const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a sale of stock to a customer.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	StockID       uuid.UUID       `json:"stock_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	BaseUnitPrice decimal.Decimal `json:"base_unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Status        OrderStatus     `json:"status"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderForm is the derivation and validation table for the order form.
//
// Editing quantity or unitPrice recomputes totalPrice; editing totalPrice
// directly recomputes unitPrice, but only while quantity is positive so the
// division can never blow up. totalPaid is clamped to the total after any
// edit that can move either side of that bound.
func OrderForm() FormSpec {
	return FormSpec{
		Entity: EntityOrder,
		Fields: []Field{
			{Name: "customer", Kind: KindOption},
			{Name: "stock", Kind: KindOption},
			{Name: "quantity", Kind: KindInt, Default: 1},
			{Name: "unitPrice", Kind: KindDecimal},
			{Name: "baseUnitPrice", Kind: KindDecimal},
			{Name: "totalPrice", Kind: KindDecimal},
			{Name: "totalPaid", Kind: KindDecimal},
			{Name: "note", Kind: KindText},
		},
		Derivations: []Derivation{
			{
				Triggers: []string{"quantity", "unitPrice"},
				Target:   "totalPrice",
				Compute: func(s *FormState) any {
					q := decimal.NewFromInt(int64(s.Int("quantity")))
					return Round4(q.Mul(s.Decimal("unitPrice")))
				},
			},
			{
				Triggers: []string{"totalPrice"},
				Target:   "unitPrice",
				Compute: func(s *FormState) any {
					q := s.Int("quantity")
					if q <= 0 {
						return s.Decimal("unitPrice")
					}
					return Round4(s.Decimal("totalPrice").Div(decimal.NewFromInt(int64(q))))
				},
			},
			{
				Triggers: []string{"quantity", "unitPrice", "totalPrice", "totalPaid"},
				Target:   "totalPaid",
				Compute: func(s *FormState) any {
					return clampPaid(s.Decimal("totalPaid"), s.Decimal("totalPrice"))
				},
			},
		},
		Rules: []Rule{
			{Field: "customer", Tag: "required", Message: "Customer is required"},
			{Field: "stock", Tag: "required", Message: "Stock is required"},
			{Field: "quantity", Tag: "gt=0", Message: "Quantity must be positive"},
			{Field: "unitPrice", Tag: "gte=0", Message: "Unit price cannot be negative"},
			{Field: "totalPaid", Tag: "gte=0", Message: "Paid amount cannot be negative"},
		},
	}
}

// OrderTotals are the read-only numbers derived from the order form. They
// are recomputed on demand rather than stored.
type OrderTotals struct {
	Profit    decimal.Decimal
	Remaining decimal.Decimal
	Margin    decimal.Decimal
}

// ComputeOrderTotals derives profit, remaining balance and margin percent
// from the current form values.
func ComputeOrderTotals(s *FormState) OrderTotals {
	q := decimal.NewFromInt(int64(s.Int("quantity")))
	total := s.Decimal("totalPrice")
	totalBase := s.Decimal("baseUnitPrice").Mul(q)
	profit := total.Sub(totalBase)

	margin := decimal.Zero
	if totalBase.IsPositive() {
		margin = profit.Div(totalBase).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return OrderTotals{
		Profit:    profit,
		Remaining: total.Sub(s.Decimal("totalPaid")),
		Margin:    margin,
	}
}

// OrderFromForm builds the order payload submitted to the backend.
func OrderFromForm(s *FormState) *Order {
	customer, _ := uuid.Parse(s.Option("customer").Value)
	stock, _ := uuid.Parse(s.Option("stock").Value)
	return &Order{
		CustomerID:    customer,
		StockID:       stock,
		Quantity:      s.Int("quantity"),
		UnitPrice:     s.Decimal("unitPrice"),
		BaseUnitPrice: s.Decimal("baseUnitPrice"),
		TotalPrice:    s.Decimal("totalPrice"),
		TotalPaid:     s.Decimal("totalPaid"),
		Note:          s.String("note"),
	}
}

// FormValues flattens an existing order into form fields for editing.
// Option labels are recovered from the option cache by the form controller.
func (o *Order) FormValues() map[string]any {
	return map[string]any{
		"customer":      OptionRef{Value: o.CustomerID.String()},
		"stock":         OptionRef{Value: o.StockID.String()},
		"quantity":      o.Quantity,
		"unitPrice":     o.UnitPrice,
		"baseUnitPrice": o.BaseUnitPrice,
		"totalPrice":    o.TotalPrice,
		"totalPaid":     o.TotalPaid,
		"note":          o.Note,
	}
}
