// internal/core/domain/returns.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Return records stock coming back from a delivered order.
type Return struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	Quantity     int             `json:"quantity"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Reason       string          `json:"reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ReturnForm is the return create/edit form table. The refund is clamped
// to what was actually paid on the order, the same rule every other money
// pair in the client follows.
func ReturnForm() FormSpec {
	return FormSpec{
		Entity: EntityReturn,
		Fields: []Field{
			{Name: "order", Kind: KindOption},
			{Name: "quantity", Kind: KindInt, Default: 1},
			{Name: "refundAmount", Kind: KindDecimal},
			{Name: "totalPaid", Kind: KindDecimal},
			{Name: "reason", Kind: KindText},
		},
		Derivations: []Derivation{
			{
				Triggers: []string{"refundAmount", "totalPaid"},
				Target:   "refundAmount",
				Compute: func(s *FormState) any {
					return clampPaid(s.Decimal("refundAmount"), s.Decimal("totalPaid"))
				},
			},
		},
		Rules: []Rule{
			{Field: "order", Tag: "required", Message: "Order is required"},
			{Field: "quantity", Tag: "gt=0", Message: "Quantity must be positive"},
			{Field: "refundAmount", Tag: "gte=0", Message: "Refund amount cannot be negative"},
		},
	}
}

// ReturnFromForm builds the return payload submitted to the backend.
func ReturnFromForm(s *FormState) *Return {
	order, _ := uuid.Parse(s.Option("order").Value)
	return &Return{
		OrderID:      order,
		Quantity:     s.Int("quantity"),
		RefundAmount: s.Decimal("refundAmount"),
		TotalPaid:    s.Decimal("totalPaid"),
		Reason:       s.String("reason"),
	}
}

// FormValues flattens an existing return into form fields for editing.
func (r *Return) FormValues() map[string]any {
	return map[string]any{
		"order":        OptionRef{Value: r.OrderID.String()},
		"quantity":     r.Quantity,
		"refundAmount": r.RefundAmount,
		"totalPaid":    r.TotalPaid,
		"reason":       r.Reason,
	}
}
