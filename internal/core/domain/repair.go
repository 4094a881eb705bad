// internal/core/domain/repair.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepairStatus represents the workshop state of a repair job.
type RepairStatus string

// Repair status constants
const (
	RepairReceived   RepairStatus = "received"
	RepairInProgress RepairStatus = "in_progress"
	RepairReady      RepairStatus = "ready"
	RepairDelivered  RepairStatus = "delivered"
)

// Repair is a customer repair job.
type Repair struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
	Paid        decimal.Decimal `json:"paid"`
	Status      RepairStatus    `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RepairForm is the repair create/edit form table.
func RepairForm() FormSpec {
	return FormSpec{
		Entity: EntityRepair,
		Fields: []Field{
			{Name: "customer", Kind: KindOption},
			{Name: "product", Kind: KindOption},
			{Name: "description", Kind: KindText},
			{Name: "cost", Kind: KindDecimal},
			{Name: "paid", Kind: KindDecimal},
		},
		Derivations: []Derivation{
			{
				Triggers: []string{"cost", "paid"},
				Target:   "paid",
				Compute: func(s *FormState) any {
					return clampPaid(s.Decimal("paid"), s.Decimal("cost"))
				},
			},
		},
		Rules: []Rule{
			{Field: "customer", Tag: "required", Message: "Customer is required"},
			{Field: "description", Tag: "required", Message: "Description is required"},
			{Field: "cost", Tag: "gte=0", Message: "Cost cannot be negative"},
			{Field: "paid", Tag: "gte=0", Message: "Paid amount cannot be negative"},
		},
	}
}

// RepairRemaining is the open balance on a repair form.
func RepairRemaining(s *FormState) decimal.Decimal {
	return s.Decimal("cost").Sub(s.Decimal("paid"))
}

// RepairFromForm builds the repair payload submitted to the backend.
func RepairFromForm(s *FormState) *Repair {
	customer, _ := uuid.Parse(s.Option("customer").Value)
	product, _ := uuid.Parse(s.Option("product").Value)
	return &Repair{
		CustomerID:  customer,
		ProductID:   product,
		Description: s.String("description"),
		Cost:        s.Decimal("cost"),
		Paid:        s.Decimal("paid"),
	}
}

// FormValues flattens an existing repair into form fields for editing.
func (r *Repair) FormValues() map[string]any {
	return map[string]any{
		"customer":    OptionRef{Value: r.CustomerID.String()},
		"product":     OptionRef{Value: r.ProductID.String()},
		"description": r.Description,
		"cost":        r.Cost,
		"paid":        r.Paid,
	}
}
