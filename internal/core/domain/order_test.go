// internal/core/domain/order_test.go
package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stockline/stockline-go/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderForm_TotalPriceDerivation(t *testing.T) {
	tests := []struct {
		name  string
		edits []struct {
			field string
			value any
		}
		wantTotal     string
		wantUnitPrice string
	}{
		{
			name: "quantity_times_unit_price",
			edits: []struct {
				field string
				value any
			}{
				{"quantity", 3},
				{"unitPrice", "10"},
			},
			wantTotal:     "30",
			wantUnitPrice: "10",
		},
		{
			name: "rounds_to_four_decimals",
			edits: []struct {
				field string
				value any
			}{
				{"quantity", 3},
				{"unitPrice", "0.33333"},
			},
			wantTotal:     "1",
			wantUnitPrice: "0.33333",
		},
		{
			name: "editing_total_derives_unit_price",
			edits: []struct {
				field string
				value any
			}{
				{"quantity", 4},
				{"totalPrice", "10"},
			},
			wantTotal:     "10",
			wantUnitPrice: "2.5",
		},
		{
			name: "total_division_rounds_to_four_decimals",
			edits: []struct {
				field string
				value any
			}{
				{"quantity", 3},
				{"totalPrice", "10"},
			},
			wantTotal:     "10",
			wantUnitPrice: "3.3333",
		},
		{
			name: "zero_quantity_leaves_unit_price_untouched",
			edits: []struct {
				field string
				value any
			}{
				{"quantity", 0},
				{"unitPrice", "7"},
				{"totalPrice", "99"},
			},
			wantTotal:     "99",
			wantUnitPrice: "7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.OrderForm().NewState()
			for _, e := range tt.edits {
				s.Set(e.field, e.value)
			}
			assert.True(t, s.Decimal("totalPrice").Equal(dec(tt.wantTotal)),
				"totalPrice: want %s got %s", tt.wantTotal, s.Decimal("totalPrice"))
			assert.True(t, s.Decimal("unitPrice").Equal(dec(tt.wantUnitPrice)),
				"unitPrice: want %s got %s", tt.wantUnitPrice, s.Decimal("unitPrice"))
		})
	}
}

func TestOrderForm_InvariantHoldsAcrossEditSequences(t *testing.T) {
	// totalPrice == round(q*u, 4) must hold immediately after every
	// quantity or unitPrice edit, whatever came before.
	s := domain.OrderForm().NewState()
	edits := []struct {
		field string
		value any
	}{
		{"quantity", 2},
		{"unitPrice", "3.7"},
		{"quantity", 5},
		{"totalPrice", "100"},
		{"unitPrice", "0.0001"},
		{"quantity", 9},
	}
	for _, e := range edits {
		s.Set(e.field, e.value)
		if e.field == "quantity" || e.field == "unitPrice" {
			q := decimal.NewFromInt(int64(s.Int("quantity")))
			want := domain.Round4(q.Mul(s.Decimal("unitPrice")))
			assert.True(t, s.Decimal("totalPrice").Equal(want),
				"after editing %s: want %s got %s", e.field, want, s.Decimal("totalPrice"))
		}
	}
}

func TestOrderForm_TotalPaidClamp(t *testing.T) {
	s := domain.OrderForm().NewState()
	s.Set("quantity", 3)
	s.Set("unitPrice", "10")
	assert.True(t, s.Decimal("totalPrice").Equal(dec("30")))

	// Paying more than the total clamps to the total.
	s.Set("totalPaid", "50")
	assert.True(t, s.Decimal("totalPaid").Equal(dec("30")),
		"totalPaid: got %s", s.Decimal("totalPaid"))

	totals := domain.ComputeOrderTotals(s)
	assert.True(t, totals.Remaining.IsZero(), "remaining: got %s", totals.Remaining)

	// Shrinking the total pulls the paid amount down with it.
	s.Set("totalPrice", "20")
	assert.True(t, s.Decimal("totalPaid").Equal(dec("20")),
		"totalPaid after price cut: got %s", s.Decimal("totalPaid"))
}

func TestComputeOrderTotals(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		baseUnitPrice string
		totalPrice    string
		totalPaid     string
		wantProfit    string
		wantRemaining string
		wantMargin    string
	}{
		{
			name:          "profit_and_margin",
			quantity:      3,
			baseUnitPrice: "8",
			totalPrice:    "30",
			totalPaid:     "0",
			wantProfit:    "6",
			wantRemaining: "30",
			wantMargin:    "25.0",
		},
		{
			name:          "zero_base_yields_zero_margin",
			quantity:      3,
			baseUnitPrice: "0",
			totalPrice:    "30",
			totalPaid:     "10",
			wantProfit:    "30",
			wantRemaining: "20",
			wantMargin:    "0",
		},
		{
			name:          "negative_profit",
			quantity:      2,
			baseUnitPrice: "10",
			totalPrice:    "15",
			totalPaid:     "15",
			wantProfit:    "-5",
			wantRemaining: "0",
			wantMargin:    "-25.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.OrderForm().NewState()
			s.Put("quantity", tt.quantity)
			s.Put("baseUnitPrice", tt.baseUnitPrice)
			s.Put("totalPrice", tt.totalPrice)
			s.Put("totalPaid", tt.totalPaid)

			totals := domain.ComputeOrderTotals(s)
			assert.True(t, totals.Profit.Equal(dec(tt.wantProfit)),
				"profit: want %s got %s", tt.wantProfit, totals.Profit)
			assert.True(t, totals.Remaining.Equal(dec(tt.wantRemaining)),
				"remaining: want %s got %s", tt.wantRemaining, totals.Remaining)
			assert.True(t, totals.Margin.Equal(dec(tt.wantMargin)),
				"margin: want %s got %s", tt.wantMargin, totals.Margin)
		})
	}
}

func TestOrderFromForm(t *testing.T) {
	s := domain.OrderForm().NewState()
	s.Set("customer", domain.OptionRef{Value: "7b9f4a80-64ac-4b7e-9d2f-0a4f6f8f1c11", Label: "Ayşe"})
	s.Set("stock", domain.OptionRef{Value: "e4e95c3a-9a6f-4d27-8cbb-5b7b3f33a001", Label: "Drum"})
	s.Set("quantity", 2)
	s.Set("unitPrice", "12.5")
	s.Set("totalPaid", "10")

	o := domain.OrderFromForm(s)
	assert.Equal(t, "7b9f4a80-64ac-4b7e-9d2f-0a4f6f8f1c11", o.CustomerID.String())
	assert.Equal(t, 2, o.Quantity)
	assert.True(t, o.TotalPrice.Equal(dec("25")))
	assert.True(t, o.TotalPaid.Equal(dec("10")))
}

func TestOrderFormValuesRoundTrip(t *testing.T) {
	s := domain.OrderForm().NewState()
	s.Set("quantity", 4)
	s.Set("unitPrice", "5")
	o := domain.OrderFromForm(s)

	edit := domain.OrderForm().NewState()
	for k, v := range o.FormValues() {
		edit.Put(k, v)
	}
	assert.Equal(t, 4, edit.Int("quantity"))
	assert.True(t, edit.Decimal("totalPrice").Equal(dec("20")))
}

func TestStockOrderDefaults(t *testing.T) {
	st := &domain.Stock{
		Name:          "Cable Drum",
		Quantity:      12,
		PurchasePrice: dec("8"),
		SellPrice:     dec("10"),
	}

	s := domain.OrderForm().NewState()
	for k, v := range st.OrderDefaults() {
		s.Put(k, v)
	}

	assert.True(t, s.Decimal("unitPrice").Equal(dec("10")))
	assert.True(t, s.Decimal("baseUnitPrice").Equal(dec("8")))
	assert.Equal(t, 1, s.Int("quantity"))

	// One quantity edit brings the derived fields in line with the
	// hydrated pricing.
	s.Set("quantity", 3)
	assert.True(t, s.Decimal("totalPrice").Equal(dec("30")))
	totals := domain.ComputeOrderTotals(s)
	assert.True(t, totals.Profit.Equal(dec("6")))
	assert.True(t, totals.Margin.Equal(dec("25.0")))
}
