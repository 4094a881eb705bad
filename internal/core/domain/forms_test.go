// internal/core/domain/forms_test.go
package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-go/internal/core/domain"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips_letters_and_dashes",
			input: "abc123-456",
			want:  "123456",
		},
		{
			name:  "keeps_leading_plus",
			input: "+90 (555) 123 45 67",
			want:  "+905551234567",
		},
		{
			name:  "drops_non_leading_plus",
			input: "555+123",
			want:  "555123",
		},
		{
			name:  "empty_input",
			input: "",
			want:  "",
		},
		{
			name:  "plus_only_when_leading",
			input: "+abc",
			want:  "+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizePhone(tt.input))
		})
	}
}

func TestFormState_DefensiveNumericCoercion(t *testing.T) {
	spec := domain.OrderForm()

	tests := []struct {
		name  string
		field string
		raw   any
		want  decimal.Decimal
	}{
		{
			name:  "non_numeric_string_coerces_to_zero",
			field: "unitPrice",
			raw:   "not-a-number",
			want:  decimal.Zero,
		},
		{
			name:  "numeric_string_parses",
			field: "unitPrice",
			raw:   "12.5",
			want:  decimal.NewFromFloat(12.5),
		},
		{
			name:  "nil_coerces_to_zero",
			field: "totalPaid",
			raw:   nil,
			want:  decimal.Zero,
		},
		{
			name:  "float_input",
			field: "totalPaid",
			raw:   3.25,
			want:  decimal.NewFromFloat(3.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := spec.NewState()
			s.Set(tt.field, tt.raw)
			assert.True(t, s.Decimal(tt.field).Equal(tt.want),
				"expected %s, got %s", tt.want, s.Decimal(tt.field))
		})
	}
}

func TestFormState_PhoneFieldNormalizesOnSet(t *testing.T) {
	s := domain.CustomerForm().NewState()
	s.Set("phone", "abc123-456")
	assert.Equal(t, "123456", s.String("phone"))
}

func TestFormState_Defaults(t *testing.T) {
	s := domain.OrderForm().NewState()

	assert.Equal(t, 1, s.Int("quantity"))
	assert.True(t, s.Decimal("unitPrice").IsZero())
	assert.Equal(t, "", s.String("note"))
}

func TestFormSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *domain.FormState)
		spec    domain.FormSpec
		want    map[string]string
	}{
		{
			name: "customer_empty_name_is_required",
			spec: domain.CustomerForm(),
			prepare: func(s *domain.FormState) {
				s.Set("name", "")
			},
			want: map[string]string{"name": "Name is required"},
		},
		{
			name: "customer_short_name_hits_min_rule",
			spec: domain.CustomerForm(),
			prepare: func(s *domain.FormState) {
				s.Set("name", "A")
			},
			want: map[string]string{"name": "Name must be at least 2 characters"},
		},
		{
			name: "customer_invalid_email",
			spec: domain.CustomerForm(),
			prepare: func(s *domain.FormState) {
				s.Set("name", "Ayşe Kaya")
				s.Set("email", "not-an-email")
			},
			want: map[string]string{"email": "Email address is invalid"},
		},
		{
			name: "customer_short_phone",
			spec: domain.CustomerForm(),
			prepare: func(s *domain.FormState) {
				s.Set("name", "Ayşe Kaya")
				s.Set("phone", "123")
			},
			want: map[string]string{"phone": "Phone number is invalid"},
		},
		{
			name: "customer_valid_form",
			spec: domain.CustomerForm(),
			prepare: func(s *domain.FormState) {
				s.Set("name", "Ayşe Kaya")
				s.Set("phone", "+905551234567")
				s.Set("email", "ayse@example.com")
			},
			want: map[string]string{},
		},
		{
			name: "order_missing_customer_and_stock",
			spec: domain.OrderForm(),
			prepare: func(s *domain.FormState) {
				s.Set("quantity", 2)
				s.Set("unitPrice", "10")
			},
			want: map[string]string{
				"customer": "Customer is required",
				"stock":    "Stock is required",
			},
		},
		{
			name: "order_zero_quantity",
			spec: domain.OrderForm(),
			prepare: func(s *domain.FormState) {
				s.Set("customer", domain.OptionRef{Value: "c1", Label: "C"})
				s.Set("stock", domain.OptionRef{Value: "s1", Label: "S"})
				s.Set("quantity", 0)
			},
			want: map[string]string{"quantity": "Quantity must be positive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.spec.NewState()
			tt.prepare(s)
			got := tt.spec.Validate(s)
			require.Equal(t, len(tt.want), len(got), "errors: %v", got)
			for field, msg := range tt.want {
				assert.Equal(t, msg, got[field])
			}
		})
	}
}

func TestFormState_CloneIsIndependent(t *testing.T) {
	s := domain.StockForm().NewState()
	s.Set("name", "Cable Drum")

	clone := s.Clone()
	clone.Set("name", "Changed")

	assert.Equal(t, "Cable Drum", s.String("name"))
	assert.Equal(t, "Changed", clone.String("name"))
}
