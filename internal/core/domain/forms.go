// internal/core/domain/forms.go
package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldKind selects the input normalization applied by FormState.Set.
type FieldKind int

// Field kinds
const (
	KindText FieldKind = iota
	KindPhone
	KindEmail
	KindInt
	KindDecimal
	KindBool
	KindOption
	KindOptionList
)

// Field declares one editable form field.
type Field struct {
	Name    string
	Kind    FieldKind
	Default any
}

// Derivation recomputes Target whenever one of Triggers is edited.
// The edited field's identity picks the direction: a derivation only fires
// when the field the user changed is in its trigger set, so opposing
// derivations (quantity*unitPrice -> totalPrice vs totalPrice -> unitPrice)
// never both fire from the same edit. Derivations run once per edit, in
// declared order, without cascading.
type Derivation struct {
	Triggers []string
	Target   string
	Compute  func(s *FormState) any
}

// Rule is one validation check. Rules for the same field are evaluated in
// declared order and the first failing rule's message wins.
type Rule struct {
	Field   string
	Tag     string
	Message string
}

// FormSpec is the declarative description of one entity's form: its field
// set, derivation table and validation table.
type FormSpec struct {
	Entity      Entity
	Fields      []Field
	Derivations []Derivation
	Rules       []Rule
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Normalized phone numbers: optional leading +, then 5-15 digits.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		s = strings.TrimPrefix(s, "+")
		if len(s) < 5 || len(s) > 15 {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}

// NewState builds a FormState populated with the spec's defaults.
func (fs FormSpec) NewState() *FormState {
	s := &FormState{spec: fs, values: make(map[string]any, len(fs.Fields))}
	for _, f := range fs.Fields {
		s.values[f.Name] = normalize(f.Kind, f.Default)
	}
	return s
}

// Validate applies the rule table and returns a field->message mapping.
// The mapping is empty iff the state is valid.
func (fs FormSpec) Validate(s *FormState) map[string]string {
	errs := make(map[string]string)
	for _, r := range fs.Rules {
		if _, seen := errs[r.Field]; seen {
			continue
		}
		if err := validate.Var(validationValue(s.values[r.Field]), r.Tag); err != nil {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

// validationValue converts stored values into shapes validator/v10 handles.
func validationValue(v any) any {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.InexactFloat64()
	case OptionRef:
		return t.Value
	case []OptionRef:
		refs := make([]string, len(t))
		for i, r := range t {
			refs[i] = r.Value
		}
		return refs
	default:
		return v
	}
}

// FormState holds the editable values of one form instance. It is
// single-owner, single-writer; callers serialize access through the
// owning controller.
type FormState struct {
	spec   FormSpec
	values map[string]any
}

// Spec returns the spec this state was built from.
func (s *FormState) Spec() FormSpec { return s.spec }

// Set normalizes raw input for the named field, stores it, then applies
// the derivation table once using the edited field to pick direction.
func (s *FormState) Set(name string, raw any) {
	s.values[name] = normalize(s.kind(name), raw)
	for _, d := range s.spec.Derivations {
		if !contains(d.Triggers, name) {
			continue
		}
		s.values[d.Target] = normalize(s.kind(d.Target), d.Compute(s))
	}
}

// Put stores a value without firing derivations. Used for hydration, where
// persisted fields already agree with each other.
func (s *FormState) Put(name string, raw any) {
	s.values[name] = normalize(s.kind(name), raw)
}

// Get returns the raw stored value.
func (s *FormState) Get(name string) any { return s.values[name] }

// String returns the field as a string, or "" when absent.
func (s *FormState) String(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// Decimal returns the field as a decimal, coercing anything malformed to
// zero so derivation arithmetic never sees a non-number.
func (s *FormState) Decimal(name string) decimal.Decimal {
	return toDecimal(s.values[name])
}

// Int returns the field as an int, coercing anything malformed to zero.
func (s *FormState) Int(name string) int {
	return int(toDecimal(s.values[name]).IntPart())
}

// Bool returns the field as a bool.
func (s *FormState) Bool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// Option returns the field as an option reference.
func (s *FormState) Option(name string) OptionRef {
	v, _ := s.values[name].(OptionRef)
	return v
}

// Options returns the field as an option list.
func (s *FormState) Options(name string) []OptionRef {
	v, _ := s.values[name].([]OptionRef)
	return v
}

// Values returns a copy of the underlying mapping.
func (s *FormState) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the state.
func (s *FormState) Clone() *FormState {
	return &FormState{spec: s.spec, values: s.Values()}
}

func (s *FormState) kind(name string) FieldKind {
	for _, f := range s.spec.Fields {
		if f.Name == name {
			return f.Kind
		}
	}
	return KindText
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

// normalize applies per-kind input cleanup before storage.
func normalize(kind FieldKind, raw any) any {
	switch kind {
	case KindPhone:
		return NormalizePhone(toString(raw))
	case KindText, KindEmail:
		return toString(raw)
	case KindInt:
		return int(toDecimal(raw).IntPart())
	case KindDecimal:
		return toDecimal(raw)
	case KindBool:
		v, _ := raw.(bool)
		return v
	case KindOption:
		v, _ := raw.(OptionRef)
		return v
	case KindOptionList:
		v, _ := raw.([]OptionRef)
		return v
	default:
		return raw
	}
}

// NormalizePhone strips every character except digits and a single
// leading plus sign.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toString(raw any) string {
	switch t := raw.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toDecimal coerces arbitrary input to a decimal, mapping anything
// malformed to zero. Division and multiplication in the derivation tables
// must never propagate a non-number.
func toDecimal(raw any) decimal.Decimal {
	switch t := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case float64:
		return decimal.NewFromFloat(t)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		d, err := decimal.NewFromString(fmt.Sprintf("%v", t))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}

// Round4 is the rounding rule shared by every price derivation.
func Round4(d decimal.Decimal) decimal.Decimal { return d.Round(4) }

// clampPaid keeps a paid amount within the owed total.
func clampPaid(paid, total decimal.Decimal) decimal.Decimal {
	if paid.GreaterThan(total) {
		return total
	}
	return paid
}
