package field

import (
	"fmt"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// Kind is the declared type of a field value.
type Kind string

const (
	KindString        Kind = "string"
	KindMaskedNumeric Kind = "masked-numeric"
	KindBoolean       Kind = "boolean"
)

// Field names shared with the payload compiler.
const (
	AmountTotal     = "amount_total"
	CurrencyCode    = "currency_code"
	CustomerName    = "name"
	Email           = "email"
	BirthDate       = "birth_date"
	Country         = "country"
	PhoneNumber     = "phone_number"
	CardNumber      = "card_number"
	CardName        = "card_name"
	CardDueDate     = "card_due_date"
	CardCVV         = "card_cvv"
	SoftDescriptor  = "soft_descriptor"
	CustomHeader    = "custom_header"
	PaymentTypeCode = "payment_type_code"
)

// Spec declares one editable field of a scenario category.
type Spec struct {
	Name    string
	Kind    Kind
	Default any
}

var cardSpecs = []Spec{
	{AmountTotal, KindString, "100.00"},
	{CurrencyCode, KindString, "NGN"},
	{CustomerName, KindString, "Test User"},
	{Email, KindString, "test+ng@ebanx.com"},
	{BirthDate, KindString, "01/01/1990"},
	{Country, KindString, "ng"},
	{PhoneNumber, KindString, "+2348089895495"},
	{CardNumber, KindMaskedNumeric, "4111111111111111"},
	{CardName, KindString, "Test User"},
	{CardDueDate, KindString, "12/2025"},
	{CardCVV, KindMaskedNumeric, "123"},
	{SoftDescriptor, KindString, ""},
	{CustomHeader, KindString, ""},
}

var alternativeSpecs = []Spec{
	{AmountTotal, KindString, "100.00"},
	{CurrencyCode, KindString, "KES"},
	{CustomerName, KindString, "Test User"},
	{Email, KindString, "test+ke@ebanx.com"},
	{BirthDate, KindString, "01/01/1990"},
	{Country, KindString, "ke"},
	{PhoneNumber, KindString, "+254708663158"},
	{PaymentTypeCode, KindString, "mpesa"},
	{CustomHeader, KindString, ""},
}

// SpecsFor returns the declared field set of a category. The returned
// slice is a copy.
func SpecsFor(cat scenario.Category) []Spec {
	var src []Spec
	switch cat {
	case scenario.CategoryCard:
		src = cardSpecs
	case scenario.CategoryAlternative:
		src = alternativeSpecs
	default:
		return nil
	}
	out := make([]Spec, len(src))
	copy(out, src)
	return out
}

// ValidationError reports a value that does not match the field's
// declared kind. The model is left unchanged when it is returned.
type ValidationError struct {
	Field string
	Kind  Kind
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: expected %s value, got %v", e.Field, e.Kind, e.Value)
}

func matchesKind(kind Kind, value any) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindMaskedNumeric:
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	}
	return false
}
