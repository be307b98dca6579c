package compiler

import (
	"fmt"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// binding ties one editable field to its payload path. The set of
// bindings is what the compiler declares as editable: reverse parsing
// recognizes exactly these paths.
type binding struct {
	field string
	path  string
}

var cardBindings = []binding{
	{field.AmountTotal, "payment.amount_total"},
	{field.CurrencyCode, "payment.currency_code"},
	{field.CustomerName, "payment.name"},
	{field.Email, "payment.email"},
	{field.BirthDate, "payment.birth_date"},
	{field.Country, "payment.country"},
	{field.PhoneNumber, "payment.phone_number"},
	{field.CardNumber, "payment.card.card_number"},
	{field.CardName, "payment.card.card_name"},
	{field.CardDueDate, "payment.card.card_due_date"},
	{field.CardCVV, "payment.card.card_cvv"},
}

var softDescriptorBinding = binding{field.SoftDescriptor, "payment.soft_descriptor"}

var alternativeNestedBindings = []binding{
	{field.AmountTotal, "payment.amount_total"},
	{field.CurrencyCode, "payment.currency_code"},
	{field.CustomerName, "payment.name"},
	{field.Email, "payment.email"},
	{field.BirthDate, "payment.birth_date"},
	{field.Country, "payment.country"},
	{field.PhoneNumber, "payment.phone_number"},
	{field.PaymentTypeCode, "payment.payment_type_code"},
}

var alternativeDirectBindings = []binding{
	{field.AmountTotal, "amount_total"},
	{field.CurrencyCode, "currency_code"},
	{field.CustomerName, "name"},
	{field.Email, "email"},
	{field.BirthDate, "birth_date"},
	{field.Country, "country"},
	{field.PhoneNumber, "phone_number"},
	{field.PaymentTypeCode, "payment_type_code"},
}

func bindingsFor(sc scenario.Scenario, opts Options) ([]binding, error) {
	if sc.Category() == scenario.CategoryCard {
		binds := make([]binding, len(cardBindings), len(cardBindings)+1)
		copy(binds, cardBindings)
		if opts.SoftDescriptor {
			binds = append(binds, softDescriptorBinding)
		}
		return binds, nil
	}

	shape, ok := scenario.ShapeFor(opts.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethodShape, opts.Method)
	}
	if shape == scenario.ShapeNested {
		return alternativeNestedBindings, nil
	}
	return alternativeDirectBindings, nil
}

// fixed is a scenario-fixed payload entry, not user editable.
type fixed struct {
	path  string
	value any
}

func fixedFor(sc scenario.Scenario) []fixed {
	switch sc {
	case scenario.Unauthenticated:
		return []fixed{{"payment.card.auto_capture", true}}
	case scenario.Authenticated:
		return []fixed{
			{"payment.card.auto_capture", false},
			{"payment.card.threeds_force", true},
		}
	}
	return nil
}
