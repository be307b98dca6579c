package jsonfile

import (
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// First-run dataset. Shared sandbox test cards across four markets, plus
// one M-PESA number for the alternative flow. Integration keys are never
// seeded; each operator supplies their own.

func seedTree(cat scenario.Category) tree {
	if cat == scenario.CategoryAlternative {
		return tree{
			"KE": {
				"mobile_money": {
					"mpesa": {
						Description: "KE - MPESA Test Number",
						Fields:      alternativeFields("75.00", "KES", "test+ke@ebanx.com", "ke", "254708663158", "mpesa"),
					},
				},
			},
		}
	}

	return tree{
		"NG": {
			"visa": {
				"test-visa": {
					Description: "NG - Test Visa Card - NGN",
					Fields:      cardFields("100.00", "NGN", "test+ng@ebanx.com", "ng", "+2348089895495", "4111111111111111"),
					Overrides: map[string]map[string]any{
						string(scenario.Unauthenticated): {
							"payment": map[string]any{
								"card": map[string]any{"threeds_force": false},
							},
						},
					},
				},
			},
			"mastercard": {
				"test-mastercard": {
					Description: "NG - Test Mastercard - NGN",
					Fields:      cardFields("100.00", "NGN", "test+ng@ebanx.com", "ng", "+2348089895495", "5555555555554444"),
				},
			},
		},
		"KE": {
			"visa": {
				"test-visa": {
					Description: "KE - Test Visa Card - KES",
					Fields:      cardFields("75.00", "KES", "test+ke@ebanx.com", "ke", "+254708663158", "4111111111111111"),
				},
			},
		},
		"ZA": {
			"mastercard": {
				"test-mastercard": {
					Description: "ZA - Test Mastercard - ZAR",
					Fields:      cardFields("10.00", "ZAR", "test+za@ebanx.com", "za", "+27123456789", "5555555555554444"),
				},
			},
		},
		"EG": {
			"visa": {
				"test-visa": {
					Description: "EG - Test Visa Card - EGP",
					Fields:      cardFields("50.00", "EGP", "test+eg@ebanx.com", "eg", "+201234567890", "4111111111111111"),
				},
			},
		},
	}
}

func cardFields(amount, currency, email, country, phone, cardNumber string) map[string]any {
	return map[string]any{
		field.AmountTotal:    amount,
		field.CurrencyCode:   currency,
		field.CustomerName:   "Test User",
		field.Email:          email,
		field.BirthDate:      "01/01/1990",
		field.Country:        country,
		field.PhoneNumber:    phone,
		field.CardNumber:     cardNumber,
		field.CardName:       "Test User",
		field.CardDueDate:    "12/2025",
		field.CardCVV:        "123",
		field.SoftDescriptor: "",
		field.CustomHeader:   "",
	}
}

func alternativeFields(amount, currency, email, country, phone, typeCode string) map[string]any {
	return map[string]any{
		field.AmountTotal:     amount,
		field.CurrencyCode:    currency,
		field.CustomerName:    "Test User",
		field.Email:           email,
		field.BirthDate:       "01/01/1990",
		field.Country:         country,
		field.PhoneNumber:     phone,
		field.PaymentTypeCode: typeCode,
		field.CustomHeader:    "",
	}
}
