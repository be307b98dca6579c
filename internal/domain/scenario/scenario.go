package scenario

// Scenario selects the fixed compiler parameters for a request.
type Scenario string

const (
	Unauthenticated    Scenario = "unauthenticated"
	Authenticated      Scenario = "authenticated"
	AlternativePayment Scenario = "alternative-payment"
)

func (s Scenario) Valid() bool {
	switch s {
	case Unauthenticated, Authenticated, AlternativePayment:
		return true
	}
	return false
}

// Category groups scenarios by the field set they edit.
type Category string

const (
	CategoryCard        Category = "card"
	CategoryAlternative Category = "alternative-payment"
)

func (s Scenario) Category() Category {
	if s == AlternativePayment {
		return CategoryAlternative
	}
	return CategoryCard
}

func (c Category) Valid() bool {
	return c == CategoryCard || c == CategoryAlternative
}
