package field_test

import (
	"errors"
	"testing"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

func TestModel_ShouldStartWithCategoryDefaults(t *testing.T) {
	m, err := field.NewModel(scenario.CategoryCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := m.Get(field.AmountTotal)
	if !ok {
		t.Fatalf("expected %s to be declared", field.AmountTotal)
	}
	if v != "100.00" {
		t.Errorf("expected default 100.00, got %v", v)
	}

	v, _ = m.Get(field.CardNumber)
	if v != "4111111111111111" {
		t.Errorf("expected default test card, got %v", v)
	}
}

func TestModel_ShouldRejectUnknownCategory(t *testing.T) {
	_, err := field.NewModel(scenario.Category("voucher"))
	if !errors.Is(err, field.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestModel_Set_ShouldReturnPreviousValue(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryCard)

	prev, err := m.Set(field.AmountTotal, "250.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev != "100.00" {
		t.Errorf("expected previous value 100.00, got %v", prev)
	}

	v, _ := m.Get(field.AmountTotal)
	if v != "250.00" {
		t.Errorf("expected 250.00, got %v", v)
	}
}

func TestModel_Set_ShouldFailForUnknownField(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryCard)

	_, err := m.Set("issuer_bank", "x")
	if !errors.Is(err, field.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestModel_Set_ShouldRejectNonDigitCardNumber_AndKeepModelUnchanged(t *testing.T) {
	// arrange
	m, _ := field.NewModel(scenario.CategoryCard)

	// act
	_, err := m.Set(field.CardNumber, "4111-1111")

	// assert
	var verr *field.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != field.CardNumber {
		t.Errorf("expected field %s, got %s", field.CardNumber, verr.Field)
	}

	v, _ := m.Get(field.CardNumber)
	if v != "4111111111111111" {
		t.Errorf("expected model unchanged, got %v", v)
	}
}

func TestModel_Set_ShouldRejectNonStringValue(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryCard)

	_, err := m.Set(field.CustomerName, 42)

	var verr *field.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestModel_Reset_ShouldRestoreDefaults(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryCard)
	_, _ = m.Set(field.AmountTotal, "999.99")
	_, _ = m.Set(field.Country, "br")

	m.Reset()

	if v, _ := m.Get(field.AmountTotal); v != "100.00" {
		t.Errorf("expected amount restored to 100.00, got %v", v)
	}
	if v, _ := m.Get(field.Country); v != "ng" {
		t.Errorf("expected country restored to ng, got %v", v)
	}
}

func TestModel_Clone_ShouldNotShareValues(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryCard)
	c := m.Clone()

	_, _ = c.Set(field.AmountTotal, "1.00")

	if v, _ := m.Get(field.AmountTotal); v != "100.00" {
		t.Errorf("expected original untouched, got %v", v)
	}
	if m.Equal(c) {
		t.Errorf("expected models to differ after edit")
	}
}

func TestModel_Names_ShouldFollowDeclarationOrder(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryAlternative)

	names := m.Names()
	if len(names) != 9 {
		t.Fatalf("expected 9 alternative fields, got %d", len(names))
	}
	if names[0] != field.AmountTotal {
		t.Errorf("expected first field %s, got %s", field.AmountTotal, names[0])
	}
	if names[7] != field.PaymentTypeCode {
		t.Errorf("expected %s at position 7, got %s", field.PaymentTypeCode, names[7])
	}
}

func TestFromSnapshot_ShouldRestoreValues_AndDropUndeclaredNames(t *testing.T) {
	m, _ := field.NewModel(scenario.CategoryCard)
	_, _ = m.Set(field.Email, "qa+za@ebanx.com")
	snap := m.Snapshot()
	snap["legacy_field"] = "ignored"

	restored, err := field.FromSnapshot(scenario.CategoryCard, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := restored.Get(field.Email); v != "qa+za@ebanx.com" {
		t.Errorf("expected restored email, got %v", v)
	}
	if _, ok := restored.Get("legacy_field"); ok {
		t.Errorf("expected undeclared name to be dropped")
	}
	if !restored.Equal(m) {
		t.Errorf("expected restored model to equal source")
	}
}

func TestFromSnapshot_ShouldFailOnKindMismatch(t *testing.T) {
	_, err := field.FromSnapshot(scenario.CategoryCard, map[string]any{
		field.CardCVV: "12a",
	})

	var verr *field.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
