package compiler

import (
	"errors"
	"fmt"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// KeyPlaceholder stands in for the integration key whenever none is
// configured, and is what saved profiles carry instead of a credential.
const KeyPlaceholder = "{integration_key}"

var (
	ErrCategoryMismatch   = errors.New("field model category does not match scenario")
	ErrUnknownMethodShape = errors.New("no declared shape for method type")
	ErrMissingPTP         = errors.New("payment type profile is required")
)

// Options carries the explicit per-call configuration: the operator
// credential, the method type driving alternative-payment shape
// selection, the selected payment-type-profile and the optional-field
// toggles. Nothing here is process-global state.
type Options struct {
	IntegrationKey string
	Method         scenario.MethodType
	PTP            string
	SoftDescriptor bool
	CustomHeader   bool
}

// IncompleteConfigurationError reports an enabled optional field with an
// empty value. It blocks compilation only; the previous valid payload
// stays current.
type IncompleteConfigurationError struct {
	Field string
}

func (e *IncompleteConfigurationError) Error() string {
	return fmt.Sprintf("optional field %q is enabled but empty", e.Field)
}

// Compile converts a field model plus scenario into the canonical
// request document. It is pure: same inputs, same output, no state.
func Compile(m *field.Model, sc scenario.Scenario, opts Options) (payload.Document, error) {
	if !sc.Valid() {
		return nil, fmt.Errorf("unknown scenario %q", sc)
	}
	if m.Category() != sc.Category() {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCategoryMismatch, m.Category(), sc)
	}
	if err := checkToggles(m, opts); err != nil {
		return nil, err
	}

	binds, err := bindingsFor(sc, opts)
	if err != nil {
		return nil, err
	}

	doc := payload.Document{}
	key := opts.IntegrationKey
	if key == "" {
		key = KeyPlaceholder
	}
	doc.Put("integration_key", key)
	doc.Put("operation", "request")

	for _, b := range binds {
		if v, ok := m.Get(b.field); ok {
			doc.Put(b.path, v)
		}
	}
	for _, f := range fixedFor(sc) {
		doc.Put(f.path, f.value)
	}
	return doc, nil
}

func checkToggles(m *field.Model, opts Options) error {
	if opts.SoftDescriptor {
		if v, ok := m.Get(field.SoftDescriptor); !ok || v == "" {
			return &IncompleteConfigurationError{Field: field.SoftDescriptor}
		}
	}
	if opts.CustomHeader {
		if v, ok := m.Get(field.CustomHeader); !ok || v == "" {
			return &IncompleteConfigurationError{Field: field.CustomHeader}
		}
	}
	return nil
}
