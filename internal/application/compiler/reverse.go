package compiler

import (
	"encoding/json"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// Parsed is the result of mapping a raw payload edit back onto the
// engine's state.
type Parsed struct {
	Fields *field.Model
	// IntegrationKey is the key found in the document, empty when absent
	// or when it is the placeholder.
	IntegrationKey string
	// Override holds every path the compiler does not recognize, plus
	// recognized paths whose value cannot be a field value (wrong JSON
	// type) or whose scenario-fixed value was deviated from. It becomes
	// the implicit override fragment.
	Override payload.Document
}

// ReverseParse maps a parsed payload document back into field edits over
// base. Recognized paths update the returned model copy; everything else
// is collected into the override fragment. The base model and the
// document are not mutated.
func ReverseParse(doc payload.Document, sc scenario.Scenario, base *field.Model, opts Options) (*Parsed, error) {
	if base.Category() != sc.Category() {
		return nil, ErrCategoryMismatch
	}
	binds, err := bindingsFor(sc, opts)
	if err != nil {
		return nil, err
	}

	fields := base.Clone()
	rest := doc.Clone()
	out := &Parsed{Fields: fields}

	for _, b := range binds {
		raw, ok := doc.Lookup(b.path)
		if !ok {
			continue
		}
		value, ok := coerce(raw)
		if !ok {
			continue // wrong shape at a recognized path: stays in the fragment
		}
		if _, err := fields.Set(b.field, value); err != nil {
			continue // kind mismatch: preserved as override, model keeps last value
		}
		rest.Delete(b.path)
	}

	if raw, ok := doc.Lookup("integration_key"); ok {
		if key, isStr := raw.(string); isStr {
			rest.Delete("integration_key")
			if key != KeyPlaceholder {
				out.IntegrationKey = key
			}
		}
	}
	if raw, ok := doc.Lookup("operation"); ok && raw == "request" {
		rest.Delete("operation")
	}
	for _, f := range fixedFor(sc) {
		if raw, ok := doc.Lookup(f.path); ok && raw == f.value {
			rest.Delete(f.path)
		}
	}

	rest.Prune()
	if len(rest) > 0 {
		out.Override = rest
	}
	return out, nil
}

// coerce converts a JSON leaf into a field value. Numbers become their
// literal string so edits like 50.00 survive the trip unchanged.
func coerce(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return nil, false
	}
}
