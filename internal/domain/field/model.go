package field

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownCategory = errors.New("unknown scenario category")
)

// Model holds the editable fields of one profile, keyed by field name.
// It is a plain in-memory map: not goroutine safe, no side effects.
type Model struct {
	category scenario.Category
	specs    map[string]Spec
	values   map[string]any
}

// NewModel returns a model populated with the category defaults.
func NewModel(cat scenario.Category) (*Model, error) {
	specs := SpecsFor(cat)
	if specs == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
	}

	m := &Model{
		category: cat,
		specs:    make(map[string]Spec, len(specs)),
		values:   make(map[string]any, len(specs)),
	}
	for _, spec := range specs {
		m.specs[spec.Name] = spec
		m.values[spec.Name] = spec.Default
	}
	return m, nil
}

func (m *Model) Category() scenario.Category {
	return m.category
}

// Get returns the current value of a field. The second return is false
// when the field is not declared for the model's category.
func (m *Model) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Set stores a new value and returns the previous one. A value that does
// not match the field's declared kind fails with *ValidationError and
// leaves the model unchanged.
func (m *Model) Set(name string, value any) (any, error) {
	spec, ok := m.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if !matchesKind(spec.Kind, value) {
		return nil, &ValidationError{Field: name, Kind: spec.Kind, Value: value}
	}

	prev := m.values[name]
	m.values[name] = value
	return prev, nil
}

// Reset restores every field to its category default.
func (m *Model) Reset() {
	for name, spec := range m.specs {
		m.values[name] = spec.Default
	}
}

func (m *Model) Clone() *Model {
	return &Model{
		category: m.category,
		specs:    m.specs,
		values:   maps.Clone(m.values),
	}
}

// Names lists the declared fields in their specification order.
func (m *Model) Names() []string {
	specs := SpecsFor(m.category)
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}

// Snapshot returns a copy of the current values, for persistence and
// event payloads.
func (m *Model) Snapshot() map[string]any {
	return maps.Clone(m.values)
}

// FromSnapshot rebuilds a model from persisted values. Values are
// validated against the declared kinds; names no longer declared for the
// category are dropped.
func FromSnapshot(cat scenario.Category, values map[string]any) (*Model, error) {
	m, err := NewModel(cat)
	if err != nil {
		return nil, err
	}
	for name, value := range values {
		if _, ok := m.specs[name]; !ok {
			continue
		}
		if _, err := m.Set(name, value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Equal reports whether two models agree on category and every value.
func (m *Model) Equal(o *Model) bool {
	if o == nil || m.category != o.category || len(m.values) != len(o.values) {
		return false
	}
	for name, v := range m.values {
		if ov, ok := o.values[name]; !ok || ov != v {
			return false
		}
	}
	return true
}
