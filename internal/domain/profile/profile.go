package profile

import (
	"fmt"
	"strings"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// Profile is a named, persisted test configuration: identity, a field
// snapshot and optional per-scenario override fragments. The store keys
// profiles by country, method type and name.
type Profile struct {
	Name        string
	Country     string
	Category    scenario.Category
	Type        scenario.MethodType
	Description string
	// PTP is the payment-type-profile slug sent in the dispatch header.
	// Empty means derive one from the identity.
	PTP       string
	Fields    *field.Model
	Overrides map[scenario.Scenario]payload.Document
}

// New builds a profile with the category's default field model.
func New(name, country string, cat scenario.Category, typ scenario.MethodType) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name must not be empty")
	}
	fields, err := field.NewModel(cat)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Name:     name,
		Country:  strings.ToUpper(country),
		Category: cat,
		Type:     typ,
		Fields:   fields,
	}, nil
}

// Key identifies the profile inside its category store.
func (p *Profile) Key() string {
	return fmt.Sprintf("%s/%s/%s", p.Country, p.Type, p.Name)
}

// PaymentTypeProfile is the value for the
// X-EBANX-Custom-Payment-Type-Profile header.
func (p *Profile) PaymentTypeProfile() string {
	if p.PTP != "" {
		return p.PTP
	}
	return strings.ToLower(fmt.Sprintf("%s-%s", p.Type, p.Country))
}

// Override returns a copy of the saved fragment for a scenario.
func (p *Profile) Override(sc scenario.Scenario) (payload.Document, bool) {
	frag, ok := p.Overrides[sc]
	if !ok || len(frag) == 0 {
		return nil, false
	}
	return frag.Clone(), true
}

// SetOverride stores a fragment for a scenario. The integration key is
// always stripped first: credentials never belong to a saved profile.
// A nil or empty fragment clears the scenario's override.
func (p *Profile) SetOverride(sc scenario.Scenario, frag payload.Document) {
	if len(frag) == 0 {
		delete(p.Overrides, sc)
		return
	}
	clean := frag.Clone()
	clean.Delete("integration_key")
	clean.Prune()
	if len(clean) == 0 {
		delete(p.Overrides, sc)
		return
	}
	if p.Overrides == nil {
		p.Overrides = make(map[scenario.Scenario]payload.Document)
	}
	p.Overrides[sc] = clean
}

func (p *Profile) Clone() *Profile {
	out := *p
	if p.Fields != nil {
		out.Fields = p.Fields.Clone()
	}
	if p.Overrides != nil {
		out.Overrides = make(map[scenario.Scenario]payload.Document, len(p.Overrides))
		for sc, frag := range p.Overrides {
			out.Overrides[sc] = frag.Clone()
		}
	}
	return &out
}
