package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/profile"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/logging"
)

// Store persists profiles as one JSON file per category, keyed
// country → method type → name. A missing file is seeded with the
// first-run dataset instead of treated as an error.
type Store struct {
	dir    string
	logger logging.Logger
}

func NewStore(dir string, logger logging.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

type storedProfile struct {
	Description string                    `json:"description,omitempty"`
	PTP         string                    `json:"ptp,omitempty"`
	Fields      map[string]any            `json:"fields"`
	Overrides   map[string]map[string]any `json:"overrides,omitempty"`
}

type tree map[string]map[string]map[string]storedProfile

func fileFor(cat scenario.Category) (string, error) {
	switch cat {
	case scenario.CategoryCard:
		return "cards.json", nil
	case scenario.CategoryAlternative:
		return "alternative.json", nil
	}
	return "", fmt.Errorf("%w: %s", field.ErrUnknownCategory, cat)
}

func (s *Store) Load(cat scenario.Category) ([]*profile.Profile, error) {
	t, err := s.readTree(cat)
	if err != nil {
		return nil, err
	}

	var out []*profile.Profile
	for country, types := range t {
		for typ, names := range types {
			for name, sp := range names {
				p, err := toProfile(cat, country, typ, name, sp)
				if err != nil {
					return nil, err
				}
				out = append(out, p)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (s *Store) Find(cat scenario.Category, country string, typ scenario.MethodType, name string) (*profile.Profile, error) {
	t, err := s.readTree(cat)
	if err != nil {
		return nil, err
	}

	country = strings.ToUpper(country)
	sp, ok := t[country][string(typ)][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", profile.ErrNotFound, country, typ, name)
	}
	return toProfile(cat, country, string(typ), name, sp)
}

func (s *Store) Save(p *profile.Profile) error {
	t, err := s.readTree(p.Category)
	if err != nil {
		return err
	}
	if t == nil {
		t = tree{}
	}

	country := strings.ToUpper(p.Country)
	if t[country] == nil {
		t[country] = make(map[string]map[string]storedProfile)
	}
	if t[country][string(p.Type)] == nil {
		t[country][string(p.Type)] = make(map[string]storedProfile)
	}
	t[country][string(p.Type)][p.Name] = fromProfile(p)

	return s.writeTree(p.Category, t)
}

func (s *Store) Delete(cat scenario.Category, country string, typ scenario.MethodType, name string) error {
	t, err := s.readTree(cat)
	if err != nil {
		return err
	}

	country = strings.ToUpper(country)
	names := t[country][string(typ)]
	if _, ok := names[name]; !ok {
		return fmt.Errorf("%w: %s/%s/%s", profile.ErrNotFound, country, typ, name)
	}

	delete(names, name)
	if len(names) == 0 {
		delete(t[country], string(typ))
	}
	if len(t[country]) == 0 {
		delete(t, country)
	}

	return s.writeTree(cat, t)
}

func (s *Store) readTree(cat scenario.Category) (tree, error) {
	name, err := fileFor(cat)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		seeded := seedTree(cat)
		if err := s.writeTree(cat, seeded); err != nil {
			return nil, err
		}
		s.logger.Info("seeded profile store", map[string]any{"file": path})
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile store: %w", err)
	}

	var t tree
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("parse profile store %s: %w", name, err)
	}
	return t, nil
}

func (s *Store) writeTree(cat scenario.Category, t tree) error {
	name, err := fileFor(cat)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write profile store: %w", err)
	}
	return os.Rename(tmp, path)
}

func toProfile(cat scenario.Category, country, typ, name string, sp storedProfile) (*profile.Profile, error) {
	fields, err := field.FromSnapshot(cat, sp.Fields)
	if err != nil {
		return nil, fmt.Errorf("profile %s/%s/%s: %w", country, typ, name, err)
	}

	p := &profile.Profile{
		Name:        name,
		Country:     strings.ToUpper(country),
		Category:    cat,
		Type:        scenario.MethodType(typ),
		Description: sp.Description,
		PTP:         sp.PTP,
		Fields:      fields,
	}
	for rawSc, frag := range sp.Overrides {
		sc := scenario.Scenario(rawSc)
		if !sc.Valid() || len(frag) == 0 {
			continue
		}
		p.SetOverride(sc, payload.Document(frag))
	}
	return p, nil
}

func fromProfile(p *profile.Profile) storedProfile {
	sp := storedProfile{
		Description: p.Description,
		PTP:         p.PTP,
		Fields:      p.Fields.Snapshot(),
	}
	for sc, frag := range p.Overrides {
		if sp.Overrides == nil {
			sp.Overrides = make(map[string]map[string]any)
		}
		sp.Overrides[string(sc)] = map[string]any(frag.Clone())
	}
	return sp
}
