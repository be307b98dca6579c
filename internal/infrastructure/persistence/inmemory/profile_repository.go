package inmemory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/profile"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// ProfileRepository keeps profiles in process memory. Used by tests and
// by runs that must not touch the operator's data directory.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[scenario.Category]map[string]*profile.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		mu:       sync.RWMutex{},
		profiles: make(map[scenario.Category]map[string]*profile.Profile),
	}
}

func (r *ProfileRepository) Save(p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profiles[p.Category] == nil {
		r.profiles[p.Category] = make(map[string]*profile.Profile)
	}

	// Stored copies never alias the caller's profile.
	c := p.Clone()
	c.Country = strings.ToUpper(c.Country)
	r.profiles[c.Category][c.Key()] = c
	return nil
}

func (r *ProfileRepository) Find(cat scenario.Category, country string, typ scenario.MethodType, name string) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[cat][storeKey(country, typ, name)]
	if !ok {
		return nil, profile.ErrNotFound
	}

	return p.Clone(), nil
}

func (r *ProfileRepository) Load(cat scenario.Category) ([]*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*profile.Profile, 0, len(r.profiles[cat]))
	for _, p := range r.profiles[cat] {
		out = append(out, p.Clone())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (r *ProfileRepository) Delete(cat scenario.Category, country string, typ scenario.MethodType, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := storeKey(country, typ, name)
	if _, ok := r.profiles[cat][k]; !ok {
		return profile.ErrNotFound
	}

	delete(r.profiles[cat], k)
	return nil
}

func storeKey(country string, typ scenario.MethodType, name string) string {
	return fmt.Sprintf("%s/%s/%s", strings.ToUpper(country), typ, name)
}
