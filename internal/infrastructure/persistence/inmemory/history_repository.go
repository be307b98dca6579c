package inmemory

import (
	"sort"
	"sync"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/history"
)

type HistoryRepository struct {
	mu      sync.RWMutex
	entries []history.Entry
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		mu:      sync.RWMutex{},
		entries: make([]history.Entry, 0),
	}
}

func (r *HistoryRepository) Save(e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	return nil
}

func (r *HistoryRepository) FindRecent(limit int) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *HistoryRepository) Purge() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = r.entries[:0]
	return nil
}
