package history

import "time"

// Entry is one dispatched request as recorded for later inspection. The
// request body is stored masked: history is a display surface, never a
// credential store.
type Entry struct {
	ID              string
	CreatedAt       time.Time
	Profile         string
	Scenario        string
	Endpoint        string
	StatusCode      int
	Class           string
	DurationMs      int64
	RequestBody     string
	ResponseSnippet string
}

type Repository interface {
	Save(Entry) error
	FindRecent(limit int) ([]Entry, error)
	Purge() error
}
