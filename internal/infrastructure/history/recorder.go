package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/privacy"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
)

// snippetLimit caps stored response bodies: enough to debug a failing
// request without growing the database unbounded.
const snippetLimit = 2000

// Dispatch captures one completed or failed dispatch attempt.
type Dispatch struct {
	Profile    string
	Scenario   string
	Endpoint   string
	StatusCode int
	Class      string
	Duration   time.Duration
	Request    payload.Document
	Response   string
}

type Recorder struct {
	Repo Repository
}

// Record persists a dispatch. The request body is masked before it is
// stored.
func (r *Recorder) Record(d Dispatch) error {
	body, err := payload.MarshalCanonical(privacy.Mask(d.Request))
	if err != nil {
		return err
	}

	return r.Repo.Save(Entry{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Profile:         d.Profile,
		Scenario:        d.Scenario,
		Endpoint:        d.Endpoint,
		StatusCode:      d.StatusCode,
		Class:           d.Class,
		DurationMs:      d.Duration.Milliseconds(),
		RequestBody:     string(body),
		ResponseSnippet: clip(d.Response, snippetLimit),
	})
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
