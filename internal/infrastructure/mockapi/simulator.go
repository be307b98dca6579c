package mockapi

import (
	"math/rand"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
)

// Outcome is the simulated processing result for one request.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeDeclined Outcome = "declined"
	OutcomeRedirect Outcome = "redirect"
)

// Simulator decides what the mock API answers. The seam exists so tests
// can force a specific outcome.
type Simulator interface {
	Outcome(doc payload.Document) Outcome
}

// RandomSimulator approves a configurable share of requests.
// A request forcing 3DS always gets the redirect outcome, so the
// challenge flow can be exercised offline.
type RandomSimulator struct {
	ApprovalRate int
	rng          *rand.Rand
}

func NewRandomSimulator(approvalRate int, seed int64) *RandomSimulator {
	return &RandomSimulator{
		ApprovalRate: approvalRate,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

func (s *RandomSimulator) Outcome(doc payload.Document) Outcome {
	if forced, ok := doc.Lookup("payment.card.threeds_force"); ok && forced == true {
		return OutcomeRedirect
	}
	if s.rng.Intn(100) < s.ApprovalRate {
		return OutcomeApproved
	}
	return OutcomeDeclined
}
