package sync

import (
	"errors"
	"fmt"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/compiler"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/contracts"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/privacy"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/profile"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/logging"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/metrics"
)

// State is the coordinator's position in its edit cycle.
type State string

const (
	StateIdle                State = "idle"
	StateApplyingFieldEdit   State = "applying-field-edit"
	StateApplyingPayloadEdit State = "applying-payload-edit"
)

var ErrNoProfile = errors.New("no profile loaded")

// MalformedPayloadError reports an unparsable raw payload edit. The
// field model and the last valid payload stay untouched; Text preserves
// what the user typed so the editor can keep it for correction.
type MalformedPayloadError struct {
	Cause error
	Text  string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Cause)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Cause }

// Coordinator keeps one profile's field model and its raw payload text
// mutually consistent. A field edit recompiles the payload; a raw edit
// reverse-parses into the field model; while either direction is being
// applied, edits echoed back by subscribers are dropped instead of
// re-triggering the opposite direction.
//
// The coordinator is single-threaded: it holds no locks and must only
// be driven from one goroutine. Dispatch and persistence run elsewhere
// and communicate through the bus.
type Coordinator struct {
	bus     contracts.EventPublisher
	logger  logging.Logger
	metrics *metrics.Counters

	state   State
	sc      scenario.Scenario
	profile *profile.Profile
	opts    compiler.Options
	privacy bool

	// saved is the profile's persisted override for the scenario;
	// implicit collects unrecognized paths from raw edits this session.
	// The implicit fragment wins over the saved one: it is the most
	// recent operator intent.
	saved     payload.Document
	implicit  payload.Document
	effective payload.Document
	draft     string
}

func NewCoordinator(bus contracts.EventPublisher, logger logging.Logger, counters *metrics.Counters) *Coordinator {
	return &Coordinator{
		bus:     bus,
		logger:  logger,
		metrics: counters,
		state:   StateIdle,
	}
}

// LoadProfile makes the coordinator own a copy of the profile and
// compiles it for the scenario. Nothing changes if compilation fails.
func (c *Coordinator) LoadProfile(p *profile.Profile, sc scenario.Scenario) error {
	if c.rejectWhileApplying("LoadProfile") {
		return nil
	}
	if p == nil {
		return ErrNoProfile
	}

	candidate := p.Clone()
	saved, _ := candidate.Override(sc)
	doc, err := compiler.Compile(candidate.Fields, sc, c.opts)
	if err != nil {
		return err
	}

	c.state = StateApplyingFieldEdit
	defer func() { c.state = StateIdle }()

	c.profile = candidate
	c.sc = sc
	c.saved = saved
	c.implicit = nil
	c.effective = payload.Merge(doc, saved)
	c.draft = ""
	c.metrics.IncPayloadsCompiled()
	c.publishPayload()
	c.publishFields()
	return nil
}

// FieldEdited applies one field change and recompiles. On a compile
// error the edit stands but the previous valid payload stays current.
func (c *Coordinator) FieldEdited(name string, value any) error {
	if c.rejectWhileApplying("FieldEdited") {
		return nil
	}
	if c.profile == nil {
		return ErrNoProfile
	}

	c.state = StateApplyingFieldEdit
	defer func() { c.state = StateIdle }()

	if _, err := c.profile.Fields.Set(name, value); err != nil {
		return err
	}
	if err := c.recompute(); err != nil {
		return err
	}
	c.draft = ""
	c.metrics.IncFieldSyncs()
	c.publishPayload()
	return nil
}

// PayloadTextEdited applies a raw payload edit: recognized paths map
// back into the field model, everything else becomes the implicit
// override fragment. Unparsable text returns MalformedPayloadError and
// touches nothing except the retained draft.
func (c *Coordinator) PayloadTextEdited(text string) error {
	if c.rejectWhileApplying("PayloadTextEdited") {
		return nil
	}
	if c.profile == nil {
		return ErrNoProfile
	}

	c.state = StateApplyingPayloadEdit
	defer func() { c.state = StateIdle }()

	doc, err := payload.FromJSON([]byte(text))
	if err != nil {
		c.draft = text
		return &MalformedPayloadError{Cause: err, Text: text}
	}

	parsed, err := compiler.ReverseParse(doc, c.sc, c.profile.Fields, c.opts)
	if err != nil {
		return err
	}

	c.profile.Fields = parsed.Fields
	c.implicit = parsed.Override
	if parsed.IntegrationKey != "" {
		c.opts.IntegrationKey = parsed.IntegrationKey
	}
	if err := c.recompute(); err != nil {
		return err
	}
	c.draft = text
	c.metrics.IncPayloadSyncs()
	c.publishFields()
	return nil
}

// SetScenario recompiles for another scenario of the same category. The
// implicit fragment is discarded: it was typed against the previous
// scenario's shape.
func (c *Coordinator) SetScenario(sc scenario.Scenario) error {
	if c.rejectWhileApplying("SetScenario") {
		return nil
	}
	if c.profile == nil {
		return ErrNoProfile
	}

	c.state = StateApplyingFieldEdit
	defer func() { c.state = StateIdle }()

	c.sc = sc
	c.saved, _ = c.profile.Override(sc)
	c.implicit = nil
	if err := c.recompute(); err != nil {
		return err
	}
	c.draft = ""
	c.publishPayload()
	return nil
}

// UpdateOptions swaps the compile options (credential, method, PTP,
// toggles) and recompiles. A failing recompile keeps the options, so
// the operator can complete the configuration, and keeps the previous
// valid payload current.
func (c *Coordinator) UpdateOptions(opts compiler.Options) error {
	if c.rejectWhileApplying("UpdateOptions") {
		return nil
	}
	c.opts = opts
	if c.profile == nil {
		return nil
	}

	c.state = StateApplyingFieldEdit
	defer func() { c.state = StateIdle }()

	if err := c.recompute(); err != nil {
		return err
	}
	c.publishPayload()
	return nil
}

// ResetFields restores the category defaults and drops the implicit
// fragment. The profile's saved override stays in effect.
func (c *Coordinator) ResetFields() error {
	if c.rejectWhileApplying("ResetFields") {
		return nil
	}
	if c.profile == nil {
		return ErrNoProfile
	}

	c.state = StateApplyingFieldEdit
	defer func() { c.state = StateIdle }()

	c.profile.Fields.Reset()
	c.implicit = nil
	if err := c.recompute(); err != nil {
		return err
	}
	c.draft = ""
	c.metrics.IncFieldSyncs()
	c.publishPayload()
	c.publishFields()
	return nil
}

// SetPrivacy switches the display mask. Transport is unaffected: it
// always reads the unmasked document.
func (c *Coordinator) SetPrivacy(on bool) {
	c.privacy = on
	if c.state != StateIdle || c.effective == nil {
		return
	}
	c.state = StateApplyingFieldEdit
	defer func() { c.state = StateIdle }()
	c.publishPayload()
}

func (c *Coordinator) recompute() error {
	doc, err := compiler.Compile(c.profile.Fields, c.sc, c.opts)
	if err != nil {
		return err
	}
	doc = payload.Merge(doc, c.saved)
	doc = payload.Merge(doc, c.implicit)
	c.effective = doc
	c.metrics.IncPayloadsCompiled()
	return nil
}

func (c *Coordinator) rejectWhileApplying(op string) bool {
	if c.state == StateIdle {
		return false
	}
	c.metrics.IncSyncRejections()
	c.logger.Info("edit ignored while applying", map[string]any{
		"op":    op,
		"state": string(c.state),
	})
	return true
}

func (c *Coordinator) publishPayload() {
	err := c.bus.Publish(event.Event{
		Type: event.PayloadRefreshed,
		Payload: event.PayloadRefreshedPayload{
			Scenario: string(c.sc),
			Text:     c.PayloadText(),
		},
	})
	if err != nil {
		c.logger.Error("publish payload refresh", map[string]any{"error": err.Error()})
	}
}

func (c *Coordinator) publishFields() {
	err := c.bus.Publish(event.Event{
		Type: event.FieldsRefreshed,
		Payload: event.FieldsRefreshedPayload{
			Scenario: string(c.sc),
			Fields:   c.profile.Fields.Snapshot(),
		},
	})
	if err != nil {
		c.logger.Error("publish fields refresh", map[string]any{"error": err.Error()})
	}
}

func (c *Coordinator) State() State { return c.state }

func (c *Coordinator) Scenario() scenario.Scenario { return c.sc }

func (c *Coordinator) Options() compiler.Options { return c.opts }

func (c *Coordinator) PrivacyEnabled() bool { return c.privacy }

// Fields returns a copy of the loaded model, or nil before LoadProfile.
func (c *Coordinator) Fields() *field.Model {
	if c.profile == nil {
		return nil
	}
	return c.profile.Fields.Clone()
}

// EffectivePayload is the unmasked document transport must send.
func (c *Coordinator) EffectivePayload() payload.Document {
	return c.effective.Clone()
}

// MaskedView derives a fresh display/source pair. Recomputed per call,
// never cached.
func (c *Coordinator) MaskedView() privacy.View {
	return privacy.NewView(c.effective.Clone())
}

// PayloadText renders the payload for display, masked when privacy mode
// is on.
func (c *Coordinator) PayloadText() string {
	if c.effective == nil {
		return ""
	}
	doc := c.effective
	if c.privacy {
		doc = privacy.Mask(doc)
	}
	text, _ := payload.MarshalDisplay(doc)
	return text
}

// Draft is what the payload editor should show: the last user-typed
// text when one is retained, otherwise the rendered payload.
func (c *Coordinator) Draft() string {
	if c.draft != "" {
		return c.draft
	}
	return c.PayloadText()
}

// SaveableOverride is the fragment an explicit profile save persists
// for the current scenario: the saved fragment with the implicit one
// layered on top.
func (c *Coordinator) SaveableOverride() payload.Document {
	if len(c.saved) == 0 && len(c.implicit) == 0 {
		return nil
	}
	return payload.Merge(c.saved, c.implicit)
}

// CurrentProfile returns a copy of the loaded profile carrying this
// session's override for the current scenario, ready for the store.
func (c *Coordinator) CurrentProfile() (*profile.Profile, error) {
	if c.profile == nil {
		return nil, ErrNoProfile
	}
	out := c.profile.Clone()
	out.SetOverride(c.sc, c.SaveableOverride())
	return out, nil
}

// RequestHeaders builds the dispatch headers, deriving the
// payment-type-profile from the loaded profile when none is selected.
func (c *Coordinator) RequestHeaders() (map[string]string, error) {
	if c.profile == nil {
		return nil, ErrNoProfile
	}
	opts := c.opts
	if opts.PTP == "" {
		opts.PTP = c.profile.PaymentTypeProfile()
	}
	return compiler.Headers(c.profile.Fields, opts)
}
