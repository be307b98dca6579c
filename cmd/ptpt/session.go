package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/compiler"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/sync"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/profile"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/eventbus"
)

// sessionFlags select a profile and the compile configuration. Shared
// by compile and send.
type sessionFlags struct {
	category string
	country  string
	typ      string
	name     string
	scenario string

	ptp            string
	softDescriptor bool
	customHeader   bool

	sets        []string
	payloadFile string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.category, "category", string(scenario.CategoryCard), `profile category: "card" or "alternative-payment"`)
	fl.StringVar(&f.country, "country", "NG", "profile country code")
	fl.StringVar(&f.typ, "type", "visa", "method type (visa, mastercard, mobile_money, ...)")
	fl.StringVarP(&f.name, "name", "n", "test-visa", "profile name")
	fl.StringVarP(&f.scenario, "scenario", "s", string(scenario.Unauthenticated), "scenario: unauthenticated, authenticated or alternative-payment")
	fl.StringVar(&f.ptp, "ptp", "", "payment-type-profile header value (default: derived from the profile)")
	fl.BoolVar(&f.softDescriptor, "soft-descriptor", false, "include the soft descriptor field")
	fl.BoolVar(&f.customHeader, "custom-header", false, "send the profile's custom header")
	fl.StringArrayVar(&f.sets, "set", nil, "field edit as name=value (repeatable)")
	fl.StringVar(&f.payloadFile, "payload", "", `raw payload JSON to sync from ("-" reads stdin)`)
}

// newSession loads the selected profile into a coordinator and applies
// the command-line edits: --set field edits first, then an optional raw
// payload sync.
func (a *app) newSession(f *sessionFlags, bus *eventbus.InMemoryBus, counters *metrics.Counters) (*sync.Coordinator, *profile.Profile, error) {
	sc := scenario.Scenario(f.scenario)
	if !sc.Valid() {
		return nil, nil, fmt.Errorf("unknown scenario %q", f.scenario)
	}
	cat := scenario.Category(f.category)
	if !cat.Valid() {
		return nil, nil, fmt.Errorf("unknown category %q", f.category)
	}

	p, err := a.store().Find(cat, f.country, scenario.MethodType(f.typ), f.name)
	if err != nil {
		return nil, nil, err
	}

	coord := sync.NewCoordinator(bus, a.logger, counters)
	if err := coord.UpdateOptions(compiler.Options{
		IntegrationKey: a.cfg.IntegrationKey,
		Method:         p.Type,
		PTP:            f.ptp,
		SoftDescriptor: f.softDescriptor,
		CustomHeader:   f.customHeader,
	}); err != nil {
		return nil, nil, err
	}
	if err := coord.LoadProfile(p, sc); err != nil {
		return nil, nil, err
	}

	for _, set := range f.sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			return nil, nil, fmt.Errorf("--set wants name=value, got %q", set)
		}
		if err := applyFieldEdit(coord, name, value); err != nil {
			return nil, nil, err
		}
	}

	if f.payloadFile != "" {
		text, err := readPayload(f.payloadFile)
		if err != nil {
			return nil, nil, err
		}
		if err := coord.PayloadTextEdited(text); err != nil {
			return nil, nil, err
		}
	}

	return coord, p, nil
}

// applyFieldEdit tries the literal string first; when the field wants a
// boolean, the true/false literal is retried as one.
func applyFieldEdit(coord *sync.Coordinator, name, value string) error {
	err := coord.FieldEdited(name, value)

	var validation *field.ValidationError
	if errors.As(err, &validation) && validation.Kind == field.KindBoolean {
		if value == "true" || value == "false" {
			return coord.FieldEdited(name, value == "true")
		}
	}
	return err
}

func readPayload(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read payload from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read payload file: %w", err)
	}
	return string(data), nil
}
