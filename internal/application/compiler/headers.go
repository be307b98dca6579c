package compiler

import (
	"fmt"
	"strings"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
)

const (
	ContentTypeJSON = "application/json"
	UserAgent       = "EBANX-PTP-Tester/Go"
	PTPHeader       = "X-EBANX-Custom-Payment-Type-Profile"
)

// Headers builds the dispatch headers for a compiled request: content
// type, user agent, the payment-type-profile header derived from the
// selected profile and, when toggled on, the custom header field parsed
// as "Name: Value".
func Headers(m *field.Model, opts Options) (map[string]string, error) {
	if opts.PTP == "" {
		return nil, ErrMissingPTP
	}

	h := map[string]string{
		"Content-Type": ContentTypeJSON,
		"User-Agent":   UserAgent,
		PTPHeader:      opts.PTP,
	}

	if opts.CustomHeader {
		raw, ok := m.Get(field.CustomHeader)
		s, isStr := raw.(string)
		if !ok || !isStr || s == "" {
			return nil, &IncompleteConfigurationError{Field: field.CustomHeader}
		}
		name, value, found := strings.Cut(s, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !found || name == "" || value == "" {
			return nil, fmt.Errorf("custom header must be %q, got %q", "Name: Value", s)
		}
		h[name] = value
	}
	return h, nil
}
