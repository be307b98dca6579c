package privacy

import (
	"encoding/json"
	"strings"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
)

const (
	maskRune = "*"
	// Fixed-length runs: the mask never reflects the true length of the
	// hidden part, so digit counts cannot leak past the kept prefix.
	cardMaskRun = 10
	cvvMaskRun  = 4
	keyMaskRun  = 4
	// Keys short enough that keeping 4+4 would reveal everything are
	// fully replaced by this run instead.
	shortKeyMaskRun = 8
)

// Kind selects the masking rule for a sensitive path.
type Kind string

const (
	KindCardNumber Kind = "card-number"
	KindCVV        Kind = "cvv"
	KindKey        Kind = "key"
)

// Rule marks one payload path as sensitive.
type Rule struct {
	Path string
	Kind Kind
}

// DefaultRules covers every sensitive path the compiler can emit. Paths
// absent from a document are simply skipped, so one rule set serves all
// scenarios.
var DefaultRules = []Rule{
	{Path: "integration_key", Kind: KindKey},
	{Path: "payment.card.card_number", Kind: KindCardNumber},
	{Path: "payment.card.card_cvv", Kind: KindCVV},
}

// CardNumber keeps the first six characters and hides the rest behind a
// fixed-length run. Masking its own output yields the same output: the
// kept prefix stops at the first mask character.
func CardNumber(s string) string {
	prefix := s
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	if i := strings.IndexRune(prefix, '*'); i >= 0 {
		prefix = prefix[:i]
	}
	return prefix + strings.Repeat(maskRune, cardMaskRun)
}

// CVV is always fully hidden.
func CVV(string) string {
	return strings.Repeat(maskRune, cvvMaskRun)
}

// Key keeps the first and last four characters of a credential. Short
// keys are fully hidden.
func Key(s string) string {
	if len(s) <= 8 {
		return strings.Repeat(maskRune, shortKeyMaskRun)
	}
	return s[:4] + strings.Repeat(maskRune, keyMaskRun) + s[len(s)-4:]
}

func apply(kind Kind, s string) string {
	switch kind {
	case KindCardNumber:
		return CardNumber(s)
	case KindCVV:
		return CVV(s)
	case KindKey:
		return Key(s)
	}
	return s
}

// Mask returns a display-only copy of the document with DefaultRules
// applied. The input is never mutated; non-sensitive paths are carried
// over untouched.
func Mask(doc payload.Document) payload.Document {
	return MaskWith(doc, DefaultRules)
}

// MaskWith is Mask with an explicit rule set.
func MaskWith(doc payload.Document, rules []Rule) payload.Document {
	out := doc.Clone()
	for _, rule := range rules {
		raw, ok := out.Lookup(rule.Path)
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case string:
			out.Put(rule.Path, apply(rule.Kind, v))
		case json.Number:
			out.Put(rule.Path, apply(rule.Kind, v.String()))
		}
	}
	return out
}

// View pairs the display copy with its unmasked source, so transport
// always has the real values regardless of what is shown.
type View struct {
	Display payload.Document
	Source  payload.Document
}

// NewView derives a fresh masked view. Views are ephemeral: recompute
// them on read, never persist them.
func NewView(source payload.Document) View {
	return View{
		Display: Mask(source),
		Source:  source,
	}
}
