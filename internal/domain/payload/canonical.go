package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gowebpki/jcs"
)

// MarshalCanonical renders the document as RFC 8785 canonical JSON:
// sorted keys, normalized numbers, byte-identical for identical content.
// Used wherever payload bytes are compared or persisted.
func MarshalCanonical(d Document) ([]byte, error) {
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return jcs.Transform(b)
}

// MarshalDisplay renders the document as indented JSON for the payload
// editor view. Keys are sorted, HTML escaping is off.
func MarshalDisplay(d Document) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(d)); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
