package transport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
)

// CurlCommand renders the exact request as a multi-line curl invocation
// for debugging outside the tool. The body is compact canonical JSON;
// headers are sorted so the preview is stable.
func CurlCommand(endpoint string, headers map[string]string, doc payload.Document) (string, error) {
	body, err := payload.MarshalCanonical(doc)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "curl -X POST %s \\\n", shellQuote(endpoint))
	for _, name := range names {
		fmt.Fprintf(&b, "  -H %s \\\n", shellQuote(name+": "+headers[name]))
	}
	fmt.Fprintf(&b, "  -d %s", shellQuote(string(body)))
	return b.String(), nil
}

// shellQuote single-quotes a value for a POSIX shell. Embedded single
// quotes become '\'' so the payload survives copy-paste.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
