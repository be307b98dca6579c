package transport

import (
	"net/url"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
)

// ExtractRedirectURL pulls the 3DS challenge URL out of a response body.
// It looks up payment.redirect_url, then redirect_url, and validates the
// result as an absolute http(s) URL. Navigation is the caller's job; the
// engine only reports the address.
func ExtractRedirectURL(responseBody string) (string, bool) {
	doc, err := payload.FromJSON([]byte(responseBody))
	if err != nil {
		return "", false
	}

	for _, path := range []string{"payment.redirect_url", "redirect_url"} {
		raw, ok := doc.Lookup(path)
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		u, err := url.Parse(s)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			continue
		}
		return s, true
	}
	return "", false
}
