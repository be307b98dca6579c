package transport_test

import (
	"testing"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/transport"
)

func TestExtractRedirectURL(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{
			name: "nested under payment",
			body: `{"payment":{"status":"PE","redirect_url":"https://3ds.example.com/challenge/abc"}}`,
			want: "https://3ds.example.com/challenge/abc",
			ok:   true,
		},
		{
			name: "top level",
			body: `{"redirect_url":"https://3ds.example.com/x"}`,
			want: "https://3ds.example.com/x",
			ok:   true,
		},
		{
			name: "nested wins over top level",
			body: `{"redirect_url":"https://outer.example.com/","payment":{"redirect_url":"https://inner.example.com/"}}`,
			want: "https://inner.example.com/",
			ok:   true,
		},
		{name: "absent", body: `{"payment":{"status":"CO"}}`},
		{name: "not a string", body: `{"redirect_url":42}`},
		{name: "relative url", body: `{"redirect_url":"/challenge"}`},
		{name: "wrong scheme", body: `{"redirect_url":"ftp://example.com/x"}`},
		{name: "not json", body: `<html>oops</html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := transport.ExtractRedirectURL(tc.body)
			if ok != tc.ok || got != tc.want {
				t.Errorf("got (%q, %v), want (%q, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}
