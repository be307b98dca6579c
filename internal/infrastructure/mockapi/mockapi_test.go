package mockapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/mockapi"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/transport"
)

type fixedSimulator struct {
	outcome mockapi.Outcome
}

func (f fixedSimulator) Outcome(payload.Document) mockapi.Outcome {
	return f.outcome
}

type noopLogger struct{}

func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

func newServer(outcome mockapi.Outcome) *httptest.Server {
	handler := &mockapi.DirectHandler{
		Simulator: fixedSimulator{outcome: outcome},
		Logger:    noopLogger{},
	}
	return httptest.NewServer(mockapi.NewRouter(handler))
}

func post(t *testing.T, url, body string) (int, payload.Document) {
	t.Helper()

	resp, err := http.Post(url+"/ws/direct", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var buf strings.Builder
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		t.Fatal(err)
	}
	doc, err := payload.FromJSON([]byte(buf.String()))
	if err != nil {
		t.Fatalf("parse response %q: %v", buf.String(), err)
	}
	return resp.StatusCode, doc
}

const validRequest = `{
	"integration_key": "test_ik",
	"operation": "request",
	"payment": {"amount_total": "100.00", "currency_code": "NGN", "card": {"card_number": "4111111111111111"}}
}`

func TestDirect_Approved(t *testing.T) {
	srv := newServer(mockapi.OutcomeApproved)
	defer srv.Close()

	status, doc := post(t, srv.URL, validRequest)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if v, _ := doc.Lookup("payment.status"); v != "CO" {
		t.Errorf("expected status CO, got %v", v)
	}
	if v, _ := doc.Lookup("payment.amount_total"); v != json.Number("100.00") {
		t.Errorf("expected echoed amount, got %v", v)
	}
	if _, ok := doc.Lookup("payment.hash"); !ok {
		t.Error("expected a payment hash")
	}
}

func TestDirect_Declined(t *testing.T) {
	srv := newServer(mockapi.OutcomeDeclined)
	defer srv.Close()

	status, doc := post(t, srv.URL, validRequest)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if v, _ := doc.Lookup("payment.status"); v != "CA" {
		t.Errorf("expected status CA, got %v", v)
	}
}

func TestDirect_Redirect_YieldsExtractableURL(t *testing.T) {
	srv := newServer(mockapi.OutcomeRedirect)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ws/direct", "application/json", strings.NewReader(validRequest))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var buf strings.Builder
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		t.Fatal(err)
	}

	url, ok := transport.ExtractRedirectURL(buf.String())
	if !ok {
		t.Fatalf("expected a redirect URL in %q", buf.String())
	}

	challenge, err := http.Get(url)
	if err != nil {
		t.Fatalf("follow redirect: %v", err)
	}
	defer challenge.Body.Close()
	if challenge.StatusCode != http.StatusOK {
		t.Errorf("challenge page returned %d", challenge.StatusCode)
	}
}

func TestDirect_MissingIntegrationKey_IsRejected(t *testing.T) {
	srv := newServer(mockapi.OutcomeApproved)
	defer srv.Close()

	cases := []string{
		`{"operation": "request"}`,
		`{"integration_key": "", "operation": "request"}`,
		`{"integration_key": "{integration_key}", "operation": "request"}`,
	}
	for _, body := range cases {
		status, doc := post(t, srv.URL, body)
		if status != http.StatusUnauthorized {
			t.Errorf("body %s: expected 401, got %d", body, status)
		}
		if v, _ := doc.Lookup("status_code"); v != "DA-1" {
			t.Errorf("body %s: expected DA-1, got %v", body, v)
		}
	}
}

func TestDirect_MalformedBody_IsRejected(t *testing.T) {
	srv := newServer(mockapi.OutcomeApproved)
	defer srv.Close()

	status, doc := post(t, srv.URL, `{not json`)

	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if v, _ := doc.Lookup("status"); v != "ERROR" {
		t.Errorf("expected ERROR status, got %v", v)
	}
}

func TestRandomSimulator_ThreeDSForceAlwaysRedirects(t *testing.T) {
	sim := mockapi.NewRandomSimulator(100, 1)

	doc, err := payload.FromJSON([]byte(`{"payment":{"card":{"threeds_force":true}}}`))
	if err != nil {
		t.Fatal(err)
	}

	for range 10 {
		if got := sim.Outcome(doc); got != mockapi.OutcomeRedirect {
			t.Fatalf("expected redirect, got %s", got)
		}
	}
}

func TestRandomSimulator_RateBounds(t *testing.T) {
	always := mockapi.NewRandomSimulator(100, 1)
	never := mockapi.NewRandomSimulator(0, 1)
	doc := payload.Document{}

	for range 20 {
		if got := always.Outcome(doc); got != mockapi.OutcomeApproved {
			t.Fatalf("rate 100 must always approve, got %s", got)
		}
		if got := never.Outcome(doc); got != mockapi.OutcomeDeclined {
			t.Fatalf("rate 0 must always decline, got %s", got)
		}
	}
}
