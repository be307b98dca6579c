package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
)

// DirectPath is the payment-request endpoint path on the API base.
const DirectPath = "/ws/direct"

// Endpoint joins the configured base URL with the direct-payment path.
func Endpoint(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + DirectPath
}

// Response is what a completed HTTP exchange reports back: status, raw
// body and wall time. Transport failures (connection, timeout) are
// returned as errors instead.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
}

type Client interface {
	Do(ctx context.Context, endpoint string, headers map[string]string, doc payload.Document) (Response, error)
}

// HTTPClient sends the unmasked effective payload as canonical JSON.
type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Do(ctx context.Context, endpoint string, headers map[string]string, doc payload.Document) (Response, error) {
	body, err := payload.MarshalCanonical(doc)
	if err != nil {
		return Response{}, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response body: %w", err)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
		Duration:   time.Since(start),
	}, nil
}
