package transport_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/history"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/transport"
)

type fakeClient struct {
	doFn  func(ctx context.Context, endpoint string, headers map[string]string, doc payload.Document) (transport.Response, error)
	calls int
}

func (f *fakeClient) Do(ctx context.Context, endpoint string, headers map[string]string, doc payload.Document) (transport.Response, error) {
	f.calls++
	return f.doFn(ctx, endpoint, headers, doc)
}

type fakeBus struct {
	published []event.Event
}

func (f *fakeBus) Publish(evt event.Event) error {
	f.published = append(f.published, evt)
	return nil
}

func (f *fakeBus) lastOfType(t event.Type) (event.Event, bool) {
	for i := len(f.published) - 1; i >= 0; i-- {
		if f.published[i].Type == t {
			return f.published[i], true
		}
	}
	return event.Event{}, false
}

type fakeRecorder struct {
	recorded []history.Dispatch
}

func (f *fakeRecorder) Record(d history.Dispatch) error {
	f.recorded = append(f.recorded, d)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

func testRequest() transport.Request {
	return transport.Request{
		Profile:  "NG/visa/test-visa",
		Scenario: "unauthenticated",
		Endpoint: "http://localhost:1/ws/direct",
		Headers:  map[string]string{"Content-Type": "application/json"},
		Payload:  payload.Document{"operation": "request"},
	}
}

func newDispatcher(client transport.Client, bus *fakeBus, rec *fakeRecorder, counters *metrics.Counters) *transport.Dispatcher {
	return transport.NewDispatcher(
		client,
		bus,
		rec,
		noopLogger{},
		counters,
		3,
		transport.Backoff{Base: time.Millisecond, Max: 2 * time.Millisecond},
	)
}

func TestDispatcher_SuccessfulResponse_ShouldPublishAndRecord(t *testing.T) {
	// arrange
	client := &fakeClient{
		doFn: func(context.Context, string, map[string]string, payload.Document) (transport.Response, error) {
			return transport.Response{
				StatusCode: 200,
				Body:       `{"payment":{"status":"CO"}}`,
				Duration:   12 * time.Millisecond,
			}, nil
		},
	}
	bus := &fakeBus{}
	rec := &fakeRecorder{}
	counters := &metrics.Counters{}
	d := newDispatcher(client, bus, rec, counters)

	// act
	id, err := d.Enqueue(testRequest())
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.DispatchOnce(context.Background())

	// assert
	if id == "" {
		t.Fatal("expected an assigned request ID")
	}
	if _, ok := bus.lastOfType(event.RequestQueued); !ok {
		t.Error("expected a RequestQueued event")
	}

	evt, ok := bus.lastOfType(event.ResponseReceived)
	if !ok {
		t.Fatal("expected a ResponseReceived event")
	}
	got := evt.Payload.(event.ResponseReceivedPayload)
	if got.RequestID != id || got.StatusCode != 200 || got.Class != transport.ClassSuccess {
		t.Errorf("unexpected response payload: %+v", got)
	}

	if len(rec.recorded) != 1 || rec.recorded[0].Class != transport.ClassSuccess {
		t.Errorf("expected one success history record, got %+v", rec.recorded)
	}
	if counters.RequestsSucceeded != 1 || counters.RequestsDispatched != 1 {
		t.Errorf("unexpected counters: %+v", counters)
	}
}

func TestDispatcher_TransportFailure_ShouldRetryThenSucceed(t *testing.T) {
	client := &fakeClient{}
	client.doFn = func(context.Context, string, map[string]string, payload.Document) (transport.Response, error) {
		if client.calls < 3 {
			return transport.Response{}, errors.New("connection refused")
		}
		return transport.Response{StatusCode: 200, Body: `{}`}, nil
	}
	bus := &fakeBus{}
	rec := &fakeRecorder{}
	d := newDispatcher(client, bus, rec, &metrics.Counters{})

	if _, err := d.Enqueue(testRequest()); err != nil {
		t.Fatal(err)
	}
	d.DispatchOnce(context.Background())

	if client.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", client.calls)
	}

	evt, ok := bus.lastOfType(event.RequestFailed)
	if !ok {
		t.Fatal("expected intermediate RequestFailed events")
	}
	if got := evt.Payload.(event.RequestFailedPayload); got.Final {
		t.Errorf("retryable failure must not be final: %+v", got)
	}
	if _, ok := bus.lastOfType(event.ResponseReceived); !ok {
		t.Error("expected the retried request to eventually succeed")
	}
}

func TestDispatcher_ExhaustedRetries_ShouldRecordTransportFailure(t *testing.T) {
	client := &fakeClient{
		doFn: func(context.Context, string, map[string]string, payload.Document) (transport.Response, error) {
			return transport.Response{}, errors.New("dial tcp: timeout")
		},
	}
	bus := &fakeBus{}
	rec := &fakeRecorder{}
	counters := &metrics.Counters{}
	d := newDispatcher(client, bus, rec, counters)

	if _, err := d.Enqueue(testRequest()); err != nil {
		t.Fatal(err)
	}
	d.DispatchOnce(context.Background())

	if client.calls != 3 {
		t.Fatalf("expected MaxRetry attempts, got %d", client.calls)
	}

	evt, ok := bus.lastOfType(event.RequestFailed)
	if !ok {
		t.Fatal("expected a RequestFailed event")
	}
	if got := evt.Payload.(event.RequestFailedPayload); !got.Final || got.Attempt != 3 {
		t.Errorf("expected final failure at attempt 3, got %+v", got)
	}

	if len(rec.recorded) != 1 || rec.recorded[0].Class != transport.ClassTransportFailure {
		t.Errorf("expected a transport-failure history record, got %+v", rec.recorded)
	}
	if counters.RequestsFailed != 1 {
		t.Errorf("expected RequestsFailed = 1, got %d", counters.RequestsFailed)
	}
}

func TestDispatcher_HTTPErrorStatus_IsAResultNotARetry(t *testing.T) {
	client := &fakeClient{
		doFn: func(context.Context, string, map[string]string, payload.Document) (transport.Response, error) {
			return transport.Response{StatusCode: 400, Body: `{"status":"ERROR"}`}, nil
		},
	}
	bus := &fakeBus{}
	d := newDispatcher(client, bus, &fakeRecorder{}, &metrics.Counters{})

	if _, err := d.Enqueue(testRequest()); err != nil {
		t.Fatal(err)
	}
	d.DispatchOnce(context.Background())

	if client.calls != 1 {
		t.Fatalf("HTTP 400 must not be retried, got %d attempts", client.calls)
	}

	evt, ok := bus.lastOfType(event.ResponseReceived)
	if !ok {
		t.Fatal("expected a ResponseReceived event")
	}
	if got := evt.Payload.(event.ResponseReceivedPayload); got.Class != transport.ClassClientError {
		t.Errorf("expected client-error class, got %+v", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{200, transport.ClassSuccess},
		{201, transport.ClassSuccess},
		{400, transport.ClassClientError},
		{404, transport.ClassClientError},
		{500, transport.ClassServerError},
		{302, transport.ClassOther},
	}
	for _, tc := range cases {
		if got := transport.Classify(tc.status); got != tc.want {
			t.Errorf("Classify(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestBackoff_DoublesAndCaps(t *testing.T) {
	b := transport.Backoff{Base: time.Second, Max: 5 * time.Second}

	if got := b.Delay(1); got != time.Second {
		t.Errorf("attempt 1: got %v", got)
	}
	if got := b.Delay(2); got != 2*time.Second {
		t.Errorf("attempt 2: got %v", got)
	}
	if got := b.Delay(3); got != 4*time.Second {
		t.Errorf("attempt 3: got %v", got)
	}
	if got := b.Delay(4); got != 5*time.Second {
		t.Errorf("attempt 4 should cap at max, got %v", got)
	}
}
