package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/contracts"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/logging"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/history"
)

// Request is one queued dispatch: the unmasked effective payload plus
// everything needed to send and record it.
type Request struct {
	ID       string
	Profile  string
	Scenario string
	Endpoint string
	Headers  map[string]string
	Payload  payload.Document
}

// DispatchRecorder persists completed dispatches.
type DispatchRecorder interface {
	Record(history.Dispatch) error
}

// Dispatcher runs network calls off the interactive goroutine. Requests
// are queued by Enqueue and worked by Run; results come back as bus
// events, so the engine never blocks on the network. Transport-level
// failures are retried with exponential backoff; HTTP error statuses
// are results, not failures, and are never retried.
type Dispatcher struct {
	Client   Client
	EventBus contracts.EventPublisher
	Recorder DispatchRecorder
	Logger   logging.Logger
	Metrics  *metrics.Counters
	MaxRetry int
	Backoff  Backoff

	queue chan Request
}

func NewDispatcher(client Client, bus contracts.EventPublisher, recorder DispatchRecorder, logger logging.Logger, counters *metrics.Counters, maxRetry int, backoff Backoff) *Dispatcher {
	return &Dispatcher{
		Client:   client,
		EventBus: bus,
		Recorder: recorder,
		Logger:   logger,
		Metrics:  counters,
		MaxRetry: maxRetry,
		Backoff:  backoff,
		queue:    make(chan Request, 16),
	}
}

// Enqueue accepts a request for dispatch and announces it on the bus.
// The assigned request ID is returned so the caller can correlate the
// eventual response event.
func (d *Dispatcher) Enqueue(req Request) (string, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	err := d.EventBus.Publish(event.Event{
		Type: event.RequestQueued,
		Payload: event.RequestQueuedPayload{
			RequestID: req.ID,
			Profile:   req.Profile,
			Endpoint:  req.Endpoint,
		},
	})
	if err != nil {
		return "", err
	}

	d.queue <- req
	return req.ID, nil
}

// Run works the queue until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-d.queue:
			d.dispatch(ctx, req)
		}
	}
}

// DispatchOnce works a single queued request, for one-shot CLI runs.
func (d *Dispatcher) DispatchOnce(ctx context.Context) {
	select {
	case <-ctx.Done():
	case req := <-d.queue:
		d.dispatch(ctx, req)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) {
	d.Metrics.IncDispatched()

	for attempt := 1; ; attempt++ {
		resp, err := d.Client.Do(ctx, req.Endpoint, req.Headers, req.Payload)
		if err == nil {
			d.succeed(req, resp)
			return
		}

		final := attempt >= d.MaxRetry || ctx.Err() != nil

		d.Logger.Error("dispatch attempt failed", map[string]any{
			"request-id": req.ID,
			"attempt":    attempt,
			"error":      err.Error(),
			"final":      final,
		})

		d.publish(event.Event{
			Type: event.RequestFailed,
			Payload: event.RequestFailedPayload{
				RequestID: req.ID,
				Attempt:   attempt,
				Reason:    err.Error(),
				Final:     final,
			},
		})

		if final {
			d.Metrics.IncFailed()
			d.record(req, history.Dispatch{
				Profile:  req.Profile,
				Scenario: req.Scenario,
				Endpoint: req.Endpoint,
				Class:    ClassTransportFailure,
				Request:  req.Payload,
				Response: err.Error(),
			})
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(d.Backoff.Delay(attempt)):
		}
	}
}

func (d *Dispatcher) succeed(req Request, resp Response) {
	d.Metrics.IncSucceeded()

	class := Classify(resp.StatusCode)
	redirect, _ := ExtractRedirectURL(resp.Body)

	d.Logger.Info("response received", map[string]any{
		"request-id":  req.ID,
		"status":      resp.StatusCode,
		"class":       class,
		"duration-ms": resp.Duration.Milliseconds(),
	})

	d.record(req, history.Dispatch{
		Profile:    req.Profile,
		Scenario:   req.Scenario,
		Endpoint:   req.Endpoint,
		StatusCode: resp.StatusCode,
		Class:      class,
		Duration:   resp.Duration,
		Request:    req.Payload,
		Response:   resp.Body,
	})

	d.publish(event.Event{
		Type: event.ResponseReceived,
		Payload: event.ResponseReceivedPayload{
			RequestID:   req.ID,
			StatusCode:  resp.StatusCode,
			Class:       class,
			DurationMs:  resp.Duration.Milliseconds(),
			Body:        resp.Body,
			RedirectURL: redirect,
		},
	})
}

func (d *Dispatcher) record(req Request, dis history.Dispatch) {
	if d.Recorder == nil {
		return
	}
	if err := d.Recorder.Record(dis); err != nil {
		d.Logger.Error("record history", map[string]any{
			"request-id": req.ID,
			"error":      err.Error(),
		})
	}
}

func (d *Dispatcher) publish(evt event.Event) {
	if err := d.EventBus.Publish(evt); err != nil {
		d.Logger.Error("publish dispatch event", map[string]any{
			"type":  string(evt.Type),
			"error": err.Error(),
		})
	}
}
