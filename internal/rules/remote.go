package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Common errors for the remote evaluator.
var (
	ErrRemoteUnavailable = errors.New("rule engine unavailable")
	ErrRemoteStatus      = errors.New("rule engine returned unexpected status")
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteEvaluator submits facts to an external rule engine over HTTP.
// It does not retry: a failed call is reported to the caller as is. A circuit
// breaker stops hammering an engine that keeps failing.
type RemoteEvaluator struct {
	client  HTTPClient
	url     string
	log     *slog.Logger
	circuit *gobreaker.CircuitBreaker
}

// NewRemoteEvaluator creates an evaluator posting facts to url.
func NewRemoteEvaluator(url string, timeout time.Duration, log *slog.Logger) *RemoteEvaluator {
	return NewRemoteEvaluatorWithClient(&http.Client{Timeout: timeout}, url, log)
}

// NewRemoteEvaluatorWithClient creates a remote evaluator with a custom HTTP client.
func NewRemoteEvaluatorWithClient(client HTTPClient, url string, log *slog.Logger) *RemoteEvaluator {
	const (
		halfOpenRequests = 1
		resetAfter       = time.Minute
		openFor          = 30 * time.Second
		tripAfter        = 5
	)

	return &RemoteEvaluator{
		client: client,
		url:    url,
		log:    log,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "rule-engine",
			MaxRequests: halfOpenRequests,
			Interval:    resetAfter,
			Timeout:     openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= tripAfter
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("Circuit breaker changed state", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Evaluate posts the fact as JSON and hands the engine's answer back as is.
// Only classification and score are read, each skipped when it has another
// type; the full body is kept in Decision.Raw. The body must be a JSON object.
func (re *RemoteEvaluator) Evaluate(ctx context.Context, fact Fact) (Decision, error) {
	payload, err := json.Marshal(fact)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to encode fact: %w", err)
	}

	result, err := re.circuit.Execute(func() (any, error) {
		return re.post(ctx, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Decision{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
		}
		return Decision{}, err
	}

	body, ok := result.([]byte)
	if !ok {
		return Decision{}, errors.New("unexpected result type from circuit breaker")
	}

	var envelope struct {
		Classification json.RawMessage `json:"classification"`
		Score          json.RawMessage `json:"score"`
	}
	if err = json.Unmarshal(body, &envelope); err != nil {
		re.log.ErrorContext(ctx, "Failed to parse rule engine response", "error", err, "body", string(body))
		return Decision{}, fmt.Errorf("failed to decode rule engine response: %w", err)
	}

	decision := Decision{Raw: json.RawMessage(body)}
	var classification string
	if json.Unmarshal(envelope.Classification, &classification) == nil {
		decision.Classification = Classification(classification)
	}
	var score float64
	if json.Unmarshal(envelope.Score, &score) == nil {
		decision.Score = score
	}
	if decision.Classification == "" {
		re.log.WarnContext(ctx, "Rule engine response carries no classification", "body", string(body))
	}

	return decision, nil
}

func (re *RemoteEvaluator) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, re.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := re.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute rule engine request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		re.log.ErrorContext(ctx, "Rule engine error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w %d: %s", ErrRemoteStatus, resp.StatusCode, string(body))
	}

	return body, nil
}
