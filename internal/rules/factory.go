package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// EvaluatorType selects how facts are evaluated.
type EvaluatorType string

const (
	// EvaluatorTypeNative scores facts in-process.
	EvaluatorTypeNative EvaluatorType = "native"
	// EvaluatorTypeRemote posts facts to an external rule engine.
	EvaluatorTypeRemote EvaluatorType = "remote"
)

// ErrUnknownEvaluator is returned for an unsupported evaluator type.
var ErrUnknownEvaluator = errors.New("unsupported evaluator type")

// EvaluatorConfig holds configuration for creating an evaluator.
type EvaluatorConfig struct {
	Type    EvaluatorType // Type of evaluator to create
	URL     string        // Rule engine endpoint (remote only)
	Timeout time.Duration // Request timeout (remote only)
	Logger  *slog.Logger  // Logger for the evaluator
}

// NewEvaluator creates an evaluator based on the provided configuration, so
// the evaluation strategy can be swapped without touching the callers.
func NewEvaluator(config EvaluatorConfig) (Evaluator, error) {
	switch config.Type {
	case EvaluatorTypeNative:
		return NewNativeEvaluator(config.Logger), nil
	case EvaluatorTypeRemote:
		if config.URL == "" {
			return nil, errors.New("URL is required for remote evaluator")
		}
		if config.Timeout <= 0 {
			const defaultTimeout = 10 * time.Second
			config.Timeout = defaultTimeout
		}
		return NewRemoteEvaluator(config.URL, config.Timeout, config.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvaluator, config.Type)
	}
}
