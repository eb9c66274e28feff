// Package rules defines the boundary with the flyability rule engine: the
// Fact submitted for a launch under a given wind, and the Decision handed
// back. The engine itself is pluggable behind the Evaluator interface.
package rules

import (
	"context"
	"encoding/json"

	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/models"
)

// Classification is the flyability verdict carried by a Decision.
type Classification string

const (
	Flyable    Classification = "flyable"
	Marginal   Classification = "marginal"
	NotFlyable Classification = "not_flyable"
)

// Fact is a snapshot of one launch facing one wind observation. It is never
// mutated after BuildFact returns it.
type Fact struct {
	LaunchDirection direction.Range `json:"launchDirection"`
	SiteType        models.SiteType `json:"siteType"`
	WindBearing     float64         `json:"windBearing"` // degrees, clockwise from north
	WindSpeed       float64         `json:"windSpeed"`   // m/s
}

// Decision is the verdict returned by an Evaluator. Beyond Classification its
// content belongs to the engine that produced it and is passed on unmodified.
type Decision struct {
	Classification Classification  `json:"classification"`
	Score          float64         `json:"score,omitempty"`
	Reasons        []string        `json:"reasons,omitempty"`
	Raw            json.RawMessage `json:"-"` // Raw is the engine's original payload, if it sent one.
}

// Evaluator turns a Fact into a Decision.
type Evaluator interface {
	Evaluate(ctx context.Context, fact Fact) (Decision, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, fact Fact) (Decision, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, fact Fact) (Decision, error) {
	return f(ctx, fact)
}

// BuildFact snapshots a launch and a wind observation into a Fact.
func BuildFact(launch models.Launch, windBearing, windSpeed float64) Fact {
	return Fact{
		LaunchDirection: launch.Direction,
		SiteType:        launch.SiteType,
		WindBearing:     windBearing,
		WindSpeed:       windSpeed,
	}
}
