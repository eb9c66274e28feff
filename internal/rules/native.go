package rules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/aeolus/internal/direction"
)

const (
	msToKmh = 3.6

	directionWeight = 0.6
	speedWeight     = 0.4

	flyableScore  = 7.0
	marginalScore = 5.0
)

// Compatibility grades how well a wind bearing matches a launch direction range.
type Compatibility string

const (
	CompatibilityPerfect     Compatibility = "perfect"
	CompatibilityFavorable   Compatibility = "favorable"
	CompatibilityMarginal    Compatibility = "marginal"
	CompatibilityUnfavorable Compatibility = "unfavorable"
	CompatibilityDangerous   Compatibility = "dangerous"
)

// SpeedCategory grades a wind speed for paragliding.
type SpeedCategory string

const (
	SpeedLight     SpeedCategory = "light"
	SpeedModerate  SpeedCategory = "moderate"
	SpeedStrong    SpeedCategory = "strong"
	SpeedDangerous SpeedCategory = "dangerous"
)

// NativeEvaluator scores facts in-process, without calling out to a rule engine.
type NativeEvaluator struct {
	log *slog.Logger
}

// NewNativeEvaluator creates an in-process evaluator.
func NewNativeEvaluator(log *slog.Logger) *NativeEvaluator {
	return &NativeEvaluator{log: log}
}

// GradeDirection grades the deviation, in degrees, between wind and launch arc.
func GradeDirection(deviation float64) Compatibility {
	switch {
	case deviation <= 20:
		return CompatibilityPerfect
	case deviation <= 45:
		return CompatibilityFavorable
	case deviation <= 90:
		return CompatibilityMarginal
	case deviation <= 150:
		return CompatibilityUnfavorable
	default:
		return CompatibilityDangerous
	}
}

// GradeSpeed grades a wind speed given in km/h.
func GradeSpeed(kmh float64) SpeedCategory {
	switch {
	case kmh <= 10:
		return SpeedLight
	case kmh <= 15:
		return SpeedModerate
	case kmh <= 20:
		return SpeedStrong
	default:
		return SpeedDangerous
	}
}

// Evaluate scores the fact on a 0..10 scale from direction and speed and
// classifies the result. It never fails.
func (ne *NativeEvaluator) Evaluate(ctx context.Context, fact Fact) (Decision, error) {
	if fact.LaunchDirection.IsDegenerate() {
		ne.log.DebugContext(ctx, "Launch has a zero-width direction range", "range", fact.LaunchDirection)
		return Decision{
			Classification: NotFlyable,
			Reasons:        []string{"Launch accepts no wind direction"},
		}, nil
	}

	deviation := fact.LaunchDirection.Deviation(fact.WindBearing)
	compat := GradeDirection(deviation)
	kmh := fact.WindSpeed * msToKmh
	speed := GradeSpeed(kmh)

	dirScore, dirReason := directionScore(compat)
	spdScore, spdReason := speedScore(speed)

	reasons := []string{
		fmt.Sprintf("Wind from %s (%.0f°), %.0f° outside launch range", direction.Cardinal(fact.WindBearing),
			fact.WindBearing, deviation),
		dirReason,
		fmt.Sprintf("%s (%.1f km/h)", spdReason, kmh),
	}

	score := dirScore*directionWeight + spdScore*speedWeight
	if compat == CompatibilityDangerous || speed == SpeedDangerous {
		score = 0
	}

	decision := Decision{
		Classification: classify(score),
		Score:          score,
		Reasons:        reasons,
	}

	ne.log.DebugContext(ctx, "Fact evaluated natively",
		"direction", compat, "speed", speed, "score", score, "classification", decision.Classification)

	return decision, nil
}

func classify(score float64) Classification {
	switch {
	case score >= flyableScore:
		return Flyable
	case score >= marginalScore:
		return Marginal
	default:
		return NotFlyable
	}
}

func directionScore(c Compatibility) (float64, string) {
	switch c {
	case CompatibilityPerfect:
		return 10, "Perfect wind direction alignment"
	case CompatibilityFavorable:
		return 8, "Favorable wind direction"
	case CompatibilityMarginal:
		return 6, "Marginal wind direction, crosswind conditions"
	case CompatibilityUnfavorable:
		return 3, "Unfavorable wind direction"
	default:
		return 0, "Dangerous wind direction, strong tailwind"
	}
}

func speedScore(s SpeedCategory) (float64, string) {
	switch s {
	case SpeedLight:
		return 9, "Light winds, good for all skill levels"
	case SpeedModerate:
		return 8, "Moderate winds, suitable for most pilots"
	case SpeedStrong:
		return 5, "Strong winds, experienced pilots only"
	default:
		return 0, "Dangerous wind speeds"
	}
}
