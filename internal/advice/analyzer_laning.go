package advice

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// laningAnalyzer looks at early CS and XP deltas for a sustained laning
// weakness, grounded on the original tactical_advice analyzers/laning.rs.
type laningAnalyzer struct{}

func (laningAnalyzer) Name() string { return "laning" }

func (laningAnalyzer) Enabled(strategy analysis.Strategy) bool {
	return strategy == analysis.StrategyRanked
}

func (a laningAnalyzer) Analyze(ctx Context) []GameAdvice {
	if ctx.GameCount() < 5 {
		return nil
	}
	strategy := StrategyFor(ctx.Perspective)

	var out []GameAdvice
	if advice := a.csDifference(ctx, strategy); advice != nil {
		out = append(out, *advice)
	}
	if advice := a.xpDifference(ctx, strategy); advice != nil {
		out = append(out, *advice)
	}
	return out
}

func (a laningAnalyzer) csDifference(ctx Context, strategy Strategy) *GameAdvice {
	var total float64
	var valid int
	for _, g := range ctx.Games {
		if g.Player.Timeline == nil || g.Player.Timeline.CSDiff0To10 == nil {
			continue
		}
		total += *g.Player.Timeline.CSDiff0To10
		valid++
	}
	if valid < 5 {
		return nil
	}
	avg := total / float64(valid)
	if avg >= thresholds.LaningPhase.CSDiffDisadvantage {
		return nil
	}

	problemType := ProblemLaningCSDeficit
	if avg <= thresholds.LaningPhase.CSDiffSuppressed {
		problemType = ProblemLaningDominated
	}

	severity := clamp01(-avg / 30.0)
	data := ProblemData{
		Severity:   severity,
		Value:      avg,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("averages %+.1f CS by 10 minutes across %d games", avg, valid),
	}
	return strategy.GenerateAdvice(problemType, data)
}

func (a laningAnalyzer) xpDifference(ctx Context, strategy Strategy) *GameAdvice {
	var total float64
	var valid int
	for _, g := range ctx.Games {
		if g.Player.Timeline == nil || g.Player.Timeline.XPDiff0To10 == nil {
			continue
		}
		total += *g.Player.Timeline.XPDiff0To10
		valid++
	}
	if valid < 5 {
		return nil
	}
	avg := total / float64(valid)
	if avg >= thresholds.LaningPhase.XPDiffDisadvantage {
		return nil
	}

	data := ProblemData{
		Severity:   clamp01(-avg / 1000.0),
		Value:      avg,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("averages %+.0f XP by 10 minutes, frequently out-leveled", avg),
	}
	return strategy.GenerateAdvice(ProblemLaningDominated, data)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
