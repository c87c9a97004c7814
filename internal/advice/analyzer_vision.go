package advice

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// visionAnalyzer looks at vision score per minute against a role-specific
// threshold, grounded on the original tactical_advice analyzers/vision.rs.
type visionAnalyzer struct{}

func (visionAnalyzer) Name() string { return "vision" }

func (visionAnalyzer) Enabled(strategy analysis.Strategy) bool {
	return strategy == analysis.StrategyRanked
}

func (a visionAnalyzer) Analyze(ctx Context) []GameAdvice {
	if ctx.GameCount() < 5 {
		return nil
	}

	vspm := ctx.Stats.VSPM
	_, low := thresholds.VisionForRole(ctx.Role)
	if vspm >= low {
		return nil
	}

	data := ProblemData{
		Severity:   clamp01((low - vspm) / low),
		Value:      vspm,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("averages %.1f vision score/min, below the %.1f standard for %s", vspm, low, ctx.Role),
	}
	if advice := StrategyFor(ctx.Perspective).GenerateAdvice(ProblemLowVisionScore, data); advice != nil {
		return []GameAdvice{*advice}
	}
	return nil
}
