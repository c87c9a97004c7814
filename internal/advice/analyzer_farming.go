package advice

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// farmingAnalyzer looks at mid-game gold efficiency and overall CS/min,
// grounded on the original tactical_advice analyzers/farming.rs.
type farmingAnalyzer struct{}

func (farmingAnalyzer) Name() string { return "farming" }

func (farmingAnalyzer) Enabled(strategy analysis.Strategy) bool {
	return strategy == analysis.StrategyRanked
}

func (a farmingAnalyzer) Analyze(ctx Context) []GameAdvice {
	if ctx.GameCount() < 5 {
		return nil
	}
	strategy := StrategyFor(ctx.Perspective)

	var out []GameAdvice
	if advice := a.midGameEconomy(ctx, strategy); advice != nil {
		out = append(out, *advice)
	}
	if advice := a.csEfficiency(ctx, strategy); advice != nil {
		out = append(out, *advice)
	}
	return out
}

func (a farmingAnalyzer) midGameEconomy(ctx Context, strategy Strategy) *GameAdvice {
	var earlySum, midSum float64
	var valid int
	for _, g := range ctx.Games {
		tl := g.Player.Timeline
		if tl == nil || tl.GoldPerMin0To10 == nil || tl.GoldPerMin10To20 == nil {
			continue
		}
		earlySum += *tl.GoldPerMin0To10
		midSum += *tl.GoldPerMin10To20
		valid++
	}
	if valid < 5 {
		return nil
	}
	avgEarly := earlySum / float64(valid)
	avgMid := midSum / float64(valid)

	if avgMid >= avgEarly*thresholds.Growth.MidGameDecline {
		return nil
	}
	decline := 1.0 - (avgMid / avgEarly)

	data := ProblemData{
		Severity:   decline,
		Value:      avgMid,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("%.0f gold/min early → %.0f gold/min mid, down %.0f%%", avgEarly, avgMid, decline*100.0),
	}
	return strategy.GenerateAdvice(ProblemMidGameDecline, data)
}

func (a farmingAnalyzer) csEfficiency(ctx Context, strategy Strategy) *GameAdvice {
	cspm := ctx.Stats.CSPM
	if cspm >= thresholds.CS.Good {
		return nil
	}

	data := ProblemData{
		Severity:   clamp01((thresholds.CS.Good - cspm) / thresholds.CS.Good),
		Value:      cspm,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("averages %.1f CS/min, below the %.1f standard", cspm, thresholds.CS.Good),
	}
	return strategy.GenerateAdvice(ProblemPoorFarming, data)
}
