package advice

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// teamfightAnalyzer looks at kill participation and death rate, grounded
// on the original tactical_advice analyzers/teamfight.rs.
type teamfightAnalyzer struct{}

func (teamfightAnalyzer) Name() string { return "teamfight" }

func (teamfightAnalyzer) Enabled(strategy analysis.Strategy) bool {
	return strategy == analysis.StrategyRanked
}

func (a teamfightAnalyzer) Analyze(ctx Context) []GameAdvice {
	if ctx.GameCount() < 10 {
		return nil
	}
	strategy := StrategyFor(ctx.Perspective)

	var out []GameAdvice
	if advice := a.participation(ctx, strategy); advice != nil {
		out = append(out, *advice)
	}
	if advice := a.survival(ctx, strategy); advice != nil {
		out = append(out, *advice)
	}
	return out
}

func (a teamfightAnalyzer) participation(ctx Context, strategy Strategy) *GameAdvice {
	stats := ctx.Stats

	var ratio float64
	if stats.AvgKills > 0 {
		ratio = stats.AvgAssists / (stats.AvgKills + stats.AvgAssists)
	} else {
		ratio = stats.AvgAssists / (stats.AvgAssists + 1.0)
	}

	if ratio >= 0.4 || stats.AvgAssists >= 5.0 {
		return nil
	}

	data := ProblemData{
		Severity:   clamp01(1.0 - ratio),
		Value:      stats.AvgAssists,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("%.1f average assists, %.0f%% participation across %d games", stats.AvgAssists, ratio*100.0, ctx.GameCount()),
	}
	return strategy.GenerateAdvice(ProblemLowTeamfightParticipation, data)
}

func (a teamfightAnalyzer) survival(ctx Context, strategy Strategy) *GameAdvice {
	stats := ctx.Stats
	if stats.AvgDeaths <= thresholds.KDA.DeathTooMany {
		return nil
	}

	data := ProblemData{
		Severity:   clamp01((stats.AvgDeaths - thresholds.KDA.DeathTooMany) / 5.0),
		Value:      stats.AvgDeaths,
		Role:       ctx.Role,
		TargetName: ctx.TargetName,
		ExtraInfo:  fmt.Sprintf("%.1f deaths/game, KDA %.2f across %d games", stats.AvgDeaths, stats.AvgKDA, ctx.GameCount()),
	}
	return strategy.GenerateAdvice(ProblemHighDeathRate, data)
}
