package advice

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis"
)

// championAnalyzer looks for over-reliance on a single champion or an
// unusually narrow champion pool, grounded on the original tactical_advice
// analyzers/champion.rs.
type championAnalyzer struct{}

func (championAnalyzer) Name() string { return "champion" }

func (championAnalyzer) Enabled(strategy analysis.Strategy) bool {
	return strategy == analysis.StrategyRanked
}

func (a championAnalyzer) Analyze(ctx Context) []GameAdvice {
	if ctx.GameCount() < 10 {
		return nil
	}
	strategy := StrategyFor(ctx.Perspective)
	champions := ctx.Stats.FavoriteChampions
	if len(champions) == 0 {
		return nil
	}

	top := champions[0]
	specialization := float64(top.Games) / float64(ctx.Stats.TotalGames)
	if specialization >= 0.7 && top.WinRate < 50.0 {
		data := ProblemData{
			Severity:   specialization,
			Value:      top.WinRate,
			Role:       ctx.Role,
			TargetName: ctx.TargetName,
			ExtraInfo:  fmt.Sprintf("%.0f%% of games on one champion, only %.0f%% win rate", specialization*100.0, top.WinRate),
		}
		if advice := strategy.GenerateAdvice(ProblemChampionDependency, data); advice != nil {
			return []GameAdvice{*advice}
		}
		return nil
	}

	if len(champions) <= 2 && ctx.Stats.TotalGames >= 15 {
		data := ProblemData{
			Severity:   0.6,
			Value:      float64(len(champions)),
			Role:       ctx.Role,
			TargetName: ctx.TargetName,
			ExtraInfo:  fmt.Sprintf("%d games played on only %d champions", ctx.Stats.TotalGames, len(champions)),
		}
		if advice := strategy.GenerateAdvice(ProblemChampionPoolNarrow, data); advice != nil {
			return []GameAdvice{*advice}
		}
	}
	return nil
}
