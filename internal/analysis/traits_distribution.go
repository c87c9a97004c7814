package analysis

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// AnalyzeDistributionTraits grades each recent game on the S/A/B/D scale
// and surfaces highlight/collapse/bimodal patterns across the set.
//
// Grounded on the original traits/distribution.rs's
// analyze_distribution_traits.
func AnalyzeDistributionTraits(games []MatchPerformance) []Trait {
	if len(games) < 5 {
		return nil
	}

	var sCount, aCount, dCount int
	for _, g := range games {
		switch {
		case g.KDA >= thresholds.KDA.SGrade:
			sCount++
		case g.KDA >= thresholds.KDA.AGrade:
			aCount++
		case g.KDA < thresholds.KDA.DGrade:
			dCount++
		}
	}

	total := len(games)
	excellentRate := float64(sCount+aCount) / float64(total)
	poorRate := float64(dCount) / float64(total)

	var traits []Trait
	if sCount >= 3 {
		traits = append(traits, Trait{
			Label:    "Highlight Reel",
			Category: fmt.Sprintf("%d of %d games were S-grade (KDA>=%.1f)", sCount, total, thresholds.KDA.SGrade),
			Good:     true,
			Score:    float64(sCount),
		})
	}
	if excellentRate >= 0.50 {
		traits = append(traits, Trait{
			Label:    "Consistently Excellent",
			Category: fmt.Sprintf("%.0f%% of games reach A-grade or better (KDA>=%.1f)", excellentRate*100, thresholds.KDA.AGrade),
			Good:     true,
			Score:    excellentRate * 100,
		})
	}
	if dCount >= 3 && poorRate >= 0.15 {
		traits = append(traits, Trait{
			Label:    "Occasional Collapse",
			Category: fmt.Sprintf("%d of %d games were D-grade (KDA<%.1f)", dCount, total, thresholds.KDA.DGrade),
			Good:     false,
			Score:    float64(dCount),
		})
	}
	if sCount >= 3 && dCount >= 3 {
		traits = append(traits, Trait{
			Label:    "Bimodal",
			Category: fmt.Sprintf("%d S-grade games and %d D-grade games — wildly inconsistent", sCount, dCount),
			Good:     false,
			Score:    float64(sCount + dCount),
		})
	}
	return traits
}

// AnalyzeWinLossPattern flags short-window hot and cold streaks over the
// last 5 and last 10 games.
//
// Grounded on the original traits/distribution.rs's
// analyze_win_loss_pattern.
func AnalyzeWinLossPattern(games []MatchPerformance) []Trait {
	if len(games) < 10 {
		return nil
	}

	recent5 := games[:min(5, len(games))]
	recent10 := games[:min(10, len(games))]
	wins5 := countWins(recent5)
	wins10 := countWins(recent10)

	var traits []Trait
	switch {
	case wins5 >= 4:
		traits = append(traits, Trait{
			Label:    "Hot Streak",
			Category: fmt.Sprintf("%d wins in the last 5, playing great", wins5),
			Good:     true,
			Score:    float64(wins5),
		})
	case wins5 <= 1:
		traits = append(traits, Trait{
			Label:    "Recent Slump",
			Category: fmt.Sprintf("only %d win in the last 5, struggling lately", wins5),
			Good:     false,
			Score:    float64(5 - wins5),
		})
	}

	switch {
	case wins10 >= 8:
		traits = append(traits, Trait{
			Label:    "Dominant Run",
			Category: fmt.Sprintf("%d wins in the last 10, staying strong", wins10),
			Good:     true,
			Score:    float64(wins10),
		})
	case wins10 <= 3:
		traits = append(traits, Trait{
			Label:    "Extended Rut",
			Category: fmt.Sprintf("only %d wins in the last 10, stuck in a slump", wins10),
			Good:     false,
			Score:    float64(10 - wins10),
		})
	}
	return traits
}

func countWins(games []MatchPerformance) int {
	count := 0
	for _, g := range games {
		if g.Win {
			count++
		}
	}
	return count
}
