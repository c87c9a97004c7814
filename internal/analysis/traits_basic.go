package analysis

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// AnalyzeBasicTraits derives the always-on trait set: win rate, KDA,
// kill/assist volume, streaks, and one overall composite score. Returns
// nothing for fewer than three games — too little signal to label.
//
// Grounded on the original traits/basic.rs's analyze_traits pipeline.
func AnalyzeBasicTraits(stats PlayerMatchStats) []Trait {
	if stats.TotalGames < 3 {
		return nil
	}

	var traits []Trait
	traits = append(traits, winRateTraits(stats)...)
	traits = append(traits, kdaTraits(stats)...)
	traits = append(traits, killsAssistsTraits(stats)...)
	traits = append(traits, streakTraits(stats)...)
	traits = append(traits, overallTraits(stats)...)

	sortTraitsByScoreDesc(traits)
	return traits
}

func winRateTraits(stats PlayerMatchStats) []Trait {
	switch {
	case stats.WinRate >= thresholds.WinRate.ExcellentRanked:
		return []Trait{{
			Label:    "Ace",
			Category: fmt.Sprintf("elite win rate (%d%%)", int(stats.WinRate)),
			Good:     true,
			Score:    stats.WinRate,
		}}
	case stats.WinRate >= thresholds.WinRate.Good:
		return []Trait{{
			Label:    "Stable",
			Category: fmt.Sprintf("reliably winning teammate (%d%%)", int(stats.WinRate)),
			Good:     true,
			Score:    stats.WinRate,
		}}
	case stats.WinRate <= thresholds.WinRate.Poor && stats.TotalGames >= 10:
		return []Trait{{
			Label:    "Struggling",
			Category: fmt.Sprintf("win rate running low (%d%%)", int(stats.WinRate)),
			Good:     false,
			Score:    stats.WinRate,
		}}
	}
	return nil
}

func kdaTraits(stats PlayerMatchStats) []Trait {
	switch {
	case stats.AvgKDA >= thresholds.KDA.ExcellentRanked:
		return []Trait{{
			Label:    "Carry",
			Category: fmt.Sprintf("elite KDA (%.1f)", stats.AvgKDA),
			Good:     true,
			Score:    stats.AvgKDA * 10,
		}}
	case stats.AvgKDA <= thresholds.KDA.Poor && stats.AvgDeaths >= 7.0:
		return []Trait{{
			Label:    "Feeding",
			Category: fmt.Sprintf("KDA running low (%.1f)", stats.AvgKDA),
			Good:     false,
			Score:    stats.AvgDeaths,
		}}
	}
	return nil
}

func killsAssistsTraits(stats PlayerMatchStats) []Trait {
	var traits []Trait
	if stats.AvgKills >= 8.0 {
		traits = append(traits, Trait{
			Label:    "Kill Machine",
			Category: "exceptional kill power",
			Good:     true,
			Score:    stats.AvgKills,
		})
	}
	if stats.AvgAssists >= 10.0 {
		traits = append(traits, Trait{
			Label:    "Assist Machine",
			Category: "exceptional teamfight presence",
			Good:     true,
			Score:    stats.AvgAssists,
		})
	}
	return traits
}

func streakTraits(stats PlayerMatchStats) []Trait {
	if len(stats.RecentPerformance) == 0 {
		return nil
	}

	streak := calculateWinStreak(stats.RecentPerformance)
	switch {
	case streak >= thresholds.Streak.WinGood:
		return []Trait{{
			Label:    "On a Roll",
			Category: fmt.Sprintf("riding a %d-game win streak", streak),
			Good:     true,
			Score:    float64(streak),
		}}
	case streak <= thresholds.Streak.LossBad:
		return []Trait{{
			Label:    "Cold Streak",
			Category: fmt.Sprintf("%d-game losing streak", -streak),
			Good:     false,
			Score:    float64(-streak),
		}}
	}
	return nil
}

func overallTraits(stats PlayerMatchStats) []Trait {
	score := calculateOverallScore(stats)
	if score >= 80 {
		return []Trait{{
			Label:    "All-Rounder",
			Category: "exceptional across the board",
			Good:     true,
			Score:    float64(score),
		}}
	}
	return nil
}

// calculateWinStreak returns a positive run length for a win streak or a
// negative one for a loss streak, scanning from the most recent game and
// stopping at the first break.
func calculateWinStreak(recent []MatchPerformance) int {
	streak := 0
	for _, g := range recent {
		switch {
		case g.Win && streak >= 0:
			streak++
		case g.Win:
			return streak
		case !g.Win && streak <= 0:
			streak--
		default:
			return streak
		}
	}
	return streak
}

// calculateOverallScore weighs win rate 60%, KDA 20%, and game volume 20%.
func calculateOverallScore(stats PlayerMatchStats) int {
	winRateScore := min(stats.WinRate*0.6, 60.0)
	kdaScore := min(stats.AvgKDA*5.0, 20.0)
	gamesScore := min(float64(stats.TotalGames)*0.2, 20.0)
	return int(winRateScore + kdaScore + gamesScore)
}

func sortTraitsByScoreDesc(traits []Trait) {
	for i := 1; i < len(traits); i++ {
		for j := i; j > 0 && traits[j-1].Score < traits[j].Score; j-- {
			traits[j-1], traits[j] = traits[j], traits[j-1]
		}
	}
}
