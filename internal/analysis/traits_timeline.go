package analysis

import (
	"fmt"

	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// AnalyzeTimelineTraits derives laning, growth-curve, and level-advantage
// traits from per-game timeline data. Needs at least 5 games; role is
// accepted for parity with the original signature even though the current
// laning trait doesn't yet branch on it.
//
// Grounded on the original traits/timeline.rs's analyze_timeline_traits.
func AnalyzeTimelineTraits(games []ParsedGame, role string) []Trait {
	_ = role
	if len(games) < 5 {
		return nil
	}

	var traits []Trait
	traits = append(traits, laningPhaseTraits(games)...)
	traits = append(traits, growthCurveTraits(games)...)
	traits = append(traits, levelAdvantageTraits(games)...)
	return traits
}

func laningPhaseTraits(games []ParsedGame) []Trait {
	var totalCSDiff float64
	var valid int
	for _, g := range games {
		if g.Player.Timeline == nil || g.Player.Timeline.CSDiff0To10 == nil {
			continue
		}
		totalCSDiff += *g.Player.Timeline.CSDiff0To10
		valid++
	}
	if valid < 5 {
		return nil
	}
	avg := totalCSDiff / float64(valid)

	switch {
	case avg >= thresholds.LaningPhase.CSDiffDominate:
		return []Trait{{Label: "Lane Dominant", Category: fmt.Sprintf("averages +%.1f CS by 10 minutes, crushing the lane", avg), Good: true, Score: avg}}
	case avg >= thresholds.LaningPhase.CSDiffAdvantage:
		return []Trait{{Label: "Lane Advantage", Category: fmt.Sprintf("averages +%.1f CS by 10 minutes, ahead in lane", avg), Good: true, Score: avg}}
	case avg >= thresholds.LaningPhase.CSDiffNeutralLow && avg <= thresholds.LaningPhase.CSDiffNeutralHigh:
		if valid >= 10 {
			return []Trait{{Label: "Solid Laner", Category: fmt.Sprintf("even CS by 10 minutes (%+.1f), holds the lane", avg), Good: true, Score: 50}}
		}
	case avg <= thresholds.LaningPhase.CSDiffSuppressed:
		return []Trait{{Label: "Lane Weak", Category: fmt.Sprintf("averages -%.1f CS by 10 minutes, under heavy pressure", -avg), Good: false, Score: -avg}}
	case avg <= thresholds.LaningPhase.CSDiffDisadvantage:
		return []Trait{{Label: "Lane Disadvantage", Category: fmt.Sprintf("averages -%.1f CS by 10 minutes, behind in lane", -avg), Good: false, Score: -avg}}
	}
	return nil
}

func growthCurveTraits(games []ParsedGame) []Trait {
	var earlySum, midSum float64
	var valid int
	for _, g := range games {
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

	switch {
	case avgMid > avgEarly*thresholds.Growth.MidGameBoost:
		growthRate := (avgMid/avgEarly - 1.0) * 100.0
		return []Trait{{
			Label:    "Surging Growth",
			Category: fmt.Sprintf("mid-game gold efficiency up %.0f%% (%.0f→%.0f), strong roaming impact", growthRate, avgEarly, avgMid),
			Good:     true,
			Score:    70,
		}}
	case avgEarly >= thresholds.Growth.StableGoldEarly && avgMid >= thresholds.Growth.StableGoldMid:
		return []Trait{{
			Label:    "Steady Scaling",
			Category: fmt.Sprintf("strong economy in every phase (%.0f/%.0f)", avgEarly, avgMid),
			Good:     true,
			Score:    65,
		}}
	case avgMid < avgEarly*thresholds.Growth.MidGameDecline:
		declineRate := (1.0 - avgMid/avgEarly) * 100.0
		return []Trait{{
			Label:    "Mid-Game Fade",
			Category: fmt.Sprintf("mid-game gold efficiency down %.0f%% (%.0f→%.0f), tempo needs work", declineRate, avgEarly, avgMid),
			Good:     false,
			Score:    declineRate,
		}}
	}
	return nil
}

func levelAdvantageTraits(games []ParsedGame) []Trait {
	var totalXPDiff float64
	var valid int
	for _, g := range games {
		if g.Player.Timeline == nil || g.Player.Timeline.XPDiff0To10 == nil {
			continue
		}
		totalXPDiff += *g.Player.Timeline.XPDiff0To10
		valid++
	}
	if valid < 5 {
		return nil
	}
	avg := totalXPDiff / float64(valid)

	switch {
	case avg >= thresholds.LaningPhase.XPDiffAdvantage:
		return []Trait{{Label: "Level Advantage", Category: fmt.Sprintf("averages +%.0f XP by 10 minutes, wins the level race", avg), Good: true, Score: 60}}
	case avg <= thresholds.LaningPhase.XPDiffDisadvantage:
		return []Trait{{Label: "Level Disadvantage", Category: fmt.Sprintf("averages -%.0f XP by 10 minutes, loses the level race", -avg), Good: false, Score: 50}}
	}
	return nil
}
