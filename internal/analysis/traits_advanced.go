package analysis

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// AnalyzeAdvancedTraits derives traits that need team-relative data the
// flattened ParsedGame doesn't carry (kill participation, damage share,
// tank share, objective/ward counts), plus purely stats-derived ones
// (stability, trend, champion mastery). Only runs under Strategy.Ranked,
// and only once at least 5 games are available — a single lucky or unlucky
// game otherwise produces a misleadingly confident trait.
//
// Grounded on the original traits/advanced.rs's analyze_advanced_traits,
// translated from serde_json field chasing to gjson path queries.
func AnalyzeAdvancedTraits(stats PlayerMatchStats, raws [][]byte, puuid string, role string) []Trait {
	if len(raws) < 5 {
		return nil
	}

	var traits []Trait

	if t, ok := kpTrait(raws, puuid); ok {
		traits = append(traits, t)
	}
	if t, ok := damageShareTrait(raws, puuid, role); ok {
		traits = append(traits, t)
	}
	if t, ok := tankShareTrait(raws, puuid); ok {
		traits = append(traits, t)
	}
	if t, ok := stabilityTrait(stats.RecentPerformance); ok {
		traits = append(traits, t)
	}
	if t, ok := trendTrait(stats.RecentPerformance); ok {
		traits = append(traits, t)
	}
	traits = append(traits, visionControlTraits(stats, raws, puuid)...)
	traits = append(traits, objectiveControlTraits(raws, puuid)...)
	traits = append(traits, championMasteryTraits(stats)...)

	return traits
}

func findParticipant(game gjson.Result, puuid string) (gjson.Result, bool) {
	var participantID int64 = -1
	for _, ident := range game.Get("participantIdentities").Array() {
		if ident.Get("player.puuid").String() == puuid {
			participantID = ident.Get("participantId").Int()
			break
		}
	}
	if participantID < 0 {
		return gjson.Result{}, false
	}
	for _, p := range game.Get("participants").Array() {
		if p.Get("participantId").Int() == participantID {
			return p, true
		}
	}
	return gjson.Result{}, false
}

func teamSum(game gjson.Result, teamID int64, field string) int64 {
	var total int64
	for _, p := range game.Get("participants").Array() {
		if p.Get("teamId").Int() == teamID {
			total += p.Get("stats." + field).Int()
		}
	}
	return total
}

func kpTrait(raws [][]byte, puuid string) (Trait, bool) {
	var totalKP float64
	var valid int
	for _, raw := range raws {
		game := gjson.ParseBytes(raw)
		p, ok := findParticipant(game, puuid)
		if !ok {
			continue
		}
		teamID := p.Get("teamId").Int()
		teamKills := teamSum(game, teamID, "kills")
		kills := p.Get("stats.kills").Int()
		assists := p.Get("stats.assists").Int()
		kp := 0.0
		if teamKills > 0 {
			kp = float64(kills+assists) / float64(teamKills)
		}
		totalKP += kp
		valid++
	}
	if valid == 0 {
		return Trait{}, false
	}
	avgKP := totalKP / float64(valid)

	switch {
	case avgKP >= 0.70:
		return Trait{Label: "Teamfight Core", Category: fmt.Sprintf("present for %.0f%% of kills, very involved", avgKP*100), Good: true, Score: avgKP * 100}, true
	case avgKP >= 0.60:
		return Trait{Label: "Active Participant", Category: fmt.Sprintf("%.0f%% kill participation, good teamfight sense", avgKP*100), Good: true, Score: avgKP * 100}, true
	case avgKP <= 0.40:
		return Trait{Label: "Detached", Category: fmt.Sprintf("only %.0f%% kill participation, rarely in fights", avgKP*100), Good: false, Score: avgKP * 100}, true
	default:
		return Trait{}, false
	}
}

func damageShareTrait(raws [][]byte, puuid string, role string) (Trait, bool) {
	var totalShare float64
	var count int
	for _, raw := range raws {
		game := gjson.ParseBytes(raw)
		p, ok := findParticipant(game, puuid)
		if !ok {
			continue
		}
		teamID := p.Get("teamId").Int()
		teamDamage := teamSum(game, teamID, "totalDamageDealtToChampions")
		share := 0.0
		if teamDamage > 0 {
			share = float64(p.Get("stats.totalDamageDealtToChampions").Int()) / float64(teamDamage)
		}
		totalShare += share
		count++
	}
	if count == 0 {
		return Trait{}, false
	}
	avg := totalShare / float64(count)

	high, low := thresholds.DamageShareForRole(role)
	if high == 0 && low == 0 {
		return Trait{}, false
	}

	switch {
	case avg >= high:
		return Trait{Label: "Damage Core", Category: fmt.Sprintf("carries %.0f%% of team damage, primary source", avg*100), Good: true, Score: avg * 100}, true
	case avg >= high-0.05:
		return Trait{Label: "Primary Damage", Category: fmt.Sprintf("%.0f%% damage share, solid output", avg*100), Good: true, Score: avg * 100}, true
	case avg <= low:
		return Trait{Label: "Low Output", Category: fmt.Sprintf("only %.0f%% damage share", avg*100), Good: false, Score: avg * 100}, true
	default:
		return Trait{}, false
	}
}

func tankShareTrait(raws [][]byte, puuid string) (Trait, bool) {
	var totalShare float64
	var count int
	for _, raw := range raws {
		game := gjson.ParseBytes(raw)
		p, ok := findParticipant(game, puuid)
		if !ok {
			continue
		}
		teamID := p.Get("teamId").Int()
		teamTaken := teamSum(game, teamID, "totalDamageTaken")
		share := 0.0
		if teamTaken > 0 {
			share = float64(p.Get("stats.totalDamageTaken").Int()) / float64(teamTaken)
		}
		totalShare += share
		count++
	}
	if count == 0 {
		return Trait{}, false
	}
	avg := totalShare / float64(count)

	switch {
	case avg >= 0.28:
		return Trait{Label: "Frontline Tank", Category: fmt.Sprintf("absorbs %.0f%% of team damage taken, primary tank", avg*100), Good: true, Score: avg * 100}, true
	case avg >= 0.22:
		return Trait{Label: "Bruiser", Category: fmt.Sprintf("%.0f%% damage-taken share, some frontline", avg*100), Good: true, Score: avg * 100}, true
	default:
		return Trait{}, false
	}
}

func stabilityTrait(recent []MatchPerformance) (Trait, bool) {
	if len(recent) < 5 {
		return Trait{}, false
	}

	mean := 0.0
	for _, g := range recent {
		mean += g.KDA
	}
	mean /= float64(len(recent))
	if mean < 1.0 {
		return Trait{}, false
	}

	var variance float64
	for _, g := range recent {
		d := g.KDA - mean
		variance += d * d
	}
	variance /= float64(len(recent))
	cv := math.Sqrt(variance) / mean

	switch {
	case cv < 0.4 && mean >= 3.0:
		return Trait{Label: "Rock Steady", Category: fmt.Sprintf("minimal KDA swing, very consistent (CV=%.2f)", cv), Good: true, Score: mean * 10}, true
	case cv > 1.2:
		return Trait{Label: "Erratic", Category: fmt.Sprintf("large KDA swings, inconsistent (CV=%.2f)", cv), Good: false, Score: cv * 10}, true
	default:
		return Trait{}, false
	}
}

func trendTrait(recent []MatchPerformance) (Trait, bool) {
	if len(recent) < 10 {
		return Trait{}, false
	}

	mid := len(recent) / 2
	recentHalf := recent[:mid]
	olderHalf := recent[mid:]

	recentKDA := avgKDA(recentHalf)
	olderKDA := avgKDA(olderHalf)
	recentWR := winRate(recentHalf)
	olderWR := winRate(olderHalf)

	kdaChange := 0.0
	if olderKDA > 0 {
		kdaChange = (recentKDA - olderKDA) / olderKDA
	}
	wrChange := recentWR - olderWR

	switch {
	case kdaChange > 0.3 && wrChange > 0.15:
		return Trait{Label: "Trending Up", Category: fmt.Sprintf("recent form clearly improved (KDA+%.0f%%, win rate+%.0f%%)", kdaChange*100, wrChange*100), Good: true, Score: kdaChange * 100}, true
	case kdaChange < -0.3 && wrChange < -0.15:
		return Trait{Label: "Trending Down", Category: fmt.Sprintf("recent form declined (KDA-%.0f%%, win rate-%.0f%%)", -kdaChange*100, -wrChange*100), Good: false, Score: -kdaChange * 100}, true
	default:
		return Trait{}, false
	}
}

func avgKDA(games []MatchPerformance) float64 {
	if len(games) == 0 {
		return 0
	}
	var total float64
	for _, g := range games {
		total += g.KDA
	}
	return total / float64(len(games))
}

func winRate(games []MatchPerformance) float64 {
	if len(games) == 0 {
		return 0
	}
	var wins int
	for _, g := range games {
		if g.Win {
			wins++
		}
	}
	return float64(wins) / float64(len(games))
}

func visionControlTraits(stats PlayerMatchStats, raws [][]byte, puuid string) []Trait {
	var traits []Trait
	if stats.VSPM >= 2.0 {
		traits = append(traits, Trait{
			Label:    "Vision Master",
			Category: fmt.Sprintf("%.1f vision score per minute, strong map control", stats.VSPM),
			Good:     true,
			Score:    stats.VSPM * 10,
		})
	}

	var totalWardsKilled float64
	var valid int
	for _, raw := range raws {
		game := gjson.ParseBytes(raw)
		p, ok := findParticipant(game, puuid)
		if !ok {
			continue
		}
		totalWardsKilled += float64(p.Get("stats.wardsKilled").Int())
		valid++
	}
	if valid > 0 {
		avg := totalWardsKilled / float64(valid)
		if avg >= 10.0 {
			traits = append(traits, Trait{
				Label:    "Ward Hunter",
				Category: fmt.Sprintf("averages %.0f wards killed, denies enemy vision", avg),
				Good:     true,
				Score:    avg,
			})
		}
	}
	return traits
}

func objectiveControlTraits(raws [][]byte, puuid string) []Trait {
	var totalObjDamage, totalTurretDamage float64
	var valid int
	for _, raw := range raws {
		game := gjson.ParseBytes(raw)
		p, ok := findParticipant(game, puuid)
		if !ok {
			continue
		}
		totalObjDamage += float64(p.Get("stats.damageDealtToObjectives").Int())
		totalTurretDamage += float64(p.Get("stats.damageDealtToTurrets").Int())
		valid++
	}
	if valid == 0 {
		return nil
	}

	var traits []Trait
	avgObj := totalObjDamage / float64(valid)
	avgTurret := totalTurretDamage / float64(valid)

	if avgObj >= 8000.0 {
		traits = append(traits, Trait{
			Label:    "Objective Hunter",
			Category: fmt.Sprintf("averages %.0f damage to epic monsters", avgObj),
			Good:     true,
			Score:    avgObj / 100,
		})
	}
	if avgTurret >= 5000.0 {
		traits = append(traits, Trait{
			Label:    "Tower Diver",
			Category: fmt.Sprintf("averages %.0f turret damage", avgTurret),
			Good:     true,
			Score:    avgTurret / 100,
		})
	}
	return traits
}

func championMasteryTraits(stats PlayerMatchStats) []Trait {
	if len(stats.FavoriteChampions) == 0 {
		return nil
	}

	var traits []Trait
	top := stats.FavoriteChampions[0]
	specialization := float64(top.Games) / float64(stats.TotalGames)

	switch {
	case specialization >= 0.5 && top.WinRate >= 60.0:
		traits = append(traits, Trait{
			Label:    "One-Trick",
			Category: fmt.Sprintf("specializes in one champion (%.0f%% of games), %.0f%% win rate", specialization*100, top.WinRate),
			Good:     true,
			Score:    top.WinRate,
		})
	case specialization >= 0.7 && top.WinRate < 50.0:
		traits = append(traits, Trait{
			Label:    "Over-Reliant",
			Category: fmt.Sprintf("narrow pool (%.0f%% one champion) with a losing record", specialization*100),
			Good:     false,
			Score:    specialization * 100,
		})
	}

	poolSize := len(stats.FavoriteChampions)
	switch {
	case poolSize >= 10 && stats.WinRate >= 55.0:
		traits = append(traits, Trait{
			Label:    "Deep Pool",
			Category: fmt.Sprintf("comfortable on %d champions", poolSize),
			Good:     true,
			Score:    float64(poolSize),
		})
	case poolSize <= 3 && stats.TotalGames >= 20:
		traits = append(traits, Trait{
			Label:    "Shallow Pool",
			Category: fmt.Sprintf("only plays %d champions, easy to target-ban", poolSize),
			Good:     false,
			Score:    float64(poolSize),
		})
	}
	return traits
}
