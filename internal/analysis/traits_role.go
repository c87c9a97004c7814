package analysis

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/arcanefeed/riftwatch/internal/analysis/thresholds"
)

// RoleStats summarizes a player's record on one role.
type RoleStats struct {
	Games   int
	Wins    int
	WinRate float64
}

// IdentifyPlayerRoles buckets raw games by role, keyed by the same English
// role labels used elsewhere (ADC/Support/Top/Mid/Jungle). A game whose
// role/lane combination doesn't map to a known role is dropped.
//
// Grounded on the original traits/role.rs's identify_player_roles.
func IdentifyPlayerRoles(raws [][]byte, puuid string) map[string]RoleStats {
	type tally struct{ games, wins int }
	data := make(map[string]*tally)

	for _, raw := range raws {
		game := gjson.ParseBytes(raw)
		role, win, ok := extractRoleInfo(game, puuid)
		if !ok {
			continue
		}
		t, exists := data[role]
		if !exists {
			t = &tally{}
			data[role] = t
		}
		t.games++
		if win {
			t.wins++
		}
	}

	result := make(map[string]RoleStats, len(data))
	for role, t := range data {
		result[role] = RoleStats{
			Games:   t.games,
			Wins:    t.wins,
			WinRate: safeDiv(float64(t.wins), float64(t.games)) * 100.0,
		}
	}
	return result
}

func extractRoleInfo(game gjson.Result, puuid string) (role string, win bool, ok bool) {
	p, found := findParticipant(game, puuid)
	if !found {
		return "", false, false
	}
	timeline := p.Get("timeline")
	if !timeline.Exists() {
		return "", false, false
	}

	roleTag := orDefault(timeline.Get("role").String(), "NONE")
	lane := orDefault(timeline.Get("lane").String(), "NONE")

	roleName := classifyRole(roleTag, lane)
	if roleName == "Unknown" {
		return "", false, false
	}
	return roleName, p.Get("stats.win").Bool(), true
}

// AnalyzeRoleBasedTraits surfaces the player's most-played role (≥5
// games) when its win rate is high, and flags a flex player with ≥5 games
// in each of ≥3 roles and a good overall win rate.
//
// Grounded on the original traits/role.rs's analyze_role_based_traits.
func AnalyzeRoleBasedTraits(stats PlayerMatchStats, roleStats map[string]RoleStats) []Trait {
	var traits []Trait

	var mainRole string
	var mainStats RoleStats
	found := false
	for role, rs := range roleStats {
		if rs.Games < 5 {
			continue
		}
		if !found || rs.Games > mainStats.Games {
			mainRole, mainStats, found = role, rs, true
		}
	}

	if found && mainStats.WinRate >= thresholds.WinRate.ExcellentOther {
		traits = append(traits, Trait{
			Label:    fmt.Sprintf("%s Specialist", mainRole),
			Category: fmt.Sprintf("plays %s at a %.0f%% win rate, clearly favors this role", mainRole, mainStats.WinRate),
			Good:     true,
			Score:    mainStats.WinRate,
		})
	}

	roleCount := 0
	for _, rs := range roleStats {
		if rs.Games >= 5 {
			roleCount++
		}
	}
	if roleCount >= 3 && stats.WinRate >= thresholds.WinRate.Good {
		traits = append(traits, Trait{
			Label:    "Flex Player",
			Category: fmt.Sprintf("competent in %d roles with a solid win rate (%.0f%%)", roleCount, stats.WinRate),
			Good:     true,
			Score:    float64(roleCount),
		})
	}

	return traits
}
