package analysis

import (
	"sort"
	"time"
)

// AnalyzePlayerStats computes the full stat block for games, scoped by
// ctx, leaving Traits empty for the analyzer layers to fill in; advice is
// produced separately and is not part of PlayerMatchStats. Returns the zero value if no game in games matches
// ctx's scope.
//
// Grounded on the original stats.rs's analyze_player_stats, translating
// its UTC-day-boundary arithmetic and the same divide-by-zero guards.
func AnalyzePlayerStats(games []ParsedGame, ctx Context) PlayerMatchStats {
	todayStartMS := todayStartUTCMillis(time.Now())

	relevant := make([]ParsedGame, 0, len(games))
	for _, g := range games {
		if inScope(g, ctx) {
			relevant = append(relevant, g)
		}
	}

	totalGames := len(relevant)
	if totalGames == 0 {
		return PlayerMatchStats{}
	}

	var (
		wins, todayGames, todayWins     int
		totalKills, totalDeaths         float64
		totalAssists, totalDurationSecs float64
		totalDamageToChamps             float64
		totalVisionScore, totalCS       float64
	)

	type champTally struct{ games, wins int }
	champions := make(map[int]*champTally)
	recent := make([]MatchPerformance, 0, totalGames)

	for _, g := range relevant {
		p := g.Player
		kills, deaths, assists := float64(p.Kills), float64(p.Deaths), float64(p.Assists)
		duration := float64(g.GameDuration)

		if p.Win {
			wins++
		}
		totalKills += kills
		totalDeaths += deaths
		totalAssists += assists
		totalDurationSecs += duration

		totalDamageToChamps += float64(p.DamageToChampions)
		totalVisionScore += float64(p.VisionScore)
		totalCS += float64(p.CS)

		if g.GameCreation >= todayStartMS {
			todayGames++
			if p.Win {
				todayWins++
			}
		}

		tally, ok := champions[p.ChampionID]
		if !ok {
			tally = &champTally{}
			champions[p.ChampionID] = tally
		}
		tally.games++
		if p.Win {
			tally.wins++
		}

		recent = append(recent, MatchPerformance{
			GameID:       g.GameID,
			Win:          p.Win,
			ChampionID:   p.ChampionID,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
			KDA:          p.KDA,
			GameDuration: g.GameDuration,
			GameCreation: g.GameCreation,
			QueueID:      g.QueueID,
		})
	}

	totalDurationMins := 1.0
	if totalDurationSecs > 0 {
		totalDurationMins = totalDurationSecs / 60.0
	}

	avgKills := safeDiv(totalKills, float64(totalGames))
	avgDeaths := safeDiv(totalDeaths, float64(totalGames))
	avgAssists := safeDiv(totalAssists, float64(totalGames))

	var avgKDA float64
	if totalDeaths > 0 {
		avgKDA = (totalKills + totalAssists) / totalDeaths
	} else {
		avgKDA = totalKills + totalAssists
	}

	favorites := make([]ChampionStats, 0, len(champions))
	for champID, tally := range champions {
		favorites = append(favorites, ChampionStats{
			ChampionID: champID,
			Games:      tally.games,
			Wins:       tally.wins,
			WinRate:    safeDiv(float64(tally.wins), float64(tally.games)) * 100.0,
		})
	}
	sort.Slice(favorites, func(i, j int) bool { return favorites[i].Games > favorites[j].Games })

	return PlayerMatchStats{
		TotalGames: totalGames,
		Wins:       wins,
		Losses:     totalGames - wins,
		WinRate:    safeDiv(float64(wins), float64(totalGames)) * 100.0,

		AvgKills:   avgKills,
		AvgDeaths:  avgDeaths,
		AvgAssists: avgAssists,
		AvgKDA:     avgKDA,

		TodayGames: todayGames,
		TodayWins:  todayWins,

		DPM:  totalDamageToChamps / totalDurationMins,
		CSPM: totalCS / totalDurationMins,
		VSPM: totalVisionScore / totalDurationMins,

		FavoriteChampions: favorites,
		RecentPerformance: recent,
	}
}

func inScope(g ParsedGame, ctx Context) bool {
	switch {
	case ctx.CurrentQueueID != nil:
		return g.QueueID == *ctx.CurrentQueueID
	case ctx.RankedOnly:
		return g.QueueID == 420 || g.QueueID == 440
	default:
		return true
	}
}

func todayStartUTCMillis(now time.Time) int64 {
	nowMS := now.UnixMilli()
	const dayMS = 86_400_000
	return (nowMS / dayMS) * dayMS
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
