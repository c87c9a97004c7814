package analysis

import "testing"

func sampleGames() []ParsedGame {
	return []ParsedGame{
		{
			GameID: 1, QueueID: 420, GameDuration: 1800, GameCreation: 0,
			Player: PlayerData{Win: true, Kills: 10, Deaths: 2, Assists: 8, KDA: 9.0, DamageToChampions: 20000, VisionScore: 30, CS: 200, ChampionID: 1},
			Team:   TeamData{TotalKills: 20, TotalDamage: 60000, TotalDamageTaken: 80000, TotalVisionScore: 100},
		},
		{
			GameID: 2, QueueID: 420, GameDuration: 1200, GameCreation: 0,
			Player: PlayerData{Win: false, Kills: 2, Deaths: 8, Assists: 4, KDA: 0.75, DamageToChampions: 10000, VisionScore: 15, CS: 120, ChampionID: 1},
			Team:   TeamData{TotalKills: 10, TotalDamage: 40000, TotalDamageTaken: 70000, TotalVisionScore: 70},
		},
	}
}

func TestAnalyzePlayerStatsComputesAveragesAndRates(t *testing.T) {
	stats := AnalyzePlayerStats(sampleGames(), Context{})

	if stats.TotalGames != 2 {
		t.Fatalf("expected 2 games, got %d", stats.TotalGames)
	}
	if stats.Wins != 1 || stats.Losses != 1 {
		t.Fatalf("expected 1 win 1 loss, got wins=%d losses=%d", stats.Wins, stats.Losses)
	}
	if stats.WinRate != 50.0 {
		t.Fatalf("expected 50%% win rate, got %v", stats.WinRate)
	}

	wantAvgKills := (10.0 + 2.0) / 2
	if stats.AvgKills != wantAvgKills {
		t.Fatalf("expected avg kills %v, got %v", wantAvgKills, stats.AvgKills)
	}

	wantAvgKDA := (10.0 + 8.0 + 2.0 + 4.0) / (2.0 + 8.0)
	if stats.AvgKDA != wantAvgKDA {
		t.Fatalf("expected avg KDA %v, got %v", wantAvgKDA, stats.AvgKDA)
	}

	if len(stats.FavoriteChampions) != 1 {
		t.Fatalf("expected 1 favorite champion, got %d", len(stats.FavoriteChampions))
	}
	if stats.FavoriteChampions[0].Games != 2 || stats.FavoriteChampions[0].Wins != 1 {
		t.Fatalf("unexpected champion tally: %+v", stats.FavoriteChampions[0])
	}
}

func TestAnalyzePlayerStatsScopesByQueue(t *testing.T) {
	games := sampleGames()
	games = append(games, ParsedGame{GameID: 3, QueueID: 450, GameDuration: 900, Player: PlayerData{Win: true, Kills: 1, Deaths: 1, Assists: 1}})

	stats := AnalyzePlayerStats(games, Context{RankedOnly: true})
	if stats.TotalGames != 2 {
		t.Fatalf("expected ranked-only scope to drop the ARAM game, got %d games", stats.TotalGames)
	}
}

func TestAnalyzePlayerStatsEmptyScopeReturnsZeroValue(t *testing.T) {
	stats := AnalyzePlayerStats(nil, Context{})
	if stats.TotalGames != 0 {
		t.Fatalf("expected zero value for no games, got %+v", stats)
	}
}

func TestAnalyzeBasicTraitsRequiresMinimumGames(t *testing.T) {
	stats := PlayerMatchStats{TotalGames: 2, WinRate: 70}
	if traits := AnalyzeBasicTraits(stats); traits != nil {
		t.Fatalf("expected no traits below 3 games, got %v", traits)
	}
}

func TestAnalyzeBasicTraitsWinRateExcellent(t *testing.T) {
	stats := PlayerMatchStats{TotalGames: 10, WinRate: 70, AvgKDA: 2.0}
	traits := AnalyzeBasicTraits(stats)

	found := false
	for _, tr := range traits {
		if tr.Label == "Ace" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Ace trait for 70%% win rate, got %v", traits)
	}
}

func TestCalculateWinStreakPositiveAndNegative(t *testing.T) {
	winning := []MatchPerformance{{Win: true}, {Win: true}, {Win: false}}
	if got := calculateWinStreak(winning); got != 2 {
		t.Fatalf("expected win streak 2, got %d", got)
	}

	losing := []MatchPerformance{{Win: false}, {Win: false}, {Win: true}}
	if got := calculateWinStreak(losing); got != -2 {
		t.Fatalf("expected loss streak -2, got %d", got)
	}
}

func TestStrategyFromQueueID(t *testing.T) {
	if StrategyFromQueueID(420) != StrategyRanked {
		t.Fatal("expected queue 420 to be Ranked")
	}
	if StrategyFromQueueID(450) != StrategyOther {
		t.Fatal("expected queue 450 (ARAM) to be Other")
	}
	if StrategyRanked.MaxTraits() != 12 || StrategyOther.MaxTraits() != 6 {
		t.Fatal("unexpected max-traits caps")
	}
}

func TestOptimizeTraitsDedupesAndCaps(t *testing.T) {
	traits := []Trait{
		{Label: "Damage Core", Good: true, Score: 90},
		{Label: "Primary Damage", Good: true, Score: 80},
		{Label: "Struggling", Good: false, Score: 50},
	}
	got := OptimizeTraits(traits, 1)
	if len(got) != 1 {
		t.Fatalf("expected cap at 1, got %d", len(got))
	}
	if got[0].Label != "Damage Core" {
		t.Fatalf("expected Damage Core to survive the damage-group merge, got %s", got[0].Label)
	}
}
