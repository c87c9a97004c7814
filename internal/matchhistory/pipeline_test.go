package matchhistory

import (
	"context"
	"fmt"
	"testing"

	"github.com/arcanefeed/riftwatch/internal/advice"
)

const targetPUUID = "puuid-1"

type fakeFetcher struct {
	raws [][]byte
	err  error
}

func (f fakeFetcher) FetchMatchHistory(ctx context.Context, puuid string, count int) ([][]byte, error) {
	return f.raws, f.err
}

func rawGame(gameID uint64, win bool, kills, deaths, assists int, dmg, dmgTaken, gold, vision, cs, durationSecs int, queueID int) []byte {
	return []byte(fmt.Sprintf(`{
		"gameId": %d,
		"queueId": %d,
		"gameDuration": %d,
		"gameCreation": 1,
		"participantIdentities": [{"participantId": 1, "player": {"puuid": %q}}],
		"participants": [{
			"participantId": 1,
			"teamId": 100,
			"championId": 99,
			"stats": {
				"win": %t,
				"kills": %d,
				"deaths": %d,
				"assists": %d,
				"totalDamageDealtToChampions": %d,
				"totalDamageTaken": %d,
				"goldEarned": %d,
				"visionScore": %d,
				"totalMinionsKilled": %d,
				"neutralMinionsKilled": 0,
				"damageDealtToObjectives": 0,
				"damageDealtToTurrets": 0,
				"timeCCingOthers": 0,
				"wardsPlaced": 0,
				"wardsKilled": 0
			},
			"timeline": {"role": "NONE", "lane": "NONE"}
		}]
	}`, gameID, queueID, durationSecs, targetPUUID, win, kills, deaths, assists, dmg, dmgTaken, gold, vision, cs))
}

func TestRunComputesScenarioFiveStats(t *testing.T) {
	raws := [][]byte{
		rawGame(1, true, 10, 2, 8, 25000, 15000, 12000, 25, 160, 1500, 420),
		rawGame(2, false, 2, 7, 4, 12000, 22000, 9000, 12, 120, 1800, 420),
	}
	fetcher := fakeFetcher{raws: raws}

	result, err := Run(context.Background(), fetcher, Request{
		PUUID:       targetPUUID,
		Count:       20,
		Perspective: advice.PerspectiveSelfImprovement,
		TargetName:  "Tester",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := result.Stats
	if stats.TotalGames != 2 || stats.Wins != 1 {
		t.Fatalf("expected 2 games/1 win, got %+v", stats)
	}
	if stats.WinRate != 50.0 {
		t.Fatalf("expected 50%% win rate, got %.1f", stats.WinRate)
	}
	if stats.AvgKills != 6.0 || stats.AvgAssists != 6.0 {
		t.Fatalf("expected avg kills/assists 6.0/6.0, got %.1f/%.1f", stats.AvgKills, stats.AvgAssists)
	}
	if stats.AvgDeaths != 4.5 {
		t.Fatalf("expected avg deaths 4.5, got %.1f", stats.AvgDeaths)
	}
	wantKDA := (6.0 + 6.0) / 4.5
	if diff := stats.AvgKDA - wantKDA; diff > 0.01 || diff < -0.01 {
		t.Fatalf("expected avg kda ~%.2f, got %.2f", wantKDA, stats.AvgKDA)
	}
	wantDPM := (25000.0 + 12000.0) / ((1500.0 + 1800.0) / 60.0)
	if diff := stats.DPM - wantDPM; diff > 0.1 || diff < -0.1 {
		t.Fatalf("expected dpm ~%.1f, got %.1f", wantDPM, stats.DPM)
	}
}

func TestRunSkipsAdviceUnderOtherStrategy(t *testing.T) {
	raws := make([][]byte, 0, 3)
	for i := 0; i < 3; i++ {
		raws = append(raws, rawGame(uint64(i+1), true, 5, 2, 5, 10000, 10000, 8000, 10, 100, 1200, 450))
	}
	fetcher := fakeFetcher{raws: raws}

	result, err := Run(context.Background(), fetcher, Request{
		PUUID:       targetPUUID,
		Perspective: advice.PerspectiveSelfImprovement,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy.String() != "Other" {
		t.Fatalf("expected Other strategy for queue 450, got %s", result.Strategy)
	}
	if len(result.Advice) != 0 {
		t.Fatalf("expected no advice under Other strategy, got %d", len(result.Advice))
	}
}

func TestRunPropagatesFetchError(t *testing.T) {
	fetcher := fakeFetcher{err: fmt.Errorf("boom")}
	if _, err := Run(context.Background(), fetcher, Request{PUUID: targetPUUID}); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestRunFiltersByQueueID(t *testing.T) {
	raws := [][]byte{
		rawGame(1, true, 5, 2, 5, 10000, 10000, 8000, 10, 100, 1200, 420),
		rawGame(2, true, 5, 2, 5, 10000, 10000, 8000, 10, 100, 1200, 450),
	}
	fetcher := fakeFetcher{raws: raws}
	queue := 420

	result, err := Run(context.Background(), fetcher, Request{
		PUUID:       targetPUUID,
		QueueID:     &queue,
		Perspective: advice.PerspectiveSelfImprovement,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.TotalGames != 1 {
		t.Fatalf("expected queue filter to leave 1 game, got %d", result.Stats.TotalGames)
	}
}
