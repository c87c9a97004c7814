package teamanalysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/arcanefeed/riftwatch/internal/advice"
	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/lcu"
)

type fixtureLister struct {
	cmdline string
}

func (f fixtureLister) ListProcesses(ctx context.Context) ([]lcu.ProcessInfo, error) {
	return []lcu.ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: f.cmdline}}, nil
}

func newTestTransport(t *testing.T, srv *httptest.Server) *lcu.Transport {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}
	cmdline := fmt.Sprintf("LeagueClientUx.exe --app-port=%d --remoting-auth-token=TOK --riotclient-app-port=1 --riotclient-auth-token=AUX", port)
	discovery := lcu.NewCredentialDiscovery(fixtureLister{cmdline: cmdline})
	return lcu.NewTransport(discovery)
}

// champSelectFixture builds a minimal two-player champ-select session: a
// local player on myTeam and one enemy, both real (non-bot) participants.
func champSelectFixture() []byte {
	return []byte(`{
		"localPlayerCellId": 1,
		"queueId": 420,
		"isCustomGame": false,
		"myTeam": [{
			"cellId": 1,
			"summonerId": 100,
			"puuid": "puuid-local",
			"displayName": "Local Player",
			"gameName": "Local",
			"tagLine": "NA1",
			"championId": 1,
			"championName": "Annie",
			"assignedPosition": "middle"
		}],
		"theirTeam": [{
			"cellId": 2,
			"summonerId": 200,
			"puuid": "puuid-enemy",
			"displayName": "Enemy Player",
			"gameName": "Enemy",
			"tagLine": "NA1",
			"championId": 2,
			"championName": "Ahri",
			"assignedPosition": "middle"
		}],
		"actions": [[{"id": 1}]],
		"bans": {"myTeamBans": [], "theirTeamBans": []},
		"timer": {"phase": "BAN_PICK"}
	}`)
}

func routeHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/lol-summoner/v2/summoners/names":
			var names []string
			if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
				t.Fatalf("decode names request: %v", err)
			}
			out := make([]map[string]any, 0, len(names))
			for _, n := range names {
				switch n {
				case "Local Player", "Local#NA1":
					out = append(out, map[string]any{"summonerId": 100, "puuid": "puuid-local", "gameName": "Local", "tagLine": "NA1", "profileIconId": 1})
				case "Enemy Player", "Enemy#NA1":
					out = append(out, map[string]any{"summonerId": 200, "puuid": "puuid-enemy", "gameName": "Enemy", "tagLine": "NA1", "profileIconId": 2})
				}
			}
			json.NewEncoder(w).Encode(out)
		case r.URL.Path == "/lol-ranked/v1/ranked-stats/puuid-local" || r.URL.Path == "/lol-ranked/v1/ranked-stats/puuid-enemy":
			fmt.Fprint(w, `{"queues":[{"queueType":"RANKED_SOLO_5x5","tier":"GOLD"}]}`)
		case r.URL.Path == "/lol-match-history/v1/products/lol/puuid-local/matches" || r.URL.Path == "/lol-match-history/v1/products/lol/puuid-enemy/matches":
			fmt.Fprint(w, `{"games":{"games":[]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestBuildAssignsPerspectivesBySide(t *testing.T) {
	srv := httptest.NewTLSServer(routeHandler(t))
	defer srv.Close()

	transport := newTestTransport(t, srv)
	builder := NewBuilder(transport, NewStatsCache(), 4)

	data, err := builder.Build(context.Background(), champSelectFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.MyTeam) != 1 || len(data.EnemyTeam) != 1 {
		t.Fatalf("expected 1 player per side, got %d/%d", len(data.MyTeam), len(data.EnemyTeam))
	}

	local := data.MyTeam[0]
	if !local.IsLocal {
		t.Fatal("expected myTeam[0] to be the local player")
	}
	if local.Perspective != advice.PerspectiveSelfImprovement {
		t.Fatalf("expected local player perspective SelfImprovement, got %s", local.Perspective)
	}

	enemy := data.EnemyTeam[0]
	if enemy.Perspective != advice.PerspectiveTargeting {
		t.Fatalf("expected enemy perspective Targeting, got %s", enemy.Perspective)
	}

	if data.QueueID != 420 || data.LocalPlayerCellID != 1 {
		t.Fatalf("unexpected queue/cell id: %d/%d", data.QueueID, data.LocalPlayerCellID)
	}
	if len(data.Actions) == 0 || len(data.Bans) == 0 || len(data.Timer) == 0 {
		t.Fatal("expected actions/bans/timer to be preserved verbatim")
	}
}

func TestBuildClassifiesBots(t *testing.T) {
	srv := httptest.NewTLSServer(routeHandler(t))
	defer srv.Close()

	transport := newTestTransport(t, srv)
	builder := NewBuilder(transport, NewStatsCache(), 4)

	raw := []byte(`{
		"localPlayerCellId": 1,
		"queueId": 0,
		"isCustomGame": true,
		"myTeam": [
			{"cellId": 1, "summonerId": 100, "puuid": "puuid-local", "displayName": "Local Player", "gameName": "Local", "tagLine": "NA1"},
			{"cellId": 3, "summonerId": 0, "puuid": "", "displayName": "Bot 1"}
		],
		"theirTeam": []
	}`)

	data, err := builder.Build(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.MyTeam) != 2 {
		t.Fatalf("expected 2 parsed players, got %d", len(data.MyTeam))
	}
	if data.MyTeam[0].IsBot {
		t.Fatal("expected first player to not be classified as a bot")
	}
	if !data.MyTeam[1].IsBot {
		t.Fatal("expected second player (summonerId 0) to be classified as a bot")
	}
}

func TestNormalizeActionCellIDsCoercesStringIDs(t *testing.T) {
	raw := `[[{"id": 1, "actorCellId": "3", "type": "pick"}, {"id": 2, "actorCellId": 4}]]`
	out := normalizeActionCellIDs(raw)

	parsed := gjson.ParseBytes(out)
	first := parsed.Get("0.0.actorCellId")
	if first.Type != gjson.Number || first.Int() != 3 {
		t.Fatalf("expected string actorCellId to be coerced to number 3, got %v (type %v)", first.Raw, first.Type)
	}
	second := parsed.Get("0.1.actorCellId")
	if second.Int() != 4 {
		t.Fatalf("expected already-numeric actorCellId to survive untouched, got %v", second.Raw)
	}
}

func TestBuildServesFromCacheWithoutRefetch(t *testing.T) {
	srv := httptest.NewTLSServer(routeHandler(t))
	defer srv.Close()

	transport := newTestTransport(t, srv)
	cache := NewStatsCache()
	builder := NewBuilder(transport, cache, 4)

	// Pre-seed the cache so the fan-out has nothing to do for the local
	// player, then verify Build attaches the cached entry rather than a
	// refetched one (the fixture's match history is empty, so a refetch
	// would yield 0 games).
	cache.put(advice.PerspectiveSelfImprovement, "Local#NA1", analysis.PlayerMatchStats{TotalGames: 5})

	data, err := builder.Build(context.Background(), champSelectFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.MyTeam[0].MatchStats == nil || data.MyTeam[0].MatchStats.TotalGames != 5 {
		t.Fatal("expected the cached 5-game stats to be attached to the local player")
	}
}
