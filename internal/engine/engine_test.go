package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/arcanefeed/riftwatch/internal/config"
	"github.com/arcanefeed/riftwatch/internal/lcu"
)

type fixtureLister struct {
	cmdline string
}

func (f fixtureLister) ListProcesses(ctx context.Context) ([]lcu.ProcessInfo, error) {
	return []lcu.ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: f.cmdline}}, nil
}

func newTestEngine(t *testing.T, srv *httptest.Server) *Engine {
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
	return New(config.Config{MatchHistoryCount: 20}, fixtureLister{cmdline: cmdline})
}

func TestTeamAnalysisReturnsNilBeforeAnySnapshot(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := newTestEngine(t, srv)
	if got := e.TeamAnalysis(); got != nil {
		t.Fatalf("expected nil snapshot before any champ-select frame, got %+v", got)
	}
}

func TestObservePhaseTracksChampSelectExit(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := newTestEngine(t, srv)

	e.observePhase(lcu.PhaseChampSelect)
	if e.lastPhase != lcu.PhaseChampSelect {
		t.Fatalf("expected lastPhase to track the observed phase, got %s", e.lastPhase)
	}

	e.observePhase(lcu.PhaseEndOfGame)
	if e.lastPhase != lcu.PhaseEndOfGame {
		t.Fatalf("expected lastPhase to advance to EndOfGame, got %s", e.lastPhase)
	}
	// A transition away from ChampSelect invalidates the stats cache; with
	// no entries ever cached here the observable effect is that it stays
	// empty rather than erroring — the cache's own round-trip/invalidate
	// semantics are covered in the teamanalysis package.
	if e.cache.Len() != 0 {
		t.Fatalf("expected cache to remain empty, got len %d", e.cache.Len())
	}
}

func TestObservePhaseIgnoresNonChampSelectTransitions(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := newTestEngine(t, srv)

	e.observePhase(lcu.PhaseLobby)
	e.observePhase(lcu.PhaseMatchmaking)
	if e.lastPhase != lcu.PhaseMatchmaking {
		t.Fatalf("expected lastPhase to update to Matchmaking, got %s", e.lastPhase)
	}
}

func TestProbeOnceSurfacesDiscoveryFailure(t *testing.T) {
	e := New(config.Config{}, fixtureLister{cmdline: ""})
	if _, err := e.ProbeOnce(context.Background()); err == nil {
		t.Fatal("expected an error when no credential can be discovered")
	}
}
