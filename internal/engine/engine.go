// Package engine wires the control-endpoint plumbing, the session-model
// builder, and the match-history pipeline into the three synchronous
// queries described in the External Interfaces contract: team_analysis,
// match_history, and player_tactical_advice.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arcanefeed/riftwatch/internal/advice"
	"github.com/arcanefeed/riftwatch/internal/config"
	"github.com/arcanefeed/riftwatch/internal/eventbus"
	"github.com/arcanefeed/riftwatch/internal/lcu"
	"github.com/arcanefeed/riftwatch/internal/matchhistory"
	"github.com/arcanefeed/riftwatch/internal/teamanalysis"
)

var logger = log.New(os.Stderr, "[engine] ", log.LstdFlags)

// Engine owns every long-lived component and is the single entry point
// cmd/riftwatch talks to.
type Engine struct {
	cfg config.Config

	discovery *lcu.CredentialDiscovery
	transport *lcu.Transport
	bus       *eventbus.Bus
	monitor   *lcu.ConnectionMonitor
	handler   *lcu.EventHandler
	session   *lcu.WebSocketSession

	cache   *teamanalysis.StatsCache
	builder *teamanalysis.Builder

	mu        sync.Mutex
	lastPhase lcu.Phase
}

// New assembles an Engine from cfg, wiring every cross-package callback:
// the connection monitor publishes to the bus, the event handler drives
// the WebSocket session's subscription set and the session model builder,
// and a phase observer invalidates the match-history cache on champ-select
// exit.
func New(cfg config.Config, lister lcu.ProcessLister) *Engine {
	discovery := lcu.NewCredentialDiscovery(lister)
	if cfg.CredentialTTL > 0 {
		discovery.SetTTL(time.Duration(cfg.CredentialTTL) * time.Second)
	}

	transport := lcu.NewTransport(discovery)
	if cfg.ProbeTimeout > 0 {
		transport.SetProbeTimeout(time.Duration(cfg.ProbeTimeout) * time.Second)
	}

	bus := eventbus.New()
	cache := teamanalysis.NewStatsCache()
	builder := teamanalysis.NewBuilder(transport, cache, cfg.MaxConcurrentFetches)

	if cfg.Verbose {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	e := &Engine{
		cfg:       cfg,
		discovery: discovery,
		transport: transport,
		bus:       bus,
		cache:     cache,
		builder:   builder,
	}

	monitor := lcu.NewConnectionMonitor(transport, discovery, func(info lcu.ConnectionInfo) {
		bus.Publish(eventbus.Event{Name: eventbus.ConnectionStateChanged, Payload: info})
	})
	e.monitor = monitor

	handler := lcu.NewEventHandler(bus, e.observePhase, e.buildTeamAnalysis)
	if cfg.ChampSelectThrottleMS > 0 {
		handler.SetChampSelectThrottle(time.Duration(cfg.ChampSelectThrottleMS) * time.Millisecond)
	}
	e.handler = handler

	session := lcu.NewWebSocketSession(discovery, transport, handler)
	e.session = session

	return e
}

// observePhase is the EventHandler's onPhase hook: it forwards to the
// WebSocket session's dynamic subscription logic and invalidates the
// match-history cache the moment champ-select ends, per the recorded
// decision for the source's unhandled cross-session name collision.
func (e *Engine) observePhase(phase lcu.Phase) {
	e.session.OnPhase(phase)

	e.mu.Lock()
	wasChampSelect := e.lastPhase == lcu.PhaseChampSelect
	e.lastPhase = phase
	e.mu.Unlock()

	if wasChampSelect && phase != lcu.PhaseChampSelect {
		logger.Print("champ-select ended, invalidating match-history cache")
		e.cache.Invalidate()
	}
}

func (e *Engine) buildTeamAnalysis(raw json.RawMessage) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	return e.builder.Build(ctx, raw)
}

// Run blocks, driving the Connection Monitor and WebSocket Session
// concurrently until ctx is cancelled or either reports a fatal error.
func (e *Engine) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.monitor.Run(gctx) })
	g.Go(func() error { return e.session.Run(gctx) })
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ProbeOnce runs Credential Discovery plus one probe and returns the
// resulting connection info without starting the WebSocket session —
// the engine side of --probe-only.
func (e *Engine) ProbeOnce(ctx context.Context) (lcu.ConnectionInfo, error) {
	if _, err := e.discovery.Current(ctx); err != nil {
		return lcu.ConnectionInfo{State: lcu.StateDisconnected, ErrorMessage: err.Error()}, err
	}
	summoner, err := e.transport.CurrentSummoner(ctx)
	if err != nil {
		return lcu.ConnectionInfo{State: lcu.StateProcessFound, ErrorMessage: err.Error()}, err
	}
	logger.Printf("probe ok, current summoner %s", summoner.FullName())
	return lcu.ConnectionInfo{State: lcu.StateConnected, LastSuccessfulAt: time.Now()}, nil
}

// TeamAnalysis returns the cached champ-select snapshot, if any.
func (e *Engine) TeamAnalysis() *teamanalysis.TeamAnalysisData {
	snap := e.handler.ChampSelectSnapshot()
	if snap == nil {
		return nil
	}
	data, ok := snap.(*teamanalysis.TeamAnalysisData)
	if !ok {
		return nil
	}
	return data
}

// MatchHistory runs the pipeline for the logged-in player.
func (e *Engine) MatchHistory(ctx context.Context, count int, queueID *int) (*matchhistory.Result, error) {
	summoner, err := e.transport.CurrentSummoner(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current summoner: %w", err)
	}
	if count <= 0 {
		count = e.cfg.MatchHistoryCount
	}
	return matchhistory.Run(ctx, e.transport, matchhistory.Request{
		PUUID:       summoner.PUUID,
		Count:       count,
		QueueID:     queueID,
		Perspective: advice.PerspectiveSelfImprovement,
		TargetName:  summoner.FullName(),
	})
}

// PlayerTacticalAdvice runs the pipeline for another summoner under the
// given perspective, optionally overriding the identified role.
func (e *Engine) PlayerTacticalAdvice(ctx context.Context, name string, perspective advice.Perspective, role string) ([]advice.GameAdvice, error) {
	summoners, err := e.transport.SummonersByNames(ctx, []string{name})
	if err != nil {
		return nil, fmt.Errorf("resolve summoner %q: %w", name, err)
	}
	if len(summoners) == 0 {
		return nil, fmt.Errorf("no summoner found for %q", name)
	}

	result, err := matchhistory.Run(ctx, e.transport, matchhistory.Request{
		PUUID:       summoners[0].PUUID,
		Count:       e.cfg.MatchHistoryCount,
		Perspective: perspective,
		TargetName:  name,
		Role:        role,
	})
	if err != nil {
		return nil, err
	}
	return result.Advice, nil
}
