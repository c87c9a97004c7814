// Package matchhistory ties the match-history fetch, the analysis
// package's analyzer layers, and the advice engine into one entry point:
// hand it a puuid and a perspective, get back computed stats plus
// perspective-worded advice.
package matchhistory

import (
	"context"
	"log"
	"os"

	"github.com/arcanefeed/riftwatch/internal/advice"
	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/lcu"
)

const (
	defaultCount = 20
	maxCount     = 100
)

var logger = log.New(os.Stderr, "[matchhistory] ", log.LstdFlags)

// Fetcher is the subset of *lcu.Transport the pipeline needs, narrowed so
// tests can supply a fixture without standing up a real control endpoint.
type Fetcher interface {
	FetchMatchHistory(ctx context.Context, puuid string, count int) ([][]byte, error)
}

var _ Fetcher = (*lcu.Transport)(nil)

// Request parameterizes one pipeline run.
type Request struct {
	PUUID       string
	Count       int
	QueueID     *int
	Perspective advice.Perspective
	TargetName  string
	// Role, if set, overrides the role identified from match history —
	// the optional role hint a caller of player_tactical_advice may pass.
	Role string
}

// Result is the pipeline's full output: the computed stats (cacheable,
// perspective-agnostic) and the advice generated for this specific
// request's perspective (never written back into a shared cache).
type Result struct {
	Stats    analysis.PlayerMatchStats
	Strategy analysis.Strategy
	Advice   []advice.GameAdvice
}

// Run executes the full pipeline: fetch, parse, strategy selection, the
// five analyzer layers (gated by strategy), trait optimization, and
// advice generation.
//
// Grounded on the original lcu/analysis_data/service.rs's
// convert_match_statistics_to_player_stats plus the separate
// analyzers/traits orchestration implied by strategy.rs's two-tier gating.
func Run(ctx context.Context, fetcher Fetcher, req Request) (*Result, error) {
	count := req.Count
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	raws, err := fetcher.FetchMatchHistory(ctx, req.PUUID, count)
	if err != nil {
		return nil, err
	}

	parsed, scopedRaws := parseAndScope(raws, req.PUUID, req.QueueID)

	var strategy analysis.Strategy
	if req.QueueID != nil {
		strategy = analysis.StrategyFromQueueID(*req.QueueID)
	} else {
		strategy = analysis.StrategyFromGames(parsed)
	}

	stats := analysis.AnalyzePlayerStats(parsed, analysis.Context{})

	var traits []analysis.Trait
	traits = append(traits, analysis.AnalyzeBasicTraits(stats)...)

	role := req.Role
	if role == "" {
		role = analysis.IdentifyMainRole(parsed)
	}

	if strategy == analysis.StrategyRanked {
		traits = append(traits, analysis.AnalyzeAdvancedTraits(stats, scopedRaws, req.PUUID, role)...)

		roleStats := analysis.IdentifyPlayerRoles(scopedRaws, req.PUUID)
		traits = append(traits, analysis.AnalyzeRoleBasedTraits(stats, roleStats)...)

		traits = append(traits, analysis.AnalyzeDistributionTraits(stats.RecentPerformance)...)
		traits = append(traits, analysis.AnalyzeTimelineTraits(parsed, role)...)
	}
	// Win/loss pattern runs regardless of strategy, per the original's
	// placement alongside distribution traits but unconditioned on it.
	traits = append(traits, analysis.AnalyzeWinLossPattern(stats.RecentPerformance)...)

	stats.Traits = analysis.OptimizeTraits(traits, strategy.MaxTraits())

	var gameAdvice []advice.GameAdvice
	if strategy == analysis.StrategyRanked {
		adviceCtx := advice.Context{
			Stats:       stats,
			Games:       parsed,
			Role:        role,
			Perspective: req.Perspective,
			TargetName:  req.TargetName,
		}
		gameAdvice = advice.DefaultChain().Generate(adviceCtx, strategy)
	}

	return &Result{Stats: stats, Strategy: strategy, Advice: gameAdvice}, nil
}

// parseAndScope normalizes every raw game for puuid, dropping ones that
// fail to parse, then filters to queueID if supplied. The parsed set and
// its paired raw bodies stay index-aligned so the advanced/role analyzers
// (which still need the raw JSON for team-relative fields) see exactly
// the same game set the stats were computed from.
func parseAndScope(raws [][]byte, puuid string, queueID *int) ([]analysis.ParsedGame, [][]byte) {
	parsed := make([]analysis.ParsedGame, 0, len(raws))
	scopedRaws := make([][]byte, 0, len(raws))

	for i, raw := range raws {
		pg, ok := analysis.ParseGame(raw, puuid)
		if !ok {
			logger.Printf("skipping unparseable game at index %d", i)
			continue
		}
		if queueID != nil && pg.QueueID != *queueID {
			continue
		}
		parsed = append(parsed, *pg)
		scopedRaws = append(scopedRaws, raw)
	}
	return parsed, scopedRaws
}
