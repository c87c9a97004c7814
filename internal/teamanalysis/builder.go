package teamanalysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sourcegraph/conc/pool"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/arcanefeed/riftwatch/internal/advice"
	"github.com/arcanefeed/riftwatch/internal/analysis"
	"github.com/arcanefeed/riftwatch/internal/lcu"
	"github.com/arcanefeed/riftwatch/internal/matchhistory"
)

var logger = log.New(os.Stderr, "[teamanalysis] ", log.LstdFlags)

// defaultMaxConcurrentFetches bounds the per-player match-history fan-out
// so a ten-player champ-select lobby doesn't open ten simultaneous
// connections to the control endpoint, used when NewBuilder isn't given an
// override.
const defaultMaxConcurrentFetches = 4

const unknownSummonerPlaceholder = "Unknown Summoner"

// matchHistoryCount is the sample size used when building a snapshot —
// the same 20 games a direct match-history query uses by default.
const matchHistoryCount = 20

// Builder turns a raw champ-select session frame into a TeamAnalysisData,
// fetching summoner enrichment and match-history stats from the control
// endpoint as needed.
//
// Grounded on the original lcu/analysis_data/service.rs's
// build_team_analysis_from_session.
type Builder struct {
	transport            *lcu.Transport
	cache                *StatsCache
	maxConcurrentFetches int
}

// NewBuilder wires a Builder to the shared transport and stats cache. A
// maxConcurrentFetches <= 0 falls back to defaultMaxConcurrentFetches.
func NewBuilder(transport *lcu.Transport, cache *StatsCache, maxConcurrentFetches int) *Builder {
	if maxConcurrentFetches <= 0 {
		maxConcurrentFetches = defaultMaxConcurrentFetches
	}
	return &Builder{transport: transport, cache: cache, maxConcurrentFetches: maxConcurrentFetches}
}

// Build parses a raw champ-select session frame and assembles the full
// team snapshot, including match-history stats for every real player.
func (b *Builder) Build(ctx context.Context, raw json.RawMessage) (*TeamAnalysisData, error) {
	session := gjson.ParseBytes(raw)
	localCellID := int(session.Get("localPlayerCellId").Int())
	queueID := int(session.Get("queueId").Int())
	isCustomGame := session.Get("isCustomGame").Bool()

	if isCustomGame {
		logger.Print("custom game detected, some players may be bots")
	}

	myTeam := b.parseTeam(ctx, session.Get("myTeam"), localCellID, "my team")
	enemyTeam := b.parseTeam(ctx, session.Get("theirTeam"), localCellID, "enemy team")

	b.fetchMatchStats(ctx, myTeam, enemyTeam, queueID)

	data := &TeamAnalysisData{
		MyTeam:            myTeam,
		EnemyTeam:         enemyTeam,
		LocalPlayerCellID: localCellID,
		GamePhase:         string(lcu.PhaseChampSelect),
		QueueID:           queueID,
		IsCustomGame:      isCustomGame,
	}
	if actions := session.Get("actions"); actions.Exists() {
		data.Actions = normalizeActionCellIDs(actions.Raw)
	}
	if bans := session.Get("bans"); bans.Exists() {
		data.Bans = json.RawMessage(bans.Raw)
	}
	if timer := session.Get("timer"); timer.Exists() {
		data.Timer = json.RawMessage(timer.Raw)
	}
	return data, nil
}

func (b *Builder) parseTeam(ctx context.Context, team gjson.Result, localCellID int, label string) []PlayerAnalysisData {
	players := team.Array()
	out := make([]PlayerAnalysisData, 0, len(players))
	for idx, raw := range players {
		player, ok := parsePlayerFromSession(raw, localCellID)
		if !ok {
			logger.Printf("failed to parse %s player[%d], skipping", label, idx)
			continue
		}
		if err := b.enrichPlayerData(ctx, &player, raw); err != nil {
			logger.Printf("failed to enrich %s player[%d] (%s): %v, continuing with basic data", label, idx, player.DisplayName, err)
		}
		out = append(out, player)
	}
	return out
}

// parsePlayerFromSession extracts the basic fields one champ-select
// participant record carries, classifying bots per §4.6's three-way
// rule. ok is false only when raw isn't a player object at all.
func parsePlayerFromSession(raw gjson.Result, localCellID int) (PlayerAnalysisData, bool) {
	if !raw.IsObject() {
		return PlayerAnalysisData{}, false
	}

	cellID := int(raw.Get("cellId").Int())
	displayName := raw.Get("displayName").String()
	summonerIDNum := raw.Get("summonerId").Int()
	gameName := raw.Get("gameName").String()
	puuid := raw.Get("puuid").String()
	nameVisibility := raw.Get("nameVisibilityType").String()

	isBot := summonerIDNum == 0 || (gameName == "" && nameVisibility == "HIDDEN") || puuid == ""

	return PlayerAnalysisData{
		CellID:      cellID,
		DisplayName: displayName,
		SummonerID:  raw.Get("summonerId").String(),
		PUUID:       puuid,
		IsLocal:     cellID == localCellID,
		IsBot:       isBot,

		ChampionID:         int(raw.Get("championId").Int()),
		ChampionName:       raw.Get("championName").String(),
		ChampionPickIntent: int(raw.Get("championPickIntent").Int()),
		Position:           raw.Get("assignedPosition").String(),

		Tier:          raw.Get("tier").String(),
		ProfileIconID: int(raw.Get("profileIconId").Int()),
		TagLine:       raw.Get("tagLine").String(),
		Spell1ID:      int(raw.Get("spell1Id").Int()),
		Spell2ID:      int(raw.Get("spell2Id").Int()),
	}, true
}

// enrichPlayerData fills in a display name and rank tier from the frame
// itself first, falling back to a control-endpoint lookup by summoner id
// only when that's not enough. A lookup failure leaves the basic parse in
// place and is reported to the caller, which logs and continues.
func (b *Builder) enrichPlayerData(ctx context.Context, player *PlayerAnalysisData, raw gjson.Result) error {
	gameName := raw.Get("gameName").String()
	tagLine := raw.Get("tagLine").String()
	if gameName != "" {
		if tagLine != "" {
			player.DisplayName = gameName + "#" + tagLine
		} else {
			player.DisplayName = gameName
		}
		player.TagLine = tagLine
	}

	if player.DisplayName != "" && player.DisplayName != unknownSummonerPlaceholder && player.Tier != "" {
		return nil
	}

	summonerID := raw.Get("summonerId").Int()
	if summonerID <= 0 {
		return nil
	}
	summoner, err := b.transport.SummonerByID(ctx, summonerID)
	if err != nil {
		return err
	}
	if full := summoner.FullName(); full != "" {
		player.DisplayName = full
	}
	player.ProfileIconID = summoner.ProfileIconID
	player.TagLine = summoner.TagLine
	player.Tier = summoner.SoloRankTier
	return nil
}

// fetchMatchStats attaches PlayerMatchStats to every real player across
// both teams: cache hits are served synchronously, misses are resolved
// via a bounded-concurrency fan-out. A fetch failure for one player
// leaves its MatchStats nil; the snapshot is still returned.
//
// Grounded on the original service.rs's fetch_all_players_match_stats,
// using sourcegraph/conc's ResultContextPool in place of its sequential
// loop so misses resolve concurrently, per §4.6's ambient note.
func (b *Builder) fetchMatchStats(ctx context.Context, myTeam, enemyTeam []PlayerAnalysisData, queueID int) {
	type target struct {
		player      *PlayerAnalysisData
		perspective advice.Perspective
	}

	var targets []target
	for i := range myTeam {
		p := &myTeam[i]
		if !isRealPlayer(*p) {
			continue
		}
		perspective := advice.PerspectiveCollaboration
		if p.IsLocal {
			perspective = advice.PerspectiveSelfImprovement
		}
		p.Perspective = perspective
		targets = append(targets, target{player: p, perspective: perspective})
	}
	for i := range enemyTeam {
		p := &enemyTeam[i]
		if !isRealPlayer(*p) {
			continue
		}
		p.Perspective = advice.PerspectiveTargeting
		targets = append(targets, target{player: p, perspective: advice.PerspectiveTargeting})
	}

	cachedCount := 0
	var needFetch []target
	for _, t := range targets {
		if stats, ok := b.cache.get(t.perspective, t.player.DisplayName); ok {
			cp := stats
			t.player.MatchStats = &cp
			cachedCount++
			continue
		}
		needFetch = append(needFetch, t)
	}

	logger.Printf("match stats: %d/%d from cache, %d need fetch", cachedCount, len(targets), len(needFetch))
	if len(needFetch) == 0 {
		return
	}

	names := make([]string, 0, len(needFetch))
	seen := make(map[string]bool, len(needFetch))
	for _, t := range needFetch {
		if !seen[t.player.DisplayName] {
			seen[t.player.DisplayName] = true
			names = append(names, t.player.DisplayName)
		}
	}

	summoners, err := b.transport.SummonersByNames(ctx, names)
	if err != nil {
		logger.Printf("batch summoner lookup failed: %v, skipping match-history fetch", err)
		return
	}
	byName := make(map[string]lcu.Summoner, len(summoners))
	for _, s := range summoners {
		byName[lowerFullName(s)] = s
	}

	p := pool.NewWithResults[fetchOutcome]().WithContext(ctx).WithMaxGoroutines(b.maxConcurrentFetches)
	for _, t := range needFetch {
		t := t
		summoner, found := byName[lowerName(t.player.DisplayName)]
		if !found {
			logger.Printf("no summoner match for '%s', skipping", t.player.DisplayName)
			continue
		}
		p.Go(func(ctx context.Context) (fetchOutcome, error) {
			result, err := matchhistory.Run(ctx, b.transport, matchhistory.Request{
				PUUID:       summoner.PUUID,
				Count:       matchHistoryCount,
				QueueID:     &queueID,
				Perspective: t.perspective,
				TargetName:  t.player.DisplayName,
			})
			if err != nil {
				return fetchOutcome{displayName: t.player.DisplayName, perspective: t.perspective, err: err}, nil
			}
			return fetchOutcome{displayName: t.player.DisplayName, perspective: t.perspective, stats: &result.Stats, advice: result.Advice}, nil
		})
	}

	outcomes, err := p.Wait()
	if err != nil {
		logger.Printf("match-history fan-out reported errors: %v", err)
	}

	byKey := make(map[string]fetchOutcome, len(outcomes))
	for _, o := range outcomes {
		if o.stats == nil {
			logger.Printf("failed to fetch match stats for '%s': %v, skipping", o.displayName, o.err)
			continue
		}
		// Only the stats are cached; advice is perspective-specific and is
		// attached fresh to this player below, never written back into the
		// shared cache entry.
		b.cache.put(o.perspective, o.displayName, *o.stats)
		byKey[cacheKey(o.perspective, o.displayName)] = o
	}
	for _, t := range needFetch {
		if o, ok := byKey[cacheKey(t.perspective, t.player.DisplayName)]; ok && o.stats != nil {
			cp := *o.stats
			t.player.MatchStats = &cp
			t.player.Advice = o.advice
		}
	}
}

type fetchOutcome struct {
	displayName string
	perspective advice.Perspective
	stats       *analysis.PlayerMatchStats
	advice      []advice.GameAdvice
	err         error
}

// normalizeActionCellIDs rewrites any actorCellId that arrived as a JSON
// string (seen on some client builds) back into a number, so downstream
// consumers of the round-tripped actions blob never have to handle both
// shapes. Normalization is best-effort: a malformed blob is passed through
// unmodified rather than dropped.
func normalizeActionCellIDs(raw string) json.RawMessage {
	out := raw
	rounds := gjson.Parse(raw).Array()
	for i, round := range rounds {
		actions := round.Array()
		for j, action := range actions {
			cellID := action.Get("actorCellId")
			if cellID.Type != gjson.String {
				continue
			}
			path := fmt.Sprintf("%d.%d.actorCellId", i, j)
			updated, err := sjson.Set(out, path, cellID.Int())
			if err != nil {
				logger.Printf("failed to normalize actorCellId at %s: %v, leaving as-is", path, err)
				continue
			}
			out = updated
		}
	}
	return json.RawMessage(out)
}

func isRealPlayer(p PlayerAnalysisData) bool {
	return !p.IsBot && p.DisplayName != "" && p.DisplayName != unknownSummonerPlaceholder
}

func lowerName(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func lowerFullName(s lcu.Summoner) string {
	return lowerName(s.FullName())
}
