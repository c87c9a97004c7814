package lcu

import (
	"context"
	"strconv"

	"github.com/tidwall/gjson"
)

// Summoner is the subset of the control endpoint's summoner record this
// package needs: enough to resolve a display name to a puuid and surface a
// ranked-solo tier, nothing more.
type Summoner struct {
	SummonerID    int64
	PUUID         string
	DisplayName   string
	GameName      string
	TagLine       string
	ProfileIconID int
	SoloRankTier  string
}

// FullName returns the gameName#tagLine form the control endpoint prefers
// over the legacy DisplayName when both are present.
func (s Summoner) FullName() string {
	if s.GameName == "" {
		return s.DisplayName
	}
	if s.TagLine == "" {
		return s.GameName
	}
	return s.GameName + "#" + s.TagLine
}

type summonerWire struct {
	SummonerID    int64  `json:"summonerId"`
	PUUID         string `json:"puuid"`
	DisplayName   string `json:"displayName"`
	GameName      string `json:"gameName"`
	TagLine       string `json:"tagLine"`
	ProfileIconID int    `json:"profileIconId"`
}

func (w summonerWire) toSummoner() Summoner {
	return Summoner{
		SummonerID:    w.SummonerID,
		PUUID:         w.PUUID,
		DisplayName:   w.DisplayName,
		GameName:      w.GameName,
		TagLine:       w.TagLine,
		ProfileIconID: w.ProfileIconID,
	}
}

func summonerPathByID(summonerID int64) string {
	return "/lol-summoner/v1/summoners/" + strconv.FormatInt(summonerID, 10)
}

// CurrentSummoner fetches the logged-in player's own summoner record,
// enriched with their ranked-solo tier.
func (t *Transport) CurrentSummoner(ctx context.Context) (Summoner, error) {
	var wire summonerWire
	if err := t.Call(ctx, "GET", "/lol-summoner/v1/current-summoner", nil, &wire); err != nil {
		return Summoner{}, err
	}
	s := wire.toSummoner()
	s.SoloRankTier = t.soloRankTier(ctx, s.PUUID)
	return s, nil
}

// SummonerByID fetches a summoner record by its numeric id, the
// enrichment fallback used when a champ-select frame lacks a display name.
func (t *Transport) SummonerByID(ctx context.Context, summonerID int64) (Summoner, error) {
	var wire summonerWire
	if err := t.Call(ctx, "GET", summonerPathByID(summonerID), nil, &wire); err != nil {
		return Summoner{}, err
	}
	s := wire.toSummoner()
	s.SoloRankTier = t.soloRankTier(ctx, s.PUUID)
	return s, nil
}

// SummonersByNames batch-resolves display names to full summoner records,
// the bulk lookup the Session Model Builder uses before fanning out
// match-history fetches.
func (t *Transport) SummonersByNames(ctx context.Context, names []string) ([]Summoner, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var wires []summonerWire
	if err := t.Call(ctx, "POST", "/lol-summoner/v2/summoners/names", names, &wires); err != nil {
		return nil, err
	}
	out := make([]Summoner, len(wires))
	for i, w := range wires {
		out[i] = w.toSummoner()
	}
	return out, nil
}

// soloRankTier best-effort fetches the ranked-solo tier for puuid. A
// failure here is not fatal to the caller, which already has a usable
// Summoner without it.
func (t *Transport) soloRankTier(ctx context.Context, puuid string) string {
	if puuid == "" {
		return ""
	}
	raw, err := t.CallRaw(ctx, "GET", "/lol-ranked/v1/ranked-stats/"+puuid)
	if err != nil {
		return ""
	}
	queues := gjson.GetBytes(raw, "queues").Array()
	for _, q := range queues {
		if q.Get("queueType").String() == "RANKED_SOLO_5x5" {
			return q.Get("tier").String()
		}
	}
	return ""
}
