// Package teamanalysis builds a per-player, per-team snapshot from a raw
// champ-select session frame: summoner enrichment, bot classification,
// and (for real players) match-history stats.
package teamanalysis

import (
	"encoding/json"

	"github.com/arcanefeed/riftwatch/internal/advice"
	"github.com/arcanefeed/riftwatch/internal/analysis"
)

// PlayerAnalysisData is one champ-select participant, enriched with
// summoner info and, for real players, match-history stats and the advice
// generated for them under Perspective. The stats cache holds only the
// perspective-agnostic stats, never the advice — Advice is computed fresh
// per build and attached here, not written back into the shared cache
// entry, per the "perspective plurality" design note.
//
// Grounded on the original lcu/analysis_data/types.rs's
// PlayerAnalysisData.
type PlayerAnalysisData struct {
	CellID      int
	DisplayName string
	SummonerID  string
	PUUID       string
	IsLocal     bool
	IsBot       bool

	ChampionID         int
	ChampionName       string
	ChampionPickIntent int
	Position           string

	Tier          string
	ProfileIconID int
	TagLine       string
	Spell1ID      int
	Spell2ID      int

	MatchStats  *analysis.PlayerMatchStats
	Advice      []advice.GameAdvice
	Perspective advice.Perspective
}

// TeamAnalysisData is the full champ-select snapshot delivered to the UI.
//
// Grounded on the original lcu/analysis_data/types.rs's TeamAnalysisData.
// Actions/bans/timer are kept as raw JSON rather than typed out — they're
// round-tripped to the UI verbatim and never inspected by this package.
type TeamAnalysisData struct {
	MyTeam            []PlayerAnalysisData
	EnemyTeam         []PlayerAnalysisData
	LocalPlayerCellID int
	GamePhase         string
	QueueID           int
	IsCustomGame      bool

	Actions json.RawMessage
	Bans    json.RawMessage
	Timer   json.RawMessage
}
