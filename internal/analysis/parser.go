package analysis

import (
	"github.com/tidwall/gjson"
)

// ParseGame normalizes one raw match-history JSON record into a
// ParsedGame for the given player. ok is false if the player cannot be
// located in the record or the record is missing required fields — the
// same "just skip this game" contract as the original parser.
//
// Grounded on the original parser.rs's parse_game/parse_player_data/
// parse_team_data, adapted from serde_json field access to gjson path
// queries.
func ParseGame(raw []byte, puuid string) (*ParsedGame, bool) {
	root := gjson.ParseBytes(raw)
	if !root.Exists() {
		return nil, false
	}

	var participantID int64 = -1
	for _, ident := range root.Get("participantIdentities").Array() {
		if ident.Get("player.puuid").String() == puuid {
			participantID = ident.Get("participantId").Int()
			break
		}
	}
	if participantID < 0 {
		return nil, false
	}

	var participant gjson.Result
	found := false
	for _, p := range root.Get("participants").Array() {
		if p.Get("participantId").Int() == participantID {
			participant = p
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	player := parsePlayerData(participant)
	teamID := participant.Get("teamId").Int()
	team := parseTeamData(root, teamID)

	return &ParsedGame{
		GameID:       uint64(root.Get("gameId").Int()),
		QueueID:      int(root.Get("queueId").Int()),
		GameDuration: int(root.Get("gameDuration").Int()),
		GameCreation: root.Get("gameCreation").Int(),
		Player:       player,
		Team:         team,
	}, true
}

func parsePlayerData(participant gjson.Result) PlayerData {
	stats := participant.Get("stats")
	timeline := participant.Get("timeline")

	kills := int(stats.Get("kills").Int())
	deaths := int(stats.Get("deaths").Int())
	assists := int(stats.Get("assists").Int())

	var kda float64
	if deaths > 0 {
		kda = float64(kills+assists) / float64(deaths)
	} else {
		kda = float64(kills + assists)
	}

	role, lane, tl := "NONE", "NONE", (*TimelineData)(nil)
	if timeline.Exists() {
		role = orDefault(timeline.Get("role").String(), "NONE")
		lane = orDefault(timeline.Get("lane").String(), "NONE")
		tl = parseTimelineData(timeline)
	}

	return PlayerData{
		Win:                stats.Get("win").Bool(),
		Kills:              kills,
		Deaths:             deaths,
		Assists:            assists,
		KDA:                kda,
		DamageToChampions:  stats.Get("totalDamageDealtToChampions").Int(),
		DamageTaken:        stats.Get("totalDamageTaken").Int(),
		GoldEarned:         stats.Get("goldEarned").Int(),
		VisionScore:        int(stats.Get("visionScore").Int()),
		WardsPlaced:        int(stats.Get("wardsPlaced").Int()),
		WardsKilled:        int(stats.Get("wardsKilled").Int()),
		CS:                 int(stats.Get("totalMinionsKilled").Int() + stats.Get("neutralMinionsKilled").Int()),
		DamageToObjectives: stats.Get("damageDealtToObjectives").Int(),
		DamageToTurrets:    stats.Get("damageDealtToTurrets").Int(),
		TimeCCOthers:       int(stats.Get("timeCCingOthers").Int()),
		ChampionID:         int(participant.Get("championId").Int()),
		Role:               role,
		Lane:               lane,
		Timeline:           tl,
	}
}

func parseTeamData(root gjson.Result, teamID int64) TeamData {
	var team TeamData
	for _, p := range root.Get("participants").Array() {
		if p.Get("teamId").Int() != teamID {
			continue
		}
		stats := p.Get("stats")
		team.TotalKills += int(stats.Get("kills").Int())
		team.TotalDamage += stats.Get("totalDamageDealtToChampions").Int()
		team.TotalDamageTaken += stats.Get("totalDamageTaken").Int()
		team.TotalVisionScore += int(stats.Get("visionScore").Int())
	}
	return team
}

func parseTimelineData(timeline gjson.Result) *TimelineData {
	data := &TimelineData{}

	if cs := timeline.Get("creepsPerMinDeltas"); cs.Exists() {
		data.CSPerMin0To10 = deltaValue(cs, "0-10")
		data.CSPerMin10To20 = deltaValue(cs, "10-20")
		data.CSPerMin20ToEnd = firstNonNil(deltaValue(cs, "20-30"), deltaValue(cs, "20-end"))
	}
	if gold := timeline.Get("goldPerMinDeltas"); gold.Exists() {
		data.GoldPerMin0To10 = deltaValue(gold, "0-10")
		data.GoldPerMin10To20 = deltaValue(gold, "10-20")
		data.GoldPerMin20ToEnd = firstNonNil(deltaValue(gold, "20-30"), deltaValue(gold, "20-end"))
	}
	if xp := timeline.Get("xpPerMinDeltas"); xp.Exists() {
		data.XPPerMin0To10 = deltaValue(xp, "0-10")
		data.XPPerMin10To20 = deltaValue(xp, "10-20")
	}
	if csDiff := timeline.Get("csDiffPerMinDeltas"); csDiff.Exists() {
		data.CSDiff0To10 = deltaValue(csDiff, "0-10")
		data.CSDiff10To20 = deltaValue(csDiff, "10-20")
		data.CSDiff20ToEnd = firstNonNil(deltaValue(csDiff, "20-30"), deltaValue(csDiff, "20-end"))
	}
	if xpDiff := timeline.Get("xpDiffPerMinDeltas"); xpDiff.Exists() {
		data.XPDiff0To10 = deltaValue(xpDiff, "0-10")
		data.XPDiff10To20 = deltaValue(xpDiff, "10-20")
	}
	if dmgTaken := timeline.Get("damageTakenPerMinDeltas"); dmgTaken.Exists() {
		data.DamageTakenPerMin0To10 = deltaValue(dmgTaken, "0-10")
		data.DamageTakenPerMin10To20 = deltaValue(dmgTaken, "10-20")
	}
	return data
}

func deltaValue(deltas gjson.Result, key string) *float64 {
	v := deltas.Get(key)
	if !v.Exists() {
		return nil
	}
	f := v.Float()
	return &f
}

func firstNonNil(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ParseGames parses every game in raws that resolves to puuid, dropping
// any that don't.
func ParseGames(raws [][]byte, puuid string) []ParsedGame {
	games := make([]ParsedGame, 0, len(raws))
	for _, raw := range raws {
		if g, ok := ParseGame(raw, puuid); ok {
			games = append(games, *g)
		}
	}
	return games
}

// IdentifyMainRole returns the most frequently played role label across a
// player's recent games, using the upstream's coarse role/lane tags.
func IdentifyMainRole(games []ParsedGame) string {
	counts := make(map[string]int)
	for _, g := range games {
		counts[classifyRole(g.Player.Role, g.Player.Lane)]++
	}

	best, bestCount := "Unknown", 0
	for role, count := range counts {
		if count > bestCount {
			best, bestCount = role, count
		}
	}
	return best
}

func classifyRole(role, lane string) string {
	switch {
	case role == "DUO_CARRY":
		return "ADC"
	case role == "DUO_SUPPORT":
		return "Support"
	case role == "SOLO" && lane == "TOP":
		return "Top"
	case role == "SOLO" && (lane == "MIDDLE" || lane == "MID"):
		return "Mid"
	case (role == "NONE" && lane == "JUNGLE") || role == "JUNGLE":
		return "Jungle"
	default:
		return "Unknown"
	}
}
