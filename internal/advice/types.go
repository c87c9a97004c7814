// Package advice turns statistical problems surfaced by the analysis
// package into prioritized, worded recommendations. The same underlying
// problem produces different wording depending on who it's about: a
// second-person nudge for the local player, a third-person tactical
// read for an enemy, a collaboration note for an ally.
package advice

import "github.com/arcanefeed/riftwatch/internal/lcu"

// Category groups advice by the phase of the game it concerns.
type Category string

const (
	CategoryLaning      Category = "laning"
	CategoryFarming     Category = "farming"
	CategoryTeamfight   Category = "teamfight"
	CategoryVision      Category = "vision"
	CategoryPositioning Category = "positioning"
	CategoryDecision    Category = "decision"
	CategoryChampion    Category = "champion"
)

// Perspective picks the voice advice is worded in. Shared with lcu so a
// player's side in champ-select maps directly onto the voice their advice
// is generated in, with no translation layer between the two packages.
type Perspective = lcu.Perspective

const (
	// PerspectiveSelfImprovement addresses the local player directly.
	PerspectiveSelfImprovement = lcu.PerspectiveSelfImprovement
	// PerspectiveTargeting describes an enemy's exploitable weakness.
	PerspectiveTargeting = lcu.PerspectiveTargeting
	// PerspectiveCollaboration describes how to play around an ally.
	PerspectiveCollaboration = lcu.PerspectiveCollaboration
)

// GameAdvice is one fully-worded, prioritized recommendation.
type GameAdvice struct {
	Title        string
	Problem      string
	Evidence     string
	Suggestions  []string
	Priority     int
	Category     Category
	Perspective  Perspective
	AffectedRole string
	TargetPlayer string
}

// ProblemType names the kind of problem an analyzer detected, independent
// of whose voice the resulting advice will be worded in.
type ProblemType int

const (
	ProblemLaningCSDeficit ProblemType = iota
	ProblemLaningDominated
	ProblemMidGameDecline
	ProblemPoorFarming
	ProblemLowKillParticipation
	ProblemLowTeamfightParticipation
	ProblemHighDeathRate
	ProblemPoorPositioning
	ProblemLowVisionScore
	ProblemChampionPoolNarrow
	ProblemChampionDependency
)

// ProblemData is the measurement an analyzer hands to a strategy so it can
// word the advice: how bad (severity), the raw stat (value), the role it
// concerns, and who it's about.
type ProblemData struct {
	Severity   float64
	Value      float64
	Role       string
	TargetName string
	ExtraInfo  string
}
