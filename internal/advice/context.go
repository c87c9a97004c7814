package advice

import "github.com/arcanefeed/riftwatch/internal/analysis"

// Context is the data a chain of analyzers walks to produce advice for one
// player, worded from one perspective.
type Context struct {
	Stats      analysis.PlayerMatchStats
	Games      []analysis.ParsedGame
	Role       string
	Perspective Perspective
	TargetName string
}

func (c Context) GameCount() int { return len(c.Games) }

func (c Context) IsSelfImprovement() bool { return c.Perspective == PerspectiveSelfImprovement }
func (c Context) IsTargeting() bool       { return c.Perspective == PerspectiveTargeting }
func (c Context) IsCollaboration() bool   { return c.Perspective == PerspectiveCollaboration }

// TargetDisplayName returns the name advice text should refer to the
// subject by, falling back to a perspective-appropriate pronoun.
func (c Context) TargetDisplayName() string {
	if c.TargetName != "" {
		return c.TargetName
	}
	switch c.Perspective {
	case PerspectiveTargeting:
		return "the opponent"
	case PerspectiveCollaboration:
		return "your teammate"
	default:
		return "you"
	}
}
