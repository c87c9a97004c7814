package advice

// Strategy words a detected problem from one perspective. The same
// ProblemType can produce radically different advice depending on the
// strategy: a second-person coaching tip, a third-person scouting report,
// or a teammate-protection plan.
type Strategy interface {
	GenerateAdvice(problemType ProblemType, data ProblemData) *GameAdvice
	Name() string
	Perspective() Perspective
}

// StrategyFor returns the strategy implementation for a perspective.
func StrategyFor(perspective Perspective) Strategy {
	switch perspective {
	case PerspectiveTargeting:
		return targetingStrategy{}
	case PerspectiveCollaboration:
		return collaborationStrategy{}
	default:
		return selfImprovementStrategy{}
	}
}
