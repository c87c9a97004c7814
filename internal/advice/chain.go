package advice

import (
	"sort"

	"github.com/arcanefeed/riftwatch/internal/analysis"
)

const maxAdvicePerPlayer = 5

// Analyzer is one responsibility-chain node: it looks at a Context for one
// specific kind of problem and, if it finds one, returns worded advice.
type Analyzer interface {
	Analyze(ctx Context) []GameAdvice
	Name() string
	// Enabled reports whether this analyzer should run under a strategy.
	// Most analyzers only make sense with a ranked-sized sample.
	Enabled(strategy analysis.Strategy) bool
}

// Chain runs every registered analyzer in order, collects what they find,
// and returns the top maxAdvicePerPlayer items by priority.
type Chain struct {
	analyzers []Analyzer
}

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) Add(a Analyzer) *Chain {
	c.analyzers = append(c.analyzers, a)
	return c
}

// DefaultChain wires every analyzer this package ships.
func DefaultChain() *Chain {
	return NewChain().
		Add(laningAnalyzer{}).
		Add(farmingAnalyzer{}).
		Add(teamfightAnalyzer{}).
		Add(visionAnalyzer{}).
		Add(championAnalyzer{})
}

func (c *Chain) Generate(ctx Context, strategy analysis.Strategy) []GameAdvice {
	var all []GameAdvice
	for _, a := range c.analyzers {
		if !a.Enabled(strategy) {
			continue
		}
		all = append(all, a.Analyze(ctx)...)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Priority > all[j].Priority })
	if len(all) > maxAdvicePerPlayer {
		all = all[:maxAdvicePerPlayer]
	}
	return all
}
