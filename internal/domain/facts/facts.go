// Package facts synthesizes ranked, human-readable insights for one week
// from its own candidates and from everything that happened before it.
//
// Each rule is an independent pure function over an Input. Generate runs
// every rule, orders the combined output by priority (stable, so equal
// priorities keep rule order) and truncates to the requested count.
package facts

import (
	"sort"

	"github.com/okian/moviemonday/internal/domain/connections"
	"github.com/okian/moviemonday/internal/domain/model"
)

// DefaultMaxFacts is the number of facts the insights grid shows.
const DefaultMaxFacts = 4

// Input is what every rule sees.
type Input struct {
	Current     model.WeeklyRecord
	History     HistoricalStats
	Connections connections.Result
}

// NewInput prepares a rule input, finding the week's connections once.
func NewInput(current model.WeeklyRecord, history HistoricalStats) Input {
	return Input{
		Current:     current,
		History:     history,
		Connections: connections.Find(current.Selections),
	}
}

// Generate returns at most maxFacts facts in non-increasing priority order,
// along with how many facts fired before truncation. maxFacts <= 0 yields no
// facts.
func Generate(current model.WeeklyRecord, history HistoricalStats, maxFacts int) ([]model.Fact, int) {
	ranked := Rank(Evaluate(NewInput(current, history)))
	if maxFacts <= 0 {
		return []model.Fact{}, len(ranked)
	}
	if len(ranked) > maxFacts {
		return ranked[:maxFacts], len(ranked)
	}
	return ranked, len(ranked)
}

// Evaluate runs every rule in table order and concatenates their output.
func Evaluate(in Input) []model.Fact {
	out := make([]model.Fact, 0)
	for _, r := range Rules() {
		out = append(out, r.Eval(in)...)
	}
	return out
}

// Rank orders facts by priority, highest first, keeping generation order
// among equal priorities. The input is not modified.
func Rank(facts []model.Fact) []model.Fact {
	out := make([]model.Fact, len(facts))
	copy(out, facts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
