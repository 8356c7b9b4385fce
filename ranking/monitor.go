package ranking

import "github.com/poiesic/mediarank/core"

// Monitor provides hooks to observe a ranking call.
// Implement this interface to inspect the intermediate result of each stage.
// Hooks must not modify the slices they receive.
type Monitor interface {
	Start(query Query, candidates int)
	AfterScoring(scored []core.ScoredItem)
	AfterFilter(kept []core.ScoredItem)
	AfterDedupe(unique []core.ScoredItem)
	Finish(results []core.ScoredItem)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query, _ int)             {}
func (n *noopMonitor) AfterScoring(_ []core.ScoredItem) {}
func (n *noopMonitor) AfterFilter(_ []core.ScoredItem)  {}
func (n *noopMonitor) AfterDedupe(_ []core.ScoredItem)  {}
func (n *noopMonitor) Finish(_ []core.ScoredItem)       {}
