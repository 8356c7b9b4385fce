package search

import (
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/ranking"
)

// SearchMonitor provides hooks to observe the search process.
// It receives the ranking stage hooks plus the steps around ranking.
type SearchMonitor interface {
	ranking.Monitor
	AfterCandidateLoad(candidates []*core.MediaItem)
	AfterSuggest(suggestions []string)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ ranking.Query, _ int)           {}
func (n *noopMonitor) AfterScoring(_ []core.ScoredItem)       {}
func (n *noopMonitor) AfterFilter(_ []core.ScoredItem)        {}
func (n *noopMonitor) AfterDedupe(_ []core.ScoredItem)        {}
func (n *noopMonitor) Finish(_ []core.ScoredItem)             {}
func (n *noopMonitor) AfterCandidateLoad(_ []*core.MediaItem) {}
func (n *noopMonitor) AfterSuggest(_ []string)                {}
