package search

import "github.com/poiesic/banquet/core"

// PipelineMonitor provides hooks to observe the relevance pipeline.
// Implement this interface to track intermediate steps and results during search.
type PipelineMonitor interface {
	Start(query string)
	AfterInterpret(params *core.ExtractedParams, expandedQuery string, variants []core.QueryVariant)
	AfterRetrieval(candidates []core.Candidate)
	AfterScoring(scored []*core.ScoredCandidate)
	AfterDiversification(selected []*core.ScoredCandidate)
	Finish(results []*core.ScoredCandidate)
}

// noopMonitor is a no-op implementation of PipelineMonitor
type noopMonitor struct{}

var _ PipelineMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                                          {}
func (n *noopMonitor) AfterInterpret(_ *core.ExtractedParams, _ string, _ []core.QueryVariant) {}
func (n *noopMonitor) AfterRetrieval(_ []core.Candidate)                                       {}
func (n *noopMonitor) AfterScoring(_ []*core.ScoredCandidate)                                  {}
func (n *noopMonitor) AfterDiversification(_ []*core.ScoredCandidate)                          {}
func (n *noopMonitor) Finish(_ []*core.ScoredCandidate)                                        {}
