package erroneous

import "dbgassembler/core/graph"

// Decision records what a policy did with one visited edge — kept for
// callers that want to report what the engine changed and why, in addition
// to the graph mutation itself.
type Decision struct {
	Edge   graph.EdgeID
	Kept   bool
	Reason string
}

// Policy is a complete edge-removal pass: scan in Order, stop early once
// Stop fires (nil Stop means exhaustive), delete edges matching Criterion
// through an EdgeRemover configured with DeleteRelated, then compress and
// clean.
type Policy[V any, E any] struct {
	Name          string
	Order         VisitOrder[V, E]
	Stop          StopCondition[V, E]
	Criterion     Criterion[V, E]
	DeleteRelated bool
}

// Run executes the policy once against view, returning the per-edge
// decisions and whether the graph changed.
func (p Policy[V, E]) Run(view *GraphView[V, E]) ([]Decision, bool, error) {
	remover := NewEdgeRemover(view)
	edges := p.Order(view)
	var decisions []Decision
	changed := false

	for _, e := range edges {
		if !view.G.EdgeExists(e) {
			continue
		}
		if p.Stop != nil && p.Stop(view, e) {
			break
		}
		erroneous, err := p.Criterion(view, e)
		if err != nil {
			return decisions, changed, err
		}
		if erroneous {
			ok, err := remover.DeleteEdge(e, p.DeleteRelated)
			if err != nil {
				return decisions, changed, err
			}
			changed = changed || ok
			decisions = append(decisions, Decision{Edge: e, Kept: false, Reason: p.Name})
		} else {
			decisions = append(decisions, Decision{Edge: e, Kept: true})
		}
	}

	compressor := NewCompressor(view)
	cleaner := NewCleaner(view)
	if compressor.CompressAllVertices() {
		changed = true
	}
	if cleaner.Clean() {
		changed = true
	}
	return decisions, changed, nil
}
