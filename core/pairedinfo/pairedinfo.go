// Package pairedinfo implements an in-memory PairedInfoIndex (spec.md §3,
// §6): a map from an unordered edge pair to the distance observations
// collected from paired reads. It is read-only from the edge-removal
// engine's point of view (core/erroneous); the accumulation side (Add) is
// what a pipeline listener calls while processing a paired library.
package pairedinfo

import (
	"dbgassembler/core/contracts"
	"dbgassembler/core/graph"
)

type edgePair struct {
	lo, hi graph.EdgeID
}

func key(e1, e2 graph.EdgeID) edgePair {
	if e1 <= e2 {
		return edgePair{e1, e2}
	}
	return edgePair{e2, e1}
}

// Index is an in-memory contracts.PairedInfoIndex.
type Index struct {
	points map[edgePair][]contracts.Point
}

// New returns an empty Index.
func New() *Index {
	return &Index{points: make(map[edgePair][]contracts.Point)}
}

// Add records one observation between e1 and e2. The pair is stored
// unordered, matching GetEdgePairInfo's contract.
func (ix *Index) Add(e1, e2 graph.EdgeID, p contracts.Point) {
	k := key(e1, e2)
	ix.points[k] = append(ix.points[k], p)
}

// GetEdgePairInfo returns every observation recorded between e1 and e2, in
// insertion order. A pair with no observations returns nil, not an error —
// absence of paired info is a normal, expected outcome.
func (ix *Index) GetEdgePairInfo(e1, e2 graph.EdgeID) []contracts.Point {
	return ix.points[key(e1, e2)]
}
