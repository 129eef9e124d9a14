// Package erroneous implements the erroneous-edge removal engine of
// spec.md §4.F: a family of policies, each a Criterion plus a VisitOrder
// plus configuration, sharing one skeleton (scan in visitation order, stop
// early if the order's stop condition fires, delete matching edges through
// an EdgeRemover, then compress degree-(1,1) chains and clean orphans).
// Grounded on erroneous_connection_remover.hpp, recast per spec.md §9's
// "deep template hierarchy" note: policies are values built from a
// Criterion function and a VisitOrder function rather than a class
// hierarchy.
package erroneous

import (
	"sort"

	"dbgassembler/core/graph"
)

// GraphView adapts a generic graph.Graph[V,E] with the length/coverage
// accessors the removal policies need, without constraining E at the
// graph.Graph level itself (core/graph stays reusable for any edge
// payload). K is the de Bruijn graph's k-mer size, needed by
// ChimericEdgesRemover's length bounds.
type GraphView[V any, E any] struct {
	G          *graph.Graph[V, E]
	Master     graph.DataMaster[V, E]
	LengthOf   func(E) int
	CoverageOf func(E) float64
	K          int
}

// NewGraphView builds a view over g.
func NewGraphView[V any, E any](g *graph.Graph[V, E], master graph.DataMaster[V, E], lengthOf func(E) int, coverageOf func(E) float64, k int) *GraphView[V, E] {
	return &GraphView[V, E]{G: g, Master: master, LengthOf: lengthOf, CoverageOf: coverageOf, K: k}
}

// Length returns the domain length of edge e.
func (v *GraphView[V, E]) Length(e graph.EdgeID) int { return v.LengthOf(v.G.EdgeData(e)) }

// Coverage returns the domain coverage of edge e.
func (v *GraphView[V, E]) Coverage(e graph.EdgeID) float64 { return v.CoverageOf(v.G.EdgeData(e)) }

// AllEdges returns every live edge, unsorted.
func (v *GraphView[V, E]) AllEdges() []graph.EdgeID { return v.G.Edges() }

// Criterion decides whether an edge is erroneous and should be removed. An
// error aborts the scan (e.g. a paired-info observation that contradicts
// the library bounds the policy was configured with).
type Criterion[V any, E any] func(view *GraphView[V, E], e graph.EdgeID) (bool, error)

// StopCondition, once true for the edge currently being visited, ends the
// scan early (the remaining edges in visitation order are assumed safe).
// A nil StopCondition means the scan is exhaustive.
type StopCondition[V any, E any] func(view *GraphView[V, E], e graph.EdgeID) bool

// VisitOrder produces the edge visitation order for a policy: unsorted for
// a full scan, length-ascending for topological policies, coverage-ascending
// for coverage policies.
type VisitOrder[V any, E any] func(view *GraphView[V, E]) []graph.EdgeID

// AnyOrder visits edges in the view's natural (unspecified) order — used by
// policies with no monotone stop condition, where visitation order doesn't
// affect the outcome.
func AnyOrder[V any, E any](view *GraphView[V, E]) []graph.EdgeID {
	return view.AllEdges()
}

// LengthAscending visits edges from shortest to longest.
func LengthAscending[V any, E any](view *GraphView[V, E]) []graph.EdgeID {
	edges := view.AllEdges()
	sort.Slice(edges, func(i, j int) bool { return view.Length(edges[i]) < view.Length(edges[j]) })
	return edges
}

// CoverageAscending visits edges from lowest to highest coverage.
func CoverageAscending[V any, E any](view *GraphView[V, E]) []graph.EdgeID {
	edges := view.AllEdges()
	sort.Slice(edges, func(i, j int) bool { return view.Coverage(edges[i]) < view.Coverage(edges[j]) })
	return edges
}
