package erroneous

import (
	"dbgassembler/core/contracts"
	"dbgassembler/core/errs"
	"dbgassembler/core/graph"
)

// LowCoverageEdgeRemover deletes every edge shorter than maxLength with
// coverage below maxCoverage, in one exhaustive scan. Grounded on
// LowCoverageEdgeRemover::RemoveEdges.
func LowCoverageEdgeRemover[V any, E any](maxLength int, maxCoverage float64) Policy[V, E] {
	return Policy[V, E]{
		Name:  "low_coverage",
		Order: AnyOrder[V, E],
		Criterion: func(view *GraphView[V, E], e graph.EdgeID) (bool, error) {
			return view.Length(e) < maxLength && view.Coverage(e) < maxCoverage, nil
		},
		DeleteRelated: true,
	}
}

// IterativeLowCoverageEdgeRemover is a single pass of the same predicate,
// visited coverage-ascending, stopping as soon as an edge's coverage
// exceeds maxCoverage (every edge after it in this order is also safe).
// Grounded on IterativeLowCoverageEdgeRemover::InnerRemoveEdges.
func IterativeLowCoverageEdgeRemover[V any, E any](maxLength int, maxCoverage float64) Policy[V, E] {
	return Policy[V, E]{
		Name:  "iterative_low_coverage",
		Order: CoverageAscending[V, E],
		Stop: func(view *GraphView[V, E], e graph.EdgeID) bool {
			return view.Coverage(e) > maxCoverage
		},
		Criterion: func(view *GraphView[V, E], e graph.EdgeID) (bool, error) {
			return view.Length(e) < maxLength && view.Coverage(e) < maxCoverage, nil
		},
		DeleteRelated: true,
	}
}

// ChimericEdgesRemover deletes short bridging edges: length within
// maxOverlap of k, whose end vertex has out-degree 1 and whose start
// vertex has in-degree 1 — i.e. e is the only way in on one side and the
// only way out on the other, the signature of a spurious bridge the graph
// constructor stitched in. Grounded on ChimericEdgesRemover::InnerRemoveEdges;
// the source also carries a commented-out stronger pair of degree checks
// (incoming/outgoing count >= 2 on the opposite ends) which is not
// resurrected here, matching the uncommented behaviour.
func ChimericEdgesRemover[V any, E any](maxOverlap int) Policy[V, E] {
	return Policy[V, E]{
		Name:  "chimeric",
		Order: AnyOrder[V, E],
		Criterion: func(view *GraphView[V, E], e graph.EdgeID) (bool, error) {
			length := view.Length(e)
			if length > view.K || length < view.K-maxOverlap {
				return false, nil
			}
			end := view.G.End(e)
			start := view.G.Start(e)
			return view.G.OutDegree(end) == 1 && view.G.InDegree(start) == 1, nil
		},
		DeleteRelated: true,
	}
}

// TopologyBasedChimericEdgeRemover deletes edges no longer than maxLength
// whose every adjacent edge (incoming/outgoing at either endpoint) either
// is the edge itself, has coverage above coverageGap times e's coverage, or
// is at least neighbourLengthThreshold long. Visited length-ascending,
// stopping once length exceeds maxLength. Grounded on
// TopologyBasedChimericEdgeRemover::InnerRemoveEdges.
func TopologyBasedChimericEdgeRemover[V any, E any](maxLength int, coverageGap float64, neighbourLengthThreshold int) Policy[V, E] {
	strongNeighbour := func(view *GraphView[V, E], neighbour, possibleEC graph.EdgeID) bool {
		return neighbour == possibleEC ||
			view.Coverage(neighbour) > view.Coverage(possibleEC)*coverageGap ||
			view.Length(neighbour) >= neighbourLengthThreshold
	}
	return Policy[V, E]{
		Name:  "topology_chimeric",
		Order: LengthAscending[V, E],
		Stop: func(view *GraphView[V, E], e graph.EdgeID) bool {
			return view.Length(e) > maxLength
		},
		Criterion: func(view *GraphView[V, E], e graph.EdgeID) (bool, error) {
			start, end := view.G.Start(e), view.G.End(e)
			adjacent := adjacentEdges(view, start, end)
			for _, nb := range adjacent {
				if !strongNeighbour(view, nb, e) {
					return false, nil
				}
			}
			return true, nil
		},
		DeleteRelated: false,
	}
}

func adjacentEdges[V any, E any](view *GraphView[V, E], start, end graph.VertexID) []graph.EdgeID {
	var out []graph.EdgeID
	out = append(out, view.G.Outgoing(start)...)
	out = append(out, view.G.Incoming(start)...)
	out = append(out, view.G.Outgoing(end)...)
	out = append(out, view.G.Incoming(end)...)
	return out
}

// LengthThresholds is the shared uniqueness/plausibility predicate pair
// NewTopologyBasedChimericEdgeRemover uses by default and
// AdvancedTopologyChimericEdgeRemover overrides with path-based measures.
type LengthThresholds[V any, E any] struct {
	Unique    func(view *GraphView[V, E], e graph.EdgeID, forward bool) bool
	Plausible func(view *GraphView[V, E], e graph.EdgeID, forward bool) bool
}

// DefaultLengthThresholds returns length(e)>=uniquenessLength /
// length(e)>=plausibilityLength predicates.
func DefaultLengthThresholds[V any, E any](uniquenessLength, plausibilityLength int) LengthThresholds[V, E] {
	return LengthThresholds[V, E]{
		Unique: func(view *GraphView[V, E], e graph.EdgeID, _ bool) bool {
			return view.Length(e) >= uniquenessLength
		},
		Plausible: func(view *GraphView[V, E], e graph.EdgeID, _ bool) bool {
			return view.Length(e) >= plausibilityLength
		},
	}
}

// NewTopologyBasedChimericEdgeRemover deletes an edge e no longer than
// maxLength when either its start side has exactly one incoming edge that
// is "unique" and some outgoing edge that is "plausible", or symmetrically
// on the end side. Requires maxLength < plausibilityLength < uniquenessLength;
// violating that fails with ConfigOutOfRange at construction, matching the
// VERIFY()s in NewTopologyBasedChimericEdgeRemover's constructor.
func NewTopologyBasedChimericEdgeRemover[V any, E any](maxLength, uniquenessLength, plausibilityLength int, thresholds LengthThresholds[V, E]) (Policy[V, E], error) {
	if !(maxLength < plausibilityLength) {
		return Policy[V, E]{}, errs.New(errs.ConfigOutOfRange, "max_length (%d) must be < plausibility_length (%d)", maxLength, plausibilityLength)
	}
	if !(uniquenessLength > plausibilityLength) {
		return Policy[V, E]{}, errs.New(errs.ConfigOutOfRange, "uniqueness_length (%d) must be > plausibility_length (%d)", uniquenessLength, plausibilityLength)
	}

	unique := func(view *GraphView[V, E], edges []graph.EdgeID, forward bool) bool {
		return len(edges) == 1 && thresholds.Unique(view, edges[0], forward)
	}
	existPlausible := func(view *GraphView[V, E], edges []graph.EdgeID, forward bool) bool {
		for _, e := range edges {
			if thresholds.Plausible(view, e, forward) {
				return true
			}
		}
		return false
	}
	checkStart := func(view *GraphView[V, E], e graph.EdgeID) bool {
		start := view.G.Start(e)
		return unique(view, view.G.Incoming(start), false) && existPlausible(view, view.G.Outgoing(start), true)
	}
	checkEnd := func(view *GraphView[V, E], e graph.EdgeID) bool {
		end := view.G.End(e)
		return unique(view, view.G.Outgoing(end), true) && existPlausible(view, view.G.Incoming(end), false)
	}

	return Policy[V, E]{
		Name:  "new_topology_chimeric",
		Order: LengthAscending[V, E],
		Stop: func(view *GraphView[V, E], e graph.EdgeID) bool {
			return view.Length(e) > maxLength
		},
		Criterion: func(view *GraphView[V, E], e graph.EdgeID) (bool, error) {
			return checkStart(view, e) || checkEnd(view, e), nil
		},
		DeleteRelated: false,
	}, nil
}

// AdvancedTopologyChimericEdgeRemover is NewTopologyBasedChimericEdgeRemover
// with the length checks replaced by the cumulative length of a
// unique/plausible walk from e, computed by the supplied path finders.
// Grounded on AdvancedTopologyChimericEdgeRemover, which overrides
// CheckUniqueness/CheckPlausibility to call out to
// UniquePathFinder/PlausiblePathFinder instead of a single edge's length.
func AdvancedTopologyChimericEdgeRemover[V any, E any](maxLength, uniquenessLength, plausibilityLength int, unique contracts.UniquePathFinder, plausible contracts.PlausiblePathFinder) (Policy[V, E], error) {
	thresholds := LengthThresholds[V, E]{
		Unique: func(_ *GraphView[V, E], e graph.EdgeID, forward bool) bool {
			return unique.UniquePathLength(e, forward) >= uniquenessLength
		},
		Plausible: func(_ *GraphView[V, E], e graph.EdgeID, forward bool) bool {
			return plausible.PlausiblePathLength(e, forward) >= plausibilityLength
		},
	}
	p, err := NewTopologyBasedChimericEdgeRemover[V, E](maxLength, uniquenessLength, plausibilityLength, thresholds)
	if err != nil {
		return Policy[V, E]{}, err
	}
	p.Name = "advanced_topology_chimeric"
	return p, nil
}

// PairInfoAwareErroneousEdgeRemover deletes an edge e no longer than
// maxLength, all of whose adjacent edges are at least minNeighbourLength
// long, when every (incoming-at-start, outgoing-at-end) neighbour pair is
// "compatible": either the paired-info index records an observation whose
// predicted distance length(in)+length(e) is covered by that observation's
// Point{d, variance}, or no observation should exist at all given the
// library's insert-size/read-length bounds. insertSize must be at least
// 2*readLength (checked at construction, per PairInfoAwareErroneousEdgeRemover's
// VERIFY); the gap between those bounds drives the "should an observation
// exist at all" test. A Point fetched from the index whose predicted
// distance or variance falls outside what that same insert-size/read-length
// configuration can produce is reported as errs.InconsistentPairedInfo
// rather than silently treated as corroborating or refuting e. Grounded on
// PairInfoAwareErroneousEdgeRemover::InnerRemoveEdges/CheckAnyPairInfoAbsense.
func PairInfoAwareErroneousEdgeRemover[V any, E any](index contracts.PairedInfoIndex, maxLength, minNeighbourLength, insertSize, readLength int) (Policy[V, E], error) {
	if insertSize < 2*readLength {
		return Policy[V, E]{}, errs.New(errs.ConfigOutOfRange, "insert_size (%d) must be >= 2*read_length (%d)", insertSize, 2*readLength)
	}
	gap := insertSize - 2*readLength

	// shouldContainInfo reports whether a (in,e,out) triple's predicted
	// gap between mates is short enough that the library ought to have
	// produced an observation spanning it at all.
	shouldContainInfo := func(distance int) bool {
		return distance <= gap
	}
	// checkPoint validates an observation against the library geometry the
	// policy was constructed with: a predicted distance can't be negative
	// or exceed the configured insert size, and a variance can't be
	// negative.
	checkPoint := func(p contracts.Point) error {
		if p.D < 0 || p.D > float64(insertSize) || p.Variance < 0 {
			return errs.New(errs.InconsistentPairedInfo,
				"pair info point {d=%g, variance=%g} violates insert_size=%d/read_length=%d bounds",
				p.D, p.Variance, insertSize, readLength)
		}
		return nil
	}
	containsInfo := func(view *GraphView[V, E], e1, e2 graph.EdgeID, distance int) (bool, error) {
		d := float64(distance)
		for _, p := range index.GetEdgePairInfo(e1, e2) {
			if err := checkPoint(p); err != nil {
				return false, err
			}
			if d+p.Variance >= p.D && d <= p.D+p.Variance {
				return true, nil
			}
		}
		return false, nil
	}

	return Policy[V, E]{
		Name:  "pair_info_aware",
		Order: LengthAscending[V, E],
		Stop: func(view *GraphView[V, E], e graph.EdgeID) bool {
			return view.Length(e) > maxLength
		},
		Criterion: func(view *GraphView[V, E], e graph.EdgeID) (bool, error) {
			start, end := view.G.Start(e), view.G.End(e)
			incoming := view.G.Incoming(start)
			outgoing := view.G.Outgoing(end)
			for _, nb := range append(append([]graph.EdgeID{}, incoming...), outgoing...) {
				if view.Length(nb) < minNeighbourLength {
					return false, nil
				}
			}
			ecLength := view.Length(e)
			for _, in := range incoming {
				for _, out := range outgoing {
					distance := view.Length(in) + ecLength
					ok, err := containsInfo(view, in, out, distance)
					if err != nil {
						return false, err
					}
					if ok {
						continue
					}
					if shouldContainInfo(distance) {
						// An observation was expected to span this gap
						// and wasn't found; e is not corroborated here.
						return false, nil
					}
				}
			}
			return true, nil
		},
		DeleteRelated: false,
	}, nil
}
