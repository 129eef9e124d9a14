package erroneous

import "dbgassembler/core/graph"

// EdgeRemover routes edge deletion through the graph's primitive and
// decides whether to also collapse the endpoints it leaves behind.
// Grounded on ErroneousEdgeRemover::DeleteEdge in
// erroneous_connection_remover.hpp.
type EdgeRemover[V any, E any] struct {
	view *GraphView[V, E]
}

// NewEdgeRemover builds a remover over view.
func NewEdgeRemover[V any, E any](view *GraphView[V, E]) *EdgeRemover[V, E] {
	return &EdgeRemover[V, E]{view: view}
}

// DeleteEdge removes e. When deleteBetweenRelated is true and e's endpoints
// are not conjugate-linked (the edge doesn't sit on a palindromic loop
// where collapsing now could fight the symmetry invariant), both endpoints
// are compressed immediately; otherwise compression is left for the
// policy's post-pass.
func (r *EdgeRemover[V, E]) DeleteEdge(e graph.EdgeID, deleteBetweenRelated bool) (bool, error) {
	start, end := r.view.G.Start(e), r.view.G.End(e)
	if err := r.view.G.DeleteEdge(e); err != nil {
		return false, err
	}
	if deleteBetweenRelated && !r.related(start, end) {
		compressor := NewCompressor(r.view)
		if r.view.G.VertexExists(start) {
			compressor.CompressVertex(start)
		}
		if r.view.G.VertexExists(end) {
			compressor.CompressVertex(end)
		}
	}
	return true, nil
}

func (r *EdgeRemover[V, E]) related(u, w graph.VertexID) bool {
	return u == r.view.G.ConjVertex(w)
}

// Compressor collapses degree-(1,1) vertices into a single edge whose data
// is the concatenation of its two neighbours, performed by the
// DataMaster — spec.md §4.F's "compress unambiguous paths" step.
type Compressor[V any, E any] struct {
	view *GraphView[V, E]
}

// NewCompressor builds a compressor over view.
func NewCompressor[V any, E any](view *GraphView[V, E]) *Compressor[V, E] {
	return &Compressor[V, E]{view: view}
}

// CompressVertex collapses v if it has exactly one incoming and one
// outgoing edge. The two-edge path is run through CorrectMergePath first,
// so a self-conjugate edge among them gets folded onto its own mirror
// image rather than merged as though it were an ordinary edge; for a path
// with no self-conjugate edge this is a no-op. Reports whether it made a
// change.
func (c *Compressor[V, E]) CompressVertex(v graph.VertexID) bool {
	g := c.view.G
	if !g.VertexExists(v) || g.OutDegree(v) != 1 || g.InDegree(v) != 1 {
		return false
	}
	in := g.Incoming(v)[0]
	out := g.Outgoing(v)[0]
	if in == out {
		// A self-loop: nothing to fold into a longer contig.
		return false
	}

	path := g.CorrectMergePath([]graph.EdgeID{in, out})
	merged := g.EdgeData(path[0])
	for _, e := range path[1:] {
		merged = c.view.Master.Merge(merged, g.EdgeData(e))
	}
	start, end := g.Start(path[0]), g.End(path[len(path)-1])

	seen := map[graph.EdgeID]bool{}
	for _, e := range path {
		if seen[e] {
			continue
		}
		conj := g.ConjEdge(e)
		if err := g.DeleteEdge(e); err != nil {
			return false
		}
		seen[e] = true
		seen[conj] = true
	}
	if g.VertexExists(v) {
		if err := g.DeleteVertex(v); err != nil {
			return false
		}
	}
	if _, err := g.AddEdge(start, end, merged); err != nil {
		return false
	}
	return true
}

// CompressAllVertices walks every live vertex once and compresses the
// degree-(1,1) ones. Because compressing one vertex can make a neighbour
// eligible, it repeats until a full pass makes no change.
func (c *Compressor[V, E]) CompressAllVertices() bool {
	changedEver := false
	for {
		progressed := false
		for _, v := range c.view.G.Vertices() {
			if c.CompressVertex(v) {
				progressed = true
				changedEver = true
			}
		}
		if !progressed {
			return changedEver
		}
	}
}

// Cleaner deletes vertices left with neither incoming nor outgoing edges —
// spec.md §4.F's "clean disconnected singletons" step.
type Cleaner[V any, E any] struct {
	view *GraphView[V, E]
}

// NewCleaner builds a cleaner over view.
func NewCleaner[V any, E any](view *GraphView[V, E]) *Cleaner[V, E] {
	return &Cleaner[V, E]{view: view}
}

// Clean removes every orphan vertex, reporting whether it removed any.
func (c *Cleaner[V, E]) Clean() bool {
	g := c.view.G
	changed := false
	for _, v := range g.Vertices() {
		if !g.VertexExists(v) {
			continue
		}
		if g.OutDegree(v) == 0 && g.InDegree(v) == 0 {
			if err := g.DeleteVertex(v); err == nil {
				changed = true
			}
		}
	}
	return changed
}
