// Package graph implements the conjugate (double-stranded) directed
// multigraph of spec.md §4.C: every vertex and edge has a unique conjugate
// twin, and every mutation keeps both strands in lock-step. It is grounded
// on abstract_conjugate_graph.hpp's AbstractConjugateGraph, recast per
// spec.md §9's re-architecture notes as an arena of small integer handles
// instead of a cyclic pointer graph — conjugate becomes a field lookup
// rather than a pointer dereference, which also sidesteps the need for a
// garbage collector to chase the twin references.
package graph

import "dbgassembler/core/errs"

// VertexID and EdgeID are opaque handles into a Graph's arena.
type VertexID int
type EdgeID int

// DataMaster is the capability set a Graph needs from domain data: how to
// conjugate vertex/edge payloads, recognise a self-conjugate (palindromic)
// edge, and merge edge data along a compressed path. Supplied once at
// construction, per spec.md §9's "DataMaster polymorphism" note.
type DataMaster[V any, E any] interface {
	ConjugateVertex(V) V
	ConjugateEdge(E) E
	IsSelfConjugate(E) bool
	Merge(first, second E) E
}

type vertexEntry[V any] struct {
	data     V
	conj     VertexID
	outgoing []EdgeID
	alive    bool
}

type edgeEntry[E any] struct {
	data  E
	start VertexID
	end   VertexID
	conj  EdgeID
	alive bool
}

// Graph is a conjugate directed multigraph with domain payloads V on
// vertices and E on edges.
type Graph[V any, E any] struct {
	master   DataMaster[V, E]
	vertices map[VertexID]*vertexEntry[V]
	edges    map[EdgeID]*edgeEntry[E]
	nextV    VertexID
	nextE    EdgeID
	handlers []Handler[V, E]
}

// New creates an empty graph backed by master.
func New[V any, E any](master DataMaster[V, E]) *Graph[V, E] {
	return &Graph[V, E]{
		master:   master,
		vertices: make(map[VertexID]*vertexEntry[V]),
		edges:    make(map[EdgeID]*edgeEntry[E]),
	}
}

// AddHandler registers h to receive future mutation events. Handlers fire
// in subscription order.
func (g *Graph[V, E]) AddHandler(h Handler[V, E]) {
	g.handlers = append(g.handlers, h)
}

func (g *Graph[V, E]) fire(e Event[V, E]) {
	for _, h := range g.handlers {
		h.Handle(e)
	}
}

// Size returns the number of live vertices (both strands counted).
func (g *Graph[V, E]) Size() int { return len(g.vertices) }

// Data returns a vertex's payload.
func (g *Graph[V, E]) Data(v VertexID) V { return g.mustVertex(v).data }

// EdgeData returns an edge's payload.
func (g *Graph[V, E]) EdgeData(e EdgeID) E { return g.mustEdge(e).data }

// ConjVertex returns v's conjugate.
func (g *Graph[V, E]) ConjVertex(v VertexID) VertexID { return g.mustVertex(v).conj }

// ConjEdge returns e's conjugate (e itself if e is self-conjugate).
func (g *Graph[V, E]) ConjEdge(e EdgeID) EdgeID { return g.mustEdge(e).conj }

// Start returns the vertex an edge starts at.
func (g *Graph[V, E]) Start(e EdgeID) VertexID { return g.mustEdge(e).start }

// End returns the vertex an edge ends at.
func (g *Graph[V, E]) End(e EdgeID) VertexID { return g.mustEdge(e).end }

// Outgoing returns v's outgoing edges.
func (g *Graph[V, E]) Outgoing(v VertexID) []EdgeID {
	src := g.mustVertex(v).outgoing
	out := make([]EdgeID, len(src))
	copy(out, src)
	return out
}

// Incoming returns v's incoming edges, computed as the conjugates of
// conj(v)'s outgoing edges (spec.md §3: a vertex only stores its outgoing
// list; incoming is always read through the conjugate view).
func (g *Graph[V, E]) Incoming(v VertexID) []EdgeID {
	conjOut := g.mustVertex(g.mustVertex(v).conj).outgoing
	out := make([]EdgeID, len(conjOut))
	for i, e := range conjOut {
		out[i] = g.mustEdge(e).conj
	}
	return out
}

// OutDegree returns len(Outgoing(v)) without allocating.
func (g *Graph[V, E]) OutDegree(v VertexID) int { return len(g.mustVertex(v).outgoing) }

// InDegree returns len(Incoming(v)) without allocating.
func (g *Graph[V, E]) InDegree(v VertexID) int {
	return len(g.mustVertex(g.mustVertex(v).conj).outgoing)
}

// EdgesBetween returns every edge from u directly to w.
func (g *Graph[V, E]) EdgesBetween(u, w VertexID) []EdgeID {
	var out []EdgeID
	for _, e := range g.mustVertex(u).outgoing {
		if g.mustEdge(e).end == w {
			out = append(out, e)
		}
	}
	return out
}

// Vertices returns a snapshot of every live vertex ID. Order is
// unspecified.
func (g *Graph[V, E]) Vertices() []VertexID {
	out := make([]VertexID, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	return out
}

// Edges returns a snapshot of every live edge ID. Order is unspecified.
func (g *Graph[V, E]) Edges() []EdgeID {
	out := make([]EdgeID, 0, len(g.edges))
	for id := range g.edges {
		out = append(out, id)
	}
	return out
}

// VertexExists reports whether v is still live.
func (g *Graph[V, E]) VertexExists(v VertexID) bool {
	e, ok := g.vertices[v]
	return ok && e.alive
}

// EdgeExists reports whether e is still live.
func (g *Graph[V, E]) EdgeExists(e EdgeID) bool {
	entry, ok := g.edges[e]
	return ok && entry.alive
}

func (g *Graph[V, E]) mustVertex(v VertexID) *vertexEntry[V] {
	entry, ok := g.vertices[v]
	if !ok || !entry.alive {
		panic("graph: unknown vertex")
	}
	return entry
}

func (g *Graph[V, E]) mustEdge(e EdgeID) *edgeEntry[E] {
	entry, ok := g.edges[e]
	if !ok || !entry.alive {
		panic("graph: unknown edge")
	}
	return entry
}

// AddVertex creates v with data and its conjugate v' with
// master.ConjugateVertex(data), firing VertexAdded(v) then VertexAdded(v').
func (g *Graph[V, E]) AddVertex(data V) VertexID {
	v, vc := g.hiddenAddVertex(data, g.master.ConjugateVertex(data))
	g.fire(Event[V, E]{Type: VertexAdded, Vertex: v, VertexData: data})
	g.fire(Event[V, E]{Type: VertexAdded, Vertex: vc, VertexData: g.vertices[vc].data})
	return v
}

func (g *Graph[V, E]) hiddenAddVertex(data1, data2 V) (VertexID, VertexID) {
	v1, v2 := g.nextV, g.nextV+1
	g.nextV += 2
	g.vertices[v1] = &vertexEntry[V]{data: data1, conj: v2, alive: true}
	g.vertices[v2] = &vertexEntry[V]{data: data2, conj: v1, alive: true}
	return v1, v2
}

// DeleteVertex removes v and its conjugate. Requires v and conj(v) to have
// no outgoing or incoming edges; otherwise fails with GraphInvariantViolation.
func (g *Graph[V, E]) DeleteVertex(v VertexID) error {
	entry := g.mustVertex(v)
	conjID := entry.conj
	if g.OutDegree(v) > 0 || g.InDegree(v) > 0 {
		return errs.New(errs.GraphInvariantViolation, "delete_vertex: vertex %d still has edges", v)
	}
	entry.alive = false
	delete(g.vertices, v)
	conjEntry := g.vertices[conjID]
	conjEntry.alive = false
	delete(g.vertices, conjID)
	g.fire(Event[V, E]{Type: VertexRemoved, Vertex: v, VertexData: entry.data})
	g.fire(Event[V, E]{Type: VertexRemoved, Vertex: conjID, VertexData: conjEntry.data})
	return nil
}

// AddEdge creates e=(u->w, data) and, unless data is self-conjugate, its
// conjugate e'=(conj(w)->conj(u), master.ConjugateEdge(data)). Fires
// EdgeAdded(e) then EdgeAdded(e') — only once total for a self-conjugate
// edge.
func (g *Graph[V, E]) AddEdge(u, w VertexID, data E) (EdgeID, error) {
	if _, ok := g.vertices[u]; !ok {
		return 0, errs.New(errs.GraphInvariantViolation, "add_edge: unknown start vertex %d", u)
	}
	if _, ok := g.vertices[w]; !ok {
		return 0, errs.New(errs.GraphInvariantViolation, "add_edge: unknown end vertex %d", w)
	}
	e := g.hiddenAddSingleEdge(u, w, data)
	if g.master.IsSelfConjugate(data) {
		g.edges[e].conj = e
		g.fire(Event[V, E]{Type: EdgeAdded, Edge: e, EdgeData: data})
		return e, nil
	}
	rcData := g.master.ConjugateEdge(data)
	rc := g.hiddenAddSingleEdge(g.mustVertex(w).conj, g.mustVertex(u).conj, rcData)
	g.edges[e].conj = rc
	g.edges[rc].conj = e
	g.fire(Event[V, E]{Type: EdgeAdded, Edge: e, EdgeData: data})
	g.fire(Event[V, E]{Type: EdgeAdded, Edge: rc, EdgeData: rcData})
	return e, nil
}

func (g *Graph[V, E]) hiddenAddSingleEdge(u, w VertexID, data E) EdgeID {
	id := g.nextE
	g.nextE++
	g.edges[id] = &edgeEntry[E]{data: data, start: u, end: w, alive: true}
	g.vertices[u].outgoing = append(g.vertices[u].outgoing, id)
	return id
}

// DeleteEdge removes e from its start's outgoing list and conj(e) from
// conj(start)'s, firing EdgeRemoved once per distinct edge (a self-conjugate
// edge fires once, not twice).
func (g *Graph[V, E]) DeleteEdge(e EdgeID) error {
	entry := g.mustEdge(e)
	rc := entry.conj
	g.hiddenRemoveSingleEdge(e)
	g.fire(Event[V, E]{Type: EdgeRemoved, Edge: e, EdgeData: entry.data})
	if rc != e {
		rcEntry := g.edges[rc]
		g.hiddenRemoveSingleEdge(rc)
		g.fire(Event[V, E]{Type: EdgeRemoved, Edge: rc, EdgeData: rcEntry.data})
	}
	return nil
}

func (g *Graph[V, E]) hiddenRemoveSingleEdge(e EdgeID) {
	entry := g.edges[e]
	start := g.vertices[entry.start]
	for i, cand := range start.outgoing {
		if cand == e {
			start.outgoing = append(start.outgoing[:i], start.outgoing[i+1:]...)
			break
		}
	}
	entry.alive = false
	delete(g.edges, e)
}

// EdgeClone pairs a splitting edge with the fresh re-routed clone created on
// its behalf.
type EdgeClone struct {
	Original EdgeID
	Clone    EdgeID
}

// SplitVertex creates a fresh vertex v_new carrying the same VertexData as
// v, and for each edge in splitting re-routes a clone so every occurrence of
// v at either end becomes v_new. coefficients must have the same length as
// splitting (pass all-1s via SplitVertexEven when no weighted distribution
// is needed); it is forwarded verbatim to handlers and otherwise unused by
// the graph itself.
//
// Firing order (per spec.md §4.C): VertexSplit on the primal side BEFORE any
// VertexAdded/EdgeAdded, then VertexAdded(v_new), then EdgeAdded for each
// clone; then the same three steps mirrored on the conjugate side. Handlers
// that maintain derived state (e.g. coverage) rely on seeing the
// pre-mutation topology in the VertexSplit event before the new entities
// exist.
func (g *Graph[V, E]) SplitVertex(v VertexID, splitting []EdgeID, coefficients []float64) (VertexID, []EdgeClone, error) {
	if len(coefficients) != len(splitting) {
		return 0, nil, errs.New(errs.GraphInvariantViolation, "split_vertex: %d coefficients for %d edges", len(coefficients), len(splitting))
	}
	vEntry := g.mustVertex(v)
	for _, e := range splitting {
		if entry := g.mustEdge(e); entry.start != v && entry.end != v {
			return 0, nil, errs.New(errs.GraphInvariantViolation, "split_vertex: edge %d does not touch vertex %d", e, v)
		}
	}
	newV, newVConj := g.hiddenAddVertex(vEntry.data, g.vertices[vEntry.conj].data)

	clones := make([]EdgeClone, len(splitting))
	for i, orig := range splitting {
		origEntry := g.mustEdge(orig)
		start, end := origEntry.start, origEntry.end
		if start == v {
			start = newV
		}
		if end == v {
			end = newV
		}
		cloneID := g.hiddenAddSingleEdge(start, end, origEntry.data)
		clones[i] = EdgeClone{Original: orig, Clone: cloneID}
	}
	// Conjugate clone edges mirror the primal ones without a second
	// AddEdge call: each clone here already stands in for the conjugate
	// of a clone that will be created on the mirrored pass below, wired
	// up once both passes have run.
	primalClonedIDs := make([]EdgeID, len(clones))
	for i, c := range clones {
		primalClonedIDs[i] = c.Clone
	}
	g.fire(Event[V, E]{
		Type: VertexSplit, NewVertex: newV, OldVertex: v,
		EdgeClones: primalClonedIDs, Coefficients: coefficients,
	})
	g.fire(Event[V, E]{Type: VertexAdded, Vertex: newV, VertexData: vEntry.data})
	for _, c := range clones {
		g.fire(Event[V, E]{Type: EdgeAdded, Edge: c.Clone, EdgeData: g.edges[c.Clone].data})
	}

	conjV := vEntry.conj
	conjClones := make([]EdgeClone, len(splitting))
	for i, orig := range splitting {
		origConj := g.mustEdge(orig).conj
		conjEntry := g.mustEdge(origConj)
		start, end := conjEntry.start, conjEntry.end
		if start == conjV {
			start = newVConj
		}
		if end == conjV {
			end = newVConj
		}
		cloneID := g.hiddenAddSingleEdge(start, end, conjEntry.data)
		conjClones[i] = EdgeClone{Original: origConj, Clone: cloneID}
		g.edges[clones[i].Clone].conj = cloneID
		g.edges[cloneID].conj = clones[i].Clone
	}
	conjClonedIDs := make([]EdgeID, len(conjClones))
	for i, c := range conjClones {
		conjClonedIDs[i] = c.Clone
	}
	g.fire(Event[V, E]{
		Type: VertexSplit, NewVertex: newVConj, OldVertex: conjV,
		EdgeClones: conjClonedIDs, Coefficients: coefficients,
	})
	g.fire(Event[V, E]{Type: VertexAdded, Vertex: newVConj, VertexData: g.vertices[newVConj].data})
	for _, c := range conjClones {
		g.fire(Event[V, E]{Type: EdgeAdded, Edge: c.Clone, EdgeData: g.edges[c.Clone].data})
	}

	return newV, clones, nil
}

// SplitVertexEven is SplitVertex with every coefficient set to 1, matching
// the original's no-weights overload.
func (g *Graph[V, E]) SplitVertexEven(v VertexID, splitting []EdgeID) (VertexID, []EdgeClone, error) {
	coeffs := make([]float64, len(splitting))
	for i := range coeffs {
		coeffs[i] = 1
	}
	return g.SplitVertex(v, splitting, coeffs)
}

// CorrectMergePath folds a contraction path so that a self-conjugate
// (palindromic) edge, if any occurs in it, ends up centred, with the
// palindromic image of each side materialised — this keeps a subsequent
// merge from producing a structure that violates the graph's symmetry
// invariant. Paths with no self-conjugate edge are returned unchanged.
func (g *Graph[V, E]) CorrectMergePath(path []EdgeID) []EdgeID {
	for i, e := range path {
		if g.ConjEdge(e) != e {
			continue
		}
		var folded []EdgeID
		pivot := i
		if i < len(path)-1-i {
			for j := len(path) - 1; j >= 0; j-- {
				folded = append(folded, g.ConjEdge(path[j]))
			}
			pivot = len(path) - 1 - i
		} else {
			folded = append(folded, path...)
		}
		size := 2*pivot + 1
		for j := len(folded); j < size; j++ {
			folded = append(folded, g.ConjEdge(folded[size-1-j]))
		}
		return folded
	}
	return path
}
