package graph

import (
	"testing"

	"dbgassembler/core/errs"
)

func newTestGraph() *Graph[string, string] {
	return New[string, string](stringMaster{})
}

// Concrete scenario 4 from spec.md §8.
func TestAddVertexSymmetryAndDelete(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("AB") // conjugate("AB") = "BA" != "AB"

	if g.Size() != 2 {
		t.Fatalf("Size()=%d, want 2", g.Size())
	}
	conj := g.ConjVertex(v)
	if g.ConjVertex(conj) != v {
		t.Error("conj(conj(v)) != v")
	}
	if g.Data(v) != "AB" || g.Data(conj) != "BA" {
		t.Errorf("data(v)=%s data(conj)=%s, want AB/BA", g.Data(v), g.Data(conj))
	}

	if err := g.DeleteVertex(v); err != nil {
		t.Fatalf("DeleteVertex: %v", err)
	}
	if g.Size() != 0 {
		t.Errorf("Size() after delete = %d, want 0 (conjugate must be deleted too)", g.Size())
	}
}

func TestDeleteVertexWithEdgesFails(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("A")
	w := g.AddVertex("B")
	if _, err := g.AddEdge(v, w, "AB"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.DeleteVertex(v); !isInvariantViolation(err) {
		t.Errorf("DeleteVertex on vertex with edges: got %v, want GraphInvariantViolation", err)
	}
}

func TestAddEdgeCreatesConjugateAndRespectsInvariants(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("A")
	w := g.AddVertex("B")
	e, err := g.AddEdge(v, w, "AB")
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	conjE := g.ConjEdge(e)
	if g.Start(conjE) != g.ConjVertex(g.End(e)) {
		t.Error("start(conj(e)) != conj(end(e))")
	}
	if g.End(conjE) != g.ConjVertex(g.Start(e)) {
		t.Error("end(conj(e)) != conj(start(e))")
	}
	if g.EdgeData(conjE) != reverseString(g.EdgeData(e)) {
		t.Error("data(conj(e)) != master.conjugate(data(e))")
	}
	if g.OutDegree(v) != 1 || g.InDegree(w) != 1 {
		t.Errorf("OutDegree(v)=%d InDegree(w)=%d, want 1/1", g.OutDegree(v), g.InDegree(w))
	}
}

func TestAddEdgeUnknownVertexFails(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("A")
	if _, err := g.AddEdge(v, VertexID(999), "AB"); !isInvariantViolation(err) {
		t.Errorf("AddEdge with unknown vertex: got %v, want GraphInvariantViolation", err)
	}
}

func TestSelfConjugateEdgeHasNoTwinAndDeletesOnce(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("AA") // conjugate("AA") = "AA", self-conjugate vertex
	e, err := g.AddEdge(v, v, "ABBA")
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if g.ConjEdge(e) != e {
		t.Fatalf("self-conjugate edge should be its own conjugate")
	}

	var removed int
	g.AddHandler(HandlerFunc[string, string](func(ev Event[string, string]) {
		if ev.Type == EdgeRemoved {
			removed++
		}
	}))
	if err := g.DeleteEdge(e); err != nil {
		t.Fatalf("DeleteEdge: %v", err)
	}
	if removed != 1 {
		t.Errorf("self-conjugate edge fired %d EdgeRemoved events, want 1", removed)
	}
}

func TestDeleteEdgeIsPaired(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("A")
	w := g.AddVertex("B")
	e, _ := g.AddEdge(v, w, "AB")

	var removed []EdgeID
	g.AddHandler(HandlerFunc[string, string](func(ev Event[string, string]) {
		if ev.Type == EdgeRemoved {
			removed = append(removed, ev.Edge)
		}
	}))
	conjE := g.ConjEdge(e)
	if err := g.DeleteEdge(e); err != nil {
		t.Fatalf("DeleteEdge: %v", err)
	}
	if len(removed) != 2 || removed[0] != e || removed[1] != conjE {
		t.Errorf("removed=%v, want [%d %d]", removed, e, conjE)
	}
	if g.OutDegree(v) != 0 {
		t.Errorf("OutDegree(v) after delete = %d, want 0", g.OutDegree(v))
	}
}

func TestSplitVertexFiringOrderAndTopology(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("V")
	w1 := g.AddVertex("W1")
	w2 := g.AddVertex("W2")
	e1, _ := g.AddEdge(v, w1, "E1")
	e2, _ := g.AddEdge(v, w2, "E2")

	var order []EventType
	g.AddHandler(HandlerFunc[string, string](func(ev Event[string, string]) {
		order = append(order, ev.Type)
	}))

	newV, clones, err := g.SplitVertexEven(v, []EdgeID{e1, e2})
	if err != nil {
		t.Fatalf("SplitVertex: %v", err)
	}
	if len(order) == 0 || order[0] != VertexSplit {
		t.Fatalf("first event = %v, want VertexSplit", order)
	}
	if order[1] != VertexAdded {
		t.Fatalf("second event = %v, want VertexAdded", order[1])
	}
	for _, typ := range order[2:4] {
		if typ != EdgeAdded {
			t.Errorf("expected EdgeAdded events after the new vertex, got %v", typ)
		}
	}
	// Mirrored conjugate-side firing: another VertexSplit/VertexAdded/EdgeAdded*2.
	if len(order) != 8 {
		t.Fatalf("total events = %d, want 8 (4 primal + 4 conjugate)", len(order))
	}

	if g.OutDegree(newV) != 2 {
		t.Errorf("OutDegree(newV)=%d, want 2", g.OutDegree(newV))
	}
	if g.OutDegree(v) != 2 {
		t.Errorf("original v still keeps its edges: OutDegree(v)=%d, want 2", g.OutDegree(v))
	}
	if len(clones) != 2 {
		t.Fatalf("len(clones)=%d, want 2", len(clones))
	}
	for _, c := range clones {
		if g.Start(c.Clone) != newV {
			t.Errorf("clone of %d starts at %d, want newV %d", c.Original, g.Start(c.Clone), newV)
		}
	}
}

func TestCorrectMergePathCentresPalindrome(t *testing.T) {
	g := newTestGraph()
	// "AA" is self-conjugate under string reversal.
	v := g.AddVertex("AA")
	a, _ := g.AddEdge(v, v, "left")
	pal, _ := g.AddEdge(v, v, "AA")
	if g.ConjEdge(pal) != pal {
		t.Fatalf("expected AA to be self-conjugate")
	}

	path := []EdgeID{a, pal}
	corrected := g.CorrectMergePath(path)
	// the palindromic edge must end up centred (odd length, middle = pal).
	mid := len(corrected) / 2
	if corrected[mid] != pal {
		t.Errorf("palindromic edge not centred: %v", corrected)
	}
	if len(corrected)%2 != 1 {
		t.Errorf("corrected path length %d should be odd", len(corrected))
	}
}

func TestCorrectMergePathNoPalindromeIsUnchanged(t *testing.T) {
	g := newTestGraph()
	v := g.AddVertex("A")
	w := g.AddVertex("B")
	x := g.AddVertex("C")
	e1, _ := g.AddEdge(v, w, "AB")
	e2, _ := g.AddEdge(w, x, "BC")
	path := []EdgeID{e1, e2}
	got := g.CorrectMergePath(path)
	if len(got) != 2 || got[0] != e1 || got[1] != e2 {
		t.Errorf("CorrectMergePath changed a path with no palindrome: %v", got)
	}
}

func isInvariantViolation(err error) bool {
	return errs.IsKind(err, errs.GraphInvariantViolation)
}
