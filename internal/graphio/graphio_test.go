package graphio

import (
	"testing"

	"dbgassembler/core/seq"
)

func TestBuilderAddEdgeSharesJunctionVertices(t *testing.T) {
	b := NewBuilder(4)
	e1, err := b.AddEdge("AAAC", "CGTT", "ACGTT", 10)
	if err != nil {
		t.Fatalf("AddEdge 1: %v", err)
	}
	e2, err := b.AddEdge("CGTT", "GTTA", "CGTTA", 10)
	if err != nil {
		t.Fatalf("AddEdge 2: %v", err)
	}
	if b.G.End(e1) != b.G.Start(e2) {
		t.Errorf("shared junction CGTT should map to the same vertex on both edges")
	}
	if b.G.Size() != 6 {
		t.Errorf("Size() = %d, want 6 (3 junctions x 2 strands)", b.G.Size())
	}
}

func TestBuilderConjugateEdgeIsReverseComplement(t *testing.T) {
	b := NewBuilder(4)
	e1, err := b.AddEdge("AAAC", "CGTT", "ACGTT", 7.5)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	rc := b.G.ConjEdge(e1)
	got := b.G.EdgeData(rc).Seq.String()
	if got != "AACGT" {
		t.Errorf("conjugate sequence = %q, want AACGT", got)
	}
	if b.G.EdgeData(rc).Coverage != 7.5 {
		t.Errorf("conjugate coverage = %v, want 7.5", b.G.EdgeData(rc).Coverage)
	}
}

func TestMergeConcatenatesAndWeightsCoverage(t *testing.T) {
	m := edgeMaster{}
	a := EdgeData{Seq: seq.MustFromString("AAAC"), Coverage: 10}
	bb := EdgeData{Seq: seq.MustFromString("TTAAGG"), Coverage: 4}
	merged := m.Merge(a, bb)
	if merged.Seq.String() != "AAACTTAAGG" {
		t.Errorf("Merge seq = %q, want AAACTTAAGG", merged.Seq.String())
	}
	want := (10.0*4 + 4.0*6) / 10.0
	if merged.Coverage != want {
		t.Errorf("Merge coverage = %v, want %v", merged.Coverage, want)
	}
}

func TestDemoFixtureBuildsForVariousK(t *testing.T) {
	for _, k := range []int{2, 3, 4, 5, 6} {
		b, desc, err := DemoFixture(k)
		if err != nil {
			t.Fatalf("DemoFixture(%d): %v", k, err)
		}
		if desc == "" {
			t.Errorf("DemoFixture(%d) returned empty description", k)
		}
		if len(b.G.Edges()) != 6 {
			t.Errorf("DemoFixture(%d): %d live edges, want 6 (3 edges x 2 strands)", k, len(b.G.Edges()))
		}
		if len(b.G.Vertices()) != 8 {
			t.Errorf("DemoFixture(%d): %d live vertices, want 8 (4 junctions x 2 strands)", k, len(b.G.Vertices()))
		}
	}
}

func TestViewLengthAndCoverageAccessors(t *testing.T) {
	b := NewBuilder(4)
	e1, err := b.AddEdge("AAAC", "CGTT", "ACGTT", 3)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	view := b.View()
	if view.Length(e1) != 5 {
		t.Errorf("Length = %d, want 5", view.Length(e1))
	}
	if view.Coverage(e1) != 3 {
		t.Errorf("Coverage = %v, want 3", view.Coverage(e1))
	}
}
