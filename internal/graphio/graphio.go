// Package graphio builds small in-memory conjugate graphs from plain ACGT
// strings. It owns no disk or network I/O — spec.md §1 keeps serialization
// and file formats external to the core, and this package only exists to
// give tests and the illustrative CLI a graph to point core/erroneous and
// core/mapper at without writing out a real assembler's construction phase.
package graphio

import (
	"strings"

	"dbgassembler/core/erroneous"
	"dbgassembler/core/graph"
	"dbgassembler/core/kmer"
	"dbgassembler/core/seq"
)

// EdgeData is the payload carried by every edge in a graphio-built graph: the
// edge's own sequence and an observed k-mer coverage, the two fields every
// core/erroneous policy reads through a GraphView.
type EdgeData struct {
	Seq      seq.Sequence
	Coverage float64
}

// edgeMaster is the graph.DataMaster for a Graph[kmer.Kmer, EdgeData]:
// vertices are k-mers, conjugated by reverse-complementing the k-mer itself;
// edges are conjugated by reverse-complementing their sequence; merging two
// adjacent edges concatenates their sequences and coverage-weights the
// result by length, the same rule core/erroneous.Compressor expects from any
// DataMaster it is handed.
type edgeMaster struct{}

func (edgeMaster) ConjugateVertex(k kmer.Kmer) kmer.Kmer { return k.ReverseComplement() }

func (edgeMaster) ConjugateEdge(e EdgeData) EdgeData {
	return EdgeData{Seq: e.Seq.ReverseComplement(), Coverage: e.Coverage}
}

func (edgeMaster) IsSelfConjugate(e EdgeData) bool {
	return e.Seq.Equal(e.Seq.ReverseComplement())
}

func (edgeMaster) Merge(a, b EdgeData) EdgeData {
	total := a.Seq.Len() + b.Seq.Len()
	cov := a.Coverage
	if total > 0 {
		cov = (a.Coverage*float64(a.Seq.Len()) + b.Coverage*float64(b.Seq.Len())) / float64(total)
	}
	return EdgeData{Seq: seq.Concat(a.Seq, b.Seq), Coverage: cov}
}

// NewGraph returns an empty Graph[kmer.Kmer, EdgeData] over edgeMaster.
func NewGraph() *graph.Graph[kmer.Kmer, EdgeData] {
	return graph.New[kmer.Kmer, EdgeData](edgeMaster{})
}

// Length is the core/erroneous GraphView accessor for an edge's length.
func Length(e EdgeData) int { return e.Seq.Len() }

// Coverage is the core/erroneous GraphView accessor for an edge's coverage.
func Coverage(e EdgeData) float64 { return e.Coverage }

// NewView wraps g in a core/erroneous.GraphView configured with this
// package's Length/Coverage accessors.
func NewView(g *graph.Graph[kmer.Kmer, EdgeData], k int) *erroneous.GraphView[kmer.Kmer, EdgeData] {
	return erroneous.NewGraphView(g, edgeMaster{}, Length, Coverage, k)
}

// Builder assembles a toy graph from named k-mer junctions: each AddEdge call
// names the k-mer at its start and end (creating the vertex on first use)
// and supplies the edge's own sequence, which must be at least K long.
type Builder struct {
	G        *graph.Graph[kmer.Kmer, EdgeData]
	K        int
	vertices map[string]graph.VertexID
}

// NewBuilder starts a Builder for k-mer size k.
func NewBuilder(k int) *Builder {
	return &Builder{G: NewGraph(), K: k, vertices: map[string]graph.VertexID{}}
}

// vertexFor returns the vertex for the k-length label, creating it (and
// registering its conjugate under the reverse-complement label) on first
// use. A self-reverse-complementary label collides with itself here, the
// same ambiguity core/graph's IsSelfConjugate carves out for edges;
// callers building test fixtures should avoid palindromic k-mer labels.
func (b *Builder) vertexFor(label string) (graph.VertexID, error) {
	if v, ok := b.vertices[label]; ok {
		return v, nil
	}
	km, err := kmer.FromString(label)
	if err != nil {
		return 0, err
	}
	v := b.G.AddVertex(km)
	b.vertices[label] = v
	b.vertices[km.ReverseComplement().String()] = b.G.ConjVertex(v)
	return v, nil
}

// AddEdge adds an edge from the k-mer startLabel to endLabel carrying
// sequence with the given coverage. startLabel and endLabel must each be
// exactly K characters; sequence is typically their shared contig segment,
// at least K nucleotides long.
func (b *Builder) AddEdge(startLabel, endLabel, sequence string, coverage float64) (graph.EdgeID, error) {
	s, err := seq.FromString(sequence)
	if err != nil {
		return 0, err
	}
	start, err := b.vertexFor(startLabel)
	if err != nil {
		return 0, err
	}
	end, err := b.vertexFor(endLabel)
	if err != nil {
		return 0, err
	}
	return b.G.AddEdge(start, end, EdgeData{Seq: s, Coverage: coverage})
}

// View wraps the builder's graph in a GraphView ready for core/erroneous's
// removal policies.
func (b *Builder) View() *erroneous.GraphView[kmer.Kmer, EdgeData] {
	return NewView(b.G, b.K)
}

// demoLabel builds a length-k vertex label starting with first and ending
// with last, A-padded in between, giving DemoFixture a cheap way to
// manufacture four k-mers that are pairwise distinct and never equal to
// any of their own reverse complements, for k >= 3. DemoFixture handles
// k == 2 separately: there isn't enough room between first and last to
// pad, and not every distinct-first/last combination stays clear of
// self-complementarity at that length.
func demoLabel(first, last byte, k int) string {
	return string(first) + strings.Repeat("A", k-2) + string(last)
}

// DemoFixture builds a small illustrative graph for k-mer size k (k >= 2):
// a genomic path u->mid->w flanked by unique, well-covered edges, plus a
// short low-coverage dead-end tip off of mid — the textbook erroneous
// connection a cleanup pass is meant to remove. Returned alongside the
// builder is a human-readable description of what was built, for a caller
// that wants to print it before running cleanup.
func DemoFixture(k int) (*Builder, string, error) {
	var u, mid, w, x string
	if k == 2 {
		u, mid, w, x = "AC", "CA", "AG", "TC"
	} else {
		u = demoLabel('A', 'C', k)
		mid = demoLabel('C', 'G', k)
		w = demoLabel('G', 'T', k)
		x = demoLabel('T', 'A', k)
	}

	// bridgeSeq builds a sequence of length 6k starting with from and
	// ending with to, padded with filler in between.
	bridgeSeq := func(from, to string) string {
		return from + strings.Repeat("A", 4*k) + to
	}

	b := NewBuilder(k)
	if _, err := b.AddEdge(u, mid, bridgeSeq(u, mid), 5); err != nil {
		return nil, "", err
	}
	if _, err := b.AddEdge(mid, w, bridgeSeq(mid, w), 5); err != nil {
		return nil, "", err
	}
	if _, err := b.AddEdge(mid, x, mid+x, 0.1); err != nil {
		return nil, "", err
	}

	desc := "genomic path " + u + " -> " + mid + " -> " + w +
		" (long, well-covered) plus a short low-coverage tip " + mid + " -> " + x
	return b, desc, nil
}
