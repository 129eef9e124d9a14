// Package contracts declares the external collaborator interfaces
// spec.md §6 lists as consumed by, but not implemented inside, the core:
// k-mer indices/mappers, paired-info lookups, read streams, and the path
// finders the topology-aware edge removers delegate to. Production
// implementations (on-disk indices, FASTQ-backed streams, distance
// estimators) live outside this module; the types here only fix the shape
// the core depends on.
package contracts

import (
	"dbgassembler/core/graph"
	"dbgassembler/core/kmer"
	"dbgassembler/core/seq"
)

// KmerIndex resolves a k-mer to the (edge, offset) it occupies in the
// graph, if any.
type KmerIndex interface {
	Contains(k kmer.Kmer) bool
	Get(k kmer.Kmer) (edge graph.EdgeID, offset int, ok bool)
}

// KmerMapper canonicalises a k-mer before lookup — e.g. substituting an
// error-corrected k-mer for the raw one read off a sequencer. The identity
// mapper (Substitute returns its input unchanged) is the default.
type KmerMapper interface {
	Substitute(k kmer.Kmer) kmer.Kmer
}

// IdentityKmerMapper is a KmerMapper that never substitutes.
type IdentityKmerMapper struct{}

func (IdentityKmerMapper) Substitute(k kmer.Kmer) kmer.Kmer { return k }

// Point is one paired-read distance observation between two edges.
type Point struct {
	D        float64 // predicted distance between the edges
	Weight   float64
	Variance float64
}

// PairedInfoIndex maps an unordered edge pair to its observed distance
// points. Read-only from the edge-removal engine's point of view.
type PairedInfoIndex interface {
	GetEdgePairInfo(e1, e2 graph.EdgeID) []Point
}

// UniquePathFinder walks from an edge in a given direction, returning a
// path whose cumulative length is guaranteed (by the collaborator) to be a
// "unique" walk — used by AdvancedTopologyChimericEdgeRemover.
type UniquePathFinder interface {
	UniquePathLength(start graph.EdgeID, forward bool) int
}

// PlausiblePathFinder is UniquePathFinder's weaker cousin: the walk only
// needs to be "plausible", not guaranteed unique.
type PlausiblePathFinder interface {
	PlausiblePathLength(start graph.EdgeID, forward bool) int
}

// SingleRead is one unpaired, already 2-bit-packed read.
type SingleRead struct {
	Sequence seq.Sequence
}

// PairedRead is two mates plus the library's expected insert distance
// between them.
type PairedRead struct {
	First, Second seq.Sequence
	Distance      int
}

// ReadStream is a blocking, pull-based source of records of type R: reset,
// check EOF, pull the next record. Exactly one worker owns a given stream
// for its whole lifetime (spec.md §4.E) — nothing here is safe for
// concurrent use by multiple goroutines.
type ReadStream[R any] interface {
	Reset()
	EOF() bool
	Next() (R, error)
}
