// Package mapper implements the read mapper of spec.md §4.D: it slides
// (K+1)-mers over a Sequence and resolves each through a KmerIndex/KmerMapper
// pair into an (edge, offset) anchor, merging consecutive same-edge anchors
// into ranges and dropping unanchored regions.
package mapper

import (
	"dbgassembler/core/contracts"
	"dbgassembler/core/graph"
	"dbgassembler/core/kmer"
	"dbgassembler/core/nucl"
	"dbgassembler/core/seq"
)

// EdgeRange is one (edge, range-on-edge) segment of a MappingPath. Start
// and End are offsets into the edge, End exclusive, and monotone within a
// single edge's run.
type EdgeRange struct {
	Edge  graph.EdgeID
	Start int
	End   int
}

// MappingPath is the ordered alignment of a read to graph edges.
type MappingPath struct {
	Ranges []EdgeRange
}

// MapSequence maps s onto the graph by sliding (k+1)-mers across it,
// substituting each through km before the index lookup, and merging
// consecutive hits on the same edge into a single range. A k-mer with no
// entry in index is a MappingMiss: it contributes nothing and does not
// abort the mapping.
func MapSequence(s seq.Sequence, k int, index contracts.KmerIndex, km contracts.KmerMapper) MappingPath {
	kmerLen := k + 1
	var path MappingPath
	if s.Len() < kmerLen {
		return path
	}

	for i := 0; i+kmerLen <= s.Len(); i++ {
		base := i
		x := kmer.FromDigits(kmerLen, func(p int) nucl.Nucleotide {
			return s.At(base + p)
		})
		canon := km.Substitute(x)
		edge, offset, ok := index.Get(canon)
		if !ok {
			continue
		}
		appendAnchor(&path, edge, offset)
	}
	return path
}

func appendAnchor(path *MappingPath, edge graph.EdgeID, offset int) {
	n := len(path.Ranges)
	if n > 0 {
		last := &path.Ranges[n-1]
		if last.Edge == edge && last.End == offset {
			last.End = offset + 1
			return
		}
	}
	path.Ranges = append(path.Ranges, EdgeRange{Edge: edge, Start: offset, End: offset + 1})
}
