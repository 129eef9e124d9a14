// Package assembly glues the core packages into a single erroneous-edge
// cleanup pass over an already-built graph: a thin orchestration layer, not
// a pipeline stage in its own right. It owns no I/O; callers build a graph
// (typically with internal/graphio) and hand this package a view plus the
// stages to run.
package assembly

import (
	"fmt"

	"dbgassembler/core/erroneous"
	"dbgassembler/core/kmer"
	"dbgassembler/internal/graphio"
)

// Stage names one erroneous-edge removal policy to run in sequence.
type Stage struct {
	Name   string
	Policy erroneous.Policy[kmer.Kmer, graphio.EdgeData]
}

// StageResult is what one Stage did against the view.
type StageResult struct {
	Name      string
	Decisions []erroneous.Decision
	Changed   bool
}

// Result is the outcome of a full Run: one StageResult per configured
// Stage, in order.
type Result struct {
	Stages []StageResult
}

// Run executes each stage against view in order, short-circuiting on the
// first error a policy's Run returns.
func Run(view *erroneous.GraphView[kmer.Kmer, graphio.EdgeData], stages []Stage) (Result, error) {
	var result Result
	for _, st := range stages {
		decisions, changed, err := st.Policy.Run(view)
		if err != nil {
			return result, fmt.Errorf("assembly: stage %q: %w", st.Name, err)
		}
		result.Stages = append(result.Stages, StageResult{Name: st.Name, Decisions: decisions, Changed: changed})
	}
	return result, nil
}

// DefaultStages builds the standard low-coverage-then-chimeric cleanup
// cascade for a de Bruijn graph of k-mer size k: first an exhaustive
// low-coverage sweep, then a bounded chimeric-bridge sweep. maxLength and
// maxCoverage bound the low-coverage pass; maxOverlap bounds how much
// shorter than k a chimeric bridge may be.
func DefaultStages(maxLength int, maxCoverage float64, maxOverlap int) []Stage {
	return []Stage{
		{Name: "low_coverage", Policy: erroneous.LowCoverageEdgeRemover[kmer.Kmer, graphio.EdgeData](maxLength, maxCoverage)},
		{Name: "chimeric", Policy: erroneous.ChimericEdgesRemover[kmer.Kmer, graphio.EdgeData](maxOverlap)},
	}
}

// Contigs returns the sequence of every edge still live in view, in the
// view's natural order — the assembler's final output once cleanup has run.
func Contigs(view *erroneous.GraphView[kmer.Kmer, graphio.EdgeData]) []string {
	edges := view.AllEdges()
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, view.G.EdgeData(e).Seq.String())
	}
	return out
}

// Summary renders a short human-readable report of a Run, one line per
// stage plus the resulting contig count — the plain-text output
// cmd/dbgassemble prints.
func Summary(result Result, view *erroneous.GraphView[kmer.Kmer, graphio.EdgeData]) string {
	out := ""
	for _, st := range result.Stages {
		removed := 0
		for _, d := range st.Decisions {
			if !d.Kept {
				removed++
			}
		}
		out += fmt.Sprintf("stage %s: removed %d/%d edges, changed=%v\n", st.Name, removed, len(st.Decisions), st.Changed)
	}
	contigs := Contigs(view)
	out += fmt.Sprintf("%d contigs remain:\n", len(contigs))
	for _, c := range contigs {
		out += fmt.Sprintf("  %s\n", c)
	}
	return out
}
