package pairedinfo

import (
	"testing"

	"dbgassembler/core/contracts"
	"dbgassembler/core/graph"
)

func TestGetEdgePairInfoIsOrderIndependent(t *testing.T) {
	ix := New()
	ix.Add(1, 2, contracts.Point{D: 500, Weight: 1, Variance: 10})

	a := ix.GetEdgePairInfo(1, 2)
	b := ix.GetEdgePairInfo(2, 1)
	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Errorf("GetEdgePairInfo(1,2)=%v GetEdgePairInfo(2,1)=%v, want identical", a, b)
	}
}

func TestGetEdgePairInfoAccumulates(t *testing.T) {
	ix := New()
	ix.Add(1, 2, contracts.Point{D: 500})
	ix.Add(2, 1, contracts.Point{D: 510})
	got := ix.GetEdgePairInfo(1, 2)
	if len(got) != 2 {
		t.Fatalf("len(GetEdgePairInfo)=%d, want 2", len(got))
	}
}

func TestGetEdgePairInfoMissingPairIsEmpty(t *testing.T) {
	ix := New()
	if got := ix.GetEdgePairInfo(graph.EdgeID(1), graph.EdgeID(2)); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
