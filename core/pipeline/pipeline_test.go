package pipeline

import (
	"context"
	"sync"
	"testing"

	"dbgassembler/core/contracts"
	"dbgassembler/core/graph"
	"dbgassembler/core/kmer"
	"dbgassembler/core/mapper"
	"dbgassembler/core/seq"
)

// sliceStream is a ReadStream over an in-memory slice, exclusively owned by
// one worker, matching spec.md §4.E's "no cross-thread reads on one
// stream" requirement.
type sliceStream[R any] struct {
	items []R
	pos   int
}

func (s *sliceStream[R]) Reset()    { s.pos = 0 }
func (s *sliceStream[R]) EOF() bool { return s.pos >= len(s.items) }
func (s *sliceStream[R]) Next() (R, error) {
	r := s.items[s.pos]
	s.pos++
	return r, nil
}

// recordingListener appends every dispatched event to a single shared,
// mutex-protected log — used to check FIFO subscription order and the
// paired/single dispatch order from spec.md §4.E.
type recordingListener struct {
	name string
	mu   *sync.Mutex
	log  *[]string
}

func (l recordingListener) StartProcessLibrary(threads int) {
	l.append("start")
}
func (l recordingListener) MergeBuffer(threadIdx int) { l.append("merge") }
func (l recordingListener) StopProcessLibrary()       { l.append("stop") }
func (l recordingListener) ProcessSingle(threadIdx int, path mapper.MappingPath) {
	l.append("single")
}
func (l recordingListener) ProcessPaired(threadIdx int, p1, p2 mapper.MappingPath, distance int) {
	l.append("paired")
}

func (l recordingListener) append(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.log = append(*l.log, l.name+":"+event)
}

func TestProcessSingleLibraryDispatchesAndMerges(t *testing.T) {
	var mu sync.Mutex
	var log []string
	n := NewNotifier()
	n.Subscribe(0, recordingListener{name: "A", mu: &mu, log: &log})
	n.Subscribe(0, recordingListener{name: "B", mu: &mu, log: &log})

	stream := &sliceStream[contracts.SingleRead]{items: []contracts.SingleRead{
		{Sequence: seq.MustFromString("ACGT")},
	}}
	streams := []contracts.ReadStream[contracts.SingleRead]{stream}

	err := ProcessSingleLibrary(context.Background(), n, 0, 3, streams, fakeIndex{}, contracts.IdentityKmerMapper{})
	if err != nil {
		t.Fatalf("ProcessSingleLibrary: %v", err)
	}

	want := []string{"A:start", "B:start", "A:single", "B:single", "A:merge", "B:merge", "A:stop", "B:stop"}
	if len(log) != len(want) {
		t.Fatalf("log=%v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d]=%s, want %s (full log %v)", i, log[i], want[i], log)
		}
	}
}

func TestProcessPairedLibraryDispatchOrder(t *testing.T) {
	var mu sync.Mutex
	var log []string
	n := NewNotifier()
	n.Subscribe(0, recordingListener{name: "A", mu: &mu, log: &log})

	stream := &sliceStream[contracts.PairedRead]{items: []contracts.PairedRead{
		{First: seq.MustFromString("ACGT"), Second: seq.MustFromString("TTTT"), Distance: 200},
	}}
	streams := []contracts.ReadStream[contracts.PairedRead]{stream}

	err := ProcessPairedLibrary(context.Background(), n, 0, 3, streams, fakeIndex{}, contracts.IdentityKmerMapper{})
	if err != nil {
		t.Fatalf("ProcessPairedLibrary: %v", err)
	}

	want := []string{"A:start", "A:paired", "A:single", "A:single", "A:merge", "A:stop"}
	if len(log) != len(want) {
		t.Fatalf("log=%v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d]=%s, want %s", i, log[i], want[i])
		}
	}
}

// countingListener counts mapping calls per thread into its own slice slot
// (safe for concurrent writes to distinct indices) and only folds them into
// the shared total inside MergeBuffer, under the pipeline's own critical
// section — exercising the "aggregated state is independent of thread
// count" law (spec.md §8).
type countingListener struct {
	total  *int
	perThr []int
}

func (c countingListener) StartProcessLibrary(int) {}
func (c countingListener) StopProcessLibrary()     {}
func (c countingListener) MergeBuffer(threadIdx int) {
	*c.total += c.perThr[threadIdx]
	c.perThr[threadIdx] = 0
}
func (c countingListener) ProcessSingle(threadIdx int, _ mapper.MappingPath) {
	c.perThr[threadIdx]++
}
func (c countingListener) ProcessPaired(int, mapper.MappingPath, mapper.MappingPath, int) {}

func TestPipelineAggregateIndependentOfThreadCount(t *testing.T) {
	reads := func(n int) []contracts.SingleRead {
		out := make([]contracts.SingleRead, n)
		for i := range out {
			out[i] = contracts.SingleRead{Sequence: seq.MustFromString("ACGT")}
		}
		return out
	}

	run := func(threadCounts int, recordsPerStream int) int {
		n := NewNotifier()
		total := 0
		n.Subscribe(0, countingListener{total: &total, perThr: make([]int, threadCounts)})

		streams := make([]contracts.ReadStream[contracts.SingleRead], threadCounts)
		for i := range streams {
			streams[i] = &sliceStream[contracts.SingleRead]{items: reads(recordsPerStream)}
		}
		if err := ProcessSingleLibrary(context.Background(), n, 0, 3, streams, fakeIndex{}, contracts.IdentityKmerMapper{}); err != nil {
			t.Fatalf("ProcessSingleLibrary: %v", err)
		}
		return total
	}

	if got, want := run(1, 12), 12; got != want {
		t.Errorf("1 thread total=%d, want %d", got, want)
	}
	if got, want := run(4, 3), 12; got != want {
		t.Errorf("4 thread total=%d, want %d", got, want)
	}
}

type fakeIndex struct{}

func (fakeIndex) Contains(k kmer.Kmer) bool                 { return false }
func (fakeIndex) Get(k kmer.Kmer) (graph.EdgeID, int, bool) { return 0, 0, false }
