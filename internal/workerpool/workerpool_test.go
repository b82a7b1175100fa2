package workerpool

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"
)

func assertPartition(t *testing.T, n int, ranges []Range) {
	t.Helper()
	if n == 0 {
		if len(ranges) != 0 {
			t.Fatalf("expected no ranges for n=0, got %v", ranges)
		}
		return
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	want := 0
	for _, r := range ranges {
		if r.Start != want {
			t.Fatalf("gap or overlap at %d, ranges=%v", want, ranges)
		}
		if r.Start >= r.End {
			t.Fatalf("empty or inverted range %v", r)
		}
		want = r.End
	}
	if want != n {
		t.Fatalf("ranges cover [0,%d), want [0,%d)", want, n)
	}
}

func TestUniformBlocksCoversExactly(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 257} {
		for _, threads := range []int{1, 2, 4, 16} {
			assertPartition(t, n, UniformBlocks(n, threads))
		}
	}
}

func TestGranularityCappedCoversExactly(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 257} {
		for _, threads := range []int{1, 2, 4, 16} {
			for _, minBlock := range []int{1, 8, 256} {
				assertPartition(t, n, GranularityCapped(n, threads, minBlock))
			}
		}
	}
}

func TestGranularityCappedRespectsMinBlock(t *testing.T) {
	ranges := GranularityCapped(1000, 4, 256)
	if len(ranges) < 4 {
		t.Fatalf("expected at least ceil(1000/256)=4 blocks, got %d: %v", len(ranges), ranges)
	}
}

func TestPoolSizeCapsAtQueryCount(t *testing.T) {
	if got := PoolSize(8, 3); got != 3 {
		t.Fatalf("PoolSize(8,3) = %d, want 3", got)
	}
	if got := PoolSize(2, 100); got != 2 {
		t.Fatalf("PoolSize(2,100) = %d, want 2", got)
	}
}

func TestRunVisitsEveryRangeExactlyOnce(t *testing.T) {
	ranges := UniformBlocks(97, 5)
	var seen sync.Map
	var total atomic.Int64

	Run(ranges, 4, func(i int, r Range) {
		if _, dup := seen.LoadOrStore(i, true); dup {
			t.Errorf("range index %d visited twice", i)
		}
		total.Add(int64(r.End - r.Start))
	})

	if got := int(total.Load()); got != 97 {
		t.Fatalf("workers processed %d items, want 97", got)
	}
}
