// Package workerpool splits a query set into contiguous blocks and runs one
// worker goroutine per block (SPEC_FULL.md §5). Both partitioning strategies
// named by spec.md §5 are provided: UniformBlocks and GranularityCapped, the
// latter ported from original_source/src/naive_search.cpp's chunk_ranges.
// The fan-out/join itself follows the token-channel + sync.WaitGroup pattern
// used by other_examples/shenwei356-LexicMap__search.go.
package workerpool

import (
	"runtime"
	"sync"
)

// Range is a contiguous, half-open block of query indices [Start, End).
type Range struct {
	Start, End int
}

// DefaultThreads returns the hardware parallelism, or 1 if unknown.
func DefaultThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// UniformBlocks splits n items into ceil(n/threads) sized contiguous blocks,
// one per worker: worker t owns [t*block, min(n, (t+1)*block)).
func UniformBlocks(n, threads int) []Range {
	if n == 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}
	block := ceilDiv(n, threads)
	ranges := make([]Range, 0, threads)
	for b := 0; b < n; b += block {
		e := b + block
		if e > n {
			e = n
		}
		ranges = append(ranges, Range{Start: b, End: e})
	}
	return ranges
}

// GranularityCapped splits n items into
// blocks = max(min(threads, n), ceil(n/min_block)) contiguous blocks, each of
// size ceil(n/blocks). Ported from naive_search.cpp's chunk_ranges.
func GranularityCapped(n, threads, minBlock int) []Range {
	if n == 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}
	if minBlock < 1 {
		minBlock = 1
	}

	minBlocks := threads
	if n < minBlocks {
		minBlocks = n
	}
	blocksByMinBlock := ceilDiv(n, minBlock)
	blocks := minBlocks
	if blocksByMinBlock > blocks {
		blocks = blocksByMinBlock
	}
	if blocks > n {
		blocks = n
	}

	blockSize := ceilDiv(n, blocks)
	ranges := make([]Range, 0, blocks)
	for b := 0; b < n; b += blockSize {
		e := b + blockSize
		if e > n {
			e = n
		}
		ranges = append(ranges, Range{Start: b, End: e})
	}
	return ranges
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Run dispatches one goroutine per range in ranges, bounding concurrency to
// threads in flight at a time, calling work(rangeIndex, r) in each, and
// blocking until every range has completed. The pool size is implicitly
// capped at min(threads, len(ranges)) by the token channel's capacity and the
// number of ranges actually produced.
func Run(ranges []Range, threads int, work func(rangeIndex int, r Range)) {
	if len(ranges) == 0 {
		return
	}
	if threads < 1 {
		threads = 1
	}
	if threads > len(ranges) {
		threads = len(ranges)
	}

	var wg sync.WaitGroup
	tokens := make(chan struct{}, threads)

	for i, r := range ranges {
		tokens <- struct{}{}
		wg.Add(1)
		go func(i int, r Range) {
			defer func() {
				<-tokens
				wg.Done()
			}()
			work(i, r)
		}(i, r)
	}
	wg.Wait()
}

// PoolSize caps a requested thread count at the number of queries to
// process, per spec.md §5: "The pool size is capped at
// min(requested, number_of_queries)."
func PoolSize(requested, numQueries int) int {
	if requested < 1 {
		requested = 1
	}
	if numQueries < requested {
		return numQueries
	}
	return requested
}
