// Command naive_search counts overlapping substring occurrences of every
// query in every reference text directly, with no index, splitting the
// query set across a granularity-capped worker pool. Only exact matching is
// supported; --errors is accepted but forced to 0.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seqmap/internal/config"
	"seqmap/internal/query"
	"seqmap/internal/reference"
	"seqmap/internal/workerpool"
)

func main() {
	var referencePath, queryPath string
	var queryCount, errorsK, threads, minBlock int

	root := &cobra.Command{
		Use:   "naive_search",
		Short: "Exact multi-threaded substring counting (no index)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(referencePath, queryPath, queryCount, threads, minBlock)
		},
	}
	root.Flags().StringVar(&referencePath, "reference", "", "Path to the reference FASTA/FASTQ file")
	root.Flags().StringVar(&queryPath, "query", "", "Path to the query FASTA/FASTQ file")
	root.Flags().IntVar(&queryCount, "query_ct", config.DefaultQueryCount, "Number of queries; duplicated if not enough")
	root.Flags().IntVar(&errorsK, "errors", config.DefaultErrors, "Accepted for interface symmetry; naive_search supports exact match only and forces this to 0")
	root.Flags().IntVar(&threads, "threads", 0, "Number of worker threads (0 = hardware parallelism)")
	root.Flags().IntVar(&minBlock, "min_block", config.DefaultMinBlock, "Minimum number of queries per block")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(referencePath, queryPath string, queryCount, threads, minBlock int) error {
	coll, err := reference.Load(referencePath)
	if err != nil {
		return errors.Wrap(err, "load reference")
	}
	if len(coll) == 0 {
		return errors.New("reference file contains no sequences")
	}

	queries, err := query.Load(queryPath)
	if err != nil {
		return errors.Wrap(err, "load queries")
	}
	if len(queries) == 0 && queryCount > 0 {
		return errors.New("query file contains no sequences")
	}
	queries = query.DuplicateToN(queries, queryCount)

	if threads <= 0 {
		threads = workerpool.DefaultThreads()
	}
	threads = workerpool.PoolSize(threads, len(queries))

	ranges := workerpool.GranularityCapped(len(queries), threads, minBlock)
	usedThreads := threads
	if usedThreads > len(ranges) {
		usedThreads = len(ranges)
	}
	if usedThreads == 0 {
		usedThreads = 1
	}

	hitsPerRange := make([]int64, len(ranges))
	t0 := time.Now()
	workerpool.Run(ranges, usedThreads, func(i int, r workerpool.Range) {
		var hits int64
		for _, q := range queries[r.Start:r.End] {
			if len(q) == 0 {
				continue
			}
			for _, t := range coll {
				hits += countOverlaps(t.Seq, q)
			}
		}
		hitsPerRange[i] = hits
	})
	var totalHits int64
	for _, h := range hitsPerRange {
		totalHits += h
	}
	elapsed := time.Since(t0)

	fmt.Fprintf(os.Stderr, "Search time: %g seconds.\n", elapsed.Seconds())
	fmt.Fprintf(os.Stderr, "queries=%d errors=0 threads=%d hits=%d\n", len(queries), usedThreads, totalHits)
	return nil
}

// countOverlaps counts occurrences of pat in text, allowing overlapping
// matches: after each match the scan resumes one byte past the match start.
func countOverlaps(text, pat []byte) int64 {
	if len(pat) == 0 || len(pat) > len(text) {
		return 0
	}
	var count int64
	pos := 0
	for {
		idx := bytes.Index(text[pos:], pat)
		if idx < 0 {
			break
		}
		count++
		pos += idx + 1
	}
	return count
}
