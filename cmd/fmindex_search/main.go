// Command fmindex_search answers direct k-substitution queries against an
// FM-index built by fmindex_construct.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seqmap/internal/config"
	"seqmap/internal/fmindex"
	"seqmap/internal/query"
	"seqmap/internal/workerpool"
)

func main() {
	var indexPath, queryPath string
	var queryCount, errorsK int

	root := &cobra.Command{
		Use:   "fmindex_search",
		Short: "Direct k-substitution FM-index search",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(indexPath, queryPath, queryCount, errorsK)
		},
	}
	root.Flags().StringVar(&indexPath, "index", "", "Path to the FM-index")
	root.Flags().StringVar(&queryPath, "query", "", "Path to the query FASTA/FASTQ file")
	root.Flags().IntVar(&queryCount, "query_ct", config.DefaultQueryCount, "Number of queries; duplicated if not enough")
	root.Flags().IntVar(&errorsK, "errors", config.DefaultErrors, "Allowed substitutions (Hamming distance)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(indexPath, queryPath string, queryCount, errorsK int) error {
	idx, err := fmindex.Load(indexPath)
	if err != nil {
		return errors.Wrap(err, "load fm-index")
	}

	queries, err := query.Load(queryPath)
	if err != nil {
		return errors.Wrap(err, "load queries")
	}
	if len(queries) == 0 && queryCount > 0 {
		return errors.New("query file contains no sequences")
	}
	queries = query.DuplicateToN(queries, queryCount)

	threads := workerpool.PoolSize(workerpool.DefaultThreads(), len(queries))
	ranges := workerpool.UniformBlocks(len(queries), threads)

	var totalHits int64
	hitsPerRange := make([]int64, len(ranges))
	var firstErr error
	t0 := time.Now()
	workerpool.Run(ranges, threads, func(i int, r workerpool.Range) {
		var hits int64
		for _, q := range queries[r.Start:r.End] {
			if len(q) == 0 {
				continue
			}
			occs, err := idx.SearchKSubst(q, errorsK)
			if err != nil {
				firstErr = err
				return
			}
			hits += int64(len(occs))
		}
		hitsPerRange[i] = hits
	})
	if firstErr != nil {
		return errors.Wrap(firstErr, "search")
	}
	for _, h := range hitsPerRange {
		totalHits += h
	}
	elapsed := time.Since(t0)

	fmt.Fprintf(os.Stderr, "Search time: %g seconds.\n", elapsed.Seconds())
	fmt.Fprintf(os.Stderr, "queries=%d errors=%d hits=%d\n", len(queries), errorsK, totalHits)
	return nil
}
