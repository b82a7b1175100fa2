// Command suffixarray_search answers exact-match queries against a suffix
// array built by suffixarray_construct, counting total occurrences across
// all queries (after doubling-duplication to --query_ct).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seqmap/internal/config"
	"seqmap/internal/query"
	"seqmap/internal/reference"
	"seqmap/internal/sacore"
	"seqmap/internal/workerpool"
)

func main() {
	var referencePath, indexPath, queryPath string
	var queryCount int

	root := &cobra.Command{
		Use:   "suffixarray_search",
		Short: "Exact suffix-array search over a reference collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(referencePath, indexPath, queryPath, queryCount)
		},
	}
	root.Flags().StringVar(&referencePath, "reference", "", "Path to the reference FASTA/FASTQ file")
	root.Flags().StringVar(&indexPath, "index", "", "Path to the suffix array index")
	root.Flags().StringVar(&queryPath, "query", "", "Path to the query FASTA/FASTQ file")
	root.Flags().IntVar(&queryCount, "query_ct", config.DefaultQueryCount, "Number of queries; duplicated if not enough")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(referencePath, indexPath, queryPath string, queryCount int) error {
	coll, err := reference.Load(referencePath)
	if err != nil {
		return errors.Wrap(err, "load reference")
	}
	if len(coll) == 0 {
		return errors.New("reference file contains no sequences")
	}
	con, err := coll.Concat()
	if err != nil {
		return errors.Wrap(err, "concatenate reference")
	}

	sa, err := sacore.Read(indexPath)
	if err != nil {
		return errors.Wrap(err, "read suffix array index")
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
	t0 := time.Now()
	hitsPerRange := make([]int64, len(ranges))
	workerpool.Run(ranges, threads, func(i int, r workerpool.Range) {
		var hits int64
		for _, q := range queries[r.Start:r.End] {
			if len(q) == 0 {
				continue
			}
			hits += int64(sacore.Count(con.S, sa, q))
		}
		hitsPerRange[i] = hits
	})
	for _, h := range hitsPerRange {
		totalHits += h
	}
	elapsed := time.Since(t0)

	fmt.Fprintf(os.Stderr, "Search time: %g seconds.\n", elapsed.Seconds())
	fmt.Fprintf(os.Stderr, "queries=%d hits=%d\n", len(queries), totalHits)
	return nil
}
