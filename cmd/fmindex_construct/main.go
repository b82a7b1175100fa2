// Command fmindex_construct builds an FM-index over a reference collection
// and writes it to disk as the gob blob internal/fmindex/file.go consumes.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seqmap/internal/fmindex"
	"seqmap/internal/reference"
)

func main() {
	var referencePath, indexPath string

	root := &cobra.Command{
		Use:   "fmindex_construct",
		Short: "Build an FM-index over a reference collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(referencePath, indexPath)
		},
	}
	root.Flags().StringVar(&referencePath, "reference", "", "Path to the reference FASTA/FASTQ file")
	root.Flags().StringVar(&indexPath, "index", "", "Path to write the FM-index")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(referencePath, indexPath string) error {
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

	t0 := time.Now()
	idx := fmindex.Build(con)
	elapsed := time.Since(t0)

	if err := idx.Save(indexPath); err != nil {
		return errors.Wrap(err, "save fm-index")
	}

	fmt.Fprintf(os.Stderr, "Index Construction time: %g seconds.\n", elapsed.Seconds())
	return nil
}
