// Command suffixarray_construct builds a suffix array over a concatenated
// reference collection and writes it to disk in the bit-exact little-endian
// format internal/sacore/file.go consumes.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seqmap/internal/reference"
	"seqmap/internal/sacore"
)

func main() {
	var referencePath, indexPath string

	root := &cobra.Command{
		Use:   "suffixarray_construct",
		Short: "Build a suffix array over a reference collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(referencePath, indexPath)
		},
	}
	root.Flags().StringVar(&referencePath, "reference", "", "Path to the reference FASTA/FASTQ file")
	root.Flags().StringVar(&indexPath, "index", "", "Path to write the suffix array index")

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
	sa := sacore.Build(con.S)
	elapsed := time.Since(t0)

	if err := sacore.Write(indexPath, sa); err != nil {
		return errors.Wrap(err, "write suffix array index")
	}

	fmt.Fprintf(os.Stderr, "Index Construction time: %g seconds.\n", elapsed.Seconds())
	return nil
}
