package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/kvbench/workload"
)

var (
	inspectFormat      string
	inspectCheckSubset bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a generated workload file and summarize it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd.OutOrStdout(), args[0], inspectFormat, inspectCheckSubset); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func runInspect(out io.Writer, path, format string, checkSubset bool) error {
	f := workload.InferFormat(path)
	if format != "" {
		parsed, err := workload.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	}
	s, err := workload.Inspect(path, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "file: %s\nformat: %s\nrecords: %d\ndistinct keys: %d\n", s.Path, s.Format, s.Records, s.DistinctKeys)
	if s.DistinctKeys > 0 {
		fmt.Fprintf(out, "key range: [%d, %d]\n", s.MinKey, s.MaxKey)
	}
	for _, k := range []workload.Kind{workload.KindInsert, workload.KindLookup, workload.KindRemove} {
		if n := s.Kinds[k]; n > 0 {
			fmt.Fprintf(out, "%s: %d\n", k, n)
		}
	}

	if checkSubset {
		if f != workload.FormatActions {
			return fmt.Errorf("--check-subset needs a mixed file, got format %s", f)
		}
		if err := workload.CheckSubset(s.Actions); err != nil {
			return err
		}
		fmt.Fprintln(out, "subset check: ok")
	}
	return nil
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "File layout: insert, keys or mixed (default: inferred from the file name)")
	inspectCmd.Flags().BoolVar(&inspectCheckSubset, "check-subset", false, "Verify every lookup/remove key of a mixed file is inserted")

	rootCmd.AddCommand(inspectCmd)
}
