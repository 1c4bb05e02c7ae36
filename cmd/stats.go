package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/kvbench/stats"
	"github.com/inference-sim/kvbench/stats/chart"
)

// statsOptions carries the stats command flags.
type statsOptions struct {
	Labels   []string
	Subtitle string
	LogX     bool
	OutDir   string
	Summary  string
	Patterns string
}

var statsOpts statsOptions

var statsCmd = &cobra.Command{
	Use:   "stats <source> [<source>]",
	Short: "Aggregate benchmark results and plot comparisons",
	Long: "Each source is either a flat log file (thread-count headers followed by timing lines) or a " +
		"directory tree whose leaf directories are named after thread counts. Per-thread-count summaries " +
		"are printed to stdout; one PNG per operation (insert, lookup, remove, action) is rendered when " +
		"every source has samples for it.",
	Args: cobra.RangeArgs(1, chart.MaxSeries),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runStats(cmd.OutOrStdout(), args, statsOpts); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runStats parses, aggregates, prints and plots every source in paths.
func runStats(out io.Writer, paths []string, opts statsOptions) error {
	var overrides *stats.PatternFile
	if opts.Patterns != "" {
		pf, err := stats.LoadPatternFile(opts.Patterns)
		if err != nil {
			return err
		}
		overrides = pf
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	report := &stats.Report{}
	perSource := make([]map[stats.Op][]stats.Result, len(paths))
	for i, path := range paths {
		label := sourceLabel(opts.Labels, i, path)
		src, err := stats.OpenSource(path, overrides)
		if err != nil {
			return err
		}
		buckets, err := stats.Collect(src)
		if err != nil {
			return fmt.Errorf("source %s: %w", path, err)
		}
		results, err := stats.AggregateAll(buckets)
		if err != nil {
			return fmt.Errorf("source %s: %w", path, err)
		}
		perSource[i] = results
		report.Sources = append(report.Sources, stats.NewSourceReport(label, path, results))

		fmt.Fprintln(out, label)
		for _, op := range stats.Ops {
			if len(results[op]) == 0 {
				continue
			}
			fmt.Fprintln(out, op)
			if err := stats.PrintResults(out, results[op]); err != nil {
				return err
			}
		}
	}

	for _, op := range stats.Ops {
		c := chart.NewChart(chartTitle(op, opts.Subtitle), opts.OutDir)
		c.LogX = opts.LogX
		series := make([]chart.Series, len(paths))
		for i, path := range paths {
			series[i] = chart.Series{Label: sourceLabel(opts.Labels, i, path), Results: perSource[i][op]}
		}
		if _, err := chart.Render(c, series...); err != nil {
			return err
		}
	}

	if opts.Summary != "" {
		if err := stats.WriteReport(opts.Summary, report); err != nil {
			return err
		}
		logrus.Infof("wrote %s", opts.Summary)
	}
	return nil
}

func sourceLabel(labels []string, i int, path string) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return path
}

func chartTitle(op stats.Op, subtitle string) string {
	if subtitle == "" {
		return op.String()
	}
	return fmt.Sprintf("%s (%s)", op, subtitle)
}

func init() {
	statsCmd.Flags().StringSliceVar(&statsOpts.Labels, "labels", nil, "Comma-separated legend labels, one per source (default: the source paths)")
	statsCmd.Flags().StringVar(&statsOpts.Subtitle, "subtitle", "", "Appended to every chart title as \"<op> (<subtitle>)\"")
	statsCmd.Flags().BoolVar(&statsOpts.LogX, "log-x", false, "Use a logarithmic thread-count axis")
	statsCmd.Flags().StringVar(&statsOpts.OutDir, "out-dir", ".", "Directory to write the PNG charts to")
	statsCmd.Flags().StringVar(&statsOpts.Summary, "summary", "", "Write all results to this file (.yaml, .msgpack or .csv)")
	statsCmd.Flags().StringVar(&statsOpts.Patterns, "patterns", "", "YAML file overriding the flat/tree regular expressions")

	rootCmd.AddCommand(statsCmd)
}
