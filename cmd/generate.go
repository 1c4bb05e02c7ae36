package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/kvbench/workload"
)

var (
	genSeed     int64  // Seed for the run's PartitionedRNG
	genOutDir   string // Directory receiving the .bin files
	genConfig   string // Optional YAML workload spec
	genManifest bool   // Write manifest.yaml next to the outputs
)

var generateCmd = &cobra.Command{
	Use:   "generate <range> <count> [<insert-partition> <lookup-partition> <remove-partition>]",
	Short: "Generate binary benchmark workloads",
	Long: "Generate insert/lookup/remove workloads over keys in [0, range). With two arguments, three " +
		"homogeneous files are written (inserts_sample.bin, lookups_sample.bin, removes_sample.bin). " +
		"With three extra percentages summing to 100, one shuffled mixed file {i}_{l}_{r}_sample.bin is written.",
	Args: func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) == 2 || len(args) == 5:
			return nil
		case len(args) == 0 && genConfig != "":
			return nil
		default:
			return fmt.Errorf("expected 2 or 5 arguments, got %d", len(args))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		spec := &workload.Spec{}
		if genConfig != "" {
			loaded, err := workload.LoadSpec(genConfig)
			if err != nil {
				logrus.Fatalf("Failed to load workload spec %s: %v", genConfig, err)
			}
			spec = loaded
		}
		if err := applyGenerateArgs(spec, args); err != nil {
			logrus.Fatalf("%v", err)
		}
		if cmd.Flags().Changed("seed") || genConfig == "" {
			spec.Seed = genSeed
		}
		if cmd.Flags().Changed("out-dir") || spec.OutDir == "" {
			spec.OutDir = genOutDir
		}

		files, err := runGenerate(spec)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if genManifest {
			path, err := workload.WriteManifest(spec.OutDir, workload.NewManifest(spec, files))
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("wrote %s", path)
		}
	},
}

// applyGenerateArgs overlays positional arguments on spec.
func applyGenerateArgs(spec *workload.Spec, args []string) error {
	if len(args) == 0 {
		return nil
	}
	rangeN, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: range %q: %v", workload.ErrConfiguration, args[0], err)
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: count %q: %v", workload.ErrConfiguration, args[1], err)
	}
	spec.Range = uint32(rangeN)
	spec.Count = count
	spec.Partition = nil

	if len(args) == 5 {
		var parts [3]int
		for i, a := range args[2:] {
			parts[i], err = strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("%w: partition %q: %v", workload.ErrConfiguration, a, err)
			}
		}
		spec.Partition = &workload.Partition{Insert: parts[0], Lookup: parts[1], Remove: parts[2]}
	}
	return nil
}

// runGenerate validates spec, synthesizes the workload and writes its files.
func runGenerate(spec *workload.Spec) ([]workload.OutputFile, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(spec.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	gen := workload.NewGenerator(workload.NewPartitionedRNG(workload.NewRunKey(spec.Seed)))
	logrus.Infof("Generating workload: range=%d count=%d seed=%d", spec.Range, spec.Count, spec.Seed)

	if spec.Partition == nil {
		w, err := gen.GenerateUniform(spec.Range, spec.Count)
		if err != nil {
			return nil, err
		}
		return workload.WriteUniform(spec.OutDir, w)
	}
	w, err := gen.GeneratePartitioned(spec.Range, spec.Count, *spec.Partition)
	if err != nil {
		return nil, err
	}
	return workload.WritePartitioned(spec.OutDir, w)
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Seed for key, value and shuffle generation")
	generateCmd.Flags().StringVar(&genOutDir, "out-dir", ".", "Directory to write the .bin files to")
	generateCmd.Flags().StringVar(&genConfig, "config", "", "YAML workload spec (positional arguments override it)")
	generateCmd.Flags().BoolVar(&genManifest, "manifest", false, "Write manifest.yaml describing the run")

	rootCmd.AddCommand(generateCmd)
}
