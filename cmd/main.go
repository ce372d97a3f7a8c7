package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/larosek/podem-atpg/pkg/atpg"
	"github.com/larosek/podem-atpg/pkg/bench"
	"github.com/larosek/podem-atpg/pkg/circuit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		circuitFile string
		faultStr    string
		allFaults   bool
		outputFile  string
		format      string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "podem-atpg",
		Short: "PODEM test pattern generator for combinational circuits",
		Long: `Generates test vectors for single stuck-at faults in combinational
circuits described in the BENCH format, using a PODEM-style backtracking
search guided by SCOAP controllability.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(circuitFile, faultStr, allFaults, outputFile, bench.Format(format), verbose)
		},
	}

	cmd.Flags().StringVar(&circuitFile, "circuit", "", "circuit file in BENCH format")
	cmd.Flags().StringVar(&faultStr, "fault", "", "fault to test, e.g. net42/1 for net42 stuck-at-1")
	cmd.Flags().BoolVar(&allFaults, "all", false, "generate tests for all faults")
	cmd.Flags().StringVar(&outputFile, "output", "", "output file for test vectors (default: stdout)")
	cmd.Flags().StringVar(&format, "format", string(bench.FormatText), "output format: text or yaml")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("circuit")

	return cmd
}

func run(circuitFile, faultStr string, allFaults bool, outputFile string, format bench.Format, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if !allFaults && faultStr == "" {
		return fmt.Errorf("either --fault or --all is required")
	}

	c, err := bench.ParseFile(circuitFile)
	if err != nil {
		return err
	}
	logger.Info("circuit loaded", "name", c.Name,
		"inputs", len(c.Inputs()), "outputs", len(c.Outputs()), "gates", len(c.Gates))

	gen := atpg.New(c, logger)
	tests := make(map[string]map[string]circuit.LogicValue)

	if allFaults {
		tests = gen.GenerateAll()
	} else {
		name, fault, err := bench.ParseFault(faultStr)
		if err != nil {
			return err
		}
		site := c.NodeByName(name)
		if site == nil {
			return fmt.Errorf("signal not found: %s", name)
		}
		vector, err := gen.FindTest(site, fault)
		if err != nil {
			return err
		}
		tests[faultStr] = vector
	}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return bench.WriteVectors(out, tests, format)
}
