package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s-kondo-09/quantum-physics/config"
	"github.com/s-kondo-09/quantum-physics/experiment"
	"github.com/s-kondo-09/quantum-physics/util"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the experiment described by a YAML file",
	Long: `Runs a rate sweep, a slope sweep or the double passage comparison.
Without --config the default twisted model rate sweep is run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		report, _ := cmd.Flags().GetString("report")

		e := config.Default()
		if path != "" {
			var err error
			if e, err = config.Load(path); err != nil {
				return err
			}
		}
		return run(cmd.Context(), e, cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "experiment file (YAML)")
	runCmd.Flags().StringP("report", "r", "", "write an HTML report to this file")
}

func run(ctx context.Context, e config.Experiment, out io.Writer, report string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.Default().With("experiment", e.Experiment)
	logger.Info("starting", "model", e.Model, "sign", e.Sign, "mode", e.Mode)

	var tables []util.Table
	switch e.Experiment {
	case config.RateSweep, config.SlopeSweep:
		s, err := e.Sweep()
		if err != nil {
			return err
		}
		s.Logger = logger
		sweep, param := experiment.RateSweep, "F"
		if e.Experiment == config.SlopeSweep {
			sweep, param = experiment.SlopeSweep, "v"
		}
		points, err := sweep(ctx, s)
		if err != nil {
			return err
		}
		if err := printPoints(out, param, points); err != nil {
			return err
		}
		tables = append(tables, experiment.SweepTable(e.Experiment+" of the "+e.Model+" model", param, points))

	case config.DoublePassage:
		s, err := e.DoublePassageSetup()
		if err != nil {
			return err
		}
		s.Logger = logger
		res, err := experiment.DoublePassage(ctx, s)
		if err != nil {
			return err
		}
		if err := printDoublePassage(out, res); err != nil {
			return err
		}
		tables = experiment.DoublePassageTables(res)

	default:
		return fmt.Errorf("%w: unknown kind %q", config.ErrInvalidConfig, e.Experiment)
	}

	if report != "" {
		if err := util.WriteTablesFile(tables, report); err != nil {
			return err
		}
		logger.Info("report written", "path", report)
	}
	return nil
}

func printPoints(out io.Writer, param string, points []experiment.Point) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tprobability\tlandau-zener\tlog probability\tnote\n", param)
	for _, pt := range points {
		if pt.Skipped {
			fmt.Fprintf(w, "%.6g\t-\t-\t-\t%s\n", pt.Param, pt.Reason)
			continue
		}
		fmt.Fprintf(w, "%.6g\t%.6f\t%.6f\t%.6g\t\n", pt.Param, pt.Probability, pt.Theory, pt.LogProbability)
	}
	return w.Flush()
}

func printDoublePassage(out io.Writer, res experiment.DoublePassageResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"transition probability", res.Probability},
		{"landau-zener", res.LandauZener},
		{"phase", res.Phase},
		{"adiabaticity", res.AdiabaticParameter},
		{"stokes phase", res.Stokes},
		{"adiabatic prediction", res.Adiabatic},
		{"heuristic prediction", res.Heuristic},
		{"numerical occupation", res.Numerical},
	} {
		fmt.Fprintf(w, "%s\t%.6f\n", row.name, row.value)
	}
	return w.Flush()
}
