// Command cptparams converts a raw CPTu sounding file into normalized soil
// classification parameters and writes the derived table as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"cptcli/internal/config"
	"cptcli/internal/exporter"
	"cptcli/internal/sounding"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration (defaults apply when omitted)")
	inputPath := flag.String("in", "", "sounding file to process (.csv or .xlsx)")
	outputPath := flag.String("out", "", "output CSV path (defaults to <input>_derived.csv)")
	cleanMode := flag.String("clean", "remove", "sentinel handling: remove, replace or keep")
	regularize := flag.Bool("regularize", false, "regenerate a regular depth progression")
	startDepth := flag.Float64("start", 0, "start depth for -regularize (default: first existing depth)")
	spacing := flag.Float64("spacing", 0, "depth spacing for -regularize (default: inferred)")
	preview := flag.Int("preview", 8, "number of derived rows to print (0 disables)")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	if *inputPath == "" {
		slog.Error("no input file given", "hint", "use -in <file.csv>")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	records, err := sounding.LoadFile(*inputPath, sounding.LoadOptions{
		Columns: sounding.ColumnNames{
			Depth: cfg.Columns.Depth,
			Qc:    cfg.Columns.Qc,
			Fs:    cfg.Columns.Fs,
			U2:    cfg.Columns.U2,
			U0:    cfg.Columns.U0,
		},
		GammaWater: cfg.GammaWater,
		WaterLevel: cfg.WaterLevel,
	})
	if err != nil {
		slog.Error("failed to load sounding file", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	slog.Info("loaded sounding file", "path", *inputPath, "rows", len(records))

	mode := sounding.CleanMode(*cleanMode)
	switch mode {
	case sounding.CleanRemove, sounding.CleanReplace, sounding.CleanKeep:
	default:
		slog.Error("unknown clean mode", "mode", *cleanMode, "hint", "use remove, replace or keep")
		os.Exit(1)
	}

	opts := sounding.RunOptions{
		Clean:           mode,
		RegularizeDepth: *regularize,
	}
	if *regularize {
		if flagWasSet("start") {
			opts.Depth.Start = startDepth
		}
		if flagWasSet("spacing") {
			opts.Depth.Spacing = spacing
		}
	}

	pipeline := sounding.NewPipeline(cfg, logger)
	results, err := pipeline.Run(context.Background(), records, opts)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	out := *outputPath
	if out == "" {
		out = derivedPath(*inputPath)
	}
	if err := exporter.WriteCSV(out, results); err != nil {
		slog.Error("failed to write results", "path", out, "error", err)
		os.Exit(1)
	}
	slog.Info("wrote derived table", "path", out, "rows", len(results))

	if *preview > 0 {
		printPreview(results, *preview)
	}
}

// flagWasSet reports whether the named flag appeared on the command line,
// so a zero value can be passed explicitly.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// derivedPath builds the default output path next to the input file.
func derivedPath(input string) string {
	ext := len(input)
	for i := len(input) - 1; i >= 0; i-- {
		if input[i] == '.' {
			ext = i
			break
		}
		if input[i] == '/' || input[i] == '\\' {
			break
		}
	}
	return input[:ext] + "_derived.csv"
}

// printPreview prints the first rows of the derived table.
func printPreview(results []sounding.Result, n int) {
	if n > len(results) {
		n = len(results)
	}

	fmt.Println("depth       qt       Fr       Bq        n      Qtn       Ic  flag")
	for _, res := range results[:n] {
		fmt.Printf("%6.3f %8.3f %8.3f %8.4f %8.4f %8.2f %8.3f  %s\n",
			res.Depth, res.Qt, res.Fr, res.Bq,
			res.NExponent, res.Qtn, res.Ic, res.Convergence)
	}
	if n < len(results) {
		fmt.Printf("... %d more rows\n", len(results)-n)
	}
}
