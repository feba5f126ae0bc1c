package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/preprocess"
)

// NewPreprocessCmd creates the preprocess command.
func NewPreprocessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preprocess <data-file>",
		Short: "Clean and transform a dataset",
		Long: `Preprocess loads a tabular dataset and runs a cleaning pipeline on it:
missing value imputation, outlier treatment, categorical encoding,
feature scaling, and optional interaction features.

Each step is opt-in; only the requested steps run, in the order above.
The transformed dataset is written to a new file and the original is
never modified. A summary of every change is printed, and can also be
saved as JSON.

Examples:
  # Fill missing values with the median and cap outliers
  thesiskit preprocess --impute median --outliers iqr survey.csv

  # Drop incomplete rows, one-hot encode, and standardize
  thesiskit preprocess --impute drop --encode onehot --scale standard survey.csv

  # Remove outlier rows instead of capping them
  thesiskit preprocess --outliers zscore --treatment remove survey.csv

  # Write to a specific file with a JSON summary
  thesiskit preprocess --impute auto -o clean.csv --summary summary.json survey.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runPreprocessCmd,
	}

	cmd.Flags().String("impute", "",
		"Missing value strategy: auto, mean, median, mode, or drop")
	cmd.Flags().String("outliers", "",
		"Outlier detection method: iqr or zscore")
	cmd.Flags().String("treatment", preprocess.TreatCap,
		"Outlier treatment: none, cap, remove, or log")
	cmd.Flags().String("encode", "",
		"Categorical encoding method: label or onehot")
	cmd.Flags().String("scale", "",
		"Feature scaling method: standard or minmax")
	cmd.Flags().Bool("interactions", false,
		"Create pairwise interaction features from numeric columns")
	cmd.Flags().StringSlice("columns", nil,
		"Restrict all steps to these columns (default: all applicable)")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: <name>_processed.csv next to the input)")
	cmd.Flags().String("summary", "",
		"Write the preprocessing summary to this JSON file")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .thesiskit in current or home directory)")

	return cmd
}

// preprocessOptions holds preprocess-specific flag values.
type preprocessOptions struct {
	impute       string
	outliers     string
	treatment    string
	encode       string
	scale        string
	interactions bool
	columns      []string
	outputPath   string
	summaryPath  string
}

// runPreprocessCmd executes the preprocess command.
func runPreprocessCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildPreprocessConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runPreprocess(ctx, cfg, opts, logger)
}

// buildPreprocessConfig creates the Config and preprocess options from flags.
func buildPreprocessConfig(cmd *cobra.Command, args []string) (*config.Config, *preprocessOptions, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg.Targets = args

	opts := &preprocessOptions{}
	flagStrings := []struct {
		name string
		dst  *string
	}{
		{"impute", &opts.impute},
		{"outliers", &opts.outliers},
		{"treatment", &opts.treatment},
		{"encode", &opts.encode},
		{"scale", &opts.scale},
		{"output", &opts.outputPath},
		{"summary", &opts.summaryPath},
	}
	for _, f := range flagStrings {
		*f.dst, err = cmd.Flags().GetString(f.name)
		if err != nil {
			return nil, nil, err
		}
	}
	opts.interactions, err = cmd.Flags().GetBool("interactions")
	if err != nil {
		return nil, nil, err
	}
	opts.columns, err = cmd.Flags().GetStringSlice("columns")
	if err != nil {
		return nil, nil, err
	}

	if opts.outputPath == "" {
		opts.outputPath = processedPath(args[0])
	}

	return cfg, opts, nil
}

// processedPath derives the default output path from the input path:
// survey.csv becomes survey_processed.csv.
func processedPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".csv"
	}
	return base + "_processed" + ext
}

// buildPipelineSteps assembles the requested pipeline steps in fixed
// order: impute, outliers, encode, scale, interactions.
func buildPipelineSteps(opts *preprocessOptions) []preprocess.Step {
	var steps []preprocess.Step

	if opts.impute != "" {
		steps = append(steps, &preprocess.ImputeStep{
			Strategy: opts.impute,
			Columns:  opts.columns,
		})
	}
	if opts.outliers != "" {
		steps = append(steps, &preprocess.OutlierStep{
			Method:    opts.outliers,
			Treatment: opts.treatment,
			Columns:   opts.columns,
		})
	}
	if opts.encode != "" {
		steps = append(steps, &preprocess.EncodeStep{
			Method:  opts.encode,
			Columns: opts.columns,
		})
	}
	if opts.scale != "" {
		steps = append(steps, &preprocess.ScaleStep{
			Method:  opts.scale,
			Columns: opts.columns,
		})
	}
	if opts.interactions {
		steps = append(steps, &preprocess.InteractionsStep{})
	}

	return steps
}

// runPreprocess loads the dataset, runs the pipeline, and saves the
// transformed data.
func runPreprocess(ctx context.Context, cfg *config.Config, opts *preprocessOptions, logger *slog.Logger) error {
	target := cfg.Targets[0]

	steps := buildPipelineSteps(opts)
	if len(steps) == 0 {
		return fmt.Errorf("no preprocessing steps requested (see --impute, --outliers, --encode, --scale, --interactions)")
	}

	data, err := loadDataset(cfg, target)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", target, err)
	}

	logger.Info("dataset loaded", "path", target, "rows", data.Rows(), "cols", data.Cols())

	fmt.Printf("Preprocessing %s...\n", target)
	startTime := time.Now()

	pipeline := preprocess.New(preprocess.WithLogger(logger))
	pipeline.AddSteps(steps...)

	state := preprocess.NewState(data)
	if err := pipeline.Execute(ctx, state); err != nil {
		return fmt.Errorf("preprocessing failed: %w", err)
	}

	if err := state.Data.Save(opts.outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", opts.outputPath, err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Preprocessing completed in %s\n\n", elapsed.Round(time.Millisecond))

	printPreprocessSummary(state, opts.outputPath)

	if opts.summaryPath != "" {
		if err := saveSummary(opts.summaryPath, state); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
		fmt.Printf("Summary saved to %s\n", opts.summaryPath)
	}

	return nil
}

// printPreprocessSummary prints what the pipeline changed.
func printPreprocessSummary(state *preprocess.State, outputPath string) {
	s := state.Summary

	fmt.Printf("Steps applied: %s\n", strings.Join(s.AppliedSteps, ", "))
	fmt.Printf("Output shape:  %d rows x %d columns\n", s.Rows, s.Cols)

	if s.DroppedRows > 0 {
		fmt.Printf("Rows dropped:  %d\n", s.DroppedRows)
	}

	for _, column := range sortedMapKeys(s.ImputedColumns) {
		fmt.Printf("  [impute]  %s: %s\n", column, s.ImputedColumns[column])
	}
	for _, column := range sortedMapKeys(s.Outliers) {
		bounds := s.Outliers[column]
		fmt.Printf("  [outlier] %s: %d outlier(s) via %s\n", column, bounds.Count, bounds.Method)
	}
	for _, column := range sortedMapKeys(s.EncodedColumns) {
		fmt.Printf("  [encode]  %s: %s\n", column, s.EncodedColumns[column])
	}
	for _, column := range sortedMapKeys(s.ScaledColumns) {
		fmt.Printf("  [scale]   %s: %s\n", column, s.ScaledColumns[column])
	}
	for _, feature := range s.CreatedFeatures {
		fmt.Printf("  [feature] %s\n", feature)
	}

	fmt.Printf("\nProcessed data saved to %s\n", outputPath)
}

// sortedMapKeys returns the keys of a string-keyed map in sorted order
// so summary output is deterministic.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// saveSummary writes the preprocessing summary as pretty-printed JSON.
func saveSummary(path string, state *preprocess.State) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(state.Summary)
}
