package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/analysis"
	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/dataset"
	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/plot"
	"github.com/thesiskit/thesiskit/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <data-file>",
		Short: "Run statistical analyses on a dataset",
		Long: `Analyze loads a tabular dataset and runs statistical analyses on it.

It always computes descriptive statistics and the Pearson correlation matrix
over the numeric columns. Hypothesis tests and regression are opt-in:
- A grouping column with two levels runs an independent t-test
- More levels run a one-way ANOVA
- OLS regression fits a dependent variable on one or more predictors

Figures (distributions with KDE overlay, correlation heatmap, missing
values) are rendered alongside, and the full results are saved to a JSON
file for later reference.

Examples:
  # Descriptive statistics and correlations
  thesiskit analyze survey.csv

  # Compare satisfaction between the levels of the group column
  thesiskit analyze --group group --var satisfaction survey.csv

  # Fit income on age and education with a Markdown report
  thesiskit analyze --dependent income --independent age --markdown survey.csv

  # Write the report to a file
  thesiskit analyze -o report.txt survey.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	// Hypothesis test flags
	cmd.Flags().StringP("group", "g", "",
		"Grouping column for a t-test (two levels) or ANOVA (more levels)")
	cmd.Flags().String("var", "",
		"Numeric column tested between groups")
	cmd.Flags().Bool("welch", false,
		"Use the unequal-variance (Welch) t-test variant")

	// Regression flags
	cmd.Flags().StringP("dependent", "d", "",
		"Dependent variable for OLS regression")
	cmd.Flags().StringSliceP("independent", "i", nil,
		"Independent variables for OLS regression (repeatable)")

	// Figure flags
	cmd.Flags().String("figures-dir", config.DefaultFiguresDir,
		"Directory figures are rendered into")
	cmd.Flags().Bool("no-figures", false,
		"Skip figure rendering")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .thesiskit in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("results", "",
		"Results JSON file path (default: analysis_results.json)")

	return cmd
}

// analyzeOptions holds analyze-specific flag values.
type analyzeOptions struct {
	request     analysis.Request
	resultsFile string
	noFigures   bool
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runAnalyze(ctx, cfg, opts, logger)
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// buildAnalyzeConfig creates the Config and analyze options from flags.
func buildAnalyzeConfig(cmd *cobra.Command, args []string) (*config.Config, *analyzeOptions, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg.Targets = args

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	figuresDir, err := cmd.Flags().GetString("figures-dir")
	if err != nil {
		return nil, nil, err
	}
	if figuresDir != config.DefaultFiguresDir || cfg.FiguresDir == "" {
		cfg.FiguresDir = figuresDir
	}

	opts := &analyzeOptions{
		request: analysis.Request{Correlation: true},
	}

	opts.request.GroupColumn, err = cmd.Flags().GetString("group")
	if err != nil {
		return nil, nil, err
	}
	opts.request.TestColumn, err = cmd.Flags().GetString("var")
	if err != nil {
		return nil, nil, err
	}
	opts.request.Welch, err = cmd.Flags().GetBool("welch")
	if err != nil {
		return nil, nil, err
	}
	opts.request.Dependent, err = cmd.Flags().GetString("dependent")
	if err != nil {
		return nil, nil, err
	}
	opts.request.Independent, err = cmd.Flags().GetStringSlice("independent")
	if err != nil {
		return nil, nil, err
	}
	opts.noFigures, err = cmd.Flags().GetBool("no-figures")
	if err != nil {
		return nil, nil, err
	}
	opts.resultsFile, err = cmd.Flags().GetString("results")
	if err != nil {
		return nil, nil, err
	}
	if opts.resultsFile == "" {
		opts.resultsFile = filepath.Join(cfg.OutputDir, config.DefaultResultsFile)
	}

	return cfg, opts, nil
}

// runAnalyze loads the dataset, runs the analyses, renders figures, and
// writes the reports.
func runAnalyze(ctx context.Context, cfg *config.Config, opts *analyzeOptions, logger *slog.Logger) error {
	target := cfg.Targets[0]

	data, err := loadDataset(cfg, target)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", target, err)
	}

	logger.Info("dataset loaded", "path", target, "rows", data.Rows(), "cols", data.Cols())

	fmt.Printf("Analyzing %s...\n", target)
	startTime := time.Now()

	analyzer := analysis.New(data, analysis.WithLogger(logger))
	analysisReport := analyzer.Run(opts.request)

	if !opts.noFigures {
		figures := buildAnalysisFigures(cfg, data, analysisReport)
		renderer := plot.NewRenderer(cfg.FiguresDir,
			plot.WithConcurrency(cfg.Concurrency),
			plot.WithLogger(logger),
		)
		paths, err := renderer.RenderAll(ctx, figures)
		if err != nil {
			logger.Warn("some figures failed to render", "error", err)
		}
		analysisReport.Figures = paths
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

	if err := saveResults(opts.resultsFile, analysisReport); err != nil {
		logger.Error("failed to save results", "path", opts.resultsFile, "error", err)
	} else {
		fmt.Printf("Results saved to %s\n", opts.resultsFile)
	}

	return outputReport(cfg, analysisReport)
}

// buildAnalysisFigures assembles the figures for an analysis run:
// one distribution per numeric column, the correlation heatmap, the
// missing-values chart, and a box plot when a group test ran.
func buildAnalysisFigures(cfg *config.Config, data *dataset.Dataset, r *model.AnalysisReport) []plot.Figure {
	var figures []plot.Figure

	for _, name := range data.NumericColumns() {
		values, err := data.NumericValues(name)
		if err != nil || len(values) == 0 {
			continue
		}
		figures = append(figures, &plot.DistributionFigure{
			Column: name,
			Values: values,
			Bins:   cfg.Bins,
			Width:  cfg.PlotWidth,
			Height: cfg.PlotHeight,
		})
	}

	if r.Correlation != nil {
		figures = append(figures, &plot.HeatmapFigure{
			Columns: r.Correlation.Columns,
			Matrix:  r.Correlation.Matrix,
			Width:   cfg.PlotWidth,
			Height:  cfg.PlotHeight,
		})
	}

	if r.Exploratory != nil && len(r.Exploratory.MissingCounts) > 0 {
		figures = append(figures, &plot.MissingFigure{
			Counts: r.Exploratory.MissingCounts,
			Width:  cfg.PlotWidth,
			Height: cfg.PlotHeight,
		})
	}

	var valueCol, groupCol string
	switch {
	case r.TTest != nil:
		valueCol, groupCol = r.TTest.TestColumn, r.TTest.GroupColumn
	case r.ANOVA != nil:
		valueCol, groupCol = r.ANOVA.TestColumn, r.ANOVA.GroupColumn
	}
	if groupCol != "" {
		if groups := boxGroups(data, valueCol, groupCol); len(groups) > 0 {
			figures = append(figures, &plot.BoxFigure{
				ValueColumn: valueCol,
				GroupColumn: groupCol,
				Groups:      groups,
				Width:       cfg.PlotWidth,
				Height:      cfg.PlotHeight,
			})
		}
	}

	return figures
}

// boxGroups collects the non-missing values of valueCol per level of
// groupCol, in lexicographic label order.
func boxGroups(data *dataset.Dataset, valueCol, groupCol string) []plot.BoxGroup {
	group, err := data.Col(groupCol)
	if err != nil {
		return nil
	}
	value, err := data.Col(valueCol)
	if err != nil {
		return nil
	}

	labels := group.Records()
	values := value.Float()

	byLabel := make(map[string][]float64)
	for i, label := range labels {
		if label == "" || label == "NaN" || math.IsNaN(values[i]) {
			continue
		}
		byLabel[label] = append(byLabel[label], values[i])
	}

	sorted := make([]string, 0, len(byLabel))
	for label := range byLabel {
		sorted = append(sorted, label)
	}
	sort.Strings(sorted)

	groups := make([]plot.BoxGroup, 0, len(sorted))
	for _, label := range sorted {
		groups = append(groups, plot.BoxGroup{Label: label, Values: byLabel[label]})
	}
	return groups
}

// saveResults writes the full analysis report to the results JSON file.
func saveResults(path string, analysisReport *model.AnalysisReport) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	writer := report.NewJSONWriter(f, report.WithPrettyPrint())
	_, err = writer.Write(analysisReport)
	return err
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, analysisReport *model.AnalysisReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output
	if cfg.JSONReport {
		writer := report.NewJSONWriter(output, report.WithPrettyPrint())
		_, err := writer.Write(analysisReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(analysisReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output)
	_, err := writer.Write(analysisReport)
	return err
}
