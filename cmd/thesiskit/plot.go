package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/dataset"
	"github.com/thesiskit/thesiskit/internal/plot"
	"github.com/thesiskit/thesiskit/internal/report"
	"github.com/thesiskit/thesiskit/internal/stats"
)

// NewPlotCmd creates the plot command.
func NewPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <data-file>",
		Short: "Render publication figures from a dataset",
		Long: `Plot loads a tabular dataset and renders PNG figures from it.

By default it renders a distribution plot (histogram with KDE overlay)
for every numeric column, the correlation heatmap, the missing values
chart, and a one-page research summary panel. Explicit column flags add
more figure types:
- --x and --y draw a scatter plot when both columns are numeric, or a
  grouped box plot when --x is categorical
- --time and --y draw a time series
- --group splits a scatter plot into colored point groups

Figures are rendered concurrently into the figures directory, and an
HTML index of the rendered figures can be written alongside them.

Examples:
  # Distributions, heatmap, missing values, and the summary panel
  thesiskit plot survey.csv

  # Scatter plot of income against age, colored by category
  thesiskit plot --x age --y income --group category survey.csv

  # Box plot of satisfaction per category
  thesiskit plot --x category --y satisfaction survey.csv

  # Satisfaction over time with an HTML index
  thesiskit plot --time date --y satisfaction --html survey.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runPlotCmd,
	}

	cmd.Flags().StringSlice("columns", nil,
		"Numeric columns to draw distributions for (default: all numeric)")
	cmd.Flags().String("x", "",
		"X axis column for a scatter or box plot")
	cmd.Flags().String("y", "",
		"Y axis column for a scatter, box, or time series plot")
	cmd.Flags().String("group", "",
		"Categorical column to split a scatter plot by")
	cmd.Flags().String("time", "",
		"Datetime column for a time series plot")
	cmd.Flags().Bool("html", false,
		"Write an HTML index of the rendered figures")
	cmd.Flags().String("figures-dir", config.DefaultFiguresDir,
		"Directory figures are rendered into")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .thesiskit in current or home directory)")

	return cmd
}

// plotOptions holds plot-specific flag values.
type plotOptions struct {
	columns    []string
	xColumn    string
	yColumn    string
	group      string
	timeColumn string
	htmlIndex  bool
}

// runPlotCmd executes the plot command.
func runPlotCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildPlotConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runPlot(ctx, cfg, opts, logger)
}

// buildPlotConfig creates the Config and plot options from flags.
func buildPlotConfig(cmd *cobra.Command, args []string) (*config.Config, *plotOptions, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg.Targets = args

	figuresDir, err := cmd.Flags().GetString("figures-dir")
	if err != nil {
		return nil, nil, err
	}
	if figuresDir != config.DefaultFiguresDir || cfg.FiguresDir == "" {
		cfg.FiguresDir = figuresDir
	}

	opts := &plotOptions{}
	opts.columns, err = cmd.Flags().GetStringSlice("columns")
	if err != nil {
		return nil, nil, err
	}
	opts.xColumn, err = cmd.Flags().GetString("x")
	if err != nil {
		return nil, nil, err
	}
	opts.yColumn, err = cmd.Flags().GetString("y")
	if err != nil {
		return nil, nil, err
	}
	opts.group, err = cmd.Flags().GetString("group")
	if err != nil {
		return nil, nil, err
	}
	opts.timeColumn, err = cmd.Flags().GetString("time")
	if err != nil {
		return nil, nil, err
	}
	opts.htmlIndex, err = cmd.Flags().GetBool("html")
	if err != nil {
		return nil, nil, err
	}

	if opts.xColumn != "" && opts.yColumn == "" {
		return nil, nil, fmt.Errorf("--x requires --y")
	}
	if opts.timeColumn != "" && opts.yColumn == "" {
		return nil, nil, fmt.Errorf("--time requires --y")
	}

	return cfg, opts, nil
}

// runPlot loads the dataset, assembles the figures, and renders them.
func runPlot(ctx context.Context, cfg *config.Config, opts *plotOptions, logger *slog.Logger) error {
	target := cfg.Targets[0]

	data, err := loadDataset(cfg, target)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", target, err)
	}

	logger.Info("dataset loaded", "path", target, "rows", data.Rows(), "cols", data.Cols())

	figures, err := buildPlotFigures(cfg, data, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %d figure(s) from %s...\n", len(figures), target)

	renderer := plot.NewRenderer(cfg.FiguresDir,
		plot.WithConcurrency(cfg.Concurrency),
		plot.WithLogger(logger),
	)
	paths, err := renderer.RenderAll(ctx, figures)
	if err != nil {
		logger.Warn("some figures failed to render", "error", err)
	}

	for _, path := range paths {
		fmt.Printf("  [+] %s\n", path)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no figures rendered")
	}

	if opts.htmlIndex {
		indexPath := filepath.Join(renderer.Dir(), "index.html")
		if err := writeFigureIndex(indexPath, target, paths); err != nil {
			return fmt.Errorf("failed to write figure index: %w", err)
		}
		fmt.Printf("  [+] %s\n", indexPath)
	}

	return nil
}

// buildPlotFigures assembles the requested figures.
func buildPlotFigures(cfg *config.Config, data *dataset.Dataset, opts *plotOptions) ([]plot.Figure, error) {
	var figures []plot.Figure

	columns := opts.columns
	if len(columns) == 0 {
		columns = data.NumericColumns()
	}
	for _, name := range columns {
		values, err := data.NumericValues(name)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		if len(values) == 0 {
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

	if heatmap := heatmapFigure(cfg, data); heatmap != nil {
		figures = append(figures, heatmap)
	}

	if counts := data.MissingCounts(); len(counts) > 0 {
		figures = append(figures, &plot.MissingFigure{
			Counts: counts,
			Width:  cfg.PlotWidth,
			Height: cfg.PlotHeight,
		})
	}

	figures = append(figures, summaryFigure(cfg, data))

	if opts.xColumn != "" {
		figure, err := pairFigure(cfg, data, opts)
		if err != nil {
			return nil, err
		}
		figures = append(figures, figure)
	}

	if opts.timeColumn != "" {
		figure, err := timeSeriesFigure(cfg, data, opts.timeColumn, opts.yColumn)
		if err != nil {
			return nil, err
		}
		figures = append(figures, figure)
	}

	return figures, nil
}

// heatmapFigure builds the correlation heatmap, or nil when fewer than
// two numeric columns exist.
func heatmapFigure(cfg *config.Config, data *dataset.Dataset) plot.Figure {
	numeric := data.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	rows := data.CompleteRows(numeric)
	if len(rows) < 2 {
		return nil
	}

	values := make([][]float64, len(numeric))
	for i, name := range numeric {
		col, err := data.Col(name)
		if err != nil {
			return nil
		}
		floats := col.Float()
		selected := make([]float64, len(rows))
		for j, row := range rows {
			selected[j] = floats[row]
		}
		values[i] = selected
	}

	matrix, err := stats.CorrelationMatrix(values)
	if err != nil {
		return nil
	}
	return &plot.HeatmapFigure{
		Columns: numeric,
		Matrix:  matrix,
		Width:   cfg.PlotWidth,
		Height:  cfg.PlotHeight,
	}
}

// summaryFigure builds the one-page research summary panel.
func summaryFigure(cfg *config.Config, data *dataset.Dataset) plot.Figure {
	kindCounts := make(map[string]int)
	for _, kind := range data.ColumnKinds() {
		kindCounts[string(kind)]++
	}

	var columns []plot.SummaryColumn
	for _, name := range data.NumericColumns() {
		values, err := data.NumericValues(name)
		if err != nil || len(values) == 0 {
			continue
		}
		missing, err := data.MissingInColumn(name)
		if err != nil {
			missing = 0
		}
		desc := stats.Describe(values)
		columns = append(columns, plot.SummaryColumn{
			Name:    name,
			Count:   desc.Count,
			Missing: missing,
			Mean:    desc.Mean,
			StdDev:  desc.StdDev,
			Min:     desc.Min,
			Max:     desc.Max,
		})
	}

	return &plot.SummaryFigure{
		Source:       filepath.Base(data.Path()),
		Rows:         data.Rows(),
		Cols:         data.Cols(),
		KindCounts:   kindCounts,
		MissingCells: data.TotalMissing(),
		Columns:      columns,
		Width:        cfg.PlotWidth,
		Height:       cfg.PlotHeight,
	}
}

// pairFigure builds the --x/--y figure: a scatter plot when both axes
// are numeric, a grouped box plot when x is categorical.
func pairFigure(cfg *config.Config, data *dataset.Dataset, opts *plotOptions) (plot.Figure, error) {
	kinds := data.ColumnKinds()

	xKind, ok := kinds[opts.xColumn]
	if !ok {
		return nil, fmt.Errorf("column %s: %w", opts.xColumn, dataset.ErrColumnNotFound)
	}
	if _, ok := kinds[opts.yColumn]; !ok {
		return nil, fmt.Errorf("column %s: %w", opts.yColumn, dataset.ErrColumnNotFound)
	}

	if xKind == dataset.KindNumeric {
		return scatterFigure(cfg, data, opts)
	}

	groups := boxGroups(data, opts.yColumn, opts.xColumn)
	if len(groups) == 0 {
		return nil, fmt.Errorf("no complete observations for %s by %s", opts.yColumn, opts.xColumn)
	}
	return &plot.BoxFigure{
		ValueColumn: opts.yColumn,
		GroupColumn: opts.xColumn,
		Groups:      groups,
		Width:       cfg.PlotWidth,
		Height:      cfg.PlotHeight,
	}, nil
}

// scatterFigure builds a scatter plot of two numeric columns, split into
// colored groups when a group column is given.
func scatterFigure(cfg *config.Config, data *dataset.Dataset, opts *plotOptions) (plot.Figure, error) {
	xCol, err := data.Col(opts.xColumn)
	if err != nil {
		return nil, err
	}
	yCol, err := data.Col(opts.yColumn)
	if err != nil {
		return nil, err
	}

	xs := xCol.Float()
	ys := yCol.Float()

	var labels []string
	if opts.group != "" {
		groupCol, err := data.Col(opts.group)
		if err != nil {
			return nil, err
		}
		labels = groupCol.Records()
	}

	byLabel := make(map[string]*plot.ScatterGroup)
	var order []string
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		label := opts.yColumn
		if labels != nil {
			label = labels[i]
			if label == "" || label == "NaN" {
				continue
			}
		}
		group, ok := byLabel[label]
		if !ok {
			group = &plot.ScatterGroup{Label: label}
			byLabel[label] = group
			order = append(order, label)
		}
		group.X = append(group.X, xs[i])
		group.Y = append(group.Y, ys[i])
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no complete observations for %s and %s", opts.xColumn, opts.yColumn)
	}

	groups := make([]plot.ScatterGroup, 0, len(order))
	for _, label := range order {
		groups = append(groups, *byLabel[label])
	}

	return &plot.ScatterFigure{
		XColumn: opts.xColumn,
		YColumn: opts.yColumn,
		Groups:  groups,
		Width:   cfg.PlotWidth,
		Height:  cfg.PlotHeight,
	}, nil
}

// timeSeriesFigure builds a time series plot from a datetime column and
// a numeric column, sorted by time.
func timeSeriesFigure(cfg *config.Config, data *dataset.Dataset, timeColumn, valueColumn string) (plot.Figure, error) {
	timeCol, err := data.Col(timeColumn)
	if err != nil {
		return nil, err
	}
	valueCol, err := data.Col(valueColumn)
	if err != nil {
		return nil, err
	}

	raw := timeCol.Records()
	values := valueCol.Float()

	type observation struct {
		t time.Time
		v float64
	}
	observations := make([]observation, 0, len(raw))
	for i, r := range raw {
		t, ok := dataset.ParseDatetime(r)
		if !ok || math.IsNaN(values[i]) {
			continue
		}
		observations = append(observations, observation{t: t, v: values[i]})
	}
	if len(observations) < 2 {
		return nil, fmt.Errorf("column %s has fewer than two parseable timestamps", timeColumn)
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].t.Before(observations[j].t)
	})

	times := make([]time.Time, len(observations))
	series := make([]float64, len(observations))
	for i, o := range observations {
		times[i] = o.t
		series[i] = o.v
	}

	return &plot.TimeSeriesFigure{
		TimeColumn:  timeColumn,
		ValueColumn: valueColumn,
		Times:       times,
		Values:      series,
		Width:       cfg.PlotWidth,
		Height:      cfg.PlotHeight,
	}, nil
}

// writeFigureIndex writes the HTML index file listing the figures.
func writeFigureIndex(path, title string, figures []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WriteFigureIndex(f, filepath.Base(title), figures)
}
