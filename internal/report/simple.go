package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/thesiskit/thesiskit/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// printer formats counts with thousands separators for readability.
	printer *message.Printer

	// showEmpty controls whether sections without results are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeExploratory(&sb, report.Exploratory)
	w.writeCorrelation(&sb, report.Correlation)
	w.writeTTest(&sb, report.TTest)
	w.writeANOVA(&sb, report.ANOVA)
	w.writeRegression(&sb, report.Regression)
	w.writeFigures(&sb, report.Figures)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with dataset information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       DATA ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Data File:     %s\n", report.DataPath))
	sb.WriteString(fmt.Sprintf("Analysis Date: %s\n", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(w.printer.Sprintf("Shape:         %d rows x %d columns\n", report.Rows, report.Cols))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// sectionHeader writes a section title between horizontal rules.
func (w *SimpleWriter) sectionHeader(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeExploratory writes descriptive statistics and missing values.
func (w *SimpleWriter) writeExploratory(sb *strings.Builder, result *model.ExploratoryResult) {
	if result == nil {
		if w.showEmpty {
			w.sectionHeader(sb, "DESCRIPTIVE STATISTICS")
			sb.WriteString("  Not performed\n\n")
		}
		return
	}

	w.sectionHeader(sb, "DESCRIPTIVE STATISTICS")

	for _, name := range sortedKeys(result.Numeric) {
		s := result.Numeric[name]
		sb.WriteString(fmt.Sprintf("  %s\n", name))
		sb.WriteString(w.printer.Sprintf("    count:  %d\n", s.Count))
		sb.WriteString(fmt.Sprintf("    mean:   %s\n", formatStat(s.Mean)))
		sb.WriteString(fmt.Sprintf("    std:    %s\n", formatStat(s.StdDev)))
		sb.WriteString(fmt.Sprintf("    min:    %s\n", formatStat(s.Min)))
		if w.verbose {
			sb.WriteString(fmt.Sprintf("    25%%:    %s\n", formatStat(s.Q25)))
			sb.WriteString(fmt.Sprintf("    50%%:    %s\n", formatStat(s.Median)))
			sb.WriteString(fmt.Sprintf("    75%%:    %s\n", formatStat(s.Q75)))
		}
		sb.WriteString(fmt.Sprintf("    max:    %s\n", formatStat(s.Max)))
	}
	if len(result.Numeric) == 0 {
		sb.WriteString("  No numeric columns\n")
	}
	sb.WriteString("\n")

	for _, name := range sortedKeys(result.Categorical) {
		c := result.Categorical[name]
		sb.WriteString(w.printer.Sprintf(
			"  %s: %d unique value(s), most common %q (%d)\n",
			name, c.UniqueCount, c.MostCommon, c.MostCommonCount,
		))
	}
	if len(result.Categorical) > 0 {
		sb.WriteString("\n")
	}

	if len(result.MissingCounts) == 0 {
		sb.WriteString("  No missing values\n\n")
		return
	}

	sb.WriteString(w.printer.Sprintf("  Missing values (%d total):\n", result.TotalMissing()))
	for _, name := range sortedKeys(result.MissingCounts) {
		sb.WriteString(w.printer.Sprintf("    %s: %d\n", name, result.MissingCounts[name]))
	}
	sb.WriteString("\n")
}

// writeCorrelation writes the correlation matrix section.
func (w *SimpleWriter) writeCorrelation(sb *strings.Builder, result *model.CorrelationResult) {
	if result == nil {
		if w.showEmpty {
			w.sectionHeader(sb, "CORRELATION MATRIX")
			sb.WriteString("  Not performed\n\n")
		}
		return
	}

	w.sectionHeader(sb, "CORRELATION MATRIX")
	sb.WriteString(w.printer.Sprintf("  Based on %d complete row(s)\n\n", result.CompleteRows))

	// Column width accommodates the longest name plus the coefficient.
	width := 8
	for _, name := range result.Columns {
		if len(name)+2 > width {
			width = len(name) + 2
		}
	}

	sb.WriteString(fmt.Sprintf("  %*s", width, ""))
	for _, name := range result.Columns {
		sb.WriteString(fmt.Sprintf("%*s", width, name))
	}
	sb.WriteString("\n")

	for i, name := range result.Columns {
		sb.WriteString(fmt.Sprintf("  %*s", width, name))
		for j := range result.Columns {
			sb.WriteString(fmt.Sprintf("%*s", width, formatStat(result.At(i, j))))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeTTest writes the t-test section.
func (w *SimpleWriter) writeTTest(sb *strings.Builder, result *model.TTestResult) {
	if result == nil {
		if w.showEmpty {
			w.sectionHeader(sb, "INDEPENDENT T-TEST")
			sb.WriteString("  Not performed\n\n")
		}
		return
	}

	w.sectionHeader(sb, "INDEPENDENT T-TEST")

	variant := "Student"
	if result.Welch {
		variant = "Welch"
	}

	sb.WriteString(fmt.Sprintf("  Test column:  %s\n", result.TestColumn))
	sb.WriteString(w.printer.Sprintf(
		"  Groups:       %s (n=%d) vs %s (n=%d)\n",
		result.Group1, result.N1, result.Group2, result.N2,
	))
	sb.WriteString(fmt.Sprintf("  Variant:      %s\n", variant))
	sb.WriteString(fmt.Sprintf("  t-statistic:  %s\n", formatStat(result.TStatistic)))
	sb.WriteString(fmt.Sprintf("  p-value:      %s\n", formatPValue(result.PValue)))
	w.writeSignificance(sb, result.Significant)
}

// writeANOVA writes the ANOVA section.
func (w *SimpleWriter) writeANOVA(sb *strings.Builder, result *model.ANOVAResult) {
	if result == nil {
		if w.showEmpty {
			w.sectionHeader(sb, "ONE-WAY ANOVA")
			sb.WriteString("  Not performed\n\n")
		}
		return
	}

	w.sectionHeader(sb, "ONE-WAY ANOVA")

	sb.WriteString(fmt.Sprintf("  Test column:  %s\n", result.TestColumn))
	sb.WriteString(fmt.Sprintf("  Group column: %s (%d groups)\n", result.GroupColumn, len(result.Groups)))
	sb.WriteString(fmt.Sprintf("  F-statistic:  %s\n", formatStat(result.FStatistic)))
	sb.WriteString(fmt.Sprintf("  p-value:      %s\n", formatPValue(result.PValue)))
	w.writeSignificance(sb, result.Significant)
}

// writeRegression writes the OLS regression section.
func (w *SimpleWriter) writeRegression(sb *strings.Builder, result *model.RegressionResult) {
	if result == nil {
		if w.showEmpty {
			w.sectionHeader(sb, "OLS REGRESSION")
			sb.WriteString("  Not performed\n\n")
		}
		return
	}

	w.sectionHeader(sb, "OLS REGRESSION")

	sb.WriteString(fmt.Sprintf("  Dependent:    %s\n", result.Dependent))
	sb.WriteString(fmt.Sprintf("  Independent:  %s\n", strings.Join(result.Independent, ", ")))
	sb.WriteString(w.printer.Sprintf("  Observations: %d\n", result.N))
	sb.WriteString(fmt.Sprintf("  R-squared:    %s (adjusted %s)\n",
		formatStat(result.RSquared), formatStat(result.AdjRSquared)))
	sb.WriteString(fmt.Sprintf("  F-statistic:  %s (p = %s)\n",
		formatStat(result.FStatistic), formatPValue(result.FPValue)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  %-20s %12s %12s %10s %10s\n",
		"Variable", "Estimate", "Std Error", "t", "p"))
	for _, c := range result.Coefficients {
		sb.WriteString(fmt.Sprintf("  %-20s %12s %12s %10s %10s\n",
			c.Name,
			formatStat(c.Estimate),
			formatStat(c.StdError),
			formatStat(c.TValue),
			formatPValue(c.PValue),
		))
	}
	sb.WriteString("\n")
}

// writeFigures writes the rendered figure paths.
func (w *SimpleWriter) writeFigures(sb *strings.Builder, figures []string) {
	if len(figures) == 0 && !w.showEmpty {
		return
	}

	w.sectionHeader(sb, "FIGURES")

	if len(figures) == 0 {
		sb.WriteString("  No figures rendered\n")
	} else {
		for _, path := range figures {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", path))
		}
	}
	sb.WriteString("\n")
}

// writeSignificance writes the hypothesis test outcome line.
func (w *SimpleWriter) writeSignificance(sb *strings.Builder, significant bool) {
	if significant {
		sb.WriteString(fmt.Sprintf("  Result:       SIGNIFICANT at alpha = %v\n\n", model.SignificanceLevel))
	} else {
		sb.WriteString(fmt.Sprintf("  Result:       not significant at alpha = %v\n\n", model.SignificanceLevel))
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by thesiskit\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
