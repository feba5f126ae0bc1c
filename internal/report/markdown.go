package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/thesiskit/thesiskit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeExploratory(md, report.Exploratory)
	w.writeCorrelation(md, report.Correlation)
	w.writeTTest(md, report.TTest)
	w.writeANOVA(md, report.ANOVA)
	w.writeRegression(md, report.Regression)
	w.writeFigures(md, report.Figures)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with dataset information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("Data Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Data File", "`" + report.DataPath + "`"},
			{"Analysis Date", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
			{"Shape", fmt.Sprintf("%d rows x %d columns", report.Rows, report.Cols)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.AnalysisReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if !report.HasResults() {
		return "⚠️ No analyses performed"
	}
	return "✅ Complete"
}

// writeExploratory writes descriptive statistics and missing value counts.
func (w *MarkdownWriter) writeExploratory(md *markdown.Markdown, result *model.ExploratoryResult) {
	if result == nil {
		return
	}

	md.H2("Descriptive Statistics")
	md.PlainText("")

	if len(result.Numeric) == 0 {
		md.PlainText("No numeric columns found.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(result.Numeric))
		for _, name := range sortedKeys(result.Numeric) {
			s := result.Numeric[name]
			rows = append(rows, []string{
				name,
				strconv.Itoa(s.Count),
				formatStat(s.Mean),
				formatStat(s.StdDev),
				formatStat(s.Min),
				formatStat(s.Q25),
				formatStat(s.Median),
				formatStat(s.Q75),
				formatStat(s.Max),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(result.Categorical) > 0 {
		md.H2("Categorical Columns")
		md.PlainText("")

		rows := make([][]string, 0, len(result.Categorical))
		for _, name := range sortedKeys(result.Categorical) {
			c := result.Categorical[name]
			rows = append(rows, []string{
				name,
				strconv.Itoa(c.UniqueCount),
				c.MostCommon,
				strconv.Itoa(c.MostCommonCount),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Column", "Unique", "Most Common", "Frequency"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Missing Values")
	md.PlainText("")

	if len(result.MissingCounts) == 0 {
		md.Tip("No missing values detected.")
		md.PlainText("")
		return
	}

	items := make([]string, 0, len(result.MissingCounts))
	for _, name := range sortedKeys(result.MissingCounts) {
		items = append(items, fmt.Sprintf("%s: %d missing", name, result.MissingCounts[name]))
	}
	md.BulletList(items...)
	md.PlainText("")
	md.Importantf(
		"%d missing value(s) detected. Consider imputation before inferential analyses.",
		result.TotalMissing(),
	)
	md.PlainText("")
}

// writeCorrelation writes the correlation matrix section.
func (w *MarkdownWriter) writeCorrelation(md *markdown.Markdown, result *model.CorrelationResult) {
	if result == nil {
		return
	}

	md.H2("Correlation Matrix")
	md.PlainText("")
	md.PlainTextf("Pearson correlations over %d complete row(s).", result.CompleteRows)
	md.PlainText("")

	header := append([]string{""}, result.Columns...)
	rows := make([][]string, len(result.Columns))
	for i, name := range result.Columns {
		row := make([]string, 0, len(result.Columns)+1)
		row = append(row, "**"+name+"**")
		for j := range result.Columns {
			row = append(row, formatStat(result.At(i, j)))
		}
		rows[i] = row
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// writeTTest writes the t-test section with a significance alert.
func (w *MarkdownWriter) writeTTest(md *markdown.Markdown, result *model.TTestResult) {
	if result == nil {
		return
	}

	md.H2("Independent T-Test")
	md.PlainText("")

	variant := "Student"
	if result.Welch {
		variant = "Welch"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Test Column", result.TestColumn},
			{"Groups", fmt.Sprintf("%s (n=%d) vs %s (n=%d)", result.Group1, result.N1, result.Group2, result.N2)},
			{"Variant", variant},
			{"t-statistic", formatStat(result.TStatistic)},
			{"p-value", formatPValue(result.PValue)},
		},
	})
	md.PlainText("")

	w.writeSignificance(md, result.Significant, result.PValue)
}

// writeANOVA writes the ANOVA section with a significance alert.
func (w *MarkdownWriter) writeANOVA(md *markdown.Markdown, result *model.ANOVAResult) {
	if result == nil {
		return
	}

	md.H2("One-Way ANOVA")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Test Column", result.TestColumn},
			{"Group Column", result.GroupColumn},
			{"Groups", strconv.Itoa(len(result.Groups))},
			{"F-statistic", formatStat(result.FStatistic)},
			{"p-value", formatPValue(result.PValue)},
		},
	})
	md.PlainText("")

	w.writeSignificance(md, result.Significant, result.PValue)
}

// writeRegression writes the OLS regression section.
func (w *MarkdownWriter) writeRegression(md *markdown.Markdown, result *model.RegressionResult) {
	if result == nil {
		return
	}

	md.H2("OLS Regression")
	md.PlainText("")
	md.PlainTextf(
		"Dependent variable: **%s**, %d observation(s).",
		result.Dependent, result.N,
	)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"R-squared", formatStat(result.RSquared)},
			{"Adjusted R-squared", formatStat(result.AdjRSquared)},
			{"F-statistic", formatStat(result.FStatistic)},
			{"F p-value", formatPValue(result.FPValue)},
		},
	})
	md.PlainText("")

	rows := make([][]string, len(result.Coefficients))
	for i, c := range result.Coefficients {
		rows[i] = []string{
			c.Name,
			formatStat(c.Estimate),
			formatStat(c.StdError),
			formatStat(c.TValue),
			formatPValue(c.PValue),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Variable", "Estimate", "Std Error", "t", "p"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFigures lists the rendered figure paths.
func (w *MarkdownWriter) writeFigures(md *markdown.Markdown, figures []string) {
	if len(figures) == 0 {
		return
	}

	md.H2("Figures")
	md.PlainText("")
	md.BulletList(figures...)
	md.PlainText("")
}

// writeSignificance writes an alert describing the hypothesis test outcome.
func (w *MarkdownWriter) writeSignificance(md *markdown.Markdown, significant bool, p float64) {
	if significant {
		md.Importantf(
			"Statistically significant at alpha = %v (p = %s).",
			model.SignificanceLevel, formatPValue(p),
		)
	} else {
		md.Notef(
			"Not statistically significant at alpha = %v (p = %s).",
			model.SignificanceLevel, formatPValue(p),
		)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by thesiskit*")
}

// formatStat formats a statistic with four decimal places.
func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// formatPValue formats a p-value, switching to scientific notation for
// very small values so they do not round to zero.
func formatPValue(p float64) string {
	if math.IsNaN(p) {
		return "NaN"
	}
	if p > 0 && p < 0.0001 {
		return strconv.FormatFloat(p, 'e', 2, 64)
	}
	return strconv.FormatFloat(p, 'f', 4, 64)
}

// sortedKeys returns the map keys in lexicographic order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
