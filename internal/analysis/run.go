package analysis

import (
	"github.com/thesiskit/thesiskit/internal/model"
)

// Request selects the analyses to run. Exploratory statistics always
// run; the rest are opt-in.
type Request struct {
	// Correlation requests the Pearson correlation matrix.
	Correlation bool

	// TestColumn and GroupColumn request a hypothesis test of
	// TestColumn between the levels of GroupColumn. A two-level
	// grouping column runs a t-test, more levels run a one-way ANOVA.
	TestColumn  string
	GroupColumn string

	// Welch selects the unequal-variance t-test variant.
	Welch bool

	// Dependent and Independent request an OLS regression.
	Dependent   string
	Independent []string
}

// Run performs the requested analyses and collects the results into a
// report. Individual analysis failures do not stop the run; the first
// error message is recorded on the report and the rest are logged.
func (a *Analyzer) Run(req Request) *model.AnalysisReport {
	report := model.NewAnalysisReport(a.data.Path())
	report.Rows = a.data.Rows()
	report.Cols = a.data.Cols()
	report.Columns = a.data.Names()

	fail := func(name string, err error) {
		a.logger.Warn("analysis failed", "analysis", name, "error", err)
		if report.ErrorMessage == "" {
			report.ErrorMessage = err.Error()
		}
	}

	report.Exploratory = a.Exploratory()
	report.PerformedAnalyses = append(report.PerformedAnalyses, "exploratory")

	if req.Correlation {
		result, err := a.Correlation()
		if err != nil {
			fail("correlation", err)
		} else {
			report.Correlation = result
			report.PerformedAnalyses = append(report.PerformedAnalyses, "correlation")
		}
	}

	if req.TestColumn != "" && req.GroupColumn != "" {
		a.runTest(report, req, fail)
	}

	if req.Dependent != "" {
		result, err := a.Regression(req.Dependent, req.Independent)
		if err != nil {
			fail("regression", err)
		} else {
			report.Regression = result
			report.PerformedAnalyses = append(report.PerformedAnalyses, "regression")
		}
	}

	return report
}

// runTest chooses between a t-test and ANOVA based on how many levels
// the grouping column has, mirroring how a researcher would pick the
// test by hand.
func (a *Analyzer) runTest(report *model.AnalysisReport, req Request, fail func(string, error)) {
	levels, err := a.GroupLevels(req.GroupColumn)
	if err != nil {
		fail("group levels", err)
		return
	}

	if len(levels) == 2 {
		result, err := a.TTest(req.TestColumn, req.GroupColumn, req.Welch)
		if err != nil {
			fail("t_test", err)
			return
		}
		report.TTest = result
		report.PerformedAnalyses = append(report.PerformedAnalyses, "t_test")
		return
	}

	result, err := a.ANOVA(req.TestColumn, req.GroupColumn)
	if err != nil {
		fail("anova", err)
		return
	}
	report.ANOVA = result
	report.PerformedAnalyses = append(report.PerformedAnalyses, "anova")
}
