package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/thesiskit/thesiskit/internal/model"
)

// notSpecified is the placeholder for fields the web form left empty.
const notSpecified = "Not specified"

// WriteFramework renders a saved thesis framework as a Markdown planning
// document. This is the file the web interface writes under the
// frameworks directory; the record itself lives only in memory.
func WriteFramework(w io.Writer, record *model.FrameworkRecord) error {
	md := markdown.NewMarkdown(w)
	f := record.Data

	md.H1("Thesis Writing Framework")
	md.PlainText("")

	md.H2("Research Overview")
	md.PlainText("")
	md.PlainTextf("**Field/Area**: %s", orDefault(f.ResearchArea))
	md.PlainTextf("**Tentative Title**: %s", orDefault(f.TentativeTitle))
	md.PlainText("")

	md.H2("Problem Statement")
	md.PlainText("")
	md.PlainText(orDefault(f.ProblemStatement))
	md.PlainText("")

	md.H2("Research Objectives")
	md.PlainText("")
	writeNumbered(md, f.Objectives)

	md.H2("Key Research Questions")
	md.PlainText("")
	writeNumbered(md, f.KeyQuestions)

	md.H2("Methodology Approach")
	md.PlainText("")
	md.PlainText(orDefault(f.Methodology))
	md.PlainText("")

	md.H2("Timeline and Resources")
	md.PlainText("")
	md.PlainTextf("**Timeframe**: %s", orDefault(f.Timeframe))
	md.PlainTextf("**Required Resources**: %s", orDefault(f.Resources))
	md.PlainText("")

	md.H2("Recommended Workflow")
	md.PlainText("")
	md.OrderedList(
		"**Data Collection**: store raw data files alongside your project",
		"**Preprocessing**: clean and prepare data with `thesiskit preprocess`",
		"**Analysis**: run statistical tests with `thesiskit analyze`",
		"**Visualization**: render publication figures with `thesiskit plot`",
		"**Documentation**: keep this framework document up to date as the research evolves",
	)
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by thesiskit*")
	md.PlainTextf("*Created: %s*", record.CreatedAt.Format("2006-01-02 15:04:05"))

	return md.Build()
}

// FrameworkMarkdown renders a framework record to a Markdown string.
func FrameworkMarkdown(record *model.FrameworkRecord) (string, error) {
	var sb strings.Builder
	if err := WriteFramework(&sb, record); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// writeNumbered writes non-blank items as a numbered list, or the
// placeholder when nothing was entered.
func writeNumbered(md *markdown.Markdown, items []string) {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		md.PlainText(notSpecified)
		md.PlainText("")
		return
	}
	md.OrderedList(kept...)
	md.PlainText("")
}

// orDefault returns the value, or the placeholder when blank.
func orDefault(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSpecified
	}
	return value
}
