package model

import "time"

// frameworkIDLayout is the timestamp layout embedded in framework IDs.
// IDs look like "framework_20250115_142301", matching the file names the
// web interface writes under the frameworks directory.
const frameworkIDLayout = "20060102_150405"

// DefaultFrameworkTitle is used when a submitted framework has no title.
const DefaultFrameworkTitle = "Untitled Framework"

// Framework is the thesis-planning form payload submitted by the web
// interface. The JSON field names match the form's input names; no schema
// is enforced beyond decoding, so absent fields simply stay empty.
type Framework struct {
	// ResearchArea is the field or discipline of the thesis.
	ResearchArea string `json:"researchArea"`

	// TentativeTitle is the working title of the thesis.
	TentativeTitle string `json:"tentativeTitle"`

	// ProblemStatement describes the research problem.
	ProblemStatement string `json:"problemStatement"`

	// Objectives lists the research objectives.
	Objectives []string `json:"objectives"`

	// KeyQuestions lists the key research questions.
	KeyQuestions []string `json:"keyQuestions"`

	// Methodology describes the methodological approach.
	Methodology string `json:"methodology"`

	// Timeframe is the planned research timeframe.
	Timeframe string `json:"timeframe"`

	// Resources describes required resources.
	Resources string `json:"resources"`
}

// Title returns the tentative title, or DefaultFrameworkTitle when empty.
func (f Framework) Title() string {
	if f.TentativeTitle == "" {
		return DefaultFrameworkTitle
	}
	return f.TentativeTitle
}

// FrameworkRecord is a saved framework with its identity and creation time.
// Records live in an in-process map for the lifetime of the server; the
// rendered Markdown file is the only artifact that survives process exit.
type FrameworkRecord struct {
	// ID is the timestamp-derived record identifier.
	ID string `json:"id"`

	// Title is the display title captured at save time.
	Title string `json:"title"`

	// CreatedAt is when the record was saved.
	CreatedAt time.Time `json:"created_at"`

	// Data is the submitted framework payload.
	Data Framework `json:"data"`
}

// NewFrameworkRecord creates a record for the given framework, deriving
// the ID from the creation time.
func NewFrameworkRecord(f Framework, createdAt time.Time) *FrameworkRecord {
	return &FrameworkRecord{
		ID:        FrameworkID(createdAt),
		Title:     f.Title(),
		CreatedAt: createdAt,
		Data:      f,
	}
}

// FrameworkID derives a record identifier from a timestamp.
func FrameworkID(t time.Time) string {
	return "framework_" + t.Format(frameworkIDLayout)
}
