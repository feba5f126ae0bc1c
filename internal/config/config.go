package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the defaults of the original thesis workflow where one
// exists (plot resolution, sample dataset size, server port) and otherwise
// pick conservative values for a single-user local tool.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "thesiskit"

	// DefaultPlotWidth and DefaultPlotHeight are the PNG figure dimensions
	// in pixels. 900x600 keeps figures readable when embedded in a thesis
	// document at half-page width.
	DefaultPlotWidth  = 900
	DefaultPlotHeight = 600

	// DefaultBins is the histogram bin count for distribution plots.
	DefaultBins = 30

	// DefaultConcurrency bounds concurrent figure rendering. Rendering is
	// CPU-bound; four keeps a laptop responsive while still overlapping work.
	DefaultConcurrency = 4

	// DefaultServerHost binds the web interface to loopback only.
	// The interface has no authentication; it is meant for one local user.
	DefaultServerHost = "127.0.0.1"

	// DefaultServerPort is the web interface port. 5000 matches the port
	// the original workflow used, so existing bookmarks keep working.
	DefaultServerPort = 5000

	// DefaultSampleRows is the row count for generated sample datasets.
	DefaultSampleRows = 1000

	// DefaultSampleSeed seeds the sample data generator so demonstration
	// datasets are reproducible across runs.
	DefaultSampleSeed = 42

	// DefaultResultsFile is the JSON file analysis results are saved to.
	DefaultResultsFile = "analysis_results.json"

	// DefaultProcessedFile is the default output of the preprocess command.
	DefaultProcessedFile = "processed_data.csv"

	// DefaultFrameworksDir is where the web interface writes framework
	// Markdown files, relative to the working directory.
	DefaultFrameworksDir = "frameworks"

	// DefaultFiguresDir is where figures are written, relative to the
	// working directory.
	DefaultFiguresDir = "figures"
)

// Config holds all configuration options for thesiskit.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection.
type Config struct {
	// Targets is the list of data files to operate on.
	Targets []string

	// OutputDir is the directory for analysis results and processed data.
	// Empty means the current working directory.
	OutputDir string

	// FiguresDir is the directory figures are rendered into.
	FiguresDir string

	// FrameworksDir is the directory framework Markdown files are written to.
	FrameworksDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the plain text
	// report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the plain
	// text report. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// PlotWidth and PlotHeight are figure dimensions in pixels.
	PlotWidth  int
	PlotHeight int

	// Bins is the histogram bin count for distribution plots.
	Bins int

	// Concurrency bounds concurrent figure rendering.
	Concurrency int

	// ServerHost and ServerPort configure the web interface listener.
	ServerHost string
	ServerPort int

	// SampleDataPath is an optional dataset the web interface analyzes on
	// the analyze-sample-data route. When empty or missing, a reproducible
	// generated sample is used instead.
	SampleDataPath string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .thesiskit in the current directory,
	// config.yaml in the XDG config directory, and .thesiskit in the
	// user's home directory, in that order.
	ConfigFilePath string

	// Profiles holds per-dataset load profiles from the config file.
	Profiles *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		FiguresDir:    DefaultFiguresDir,
		FrameworksDir: DefaultFrameworksDir,
		PlotWidth:     DefaultPlotWidth,
		PlotHeight:    DefaultPlotHeight,
		Bins:          DefaultBins,
		Concurrency:   DefaultConcurrency,
		ServerHost:    DefaultServerHost,
		ServerPort:    DefaultServerPort,
	}
}

// XDGConfigDir returns the XDG config directory for thesiskit, one of
// the locations searched for the configuration file.
// On Linux: ~/.config/thesiskit
// On macOS: ~/Library/Application Support/thesiskit
// On Windows: %LOCALAPPDATA%\thesiskit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.PlotWidth <= 0 || c.PlotHeight <= 0 {
		return ErrInvalidPlotSize
	}

	if c.Bins <= 0 {
		return ErrInvalidBins
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return ErrInvalidPort
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// Profile returns the load profile for a data file path.
// Profiles are keyed by base file name in the config file; the defaults
// profile applies when no specific entry matches.
func (c *Config) Profile(path string) Profile {
	if c.Profiles == nil {
		return Profile{}
	}
	return c.Profiles.ProfileFor(filepath.Base(path))
}
