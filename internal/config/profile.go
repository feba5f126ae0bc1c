package config

// Profile holds dataset-specific load settings for a single data file.
// This allows customizing parsing per dataset without CLI flags, which
// matters when the same files are reloaded across many analysis sessions.
type Profile struct {
	// Delimiter is the field separator for delimited files.
	// Empty means comma for .csv and tab for .tsv.
	Delimiter string `yaml:"delimiter,omitempty"`

	// NoHeader indicates the file has no header row; columns are then
	// named X0, X1, ... by the loader.
	NoHeader bool `yaml:"noHeader,omitempty"`

	// NAValues are additional strings treated as missing values, on top
	// of the standard empty string, "NA", and "NaN".
	NAValues []string `yaml:"naValues,omitempty"`

	// Types overrides detected column storage types.
	// Valid values: string, int, float, bool.
	Types map[string]string `yaml:"types,omitempty"`
}

// DelimiterRune returns the delimiter as a rune, or 0 when unset so the
// loader can pick the extension default.
func (p Profile) DelimiterRune() rune {
	if p.Delimiter == "" {
		return 0
	}
	return []rune(p.Delimiter)[0]
}

// File represents the structure of the .thesiskit configuration file.
type File struct {
	// Datasets maps data file base names to their load profiles.
	Datasets map[string]Profile `yaml:"datasets,omitempty"`

	// Defaults contains the default profile applied to all datasets
	// unless overridden in a dataset-specific profile.
	Defaults Profile `yaml:"defaults,omitempty"`

	// Server holds web interface settings.
	Server ServerFile `yaml:"server,omitempty"`

	// Output holds output directory settings.
	Output OutputFile `yaml:"output,omitempty"`
}

// ServerFile holds web interface settings from the config file.
type ServerFile struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`

	// SampleData is the dataset analyzed by the analyze-sample-data route.
	SampleData string `yaml:"sampleData,omitempty"`
}

// OutputFile holds output directory settings from the config file.
type OutputFile struct {
	Results    string `yaml:"results,omitempty"`
	Figures    string `yaml:"figures,omitempty"`
	Frameworks string `yaml:"frameworks,omitempty"`
}

// ProfileFor returns the load profile for a data file base name.
// It merges the dataset-specific profile over the defaults.
func (cf *File) ProfileFor(name string) Profile {
	result := cf.Defaults

	p, ok := cf.Datasets[name]
	if !ok {
		return result
	}

	if p.Delimiter != "" {
		result.Delimiter = p.Delimiter
	}
	if p.NoHeader {
		result.NoHeader = true
	}
	if len(p.NAValues) > 0 {
		result.NAValues = p.NAValues
	}
	if len(p.Types) > 0 {
		if result.Types == nil {
			result.Types = make(map[string]string)
		}
		for k, v := range p.Types {
			result.Types[k] = v
		}
	}

	return result
}
