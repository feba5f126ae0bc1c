package dataset

import (
	"fmt"
	"strings"
)

// CleanNames normalizes column names to lower snake case: names are
// trimmed, lowercased, and runs of non-alphanumeric characters become a
// single underscore. Duplicate results get a numeric suffix so every
// column keeps a distinct name.
func (d *Dataset) CleanNames() error {
	names := d.df.Names()
	cleaned := make([]string, len(names))
	seen := make(map[string]int, len(names))

	for i, name := range names {
		c := cleanName(name)
		if c == "" {
			c = fmt.Sprintf("column_%d", i)
		}
		if n, dup := seen[c]; dup {
			seen[c] = n + 1
			c = fmt.Sprintf("%s_%d", c, n+1)
		}
		seen[c] = 1
		cleaned[i] = c
	}

	if err := d.df.SetNames(cleaned...); err != nil {
		return fmt.Errorf("failed to rename columns: %w", err)
	}
	return nil
}

// cleanName converts one column name to lower snake case.
func cleanName(name string) string {
	var b strings.Builder
	lastUnderscore := true // Suppress a leading underscore

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}
