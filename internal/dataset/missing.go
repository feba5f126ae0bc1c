package dataset

// MissingCounts counts missing values per column.
// A value is missing when the dataframe marked it NaN during loading or,
// for string columns, when the cell is empty.
func (d *Dataset) MissingCounts() map[string]int {
	counts := make(map[string]int, d.df.Ncol())
	for _, name := range d.df.Names() {
		counts[name] = d.missingInColumn(name)
	}
	return counts
}

// MissingInColumn counts missing values in one column.
func (d *Dataset) MissingInColumn(name string) (int, error) {
	if !d.HasColumn(name) {
		return 0, ErrColumnNotFound
	}
	return d.missingInColumn(name), nil
}

func (d *Dataset) missingInColumn(name string) int {
	col := d.df.Col(name)
	records := col.Records()
	nan := col.IsNaN()

	count := 0
	for i := range records {
		if nan[i] || records[i] == "" {
			count++
		}
	}
	return count
}

// TotalMissing counts missing values across the whole dataset.
func (d *Dataset) TotalMissing() int {
	total := 0
	for _, count := range d.MissingCounts() {
		total += count
	}
	return total
}

// CompleteRows returns the indexes of rows with no missing values in the
// given columns. Correlation and group tests use complete-case analysis,
// so rows with any missing value in the involved columns are excluded.
func (d *Dataset) CompleteRows(columns []string) []int {
	nrow := d.df.Nrow()
	complete := make([]bool, nrow)
	for i := range complete {
		complete[i] = true
	}

	for _, name := range columns {
		if !d.HasColumn(name) {
			continue
		}
		col := d.df.Col(name)
		records := col.Records()
		nan := col.IsNaN()
		for i := 0; i < nrow; i++ {
			if nan[i] || records[i] == "" {
				complete[i] = false
			}
		}
	}

	indexes := make([]int, 0, nrow)
	for i, ok := range complete {
		if ok {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
