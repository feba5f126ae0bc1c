package dataset

import (
	"sort"

	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/stats"
)

// Compare analyzes the structural differences between two datasets:
// shapes, shared and exclusive columns, and per-column drift. Numeric
// columns compare means; other columns compare cardinality and value
// overlap. Useful for checking a cleaned dataset against its raw source
// or two survey waves against each other.
func Compare(a, b *Dataset) *model.Comparison {
	result := &model.Comparison{
		ShapeA: [2]int{a.Rows(), a.Cols()},
		ShapeB: [2]int{b.Rows(), b.Cols()},
	}

	namesB := make(map[string]struct{}, b.Cols())
	for _, n := range b.Names() {
		namesB[n] = struct{}{}
	}
	namesA := make(map[string]struct{}, a.Cols())
	for _, n := range a.Names() {
		namesA[n] = struct{}{}
	}

	for _, n := range a.Names() {
		if _, ok := namesB[n]; ok {
			result.CommonColumns = append(result.CommonColumns, n)
		} else {
			result.OnlyA = append(result.OnlyA, n)
		}
	}
	for _, n := range b.Names() {
		if _, ok := namesA[n]; !ok {
			result.OnlyB = append(result.OnlyB, n)
		}
	}
	sort.Strings(result.CommonColumns)
	sort.Strings(result.OnlyA)
	sort.Strings(result.OnlyB)

	for _, n := range result.CommonColumns {
		cc := compareColumn(a, b, n)
		if cc == (model.ColumnComparison{}) {
			continue
		}
		if result.Columns == nil {
			result.Columns = make(map[string]model.ColumnComparison)
		}
		result.Columns[n] = cc
	}

	return result
}

// compareColumn compares one column shared by both datasets.
func compareColumn(a, b *Dataset, name string) model.ColumnComparison {
	numericA := contains(a.NumericColumns(), name)
	numericB := contains(b.NumericColumns(), name)

	if numericA && numericB {
		va, errA := a.NumericValues(name)
		vb, errB := b.NumericValues(name)
		if errA != nil || errB != nil || len(va) == 0 || len(vb) == 0 {
			return model.ColumnComparison{}
		}
		meanA := stats.Mean(va)
		meanB := stats.Mean(vb)
		diff := meanB - meanA
		return model.ColumnComparison{
			MeanA:          &meanA,
			MeanB:          &meanB,
			MeanDifference: &diff,
		}
	}

	countsA, errA := a.ValueCounts(name)
	countsB, errB := b.ValueCounts(name)
	if errA != nil || errB != nil {
		return model.ColumnComparison{}
	}

	uniqueA := len(countsA)
	uniqueB := len(countsB)
	common := 0
	for v := range countsA {
		if _, ok := countsB[v]; ok {
			common++
		}
	}

	return model.ColumnComparison{
		UniqueA:      &uniqueA,
		UniqueB:      &uniqueB,
		CommonValues: &common,
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
