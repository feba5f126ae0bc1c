package dataset

import (
	"testing"
)

// TestCompare tests structural dataset comparison.
func TestCompare(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.csv", "age,city,extra\n20,Oslo,x\n30,Bergen,y\n")
	pathB := writeFile(t, dir, "b.csv", "age,city,added\n40,Oslo,1\n50,Stavanger,2\n60,Oslo,3\n")

	a, err := Load(pathA, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Load(pathB, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := Compare(a, b)

	t.Run("shapes", func(t *testing.T) {
		t.Parallel()
		if result.ShapeA != [2]int{2, 3} {
			t.Errorf("expected shape A [2 3], got %v", result.ShapeA)
		}
		if result.ShapeB != [2]int{3, 3} {
			t.Errorf("expected shape B [3 3], got %v", result.ShapeB)
		}
	})

	t.Run("column partitions", func(t *testing.T) {
		t.Parallel()
		if len(result.CommonColumns) != 2 {
			t.Errorf("expected 2 common columns, got %v", result.CommonColumns)
		}
		if len(result.OnlyA) != 1 || result.OnlyA[0] != "extra" {
			t.Errorf("expected only A [extra], got %v", result.OnlyA)
		}
		if len(result.OnlyB) != 1 || result.OnlyB[0] != "added" {
			t.Errorf("expected only B [added], got %v", result.OnlyB)
		}
	})

	t.Run("numeric column compares means", func(t *testing.T) {
		t.Parallel()
		cc, ok := result.Columns["age"]
		if !ok {
			t.Fatal("expected comparison for age")
		}
		if cc.MeanA == nil || *cc.MeanA != 25 {
			t.Errorf("expected mean A 25, got %v", cc.MeanA)
		}
		if cc.MeanB == nil || *cc.MeanB != 50 {
			t.Errorf("expected mean B 50, got %v", cc.MeanB)
		}
		if cc.MeanDifference == nil || *cc.MeanDifference != 25 {
			t.Errorf("expected difference 25, got %v", cc.MeanDifference)
		}
	})

	t.Run("string column compares values", func(t *testing.T) {
		t.Parallel()
		cc, ok := result.Columns["city"]
		if !ok {
			t.Fatal("expected comparison for city")
		}
		if cc.UniqueA == nil || *cc.UniqueA != 2 {
			t.Errorf("expected 2 unique in A, got %v", cc.UniqueA)
		}
		if cc.UniqueB == nil || *cc.UniqueB != 2 {
			t.Errorf("expected 2 unique in B, got %v", cc.UniqueB)
		}
		if cc.CommonValues == nil || *cc.CommonValues != 1 {
			t.Errorf("expected 1 shared value, got %v", cc.CommonValues)
		}
	})
}

// TestBuildDictionary tests data dictionary generation.
func TestBuildDictionary(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "data.csv", "age,city\n20,Oslo\n30,Bergen\n40,Oslo\n,Oslo\n")
	d, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dict := d.BuildDictionary("survey", "pilot survey wave")

	t.Run("info", func(t *testing.T) {
		t.Parallel()
		if dict.Info.Name != "survey" {
			t.Errorf("expected name survey, got %q", dict.Info.Name)
		}
		if dict.Info.Rows != 4 || dict.Info.Cols != 2 {
			t.Errorf("expected 4x2, got %dx%d", dict.Info.Rows, dict.Info.Cols)
		}
	})

	t.Run("numeric variable", func(t *testing.T) {
		t.Parallel()
		age, ok := dict.Variables["age"]
		if !ok {
			t.Fatal("expected entry for age")
		}
		if age.MissingCount != 1 || age.MissingPercent != 25 {
			t.Errorf("expected 1 missing (25%%), got %d (%v%%)", age.MissingCount, age.MissingPercent)
		}
		if age.Min == nil || *age.Min != 20 {
			t.Errorf("expected min 20, got %v", age.Min)
		}
		if age.Mean == nil || *age.Mean != 30 {
			t.Errorf("expected mean 30, got %v", age.Mean)
		}
	})

	t.Run("string variable", func(t *testing.T) {
		t.Parallel()
		city, ok := dict.Variables["city"]
		if !ok {
			t.Fatal("expected entry for city")
		}
		if city.UniqueValues == nil || *city.UniqueValues != 2 {
			t.Errorf("expected 2 unique values, got %v", city.UniqueValues)
		}
		if city.MostCommon != "Oslo" {
			t.Errorf("expected mode Oslo, got %q", city.MostCommon)
		}
		if city.Min != nil {
			t.Error("string variable should not carry numeric stats")
		}
	})
}

// TestCleanNames tests column name normalization.
func TestCleanNames(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "data.csv",
		"First Name, Annual Income ($),x,X 1\na,1,2,3\n")
	d, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.CleanNames(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := d.Names()
	want := map[string]bool{
		"first_name":    true,
		"annual_income": true,
		"x":             true,
		"x_1":           true,
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected cleaned name %q in %v", n, names)
		}
	}
}
