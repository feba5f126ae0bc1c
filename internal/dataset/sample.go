package dataset

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// sampleMissingRate is the fraction of cells blanked in the age, income,
// and satisfaction columns so demonstrations exercise the missing value
// handling.
const sampleMissingRate = 0.05

// sampleEducation are the education levels of the generated sample.
var sampleEducation = []string{"High School", "Bachelor", "Master", "PhD"}

// sampleCategories are the group labels of the generated sample.
var sampleCategories = []string{"A", "B", "C"}

// GenerateSample creates a reproducible synthetic survey dataset for
// demonstrations and tests. The same rows and seed always produce the
// same data.
//
// Columns:
//   - id: sequential identifier
//   - age: normally distributed around 35, clamped to 18..80
//   - income: lognormal, right-skewed like real income data
//   - education: one of four levels
//   - satisfaction: integer score 1..10
//   - category: group label A, B, or C
//   - date: daily timestamps starting 2023-01-01
//
// Age, income, and satisfaction each have about 5% missing values.
func GenerateSample(rows int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Reproducibility wanted, not security

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	records := make([][]string, 0, rows+1)
	records = append(records, []string{
		"id", "age", "income", "education", "satisfaction", "category", "date",
	})

	for i := 0; i < rows; i++ {
		age := ""
		if rng.Float64() >= sampleMissingRate {
			v := int(math.Round(35 + 10*rng.NormFloat64()))
			if v < 18 {
				v = 18
			}
			if v > 80 {
				v = 80
			}
			age = strconv.Itoa(v)
		}

		income := ""
		if rng.Float64() >= sampleMissingRate {
			v := math.Exp(10.5 + 0.5*rng.NormFloat64())
			income = strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
		}

		satisfaction := ""
		if rng.Float64() >= sampleMissingRate {
			satisfaction = strconv.Itoa(rng.Intn(10) + 1)
		}

		records = append(records, []string{
			strconv.Itoa(i + 1),
			age,
			income,
			sampleEducation[rng.Intn(len(sampleEducation))],
			satisfaction,
			sampleCategories[rng.Intn(len(sampleCategories))],
			start.AddDate(0, 0, i).Format("2006-01-02"),
		})
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.NaNValues(defaultNAValues),
		dataframe.WithTypes(map[string]series.Type{
			"id":           series.Int,
			"age":          series.Int,
			"income":       series.Float,
			"education":    series.String,
			"satisfaction": series.Int,
			"category":     series.String,
			"date":         series.String,
		}),
	)

	return &Dataset{df: df}
}
