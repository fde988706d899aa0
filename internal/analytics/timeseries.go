package analytics

import (
	"sort"

	"finpulse/internal/dataset"
	"finpulse/pkg/contracts/domain"
)

// TimeSeries computes per-year respondent totals, fintech user counts and
// adoption rates, sorted ascending by year with no duplicate years. Years
// with respondents but no fintech users are kept with a count of 0. Records
// without a year are excluded; a missing Year column yields nil.
func TimeSeries(ds *dataset.Dataset) []domain.YearPoint {
	if !ds.HasColumn(dataset.ColYear) {
		return nil
	}

	totals := make(map[int]int)
	users := make(map[int]int)
	hasUsage := ds.HasColumn(dataset.ColFintechUsed)

	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		if rec.Year == nil {
			continue
		}
		totals[*rec.Year]++
		if hasUsage && rec.IsFintechUser() {
			users[*rec.Year]++
		}
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	series := make([]domain.YearPoint, 0, len(years))
	for _, y := range years {
		point := domain.YearPoint{
			Year:         y,
			Total:        totals[y],
			FintechUsers: users[y],
		}
		if point.Total > 0 {
			point.AdoptionRate = float64(point.FintechUsers) / float64(point.Total) * 100
		}
		series = append(series, point)
	}
	return series
}
