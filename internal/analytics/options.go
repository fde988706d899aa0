package analytics

import (
	"sort"

	"finpulse/internal/dataset"
	"finpulse/pkg/contracts/domain"
)

// FilterOptions derives the user-facing filter surface from the full
// dataset: each categorical list is the All sentinel followed by the
// distinct observed values sorted ascending, and the year slider bounds are
// the observed min and max.
func FilterOptions(ds *dataset.Dataset) domain.FilterOptions {
	opts := domain.FilterOptions{
		Countries: distinctSorted(ds, dataset.ColCountry),
		Genders:   distinctSorted(ds, dataset.ColGender),
		AgeGroups: distinctSorted(ds, dataset.ColAgeGroup),
		Locations: distinctSorted(ds, dataset.ColUrbanRural),
	}

	if ds.HasColumn(dataset.ColYear) {
		for i := 0; i < ds.Len(); i++ {
			rec := ds.At(i)
			if rec.Year == nil {
				continue
			}
			y := *rec.Year
			if opts.YearMin == nil || y < *opts.YearMin {
				opts.YearMin = intPtr(y)
			}
			if opts.YearMax == nil || y > *opts.YearMax {
				opts.YearMax = intPtr(y)
			}
		}
	}
	return opts
}

func distinctSorted(ds *dataset.Dataset, column string) []string {
	out := []string{domain.AllValues}
	if !ds.HasColumn(column) {
		return out
	}

	seen := make(map[string]struct{})
	for i := 0; i < ds.Len(); i++ {
		if v, ok := categoricalValue(ds.At(i), column); ok {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return append(out, values...)
}

// Histogram buckets the positive values of a numeric column into bins of
// equal width, for the transactions distribution view. Non-positive values
// are excluded; no positive values yields nil. bins <= 0 defaults to 30.
func Histogram(ds *dataset.Dataset, column string, bins int) []domain.HistogramBin {
	if !ds.HasColumn(column) {
		return nil
	}
	if bins <= 0 {
		bins = 30
	}

	var values []float64
	for i := 0; i < ds.Len(); i++ {
		if v, ok := numericValue(ds.At(i), column); ok && v > 0 {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		return []domain.HistogramBin{{Low: lo, High: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins { // the maximum lands in the last bin
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

func numericValue(rec domain.SurveyRecord, column string) (float64, bool) {
	switch column {
	case dataset.ColMonthlyTransactions:
		return rec.MonthlyTransactions, true
	case dataset.ColAvgTransactionValue:
		return rec.AvgTransactionValue, true
	default:
		return 0, false
	}
}

func intPtr(v int) *int {
	return &v
}
