package analytics

import (
	"sort"

	"finpulse/internal/dataset"
	"finpulse/pkg/contracts/domain"
)

// nanFolded lists the columns whose literal "nan" strings are folded into
// the Unknown sentinel when counting frequencies. The fold deliberately
// covers only the free-text survey answers, matching the reports this
// dashboard replaces.
var nanFolded = map[string]bool{
	dataset.ColUseCase1: true,
	dataset.ColUseCase2: true,
	dataset.ColBarrier:  true,
}

// TopNByFrequency counts the values of a categorical column and returns the
// n most frequent, ordered by count descending with ties broken by first
// encounter. n <= 0 returns all values. An absent column yields nil.
func TopNByFrequency(ds *dataset.Dataset, column string, n int) []domain.ValueCount {
	counts := ValueCounts(ds, column)
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// ValueCounts counts every value of a categorical column, ordered by count
// descending with ties broken by first encounter.
func ValueCounts(ds *dataset.Dataset, column string) []domain.ValueCount {
	if !ds.HasColumn(column) {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for i := 0; i < ds.Len(); i++ {
		v, ok := categoricalValue(ds.At(i), column)
		if !ok {
			return nil
		}
		if nanFolded[column] && v == "nan" {
			v = domain.UnknownValue
		}
		if _, seen := counts[v]; !seen {
			firstSeen[v] = order
			order++
		}
		counts[v]++
	}

	out := make([]domain.ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, domain.ValueCount{Value: v, Count: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Value] < firstSeen[out[j].Value]
	})
	return out
}

// Crosstab builds a two-dimensional count table over two categorical
// columns. Group rows keep first-encounter order, split values are sorted
// ascending and every row carries a count for each split. Either column
// being absent yields an empty table.
func Crosstab(ds *dataset.Dataset, groupCol, splitCol string) domain.Crosstab {
	ct := domain.Crosstab{GroupColumn: groupCol, SplitColumn: splitCol}
	if !ds.HasColumn(groupCol) || !ds.HasColumn(splitCol) {
		return ct
	}

	type cell struct{ group, split string }
	counts := make(map[cell]int)
	splitSet := make(map[string]struct{})
	var groups []string
	seenGroup := make(map[string]bool)

	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		g, ok := categoricalValue(rec, groupCol)
		if !ok {
			return ct
		}
		s, ok := categoricalValue(rec, splitCol)
		if !ok {
			return ct
		}
		if !seenGroup[g] {
			seenGroup[g] = true
			groups = append(groups, g)
		}
		splitSet[s] = struct{}{}
		counts[cell{g, s}]++
	}

	for s := range splitSet {
		ct.Splits = append(ct.Splits, s)
	}
	sort.Strings(ct.Splits)

	for _, g := range groups {
		row := domain.CrosstabRow{Group: g, Counts: make(map[string]int, len(ct.Splits))}
		for _, s := range ct.Splits {
			row.Counts[s] = counts[cell{g, s}]
		}
		ct.Rows = append(ct.Rows, row)
	}
	return ct
}

// categoricalValue resolves a categorical column name to the record field.
// The bool result is false for names that are not categorical columns.
func categoricalValue(rec domain.SurveyRecord, column string) (string, bool) {
	switch column {
	case dataset.ColCountry:
		return rec.Country, true
	case dataset.ColGender:
		return rec.Gender, true
	case dataset.ColAgeGroup:
		return rec.AgeGroup, true
	case dataset.ColFintechUsed:
		return rec.FintechUsed, true
	case dataset.ColUseCase1:
		return rec.UseCase1, true
	case dataset.ColUseCase2:
		return rec.UseCase2, true
	case dataset.ColUrbanRural:
		return rec.UrbanRural, true
	case dataset.ColPhoneType:
		return rec.PhoneType, true
	case dataset.ColBarrier:
		return rec.Barrier, true
	default:
		return "", false
	}
}
