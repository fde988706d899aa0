package analytics

import (
	"finpulse/internal/dataset"
	"finpulse/pkg/contracts/domain"
)

// KPIs computes the headline statistics for a (possibly filtered) dataset.
// All rates guard division by zero and report 0 instead. A missing
// Fintech_Used, Year or Country column degrades the dependent figure to 0.
func KPIs(ds *dataset.Dataset) domain.KPIBundle {
	bundle := domain.KPIBundle{TotalRespondents: ds.Len()}

	hasUsage := ds.HasColumn(dataset.ColFintechUsed)
	hasYear := ds.HasColumn(dataset.ColYear)
	hasCountry := ds.HasColumn(dataset.ColCountry)

	usersByYear := make(map[int]int)
	countries := make(map[string]struct{})

	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		if hasCountry {
			countries[rec.Country] = struct{}{}
		}
		if !hasUsage || !rec.IsFintechUser() {
			continue
		}
		bundle.FintechUsers++
		if hasYear && rec.Year != nil {
			usersByYear[*rec.Year]++
		}
	}

	if bundle.TotalRespondents > 0 {
		bundle.AdoptionRate = float64(bundle.FintechUsers) / float64(bundle.TotalRespondents) * 100
	}

	if hasYear && len(usersByYear) > 0 {
		sum := 0
		for _, n := range usersByYear {
			sum += n
		}
		bundle.MonthlyAvgUsers = float64(sum) / float64(len(usersByYear))
	}

	bundle.TotalCountries = len(countries)
	return bundle
}
