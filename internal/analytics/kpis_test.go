package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finpulse/internal/dataset"
	"finpulse/pkg/contracts/domain"
)

func intp(v int) *int { return &v }

func usageRec(country, used string, year *int) domain.SurveyRecord {
	return domain.SurveyRecord{Country: country, FintechUsed: used, Year: year}
}

func TestKPIs(t *testing.T) {
	// 10 respondents, 4 users split 2/2 across 2020 and 2021.
	ds := dataset.FromRecords([]domain.SurveyRecord{
		usageRec("Kenya", "Yes", intp(2020)),
		usageRec("Kenya", "yes", intp(2020)),
		usageRec("Kenya", "No", intp(2020)),
		usageRec("Nigeria", "No", intp(2020)),
		usageRec("Nigeria", "no", intp(2020)),
		usageRec("Nigeria", "YES", intp(2021)),
		usageRec("Ghana", "yEs", intp(2021)),
		usageRec("Ghana", "No", intp(2021)),
		usageRec("Ghana", "No", intp(2021)),
		usageRec("Kenya", "No", intp(2021)),
	})

	got := KPIs(ds)

	assert.Equal(t, 10, got.TotalRespondents)
	assert.Equal(t, 4, got.FintechUsers, "usage matching is case-insensitive")
	assert.InDelta(t, 40.0, got.AdoptionRate, 1e-9)
	assert.InDelta(t, 2.0, got.MonthlyAvgUsers, 1e-9, "mean of per-year user counts")
	assert.Equal(t, 3, got.TotalCountries)
}

func TestKPIsEmptyDataset(t *testing.T) {
	got := KPIs(dataset.FromRecords(nil))

	assert.Equal(t, 0, got.TotalRespondents)
	assert.Equal(t, 0, got.FintechUsers)
	assert.Zero(t, got.AdoptionRate, "zero respondents does not divide by zero")
	assert.Zero(t, got.MonthlyAvgUsers)
	assert.Equal(t, 0, got.TotalCountries)
}

func TestKPIsNoUsers(t *testing.T) {
	ds := dataset.FromRecords([]domain.SurveyRecord{
		usageRec("Kenya", "No", intp(2020)),
		usageRec("Ghana", "No", intp(2021)),
	})

	got := KPIs(ds)

	assert.Equal(t, 2, got.TotalRespondents)
	assert.Zero(t, got.AdoptionRate)
	assert.Zero(t, got.MonthlyAvgUsers, "no user-bearing years")
}

func TestKPIsUsersWithoutYears(t *testing.T) {
	ds := dataset.FromRecords([]domain.SurveyRecord{
		usageRec("Kenya", "Yes", nil),
		usageRec("Kenya", "Yes", intp(2020)),
	})

	got := KPIs(ds)

	assert.Equal(t, 2, got.FintechUsers)
	assert.InDelta(t, 1.0, got.MonthlyAvgUsers, 1e-9, "year-less users count toward usage but not the yearly mean")
}

func TestKPIsMissingColumns(t *testing.T) {
	ds := dataset.FromRecords([]domain.SurveyRecord{
		{Country: domain.UnknownValue, FintechUsed: domain.UnknownValue},
	}, dataset.ColFintechUsed, dataset.ColYear, dataset.ColCountry)

	got := KPIs(ds)

	assert.Equal(t, 1, got.TotalRespondents)
	assert.Equal(t, 0, got.FintechUsers, "absent usage column degrades to zero users")
	assert.Zero(t, got.MonthlyAvgUsers)
	assert.Equal(t, 0, got.TotalCountries, "absent country column degrades to zero countries")
}
