package domain

// KPIBundle is the fixed set of summary statistics computed once per
// filtered dataset and shown as the dashboard KPI cards.
type KPIBundle struct {
	TotalRespondents int     `json:"total_respondents"`
	FintechUsers     int     `json:"fintech_users"`
	AdoptionRate     float64 `json:"adoption_rate"`
	MonthlyAvgUsers  float64 `json:"monthly_avg_users"`
	TotalCountries   int     `json:"total_countries"`
}

// ValueCount pairs a categorical value with its occurrence count.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// YearPoint is one year of the adoption time series.
type YearPoint struct {
	Year         int     `json:"year"`
	Total        int     `json:"total"`
	FintechUsers int     `json:"fintech_users"`
	AdoptionRate float64 `json:"adoption_rate"`
}

// CrosstabRow holds the per-split counts for one group value.
type CrosstabRow struct {
	Group  string         `json:"group"`
	Counts map[string]int `json:"counts"`
}

// Crosstab is a two-dimensional count table over two categorical columns.
// Rows appear in first-encounter order of the group column; Splits are
// sorted ascending and every row carries a count (possibly 0) for each.
type Crosstab struct {
	GroupColumn string        `json:"group_column"`
	SplitColumn string        `json:"split_column"`
	Splits      []string      `json:"splits"`
	Rows        []CrosstabRow `json:"rows"`
}

// HistogramBin is one bucket of a numeric distribution.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// FilterOptions is the user-facing filter surface: each categorical list
// starts with the AllValues sentinel followed by the distinct observed
// values sorted ascending; year bounds are nil when no year was observed.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Genders   []string `json:"genders"`
	AgeGroups []string `json:"age_groups"`
	Locations []string `json:"locations"`
	YearMin   *int     `json:"year_min,omitempty"`
	YearMax   *int     `json:"year_max,omitempty"`
}

// OverviewPayload backs the Overview dashboard page.
type OverviewPayload struct {
	KPIs          KPIBundle    `json:"kpis"`
	CountryCounts []ValueCount `json:"country_counts"`
}

// TrendsPayload backs the Trends dashboard page.
type TrendsPayload struct {
	Series []YearPoint `json:"series"`
}

// DemographicsPayload backs the Demographics dashboard page.
type DemographicsPayload struct {
	GenderUsage     Crosstab     `json:"gender_usage"`
	AgeDistribution []ValueCount `json:"age_distribution"`
	PhoneTypeByArea Crosstab     `json:"phone_type_by_area"`
}

// UseCasesPayload backs the use cases and transactions page.
type UseCasesPayload struct {
	TopUseCases  []ValueCount   `json:"top_use_cases"`
	Transactions []HistogramBin `json:"transactions"`
}

// ConclusionPayload backs the Conclusion page tiles.
type ConclusionPayload struct {
	TopUseCases   []string `json:"top_use_cases"`
	TopBarriers   []string `json:"top_barriers"`
	PercentActive float64  `json:"percent_active"`
}
