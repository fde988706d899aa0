package domain

import "strings"

// UnknownValue is the sentinel stored for missing categorical answers.
const UnknownValue = "Unknown"

// AllValues is the filter sentinel meaning "no constraint on this field".
const AllValues = "All"

// SurveyRecord is one fintech usage survey response after cleaning.
// String fields are never empty: missing answers are normalized to
// UnknownValue at load time. Year is nil when the answer was absent or
// unparseable.
type SurveyRecord struct {
	Country             string  `json:"country"`
	Gender              string  `json:"gender"`
	AgeGroup            string  `json:"age_group"`
	FintechUsed         string  `json:"fintech_used"`
	Year                *int    `json:"year,omitempty"`
	UseCase1            string  `json:"use_case_1"`
	UseCase2            string  `json:"use_case_2"`
	UrbanRural          string  `json:"urban_rural"`
	PhoneType           string  `json:"phone_type"`
	MonthlyTransactions float64 `json:"monthly_transactions"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
	Barrier             string  `json:"barrier"`
}

// IsFintechUser reports whether the respondent answered "yes"
// (case-insensitive) to using fintech services.
func (r SurveyRecord) IsFintechUser() bool {
	return strings.EqualFold(r.FintechUsed, "yes")
}

// FilterSpec holds the user-selected narrowing predicates applied before
// aggregation. Empty string or AllValues means unconstrained; nil year
// bounds mean unconstrained. Predicates compose as logical AND.
type FilterSpec struct {
	Country  string `json:"country,omitempty" validate:"omitempty,max=64"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,max=32"`
	AgeGroup string `json:"age_group,omitempty" validate:"omitempty,max=32"`
	Location string `json:"location,omitempty" validate:"omitempty,max=32"`
	YearFrom *int   `json:"year_from,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	YearTo   *int   `json:"year_to,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// IsZero reports whether the spec carries no constraints at all.
func (s FilterSpec) IsZero() bool {
	return !constrains(s.Country) && !constrains(s.Gender) &&
		!constrains(s.AgeGroup) && !constrains(s.Location) &&
		s.YearFrom == nil && s.YearTo == nil
}

func constrains(v string) bool {
	return v != "" && v != AllValues
}
