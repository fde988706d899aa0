// Package dataset loads, cleans and filters the fintech usage survey data.
// A Dataset is immutable after load; filtering produces a new Dataset and
// repeated loads of the same path are served from an explicit Store cache.
package dataset

import (
	"sort"

	"finpulse/pkg/contracts/domain"
)

// Column names expected in the survey input file.
const (
	ColCountry             = "Country"
	ColGender              = "Gender"
	ColAgeGroup            = "Age_Group"
	ColFintechUsed         = "Fintech_Used"
	ColYear                = "Year"
	ColUseCase1            = "Use_Case_1"
	ColUseCase2            = "Use_Case_2"
	ColUrbanRural          = "Urban_Rural"
	ColPhoneType           = "Phone_Type"
	ColMonthlyTransactions = "Monthly_Transactions"
	ColAvgTransactionValue = "Avg_Transaction_Value"
	ColBarrier             = "Barrier"
)

// StringColumns are normalized to domain.UnknownValue when an answer is
// missing or empty.
var StringColumns = []string{
	ColCountry, ColGender, ColAgeGroup, ColFintechUsed,
	ColUseCase1, ColUseCase2, ColUrbanRural, ColPhoneType, ColBarrier,
}

// NumericColumns default to 0 for every record when the column is absent
// from the input file.
var NumericColumns = []string{ColMonthlyTransactions, ColAvgTransactionValue}

// Dataset is an ordered collection of cleaned survey records together with
// the set of expected columns that were absent from the source file.
// Absent columns make the predicates and aggregations that depend on them
// degrade to no-ops instead of failing.
type Dataset struct {
	records []domain.SurveyRecord
	missing map[string]struct{}
	path    string
}

// FromRecords builds a Dataset directly from cleaned records. Columns named
// in missingCols are marked absent. Intended for aggregation consumers and
// tests; file ingestion goes through Load.
func FromRecords(records []domain.SurveyRecord, missingCols ...string) *Dataset {
	missing := make(map[string]struct{}, len(missingCols))
	for _, c := range missingCols {
		missing[c] = struct{}{}
	}
	return &Dataset{records: records, missing: missing}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the record at index i.
func (d *Dataset) At(i int) domain.SurveyRecord {
	return d.records[i]
}

// Records returns a copy of the records in load order. The copy keeps the
// Dataset immutable for callers that need the raw rows.
func (d *Dataset) Records() []domain.SurveyRecord {
	out := make([]domain.SurveyRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Path returns the source file path, empty for datasets built in memory.
func (d *Dataset) Path() string {
	return d.path
}

// HasColumn reports whether the named column was present in the source file.
func (d *Dataset) HasColumn(name string) bool {
	_, absent := d.missing[name]
	return !absent
}

// MissingColumns returns the sorted list of expected columns the source
// file did not carry.
func (d *Dataset) MissingColumns() []string {
	if len(d.missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(d.missing))
	for c := range d.missing {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
