package dataset

import (
	"finpulse/pkg/contracts/domain"
)

// Apply narrows ds to the records satisfying every predicate in spec and
// returns the result as a new Dataset. Predicates compose as logical AND;
// the relative order of surviving records matches the input. A predicate on
// a column the source file did not carry is a no-op rather than an error.
func Apply(ds *Dataset, spec domain.FilterSpec) *Dataset {
	out := &Dataset{
		records: make([]domain.SurveyRecord, 0, ds.Len()),
		missing: ds.missing,
		path:    ds.path,
	}

	country := categorical(spec.Country, ds.HasColumn(ColCountry))
	gender := categorical(spec.Gender, ds.HasColumn(ColGender))
	ageGroup := categorical(spec.AgeGroup, ds.HasColumn(ColAgeGroup))
	location := categorical(spec.Location, ds.HasColumn(ColUrbanRural))
	yearBound := (spec.YearFrom != nil || spec.YearTo != nil) && ds.HasColumn(ColYear)

	for _, rec := range ds.records {
		if country != "" && rec.Country != country {
			continue
		}
		if gender != "" && rec.Gender != gender {
			continue
		}
		if ageGroup != "" && rec.AgeGroup != ageGroup {
			continue
		}
		if location != "" && rec.UrbanRural != location {
			continue
		}
		if yearBound && !inYearRange(rec.Year, spec.YearFrom, spec.YearTo) {
			continue
		}
		out.records = append(out.records, rec)
	}
	return out
}

// categorical resolves a filter field to the value to match, or "" when the
// field is unconstrained ("" or the All sentinel) or its column is absent.
func categorical(value string, present bool) string {
	if !present || value == "" || value == domain.AllValues {
		return ""
	}
	return value
}

// inYearRange checks an inclusive [from, to] bound. Records without a year
// never match an active year constraint.
func inYearRange(year, from, to *int) bool {
	if year == nil {
		return false
	}
	if from != nil && *year < *from {
		return false
	}
	if to != nil && *year > *to {
		return false
	}
	return true
}
