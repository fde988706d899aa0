// Package exporter writes summary reports for the current filter selection
// as CSV or Excel files.
package exporter

import (
	"fmt"
	"time"

	"finpulse/pkg/contracts/domain"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Report bundles the summary tables exported for one filter selection.
type Report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Filters     domain.FilterSpec   `json:"filters"`
	KPIs        domain.KPIBundle    `json:"kpis"`
	Countries   []domain.ValueCount `json:"countries"`
	Series      []domain.YearPoint  `json:"series"`
	UseCases    []domain.ValueCount `json:"use_cases"`
	Barriers    []domain.ValueCount `json:"barriers"`
}

// ContentType returns the MIME type for a format.
func ContentType(format string) (string, error) {
	switch format {
	case FormatCSV:
		return "text/csv", nil
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", format)
	}
}

// Filename returns the attachment filename for a format.
func Filename(format string, at time.Time) string {
	return fmt.Sprintf("fintech_report_%s.%s", at.Format("2006-01-02"), format)
}
