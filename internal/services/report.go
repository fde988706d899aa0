package services

import (
	"context"
	"fmt"
	"time"

	"finpulse/internal/analytics"
	"finpulse/internal/dataset"
	"finpulse/internal/exporter"
	"finpulse/pkg/contracts/domain"
)

// BuildReport assembles the exportable summary tables for one filter
// selection.
func (s *DashboardService) BuildReport(ctx context.Context, spec domain.FilterSpec) (*exporter.Report, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}

	return &exporter.Report{
		GeneratedAt: time.Now(),
		Filters:     spec,
		KPIs:        analytics.KPIs(ds),
		Countries:   analytics.ValueCounts(ds, dataset.ColCountry),
		Series:      analytics.TimeSeries(ds),
		UseCases:    analytics.TopNByFrequency(ds, dataset.ColUseCase1, topUseCases),
		Barriers:    analytics.TopNByFrequency(ds, dataset.ColBarrier, topUseCases),
	}, nil
}

// ValidateExportFormat checks a requested export format.
func ValidateExportFormat(format string) error {
	switch format {
	case exporter.FormatCSV, exporter.FormatXLSX:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, format)
	}
}
