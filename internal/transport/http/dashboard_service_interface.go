package http

import (
	"context"

	"finpulse/internal/exporter"
	"finpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the contract the dashboard handler
// depends on, enabling mocking in tests.
type DashboardServiceInterface interface {
	KPIs(ctx context.Context, spec domain.FilterSpec) (domain.KPIBundle, error)
	Overview(ctx context.Context, spec domain.FilterSpec) (domain.OverviewPayload, error)
	Trends(ctx context.Context, spec domain.FilterSpec) (domain.TrendsPayload, error)
	Demographics(ctx context.Context, spec domain.FilterSpec) (domain.DemographicsPayload, error)
	UseCases(ctx context.Context, spec domain.FilterSpec) (domain.UseCasesPayload, error)
	Conclusion(ctx context.Context, spec domain.FilterSpec) (domain.ConclusionPayload, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	BuildReport(ctx context.Context, spec domain.FilterSpec) (*exporter.Report, error)
}
