// Package services holds the application services that sit between the
// HTTP transport and the dataset/analytics core.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"finpulse/internal/analytics"
	"finpulse/internal/dataset"
	"finpulse/pkg/contracts/domain"
)

const (
	// topCountries caps the Overview respondents-by-country bar chart.
	topCountries = 15
	// topUseCases caps the use case frequency chart.
	topUseCases = 15
	// conclusionTopN is the tile count on the Conclusion page.
	conclusionTopN = 3
	// transactionBins is the bucket count of the transactions histogram.
	transactionBins = 30
)

// DashboardService computes the per-page dashboard payloads: it resolves
// the cached dataset, validates and applies the user's filter selection and
// runs the aggregations each page renders.
type DashboardService struct {
	store    *dataset.Store
	path     string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service reading the dataset at
// path through the given store.
func NewDashboardService(store *dataset.Store, path string, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:    store,
		path:     path,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "dashboard_service")),
	}
}

// DatasetPath returns the configured input file path.
func (s *DashboardService) DatasetPath() string {
	return s.path
}

// Reload drops the cached dataset so the next request re-reads the file.
func (s *DashboardService) Reload() {
	s.store.Invalidate(s.path)
}

// filtered loads the cached dataset and narrows it by spec.
func (s *DashboardService) filtered(ctx context.Context, spec domain.FilterSpec) (*dataset.Dataset, error) {
	if err := s.ValidateFilter(spec); err != nil {
		return nil, err
	}

	ds, err := s.store.GetOrLoad(ctx, s.path)
	if err != nil {
		return nil, err
	}

	out := dataset.Apply(ds, spec)
	if out.Len() == 0 && ds.Len() > 0 {
		// Zero matches is not an error; aggregations degrade to defaults.
		s.logger.InfoContext(ctx, "filter produced empty result",
			slog.Any("filter", spec))
	}
	return out, nil
}

// ValidateFilter checks a filter spec against its validation tags and the
// year range ordering.
func (s *DashboardService) ValidateFilter(spec domain.FilterSpec) error {
	if err := s.validate.Struct(spec); err != nil {
		return err
	}
	if spec.YearFrom != nil && spec.YearTo != nil && *spec.YearFrom > *spec.YearTo {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidYearRange, *spec.YearFrom, *spec.YearTo)
	}
	return nil
}

// KPIs returns the headline statistics for the filtered dataset.
func (s *DashboardService) KPIs(ctx context.Context, spec domain.FilterSpec) (domain.KPIBundle, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return domain.KPIBundle{}, err
	}
	return analytics.KPIs(ds), nil
}

// Overview returns the Overview page payload: KPI cards and the
// respondents-by-country chart.
func (s *DashboardService) Overview(ctx context.Context, spec domain.FilterSpec) (domain.OverviewPayload, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return domain.OverviewPayload{}, err
	}
	return domain.OverviewPayload{
		KPIs:          analytics.KPIs(ds),
		CountryCounts: analytics.TopNByFrequency(ds, dataset.ColCountry, topCountries),
	}, nil
}

// Trends returns the per-year adoption time series.
func (s *DashboardService) Trends(ctx context.Context, spec domain.FilterSpec) (domain.TrendsPayload, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return domain.TrendsPayload{}, err
	}
	return domain.TrendsPayload{Series: analytics.TimeSeries(ds)}, nil
}

// Demographics returns the gender/usage crosstab, the age distribution and
// the phone type by location crosstab.
func (s *DashboardService) Demographics(ctx context.Context, spec domain.FilterSpec) (domain.DemographicsPayload, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return domain.DemographicsPayload{}, err
	}
	return domain.DemographicsPayload{
		GenderUsage:     analytics.Crosstab(ds, dataset.ColGender, dataset.ColFintechUsed),
		AgeDistribution: analytics.ValueCounts(ds, dataset.ColAgeGroup),
		PhoneTypeByArea: analytics.Crosstab(ds, dataset.ColPhoneType, dataset.ColUrbanRural),
	}, nil
}

// UseCases returns the top primary use cases and the distribution of
// positive monthly transaction counts.
func (s *DashboardService) UseCases(ctx context.Context, spec domain.FilterSpec) (domain.UseCasesPayload, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return domain.UseCasesPayload{}, err
	}
	return domain.UseCasesPayload{
		TopUseCases:  analytics.TopNByFrequency(ds, dataset.ColUseCase1, topUseCases),
		Transactions: analytics.Histogram(ds, dataset.ColMonthlyTransactions, transactionBins),
	}, nil
}

// Conclusion returns the Conclusion page tiles: top use cases, top barriers
// and the share of active users.
func (s *DashboardService) Conclusion(ctx context.Context, spec domain.FilterSpec) (domain.ConclusionPayload, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return domain.ConclusionPayload{}, err
	}

	payload := domain.ConclusionPayload{
		TopUseCases: values(analytics.TopNByFrequency(ds, dataset.ColUseCase1, conclusionTopN)),
		TopBarriers: values(analytics.TopNByFrequency(ds, dataset.ColBarrier, conclusionTopN)),
	}
	payload.PercentActive = analytics.KPIs(ds).AdoptionRate
	return payload, nil
}

// FilterOptions returns the filter surface derived from the full dataset,
// regardless of the current selection.
func (s *DashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	ds, err := s.store.GetOrLoad(ctx, s.path)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return analytics.FilterOptions(ds), nil
}

// Records returns the filtered raw records, for export.
func (s *DashboardService) Records(ctx context.Context, spec domain.FilterSpec) ([]domain.SurveyRecord, error) {
	ds, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return ds.Records(), nil
}

func values(counts []domain.ValueCount) []string {
	out := make([]string, 0, len(counts))
	for _, vc := range counts {
		out = append(out, vc.Value)
	}
	return out
}
