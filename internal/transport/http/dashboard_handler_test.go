package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpulse/internal/dataset"
	apierrors "finpulse/internal/errors"
	"finpulse/internal/exporter"
	"finpulse/internal/services"
	"finpulse/pkg/contracts/domain"
)

// mockDashboardService records the filter spec it was called with and
// returns canned payloads.
type mockDashboardService struct {
	lastSpec domain.FilterSpec
	err      error
}

func (m *mockDashboardService) KPIs(_ context.Context, spec domain.FilterSpec) (domain.KPIBundle, error) {
	m.lastSpec = spec
	return domain.KPIBundle{TotalRespondents: 100, FintechUsers: 40, AdoptionRate: 40}, m.err
}

func (m *mockDashboardService) Overview(_ context.Context, spec domain.FilterSpec) (domain.OverviewPayload, error) {
	m.lastSpec = spec
	return domain.OverviewPayload{
		KPIs:          domain.KPIBundle{TotalRespondents: 100},
		CountryCounts: []domain.ValueCount{{Value: "Kenya", Count: 60}},
	}, m.err
}

func (m *mockDashboardService) Trends(_ context.Context, spec domain.FilterSpec) (domain.TrendsPayload, error) {
	m.lastSpec = spec
	return domain.TrendsPayload{Series: []domain.YearPoint{{Year: 2020, Total: 50}}}, m.err
}

func (m *mockDashboardService) Demographics(_ context.Context, spec domain.FilterSpec) (domain.DemographicsPayload, error) {
	m.lastSpec = spec
	return domain.DemographicsPayload{}, m.err
}

func (m *mockDashboardService) UseCases(_ context.Context, spec domain.FilterSpec) (domain.UseCasesPayload, error) {
	m.lastSpec = spec
	return domain.UseCasesPayload{}, m.err
}

func (m *mockDashboardService) Conclusion(_ context.Context, spec domain.FilterSpec) (domain.ConclusionPayload, error) {
	m.lastSpec = spec
	return domain.ConclusionPayload{PercentActive: 40}, m.err
}

func (m *mockDashboardService) FilterOptions(context.Context) (domain.FilterOptions, error) {
	return domain.FilterOptions{Countries: []string{domain.AllValues, "Kenya"}}, m.err
}

func (m *mockDashboardService) BuildReport(_ context.Context, spec domain.FilterSpec) (*exporter.Report, error) {
	m.lastSpec = spec
	if m.err != nil {
		return nil, m.err
	}
	return &exporter.Report{
		GeneratedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Filters:     spec,
		KPIs:        domain.KPIBundle{TotalRespondents: 100},
	}, nil
}

func newTestHandler(mock *mockDashboardService) *DashboardHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDashboardHandler(mock, logger, apierrors.NewErrorHandler(logger, false))
}

func newTestRouter(mock *mockDashboardService) http.Handler {
	h := newTestHandler(mock)
	r := chi.NewRouter()
	r.Mount("/api/dashboard", h.Routes())
	r.Post("/api/export", h.Export)
	return r
}

func TestGetOverview(t *testing.T) {
	mock := &mockDashboardService{}
	router := newTestRouter(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/overview?country=Kenya&year_from=2020&year_to=2021", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Status string                 `json:"status"`
		Data   domain.OverviewPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 100, body.Data.KPIs.TotalRespondents)

	assert.Equal(t, "Kenya", mock.lastSpec.Country)
	require.NotNil(t, mock.lastSpec.YearFrom)
	assert.Equal(t, 2020, *mock.lastSpec.YearFrom)
	require.NotNil(t, mock.lastSpec.YearTo)
	assert.Equal(t, 2021, *mock.lastSpec.YearTo)
}

func TestDashboardPagesRespond(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	for _, path := range []string{
		"/api/dashboard/filters",
		"/api/dashboard/kpis",
		"/api/dashboard/overview",
		"/api/dashboard/trends",
		"/api/dashboard/demographics",
		"/api/dashboard/usecases",
		"/api/dashboard/conclusion",
	} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"success"`)
		})
	}
}

func TestGetOverviewBadYear(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/overview?year_from=soon", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	assert.Contains(t, rec.Body.String(), "year_from")
}

func TestDatasetUnavailableMapsTo503(t *testing.T) {
	router := newTestRouter(&mockDashboardService{err: dataset.ErrDataUnavailable})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dataset Unavailable")
}

func TestInvalidYearRangeMapsTo400(t *testing.T) {
	router := newTestRouter(&mockDashboardService{err: services.ErrInvalidYearRange})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	mock := &mockDashboardService{}
	router := newTestRouter(mock)

	body := strings.NewReader(`{"format":"csv","filters":{"country":"Kenya"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/export", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="fintech_report_2024-03-15.csv"`,
		rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Total Respondents,100")
	assert.Equal(t, "Kenya", mock.lastSpec.Country)
}

func TestExportXLSX(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	body := strings.NewReader(`{"format":"xlsx","filters":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/export", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())
}

func TestExportUnsupportedFormat(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	body := strings.NewReader(`{"format":"pdf"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/export", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "format")
}

func TestExportMalformedBody(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseFilterSpecEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/overview", nil)

	spec, err := parseFilterSpec(req)
	require.NoError(t, err)
	assert.True(t, spec.IsZero())
}
