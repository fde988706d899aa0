package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpulse/pkg/contracts/domain"
)

func TestBuildReport(t *testing.T) {
	svc := newTestService(t)
	spec := domain.FilterSpec{Country: "Kenya"}

	rep, err := svc.BuildReport(context.Background(), spec)
	require.NoError(t, err)

	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, spec, rep.Filters)
	assert.Equal(t, 2, rep.KPIs.TotalRespondents)
	require.Len(t, rep.Countries, 1)
	assert.Equal(t, domain.ValueCount{Value: "Kenya", Count: 2}, rep.Countries[0])
	assert.NotEmpty(t, rep.Series)
	assert.NotEmpty(t, rep.UseCases)
	assert.NotEmpty(t, rep.Barriers)
}

func TestBuildReportInvalidFilter(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.BuildReport(context.Background(), domain.FilterSpec{
		YearFrom: intp(2022),
		YearTo:   intp(2020),
	})
	assert.ErrorIs(t, err, ErrInvalidYearRange)
}

func TestValidateExportFormat(t *testing.T) {
	assert.NoError(t, ValidateExportFormat("csv"))
	assert.NoError(t, ValidateExportFormat("xlsx"))
	assert.ErrorIs(t, ValidateExportFormat("pdf"), ErrUnsupportedExportFormat)
	assert.ErrorIs(t, ValidateExportFormat(""), ErrUnsupportedExportFormat)
}
