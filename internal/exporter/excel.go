package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"finpulse/pkg/contracts/domain"
)

// WriteWorkbook writes the report as an Excel workbook with one sheet per
// summary table.
func WriteWorkbook(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeKPISheet(f, rep); err != nil {
		return err
	}
	if err := writeCountSheet(f, "Countries", "Country", rep.Countries); err != nil {
		return err
	}
	if err := writeSeriesSheet(f, rep.Series); err != nil {
		return err
	}
	if err := writeCountSheet(f, "Use Cases", "Use Case", rep.UseCases); err != nil {
		return err
	}
	if err := writeCountSheet(f, "Barriers", "Barrier", rep.Barriers); err != nil {
		return err
	}

	// Drop the default sheet created by excelize.
	f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeKPISheet(f *excelize.File, rep *Report) error {
	const sheet = "KPIs"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Generated", rep.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"KPI", "Value"},
		{"Total Respondents", rep.KPIs.TotalRespondents},
		{"Fintech Users", rep.KPIs.FintechUsers},
		{"Adoption Rate (%)", rep.KPIs.AdoptionRate},
		{"Monthly Avg Users", rep.KPIs.MonthlyAvgUsers},
		{"Total Countries", rep.KPIs.TotalCountries},
	}
	return writeRows(f, sheet, rows)
}

func writeCountSheet(f *excelize.File, sheet, label string, counts []domain.ValueCount) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{label, "Count"}}
	for _, vc := range counts {
		rows = append(rows, []interface{}{vc.Value, vc.Count})
	}
	return writeRows(f, sheet, rows)
}

func writeSeriesSheet(f *excelize.File, series []domain.YearPoint) error {
	const sheet = "Trends"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Year", "Total", "Fintech Users", "Adoption Rate (%)"}}
	for _, p := range series {
		rows = append(rows, []interface{}{p.Year, p.Total, p.FintechUsers, p.AdoptionRate})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolve cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
