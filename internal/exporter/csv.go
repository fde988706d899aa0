package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"finpulse/pkg/contracts/domain"
)

// WriteCSV writes the report as a sectioned CSV document: a KPI block
// followed by one block per summary table, separated by blank lines.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	rows := [][]string{
		{"Generated", rep.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
		{"KPI", "Value"},
		{"Total Respondents", strconv.Itoa(rep.KPIs.TotalRespondents)},
		{"Fintech Users", strconv.Itoa(rep.KPIs.FintechUsers)},
		{"Adoption Rate (%)", fmt.Sprintf("%.1f", rep.KPIs.AdoptionRate)},
		{"Monthly Avg Users", fmt.Sprintf("%.1f", rep.KPIs.MonthlyAvgUsers)},
		{"Total Countries", strconv.Itoa(rep.KPIs.TotalCountries)},
		{},
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write KPI section: %w", err)
	}

	if err := writeCountSection(cw, "Country", rep.Countries); err != nil {
		return err
	}

	if len(rep.Series) > 0 {
		if err := cw.Write([]string{"Year", "Total", "Fintech Users", "Adoption Rate (%)"}); err != nil {
			return fmt.Errorf("write time series header: %w", err)
		}
		for _, p := range rep.Series {
			row := []string{
				strconv.Itoa(p.Year),
				strconv.Itoa(p.Total),
				strconv.Itoa(p.FintechUsers),
				fmt.Sprintf("%.1f", p.AdoptionRate),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write time series row: %w", err)
			}
		}
		if err := cw.Write(nil); err != nil {
			return fmt.Errorf("write section separator: %w", err)
		}
	}

	if err := writeCountSection(cw, "Use Case", rep.UseCases); err != nil {
		return err
	}
	return writeCountSection(cw, "Barrier", rep.Barriers)
}

func writeCountSection(cw *csv.Writer, label string, counts []domain.ValueCount) error {
	if len(counts) == 0 {
		return nil
	}
	if err := cw.Write([]string{label, "Count"}); err != nil {
		return fmt.Errorf("write %s header: %w", label, err)
	}
	for _, vc := range counts {
		if err := cw.Write([]string{vc.Value, strconv.Itoa(vc.Count)}); err != nil {
			return fmt.Errorf("write %s row: %w", label, err)
		}
	}
	if err := cw.Write(nil); err != nil {
		return fmt.Errorf("write section separator: %w", err)
	}
	return nil
}
