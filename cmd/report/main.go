// Command report prints the survey summary tables to the terminal and can
// export them to a CSV or Excel report file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"finpulse/internal/dataset"
	"finpulse/internal/exporter"
	"finpulse/internal/services"
	"finpulse/pkg/contracts/domain"
)

func main() {
	var (
		dataPath = flag.String("data", "data/fintech_usage_africa.csv", "path to the survey dataset (csv, xlsx or parquet)")
		country  = flag.String("country", "", "filter by country")
		gender   = flag.String("gender", "", "filter by gender")
		ageGroup = flag.String("age-group", "", "filter by age group")
		location = flag.String("location", "", "filter by urban/rural location")
		yearFrom = flag.Int("year-from", 0, "filter by survey year, lower bound")
		yearTo   = flag.Int("year-to", 0, "filter by survey year, upper bound")
		outPath  = flag.String("out", "", "also write the report to this file (.csv or .xlsx)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	spec := domain.FilterSpec{
		Country:  *country,
		Gender:   *gender,
		AgeGroup: *ageGroup,
		Location: *location,
	}
	if *yearFrom != 0 {
		spec.YearFrom = yearFrom
	}
	if *yearTo != 0 {
		spec.YearTo = yearTo
	}

	if err := run(*dataPath, spec, *outPath, logger); err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}
}

func run(dataPath string, spec domain.FilterSpec, outPath string, logger *slog.Logger) error {
	store := dataset.NewStore(logger)
	svc := services.NewDashboardService(store, dataPath, logger)

	rep, err := svc.BuildReport(context.Background(), spec)
	if err != nil {
		return err
	}

	printKPIs(rep.KPIs)
	printCounts("Respondents by country", "Country", rep.Countries)
	printSeries(rep.Series)
	printCounts("Top use cases", "Use Case", rep.UseCases)
	printCounts("Top barriers", "Barrier", rep.Barriers)

	if outPath != "" {
		if err := writeFile(outPath, rep); err != nil {
			return err
		}
		fmt.Println("report written to", outPath)
	}
	return nil
}

func printKPIs(k domain.KPIBundle) {
	fmt.Println("Key figures")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"KPI", "Value"})
	table.Append([]string{"Total Respondents", strconv.Itoa(k.TotalRespondents)})
	table.Append([]string{"Fintech Users", strconv.Itoa(k.FintechUsers)})
	table.Append([]string{"Adoption Rate (%)", fmt.Sprintf("%.1f", k.AdoptionRate)})
	table.Append([]string{"Monthly Avg Users", fmt.Sprintf("%.1f", k.MonthlyAvgUsers)})
	table.Append([]string{"Total Countries", strconv.Itoa(k.TotalCountries)})
	table.Render()
	fmt.Println()
}

func printCounts(title, label string, counts []domain.ValueCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Println(title)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{label, "Count"})
	for _, vc := range counts {
		table.Append([]string{vc.Value, strconv.Itoa(vc.Count)})
	}
	table.Render()
	fmt.Println()
}

func printSeries(series []domain.YearPoint) {
	if len(series) == 0 {
		return
	}
	fmt.Println("Adoption by year")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Year", "Total", "Fintech Users", "Adoption Rate (%)"})
	for _, p := range series {
		table.Append([]string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Total),
			strconv.Itoa(p.FintechUsers),
			fmt.Sprintf("%.1f", p.AdoptionRate),
		})
	}
	table.Render()
	fmt.Println()
}

func writeFile(path string, rep *exporter.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".csv":
		return exporter.WriteCSV(f, rep)
	case ".xlsx":
		return exporter.WriteWorkbook(f, rep)
	default:
		return fmt.Errorf("unsupported report extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
