package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"finpulse/internal/metrics"
	"finpulse/pkg/contracts/domain"
)

var (
	// ErrDataUnavailable marks a dataset file that is missing or unreadable.
	// Fatal at startup: the dashboard has no partial mode without data.
	ErrDataUnavailable = errors.New("dataset file missing or unreadable")

	// ErrUnsupportedFormat marks an input extension the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Load reads the survey file at path, reconciles its header against the
// expected schema and returns a cleaned Dataset. The format is chosen by
// file extension: .csv, .xlsx/.xlsm or .parquet. Loading the same file
// twice yields content-equal datasets.
func Load(path string) (*Dataset, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	header, rows, err := readTable(path, format)
	if err != nil {
		metrics.DatasetLoadFailures.Inc()
		return nil, err
	}

	ds := build(path, header, rows)
	metrics.DatasetLoads.WithLabelValues(format).Inc()

	slog.Info("dataset loaded",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("records", ds.Len()),
		slog.Any("missing_columns", ds.MissingColumns()))

	return ds, nil
}

func readTable(path, format string) ([]string, [][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrDataUnavailable, path)
	}

	switch format {
	case "csv":
		return readCSV(path)
	case "xlsx", "xlsm":
		return readExcel(path)
	case "parquet":
		return readParquet(path)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are cleaned per column later
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

func readExcel(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	// Take the first sheet that carries at least a header row.
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		return rows[0], rows[1:], nil
	}
	return nil, nil, nil
}

func readParquet(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	var header []string
	for _, field := range pf.Schema().Fields() {
		header = append(header, field.Name())
	}

	reader := parquet.NewReader(pf)
	defer reader.Close()

	var rows [][]string
	for {
		rowData := make(map[string]interface{})
		if err := reader.Read(&rowData); err != nil {
			break // end of file
		}
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = cellString(rowData[col])
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// cellString renders a parquet value the way it would appear in a CSV cell.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// build reconciles the actual header against the expected schema once, so
// every consumer downstream can assume presence with defaults applied.
func build(path string, header []string, rows [][]string) *Dataset {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	missing := make(map[string]struct{})
	for _, col := range append(append([]string{ColYear}, StringColumns...), NumericColumns...) {
		if _, ok := index[col]; !ok {
			missing[col] = struct{}{}
		}
	}

	cell := func(row []string, col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	records := make([]domain.SurveyRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.SurveyRecord{
			Country:     stringCell(cell(row, ColCountry)),
			Gender:      stringCell(cell(row, ColGender)),
			AgeGroup:    stringCell(cell(row, ColAgeGroup)),
			FintechUsed: stringCell(cell(row, ColFintechUsed)),
			UseCase1:    stringCell(cell(row, ColUseCase1)),
			UseCase2:    stringCell(cell(row, ColUseCase2)),
			UrbanRural:  stringCell(cell(row, ColUrbanRural)),
			PhoneType:   stringCell(cell(row, ColPhoneType)),
			Barrier:     stringCell(cell(row, ColBarrier)),

			MonthlyTransactions: numericCell(cell(row, ColMonthlyTransactions)),
			AvgTransactionValue: numericCell(cell(row, ColAvgTransactionValue)),
		}
		if raw, ok := cell(row, ColYear); ok {
			rec.Year = parseYear(raw)
		}
		records = append(records, rec)
	}

	return &Dataset{records: records, missing: missing, path: path}
}

// stringCell normalizes a categorical answer: a missing column or empty
// cell becomes the Unknown sentinel.
func stringCell(raw string, ok bool) string {
	if !ok || raw == "" {
		return domain.UnknownValue
	}
	return raw
}

// numericCell parses a numeric answer, defaulting to 0 for absent columns
// and unparseable cells.
func numericCell(raw string, ok bool) float64 {
	if !ok || raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseYear coerces a year cell to an int, nil when unparseable. Values
// like "2020.0" survive the round trip through spreadsheet exports.
func parseYear(raw string) *int {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	y := int(f)
	return &y
}
