package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/xuri/excelize/v2"
)

// Exporter serializes a titled table into a downloadable file.
type Exporter interface {
	Export(title string, header []string, rows [][]interface{}, totals []interface{}) ([]byte, error)
	// ContentType is the MIME type of the produced file.
	ContentType() string
	// Extension is the file extension, without the dot.
	Extension() string
}

// NewExporter returns the exporter for an export format (xlsx or csv).
func NewExporter(format string) (Exporter, error) {
	switch format {
	case constants.OutputFormatXLSX:
		return XLSXExporter{SheetName: constants.ExportSheetName}, nil
	case constants.OutputFormatCSV:
		return CSVExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q, expected %s or %s",
			format, constants.OutputFormatXLSX, constants.OutputFormatCSV)
	}
}

// ExportSchedule serializes a schedule with the given exporter.
func ExportSchedule(e Exporter, schedule loans.Schedule) ([]byte, error) {
	table := ScheduleTable(schedule)
	return e.Export(table.Title, table.Header, table.Rows, table.Totals)
}

// FileName returns the download name of an export.
func FileName(e Exporter) string {
	return constants.ExportFileBaseName + "." + e.Extension()
}

// XLSXExporter writes an Excel workbook with a single sheet laid out as: title,
// blank row, header, one row per period, totals.
type XLSXExporter struct {
	SheetName string
}

// Export implements Exporter.
func (x XLSXExporter) Export(title string, header []string, rows [][]interface{}, totals []interface{}) ([]byte, error) {
	sheet := x.SheetName
	if sheet == "" {
		sheet = constants.ExportSheetName
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}

	data := make([][]interface{}, 0, len(rows)+4)
	data = append(data, []interface{}{title}, nil, headerRow)
	data = append(data, rows...)
	data = append(data, totals)

	for i, row := range data {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType implements Exporter.
func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Exporter.
func (XLSXExporter) Extension() string {
	return constants.OutputFormatXLSX
}

// CSVExporter writes the same layout as XLSXExporter as comma-separated values.
type CSVExporter struct{}

// Export implements Exporter.
func (CSVExporter) Export(title string, header []string, rows [][]interface{}, totals []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := make([][]string, 0, len(rows)+4)
	records = append(records, []string{title}, []string{""}, header)
	for _, row := range rows {
		records = append(records, csvRecord(row))
	}
	records = append(records, csvRecord(totals))

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType implements Exporter.
func (CSVExporter) ContentType() string {
	return "text/csv"
}

// Extension implements Exporter.
func (CSVExporter) Extension() string {
	return constants.OutputFormatCSV
}

func csvRecord(values []interface{}) []string {
	record := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case float64:
			record[i] = strconv.FormatFloat(val, 'f', constants.DecimalPlaces, 64)
		default:
			record[i] = fmt.Sprint(val)
		}
	}
	return record
}
