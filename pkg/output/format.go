// Package output provides utilities for formatting, displaying and exporting
// amortization schedules.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/format"
	"github.com/iwvelando/amortize/pkg/loans"
)

// NamedSchedule pairs a schedule with the name of the loan it belongs to.
type NamedSchedule struct {
	Name     string         `json:"name"`
	Schedule loans.Schedule `json:"schedule"`
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []NamedSchedule) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		s := result.Schedule
		lines := []string{
			fmt.Sprintf("--- %s: %s ---", result.Name, s.Method.Description()),
			fmt.Sprintf("%-6s | %14s | %14s | %14s | %14s", "#", "Payment", "Principal", "Interest", "Balance"),
			fmt.Sprintf("%-6s | %14s | %14s | %14s | %14s", "______", "_______", "_________", "________", "_______"),
		}
		for _, p := range s.Periods {
			lines = append(lines, fmt.Sprintf("%-6d | %14s | %14s | %14s | %14s",
				p.Number, format.Currency(p.Payment), format.Currency(p.Principal),
				format.Currency(p.Interest), format.Currency(p.Balance)))
		}
		lines = append(lines, fmt.Sprintf("%-6s | %14s | %14s | %14s | %14s",
			constants.TotalsLabel, format.Currency(s.Totals.Payment),
			format.Currency(s.Totals.Principal), format.Currency(s.Totals.Interest), ""))

		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat writes every schedule in comma-separated value format, one row per
// period keyed by loan name.
func CsvFormat(w io.Writer, results []NamedSchedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"loan", "method", "period", "payment", "principal", "interest", "balance"}); err != nil {
		return err
	}
	for _, result := range results {
		s := result.Schedule
		for _, p := range s.Periods {
			if err := cw.Write([]string{
				result.Name, string(s.Method), strconv.Itoa(p.Number),
				amount(p.Payment), amount(p.Principal), amount(p.Interest), amount(p.Balance),
			}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{
			result.Name, string(s.Method), constants.TotalsLabel,
			amount(s.Totals.Payment), amount(s.Totals.Principal), amount(s.Totals.Interest), "",
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat writes the schedules as an indented JSON array.
func JSONFormat(w io.Writer, results []NamedSchedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', constants.DecimalPlaces, 64)
}
