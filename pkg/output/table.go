package output

import (
	"fmt"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/loans"
)

// Header is the column header of schedule tables and exports.
var Header = []string{"Period", "Payment", "Principal", "Interest", "Balance"}

// Table is a schedule flattened into exportable rows.
type Table struct {
	Title  string
	Header []string
	Rows   [][]interface{}
	Totals []interface{}
}

// Title returns the heading used for a schedule of the given method.
func Title(method loans.Method) string {
	return fmt.Sprintf("Payment Schedule - %s Table", method.Title())
}

// ScheduleTable flattens a schedule into one row per period plus a totals row
// whose balance cell is left blank.
func ScheduleTable(schedule loans.Schedule) Table {
	rows := make([][]interface{}, 0, len(schedule.Periods))
	for _, p := range schedule.Periods {
		rows = append(rows, []interface{}{p.Number, p.Payment, p.Principal, p.Interest, p.Balance})
	}
	return Table{
		Title:  Title(schedule.Method),
		Header: Header,
		Rows:   rows,
		Totals: []interface{}{
			constants.TotalsLabel,
			schedule.Totals.Payment,
			schedule.Totals.Principal,
			schedule.Totals.Interest,
			"",
		},
	}
}
