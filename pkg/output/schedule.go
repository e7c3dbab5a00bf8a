// Package output renders amortization schedules for export and display.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/advancehq/salary-advance/pkg/format"
	"github.com/advancehq/salary-advance/pkg/loans"
)

// csvHeader is the fixed column order for exported schedules.
var csvHeader = []string{"Month", "Payment", "Principal", "Interest", "Balance"}

// ScheduleCSV encodes an amortization schedule as comma-separated text with
// a header row and two fraction digits on every monetary value.
func ScheduleCSV(rows []loans.Row) string {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	// strings.Builder writes cannot fail, so neither can the csv writer.
	_ = w.Write(csvHeader)
	for _, row := range rows {
		_ = w.Write([]string{
			strconv.Itoa(row.Month),
			strconv.FormatFloat(row.Payment, 'f', 2, 64),
			strconv.FormatFloat(row.Principal, 'f', 2, 64),
			strconv.FormatFloat(row.Interest, 'f', 2, 64),
			strconv.FormatFloat(row.Balance, 'f', 2, 64),
		})
	}
	w.Flush()

	return buf.String()
}

// PrettySchedule prints a human-readable table of the schedule to stdout.
func PrettySchedule(rows []loans.Row) {
	WriteSchedule(os.Stdout, rows)
}

// WriteSchedule renders the schedule as an aligned table with
// thousands-separated amounts.
func WriteSchedule(w io.Writer, rows []loans.Row) {
	fmt.Fprintf(w, "Month | Payment      | Principal    | Interest     | Balance\n")
	fmt.Fprintf(w, "_____ | ____________ | ____________ | ____________ | ____________\n")
	for _, row := range rows {
		fmt.Fprintf(w, "%5d | $%-11s | $%-11s | $%-11s | $%s\n",
			row.Month,
			format.NumericCurrency(row.Payment),
			format.NumericCurrency(row.Principal),
			format.NumericCurrency(row.Interest),
			format.NumericCurrency(row.Balance))
	}
}
