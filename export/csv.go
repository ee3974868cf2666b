// Package export converts the invoice collection to its CSV interchange
// form.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"paynapple-backend/models"
)

const header = "Client Name,Amount,Status,Created Date,Paid Date"

// dateLayout matches the locale-formatted dates the tool has always
// exported (month/day/year without zero padding).
const dateLayout = "1/2/2006"

// WriteCSV writes the collection in input order, one row per invoice after
// the header. The client name is always quoted to tolerate embedded
// separators; no other field is. Amounts are fixed-point with two decimals;
// the paid date is empty while pending. Declining to export an empty
// collection is the caller's job, not an error here.
func WriteCSV(w io.Writer, collection []models.Invoice) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, inv := range collection {
		paidAt := ""
		if inv.PaidAt != nil {
			paidAt = inv.PaidAt.Format(dateLayout)
		}
		row := fmt.Sprintf("\n%s,%.2f,%s,%s,%s",
			quote(inv.ClientName),
			inv.Amount,
			inv.Status,
			inv.CreatedAt.Format(dateLayout),
			paidAt,
		)
		if _, err := io.WriteString(w, row); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename names the download after the export date.
func Filename(now time.Time) string {
	return "invoices_" + now.Format("2006-01-02") + ".csv"
}
