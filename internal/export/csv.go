// Package export serializes transaction snapshots into the two
// downloadable artifacts: a CSV text blob and a paginated report
// document model.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fundtrackr/internal/core"
)

const csvHeader = "ID,Title,Amount,Date,Category,Type"

const csvDateLayout = "2006-01-02"

// CSV renders the snapshot as a CSV blob in the input's given order.
// Title and Category are always double-quoted with embedded quotes
// doubled; Amount is the raw decimal value. Empty input yields the
// header only. No trailing newline after the last row.
func CSV(txs []core.Transaction) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, t := range txs {
		b.WriteByte('\n')
		b.WriteString(strconv.FormatInt(t.ID, 10))
		b.WriteByte(',')
		b.WriteString(quoteField(t.Title))
		b.WriteByte(',')
		b.WriteString(t.Amount.String())
		b.WriteByte(',')
		b.WriteString(t.Date.Format(csvDateLayout))
		b.WriteByte(',')
		b.WriteString(quoteField(t.Category))
		b.WriteByte(',')
		b.WriteString(string(t.Kind))
	}
	return b.String()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename returns the suggested export filename for a given extension,
// e.g. FundTrackr_Export_20250601_153000.csv.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("FundTrackr_Export_%s.%s", now.Format("20060102_150405"), ext)
}
