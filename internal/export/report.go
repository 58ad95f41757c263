package export

import (
	"time"

	"fundtrackr/internal/core"
)

// Page geometry in document units (A4 portrait at 72 dpi).
const (
	PageWidth  = 595
	PageHeight = 842

	marginLeft   = 40
	marginBottom = 50
	lineHeight   = 20

	// Vertical cursor positions: the first page carries the title
	// block above the column header, continuation pages only the
	// column header.
	firstPageTop = 120
	nextPageTop  = 70
)

// Color tags distinguishing income and expense rows. Cosmetic only.
const (
	ColorIncome  = "green"
	ColorExpense = "red"
)

// ReportColumns is the header row repeated at the top of every page.
var ReportColumns = []string{"Date", "Category", "Title", "Amount", "Type"}

type (
	// Line is one rendered transaction row.
	Line struct {
		Y        int    `json:"y"`
		Date     string `json:"date"`
		Category string `json:"category"`
		Title    string `json:"title"`
		Amount   string `json:"amount"`
		Kind     string `json:"kind"`
		Color    string `json:"color"`
	}

	// Page is one fixed-size report page. Every page re-emits the
	// column header.
	Page struct {
		Width   int      `json:"width"`
		Height  int      `json:"height"`
		Columns []string `json:"columns"`
		Lines   []Line   `json:"lines"`
	}

	// Document is the paginated report model handed to a file sink or
	// renderer. Page count is unbounded.
	Document struct {
		Title     string    `json:"title"`
		Generated time.Time `json:"generated"`
		Pages     []Page    `json:"pages"`
	}
)

// BuildReport lays the snapshot out into fixed-size pages, advancing a
// vertical cursor per transaction and breaking to a new page before the
// bottom margin would be crossed. Zero transactions produce a single
// page with the header and no rows.
func BuildReport(txs []core.Transaction, now time.Time) Document {
	doc := Document{
		Title:     "FundTrackr Transaction Report",
		Generated: now,
	}

	page := newPage()
	y := firstPageTop
	for _, t := range txs {
		if y+lineHeight > PageHeight-marginBottom {
			doc.Pages = append(doc.Pages, page)
			page = newPage()
			y = nextPageTop
		}
		color := ColorExpense
		if t.Kind == core.KindIncome {
			color = ColorIncome
		}
		page.Lines = append(page.Lines, Line{
			Y:        y,
			Date:     t.Date.Format(csvDateLayout),
			Category: t.Category,
			Title:    t.Title,
			Amount:   t.Amount.StringFixed(2),
			Kind:     string(t.Kind),
			Color:    color,
		})
		y += lineHeight
	}
	doc.Pages = append(doc.Pages, page)

	return doc
}

func newPage() Page {
	return Page{
		Width:   PageWidth,
		Height:  PageHeight,
		Columns: ReportColumns,
	}
}
