package export

import (
	"fmt"
	"testing"
	"time"

	"fundtrackr/internal/core"
)

var reportNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestBuildReportEmpty(t *testing.T) {
	doc := BuildReport(nil, reportNow)
	if len(doc.Pages) != 1 {
		t.Fatalf("expected a single page, got %d", len(doc.Pages))
	}
	page := doc.Pages[0]
	if len(page.Lines) != 0 {
		t.Fatalf("expected no lines on empty report")
	}
	if page.Width != PageWidth || page.Height != PageHeight {
		t.Fatalf("page size %dx%d", page.Width, page.Height)
	}
	if len(page.Columns) != 5 || page.Columns[0] != "Date" {
		t.Fatalf("missing column header: %v", page.Columns)
	}
}

func TestBuildReportPagination(t *testing.T) {
	// Enough rows that the cursor overflows the first page.
	perFirstPage := (PageHeight - marginBottom - firstPageTop) / lineHeight
	var txs []core.Transaction
	for i := 0; i < perFirstPage+5; i++ {
		txs = append(txs, sampleTx(int64(i+1), fmt.Sprintf("tx-%d", i+1), "Shopping"))
	}

	doc := BuildReport(txs, reportNow)
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if len(doc.Pages[0].Lines) != perFirstPage {
		t.Fatalf("first page has %d lines, want %d", len(doc.Pages[0].Lines), perFirstPage)
	}
	if len(doc.Pages[1].Lines) != 5 {
		t.Fatalf("second page has %d lines", len(doc.Pages[1].Lines))
	}
	// Column header repeats on every page.
	for i, p := range doc.Pages {
		if len(p.Columns) != 5 {
			t.Fatalf("page %d missing column header", i)
		}
	}
	// No line crosses the bottom margin.
	for i, p := range doc.Pages {
		for _, l := range p.Lines {
			if l.Y+lineHeight > PageHeight-marginBottom {
				t.Fatalf("page %d line at y=%d crosses bottom margin", i, l.Y)
			}
		}
	}
}

func TestBuildReportColorTags(t *testing.T) {
	income := sampleTx(1, "Salary", "Salary")
	income.Kind = core.KindIncome
	expense := sampleTx(2, "Rent", "Rent")

	doc := BuildReport([]core.Transaction{income, expense}, reportNow)
	lines := doc.Pages[0].Lines
	if lines[0].Color != ColorIncome || lines[1].Color != ColorExpense {
		t.Fatalf("color tags: %q, %q", lines[0].Color, lines[1].Color)
	}
}
