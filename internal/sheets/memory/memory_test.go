package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fundtrackr/internal/core"
)

func TestAppendSnapshot(t *testing.T) {
	sink := New()
	txs := []core.Transaction{
		{ID: 1, Title: "Milk", Amount: decimal.NewFromInt(40), Date: time.Now(), Category: "Groceries", Kind: core.KindExpense},
		{ID: 2, Title: "Pay", Amount: decimal.NewFromInt(1000), Date: time.Now(), Category: "Salary", Kind: core.KindIncome},
	}

	ref, err := sink.AppendSnapshot(context.Background(), txs)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:2" {
		t.Fatalf("ref = %q", ref)
	}
	if got := sink.Rows(); len(got) != 2 || got[0].Title != "Milk" {
		t.Fatalf("rows = %+v", got)
	}

	if _, err := sink.AppendSnapshot(context.Background(), nil); err != nil {
		t.Fatalf("empty append: %v", err)
	}
}
