package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// OtherCategory is the bucket blank categories are normalized into.
const OtherCategory = "Other"

var hundred = decimal.NewFromInt(100)

// Totals holds the aggregate view of a transaction collection.
// Balance is signed and may be negative.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Summarize computes income, expense and balance totals over the whole
// collection. Empty input yields zero totals.
func Summarize(txs []Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txs {
		switch t.Kind {
		case KindIncome:
			income = income.Add(t.Amount)
		case KindExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// CategoryBreakdown groups transactions of the given kind by category,
// sums amounts per group and computes each group's share of the total.
// Blank categories count under OtherCategory. A zero total yields an
// empty breakdown. Results are sorted by amount descending; ties keep
// first-encounter order.
func CategoryBreakdown(txs []Transaction, kind Kind) []CategoryStat {
	sums := make(map[string]decimal.Decimal)
	var order []string
	total := decimal.Zero

	for _, t := range txs {
		if t.Kind != kind {
			continue
		}
		cat := strings.TrimSpace(t.Category)
		if cat == "" {
			cat = OtherCategory
		}
		if _, seen := sums[cat]; !seen {
			order = append(order, cat)
		}
		sums[cat] = sums[cat].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	if total.IsZero() {
		return nil
	}

	stats := make([]CategoryStat, 0, len(order))
	for _, cat := range order {
		amount := sums[cat]
		stats = append(stats, CategoryStat{
			Category: cat,
			Amount:   amount,
			Percent:  amount.Div(total).Mul(hundred),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Amount.GreaterThan(stats[j].Amount)
	})

	return stats
}
